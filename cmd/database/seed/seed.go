package seed

import (
	"context"
	"errors"

	"food-donation-tracker/entities"
	"food-donation-tracker/pkg/organization"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("food-donation-tracker/organizations"))

// OrganizationID is stable across runs so seeding is idempotent.
func OrganizationID(name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(name))
}

func Organizations() []*entities.Organization {
	orgs := []*entities.Organization{
		{
			Name:      "Hope Community Center",
			Address:   "123 Main St, Anytown, USA",
			Distance:  1.2,
			Contact:   "(555) 123-4567",
			Email:     "info@hopecommunitycenter.org",
			Needs:     organization.JoinNeeds([]string{"Produce", "Dairy", "Bread"}),
			Hours:     "Mon-Fri: 9am-5pm",
			Latitude:  40.7128,
			Longitude: -74.006,
		},
		{
			Name:      "Food For All",
			Address:   "456 Oak Ave, Anytown, USA",
			Distance:  2.5,
			Contact:   "(555) 987-6543",
			Email:     "contact@foodforall.org",
			Needs:     organization.JoinNeeds([]string{"Canned Goods", "Proteins"}),
			Hours:     "Mon-Sat: 8am-8pm",
			Latitude:  40.7218,
			Longitude: -74.016,
		},
		{
			Name:      "Shelter Foundation",
			Address:   "789 Pine Blvd, Anytown, USA",
			Distance:  3.1,
			Contact:   "(555) 456-7890",
			Email:     "help@shelterfoundation.org",
			Needs:     organization.JoinNeeds([]string{"Ready-to-eat Meals", "Snacks"}),
			Hours:     "Daily: 10am-9pm",
			Latitude:  40.7048,
			Longitude: -73.996,
		},
		{
			Name:      "City Food Bank",
			Address:   "321 Elm St, Anytown, USA",
			Distance:  4.3,
			Contact:   "(555) 789-0123",
			Email:     "info@cityfoodbank.org",
			Needs:     organization.JoinNeeds([]string{"All Non-perishables", "Baby Food"}),
			Hours:     "Tue-Sun: 9am-6pm",
			Latitude:  40.7188,
			Longitude: -74.026,
		},
		{
			Name:      "Community Kitchen",
			Address:   "567 Maple Rd, Anytown, USA",
			Distance:  5.7,
			Contact:   "(555) 234-5678",
			Email:     "kitchen@communitykitchen.org",
			Needs:     organization.JoinNeeds([]string{"Fresh Produce", "Proteins", "Grains"}),
			Hours:     "Mon, Wed, Fri: 7am-3pm",
			Latitude:  40.7038,
			Longitude: -73.986,
		},
	}
	for _, org := range orgs {
		org.ID = OrganizationID(org.Name)
	}
	return orgs
}

// Seed inserts the sample organizations that are not stored yet and
// returns how many were added.
func Seed(ctx context.Context, repo organization.OrganizationRepository) (int, error) {
	added := 0
	for _, org := range Organizations() {
		_, err := repo.GetOrganizationByID(ctx, org.ID.String())
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return added, err
		}
		if err := repo.CreateOrganization(ctx, org); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
