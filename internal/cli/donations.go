package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/pkg/expiry"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
)

func donationsListCmd(s *state) *Command {
	fs := flag.NewFlagSet("donations", flag.ContinueOnError)
	query := fs.StringP("query", "q", "", "search name, organization and description")
	status := fs.String("status", "all", "filter by status: all, "+statusKeys())
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "donations per page")

	return &Command{
		Flags: fs,
		Usage: "donations list [flags]",
		Short: "List your donations",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			list, err := c.ListDonations(domain.ListDonationsRequest{
				Query:  *query,
				Status: *status,
				Page:   *page,
				Limit:  *limit,
			})
			if err != nil {
				return err
			}

			if len(list.Donations) == 0 {
				o.Println("No donations found")
				return nil
			}

			rows := make([][]string, 0, len(list.Donations))
			for _, d := range list.Donations {
				rows = append(rows, []string{
					d.ID,
					d.Name,
					d.Quantity.String() + " " + d.Unit,
					d.OrganizationName,
					d.StatusLabel,
					d.DonationDate.Format(expiry.DateLayout),
				})
			}
			o.Table([]string{"id", "name", "quantity", "organization", "status", "date"}, rows)
			printPagination(o, list.Pagination)
			return nil
		},
	}
}

func donationsAddCmd(s *state) *Command {
	fs := flag.NewFlagSet("donations add", flag.ContinueOnError)
	name := fs.StringP("name", "n", "", "what you are donating")
	quantity := fs.String("quantity", "", "amount, e.g. 5 or 2.5")
	unit := fs.String("unit", "items", "kg, liters, servings, items, packages, loaves or cans")
	org := fs.StringP("org", "o", "", "organization id or exact name")
	date := fs.String("date", "", "donation date YYYY-MM-DD (default today)")
	description := fs.String("description", "", "optional description")
	notes := fs.String("notes", "", "optional notes")

	return &Command{
		Flags: fs,
		Usage: "donations add -n <name> --quantity <n> -o <org>",
		Short: "Record a new donation",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			orgID, err := s.resolveOrganization(*org)
			if err != nil {
				return err
			}

			donationDate := *date
			if donationDate == "" {
				donationDate = time.Now().Format(expiry.DateLayout)
			}

			d, err := c.CreateDonation(domain.DonationRequest{
				Name:           *name,
				Description:    *description,
				Quantity:       *quantity,
				Unit:           *unit,
				OrganizationID: orgID,
				DonationDate:   donationDate,
				Notes:          *notes,
			})
			if err != nil {
				return err
			}

			o.Printf("Donation %s to %s recorded (%s)\n", d.ID, d.OrganizationName, d.StatusLabel)
			return nil
		},
	}
}

func donationsStatusCmd(s *state) *Command {
	return &Command{
		Usage: "donations status <id> <status>",
		Short: "Move a donation to a new status",
		Long:  "Move a donation to a new status. Valid statuses: " + statusKeys() + ".",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return errors.New("expected <id> <status>")
			}
			status, err := domain.ParseDonationStatus(args[1])
			if err != nil {
				return fmt.Errorf("%w, expected one of %s", err, statusKeys())
			}

			c, err := s.authedClient()
			if err != nil {
				return err
			}

			d, err := c.UpdateDonationStatus(args[0], string(status))
			if err != nil {
				return err
			}

			o.Printf("%s is now %s\n", d.Name, d.StatusLabel)
			return nil
		},
	}
}

func donationsStatsCmd(s *state) *Command {
	return &Command{
		Usage: "donations stats",
		Short: "Show donation totals and estimated impact",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			stats, err := c.DonationStatistics()
			if err != nil {
				return err
			}
			printStatistics(o, stats)
			return nil
		},
	}
}

func printStatistics(o *IO, stats *domain.DonationStatistics) {
	o.Printf("Donations:            %d (%d completed, %d pending)\n", stats.TotalDonations, stats.CompletedDonations, stats.PendingDonations)
	o.Printf("Items donated:        %d\n", stats.TotalItemsDonated)
	o.Printf("Organizations helped: %d\n", stats.OrganizationsHelped)
	o.Printf("Food waste saved:     %.2f kg\n", stats.FoodWasteSaved)
	o.Printf("CO2 reduced:          %.2f kg\n", stats.EstimatedCO2Reduced)
	o.Println(stats.EstimatedImpact)
}

// resolveOrganization accepts an id or a case-insensitive exact name.
func (s *state) resolveOrganization(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("--org is required")
	}
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}

	c, err := s.authedClient()
	if err != nil {
		return "", err
	}
	orgs, err := c.ListOrganizations(domain.ListOrganizationsRequest{Query: ref})
	if err != nil {
		return "", err
	}
	for _, org := range orgs {
		if strings.EqualFold(org.Name, ref) {
			return org.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrOrganizationNotFound, ref)
}

func printPagination(o *IO, p domain.Pagination) {
	if p.TotalPages > 1 {
		o.Printf("\npage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
}

func statusKeys() string {
	statuses := domain.DonationStatuses()
	keys := make([]string, 0, len(statuses))
	for _, st := range statuses {
		keys = append(keys, string(st))
	}
	return strings.Join(keys, ", ")
}
