package cli

import (
	"context"
	"strings"

	"food-donation-tracker/domain"

	flag "github.com/spf13/pflag"
)

func orgsCmd(s *state) *Command {
	fs := flag.NewFlagSet("orgs", flag.ContinueOnError)
	query := fs.StringP("query", "q", "", "search name, address and needs")
	need := fs.String("need", "all", "only organizations that need this")
	maxDistance := fs.Float64("max-distance", domain.DefaultMaxDistanceKm, "maximum distance in km")

	return &Command{
		Flags: fs,
		Usage: "orgs [flags]",
		Short: "Find nearby organizations, nearest first",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			orgs, err := c.ListOrganizations(domain.ListOrganizationsRequest{
				Query:       *query,
				Need:        *need,
				MaxDistance: maxDistance,
			})
			if err != nil {
				return err
			}

			if len(orgs) == 0 {
				o.Println("No organizations found")
				return nil
			}
			printOrganizations(o, orgs)
			return nil
		},
	}
}

func printOrganizations(o *IO, orgs []*domain.Organization) {
	rows := make([][]string, 0, len(orgs))
	for _, org := range orgs {
		rows = append(rows, []string{
			org.Name,
			formatDistance(org.Distance),
			strings.Join(org.Needs, ", "),
			org.Hours,
			org.ID,
		})
	}
	o.Table([]string{"name", "distance", "needs", "hours", "id"}, rows)
}
