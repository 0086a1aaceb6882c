package cli

import (
	"context"

	"food-donation-tracker/internal/client"
	"food-donation-tracker/pkg/expiry"
)

func dashboardCmd(s *state) *Command {
	return &Command{
		Usage: "dashboard",
		Short: "Summary of donations, nearby organizations and expiring food",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}
			return printDashboard(o, c)
		},
	}
}

func printDashboard(o *IO, c *client.Client) error {
	dash, err := c.Dashboard()
	if err != nil {
		return err
	}

	if dash.Statistics != nil {
		printStatistics(o, dash.Statistics)
	}

	o.Println()
	o.Println("Recent donations:")
	if len(dash.RecentDonations) == 0 {
		o.Println("  none yet")
	}
	for _, d := range dash.RecentDonations {
		o.Printf("  %s  %s to %s (%s)\n", d.DonationDate.Format(expiry.DateLayout), d.Name, d.OrganizationName, d.StatusLabel)
	}

	o.Println()
	o.Println("Nearby organizations:")
	for _, org := range dash.NearbyOrganizations {
		o.Printf("  %s (%s)\n", org.Name, formatDistance(org.Distance))
	}

	o.Println()
	printExpiry(o, dash.Expiry)
	return nil
}
