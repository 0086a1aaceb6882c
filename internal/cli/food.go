package cli

import (
	"context"
	"fmt"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/pkg/expiry"

	flag "github.com/spf13/pflag"
)

func foodListCmd(s *state) *Command {
	fs := flag.NewFlagSet("food", flag.ContinueOnError)
	query := fs.StringP("query", "q", "", "search name, notes and category")
	category := fs.String("category", "all", "filter by category: all, "+categoryKeys())
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "items per page")

	return &Command{
		Flags: fs,
		Usage: "food list [flags]",
		Short: "List your food log, soonest expiry first",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			list, err := c.ListFoodItems(domain.ListFoodItemsRequest{
				Query:    *query,
				Category: *category,
				Page:     *page,
				Limit:    *limit,
			})
			if err != nil {
				return err
			}

			if len(list.Items) == 0 {
				o.Println("No food items found")
				return nil
			}
			printFoodItems(o, list.Items)
			printPagination(o, list.Pagination)
			return nil
		},
	}
}

func foodAddCmd(s *state) *Command {
	fs := flag.NewFlagSet("food add", flag.ContinueOnError)
	name := fs.StringP("name", "n", "", "item name")
	category := fs.String("category", "", categoryKeys())
	quantity := fs.String("quantity", "", "amount, e.g. 2 or 0.5")
	unit := fs.String("unit", "items", "kg, liters, servings, items, packages or loaves")
	expires := fs.String("expires", "", "expiry date YYYY-MM-DD")
	notes := fs.String("notes", "", "optional notes")

	return &Command{
		Flags: fs,
		Usage: "food add -n <name> --category <c> --expires <date>",
		Short: "Add an item to your food log",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			item, err := c.AddFoodItem(domain.AddFoodItemRequest{
				Name:       *name,
				Category:   *category,
				Quantity:   *quantity,
				Unit:       *unit,
				ExpiryDate: *expires,
				Notes:      *notes,
			})
			if err != nil {
				return err
			}

			o.Printf("Added %s (%s): %s\n", item.Name, item.CategoryName, item.Expiry.Label)
			return nil
		},
	}
}

func foodExpiringCmd(s *state) *Command {
	return &Command{
		Usage: "food expiring",
		Short: "Show items that expire within three days",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			overview, err := c.ExpiryOverview()
			if err != nil {
				return err
			}
			printExpiry(o, overview)
			return nil
		},
	}
}

func printFoodItems(o *IO, items []*domain.FoodItemResponse) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			item.CategoryName,
			item.Quantity.String() + " " + item.Unit,
			item.ExpiryDate.Format(expiry.DateLayout),
			item.Expiry.Label,
		})
	}
	o.Table([]string{"name", "category", "quantity", "expires", "status"}, rows)
}

func printExpiry(o *IO, overview *domain.ExpiryOverview) {
	if overview == nil {
		return
	}
	o.Printf("Food log: %d items (%d expired, %d tomorrow, %d soon, %d fine)\n",
		overview.TotalItems, overview.Expired, overview.ExpiresTomorrow, overview.ExpiresSoon, overview.Normal)
	if len(overview.ExpiringItems) == 0 {
		o.Println("Nothing expires in the next three days")
		return
	}
	o.Println()
	printFoodItems(o, overview.ExpiringItems)
}

func categoryKeys() string {
	categories := domain.FoodCategories()
	keys := make([]string, 0, len(categories))
	for _, c := range categories {
		keys = append(keys, c.ID)
	}
	return strings.Join(keys, ", ")
}

func formatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}
