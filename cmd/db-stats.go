package cmd

import (
	"fmt"

	"github.com/ccoveille/go-safecast"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/storekeep/storekeep/internal/database"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display statistics about users and the product inventory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		if err := db.EnsureSchema(cmd.Context()); err != nil {
			return err
		}

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}
		admins, err := db.CountAdmins(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}
		items, err := db.ListInventory(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}
		itemCount, err := safecast.Convert[int64](len(items))
		if err != nil {
			return err
		}

		units := lo.SumBy(items, func(item database.Product) int64 { return item.Quantity })
		value := lo.SumBy(items, func(item database.Product) float64 {
			return item.Price * float64(item.Quantity)
		})

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Database Statistics:")                       //nolint:errcheck
		fmt.Fprintf(out, "Users: %s\n", humanize.Comma(users))          //nolint:errcheck
		fmt.Fprintf(out, "Admins: %s\n", humanize.Comma(admins))        //nolint:errcheck
		fmt.Fprintf(out, "Products: %s\n", humanize.Comma(itemCount))   //nolint:errcheck
		fmt.Fprintf(out, "Units in Stock: %s\n", humanize.Comma(units)) //nolint:errcheck
		fmt.Fprintf(out, "Total Stock Value: %s\n", formatMoney(value)) //nolint:errcheck

		outOfStock := lo.Filter(items, func(item database.Product, _ int) bool { return item.Quantity == 0 })
		if len(outOfStock) > 0 {
			fmt.Fprintln(out, "\nOut of Stock:") //nolint:errcheck
			for _, item := range outOfStock {
				fmt.Fprintf(out, "  ID: %d, Product: %s\n", item.ID, item.Name) //nolint:errcheck
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
