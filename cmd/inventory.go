package cmd

import (
	"fmt"
	"io"

	"github.com/ccoveille/go-safecast"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/storekeep/storekeep/internal/cache"
	"github.com/storekeep/storekeep/internal/database"
	"github.com/storekeep/storekeep/internal/inventory"
)

var inventoryCmdFlags struct {
	ID       int64
	Name     string
	Price    float64
	Quantity int64
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage the product inventory",
	Long:  `List, look up, add, update, sell and buy products in the inventario table.`,
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		items, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		count, err := safecast.Convert[int64](len(items))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-8s %-30s %14s %10s\n", "ID", "PRODUCT", "PRICE", "QUANTITY") //nolint:errcheck
		for _, item := range items {
			fmt.Fprintf(out, "%-8d %-30s %14s %10s\n", item.ID, item.Name, formatMoney(item.Price), humanize.Comma(item.Quantity)) //nolint:errcheck
		}
		fmt.Fprintf(out, "\n%s products\n", humanize.Comma(count)) //nolint:errcheck
		return nil
	}),
}

var inventoryGetCmd = &cobra.Command{
	Use:     "get",
	Short:   "Show a product by id or name",
	Example: "storekeep inventory get --id 3\n  storekeep inventory get --name cafe",
	Args:    cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		var (
			item *database.Product
			err  error
		)
		switch {
		case cmd.Flags().Changed("id"):
			item, err = svc.Get(cmd.Context(), inventoryCmdFlags.ID)
		case cmd.Flags().Changed("name"):
			item, err = svc.GetByName(cmd.Context(), inventoryCmdFlags.Name)
		default:
			return fmt.Errorf("either --id or --name is required")
		}
		if err != nil {
			return err
		}
		printProduct(cmd.OutOrStdout(), item)
		return nil
	}),
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		item := &database.Product{
			ID:       inventoryCmdFlags.ID,
			Name:     inventoryCmdFlags.Name,
			Price:    inventoryCmdFlags.Price,
			Quantity: inventoryCmdFlags.Quantity,
		}
		if err := svc.Add(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Product added.") //nolint:errcheck
		return nil
	}),
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name, price and quantity of a product",
	Args:  cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		item := &database.Product{
			ID:       inventoryCmdFlags.ID,
			Name:     inventoryCmdFlags.Name,
			Price:    inventoryCmdFlags.Price,
			Quantity: inventoryCmdFlags.Quantity,
		}
		if err := svc.Update(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Product updated.") //nolint:errcheck
		return nil
	}),
}

var inventorySellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Register a sale and take the units out of stock",
	Args:  cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		item, err := svc.Sell(cmd.Context(), inventoryCmdFlags.ID, inventoryCmdFlags.Quantity)
		if err != nil {
			return err
		}
		printProduct(cmd.OutOrStdout(), item)
		return nil
	}),
}

var inventoryBuyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Register a purchase and add the units to stock",
	Args:  cobra.NoArgs,
	RunE: withInventory(func(cmd *cobra.Command, svc *inventory.Service) error {
		item, err := svc.Buy(cmd.Context(), inventoryCmdFlags.ID, inventoryCmdFlags.Quantity)
		if err != nil {
			return err
		}
		printProduct(cmd.OutOrStdout(), item)
		return nil
	}),
}

func init() {
	inventoryGetCmd.Flags().Int64Var(&inventoryCmdFlags.ID, "id", 0, "Product id")
	inventoryGetCmd.Flags().StringVar(&inventoryCmdFlags.Name, "name", "", "Product name (case-insensitive)")
	inventoryGetCmd.MarkFlagsMutuallyExclusive("id", "name")

	for _, c := range []*cobra.Command{inventoryAddCmd, inventoryUpdateCmd} {
		c.Flags().Int64Var(&inventoryCmdFlags.ID, "id", 0, "Product id")
		c.Flags().StringVar(&inventoryCmdFlags.Name, "name", "", "Product name")
		c.Flags().Float64Var(&inventoryCmdFlags.Price, "price", 0, "Unit price")
		c.Flags().Int64Var(&inventoryCmdFlags.Quantity, "quantity", 0, "Units in stock")
		_ = c.MarkFlagRequired("id")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("price")
	}
	_ = inventoryUpdateCmd.MarkFlagRequired("quantity")

	for _, c := range []*cobra.Command{inventorySellCmd, inventoryBuyCmd} {
		c.Flags().Int64Var(&inventoryCmdFlags.ID, "id", 0, "Product id")
		c.Flags().Int64Var(&inventoryCmdFlags.Quantity, "quantity", 0, "Units")
		_ = c.MarkFlagRequired("id")
		_ = c.MarkFlagRequired("quantity")
	}

	inventoryCmd.AddCommand(
		inventoryListCmd,
		inventoryGetCmd,
		inventoryAddCmd,
		inventoryUpdateCmd,
		inventorySellCmd,
		inventoryBuyCmd,
	)
	rootCmd.AddCommand(inventoryCmd)
}

// withInventory opens the store and the inventory cache around fn.
func withInventory(fn func(cmd *cobra.Command, svc *inventory.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		if err := db.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd, inventory.New(db, cache.NewInventoryCache(cfg.Cache)))
	}
}

func printProduct(w io.Writer, item *database.Product) {
	fmt.Fprintf(w, "ID:       %d\n", item.ID)                       //nolint:errcheck
	fmt.Fprintf(w, "Product:  %s\n", item.Name)                     //nolint:errcheck
	fmt.Fprintf(w, "Price:    %s\n", formatMoney(item.Price))       //nolint:errcheck
	fmt.Fprintf(w, "Quantity: %s\n", humanize.Comma(item.Quantity)) //nolint:errcheck
}

func formatMoney(value float64) string {
	return "$" + humanize.FormatFloat("#,###.##", value)
}
