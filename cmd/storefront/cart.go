package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
)

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(newCartShowCmd())
	cmd.AddCommand(newCartAddCmd())
	cmd.AddCommand(newCartSetCmd())
	cmd.AddCommand(newCartRemoveCmd())
	cmd.AddCommand(newCartClearCmd())
	cmd.AddCommand(newCartSyncCmd())
	return cmd
}

func newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		Args:  cobra.NoArgs,
		RunE: withClient(func(_ context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			items := client.Cart.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Subtotal())
			}
			fmt.Fprintf(w, "\t\t%d\t\t%s\n", client.Cart.Count(), client.Cart.Total())
			return w.Flush()
		}),
	}
}

func newCartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			product, err := client.Catalog.Get(ctx, id)
			if err != nil {
				return err
			}

			client.Cart.AddToCart(ctx, product)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d items in cart)\n", product.Name, client.Cart.Count())
			return nil
		}),
	}
}

func newCartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			client.Cart.UpdateQuantity(ctx, id, qty)
			fmt.Fprintf(cmd.OutOrStdout(), "%d items in cart\n", client.Cart.Count())
			return nil
		}),
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			client.Cart.RemoveFromCart(ctx, id)
			fmt.Fprintf(cmd.OutOrStdout(), "%d items in cart\n", client.Cart.Count())
			return nil
		}),
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			client.Cart.ClearCart(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
			return nil
		}),
	}
}

func newCartSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Merge the local cart with the server-side one now",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			if !client.Session.IsAuthenticated() {
				return fmt.Errorf("sign in first")
			}
			if err := client.Cart.SyncWithBackend(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart synced (%d items)\n", client.Cart.Count())
			return nil
		}),
	}
}
