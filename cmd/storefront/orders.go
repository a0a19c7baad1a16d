package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart contents",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			if !client.Session.IsAuthenticated() {
				return fmt.Errorf("sign in first")
			}

			req := ports.OrderRequest{}
			req.ShippingStreet, _ = cmd.Flags().GetString("street")
			req.ShippingCity, _ = cmd.Flags().GetString("city")
			req.ShippingState, _ = cmd.Flags().GetString("state")
			req.ShippingPostal, _ = cmd.Flags().GetString("postal-code")
			req.ShippingCountry, _ = cmd.Flags().GetString("country")

			order, err := client.Cart.Checkout(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d placed, total %s\n", order.ID, order.Total)
			return nil
		}),
	}
	cmd.Flags().String("street", "", "Shipping street")
	cmd.Flags().String("city", "", "Shipping city")
	cmd.Flags().String("state", "", "Shipping state")
	cmd.Flags().String("postal-code", "", "Shipping postal code")
	cmd.Flags().String("country", "", "Shipping country code")
	return cmd
}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List past orders",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			orders, err := client.Orders.List(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
			for _, o := range orders {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			order, err := client.Orders.Get(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order #%d  %s  %s\n", order.ID, order.Status, order.Total)
			for _, it := range order.Items {
				fmt.Fprintf(out, "  %dx %s @ %s\n", it.Quantity, it.Name, it.UnitPrice)
			}
			return nil
		}),
	})
	return cmd
}
