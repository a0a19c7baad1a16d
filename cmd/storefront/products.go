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

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
	}
	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(newProductsSearchCmd())
	cmd.AddCommand(newProductsShowCmd())
	return cmd
}

func newProductsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			products, err := client.Catalog.List(ctx)
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		}),
	}
}

func newProductsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			products, err := client.Catalog.Search(ctx, args[0])
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		}),
	}
}

func newProductsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", product.Name, product.ID)
			fmt.Fprintf(out, "Price: %s  Stock: %d\n", product.Price, product.Stock)
			if product.Description != "" {
				fmt.Fprintln(out, product.Description)
			}
			return nil
		}),
	}
}

func printProducts(cmd *cobra.Command, products []ports.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, p.Price, p.Stock)
	}
	_ = w.Flush()
}
