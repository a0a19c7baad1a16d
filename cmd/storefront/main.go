package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Headless storefront client",
		Long: "storefront drives an e-commerce REST API from the terminal: sign in,\n" +
			"browse the catalog, manage a cart that survives sign-outs and merges\n" +
			"with the server-side one on sign-in, and place orders.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Path to a YAML config file (env vars win)")
	root.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("storefront version %s\n", version))

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newProductsCmd())
	root.AddCommand(newCartCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newOrdersCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newWatchCmd())

	return root
}
