package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
)

// watch keeps the process alive so the background token verification loop
// can run, for embedders that use the CLI as a long-lived session holder.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay running and revalidate the session periodically",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			if !client.Session.IsAuthenticated() {
				return fmt.Errorf("sign in first")
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), "Watching session; Ctrl-C to stop")
			return client.Run(ctx)
		}),
	}
}
