package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
)

// withClient loads config, assembles the client, restores persisted state,
// runs fn, and flushes pending mirror writes before exit.
func withClient(fn func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := bootstrap.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		logger := bootstrap.InitLogger(cfg.IsDev || verbose)

		client, err := bootstrap.NewClient(bootstrap.ClientOptions{
			Config: cfg,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.Warn("closing client failed", "error", cerr)
			}
		}()

		ctx := cmd.Context()
		if err := client.Restore(ctx); err != nil {
			return err
		}
		return fn(ctx, client, cmd, args)
	}
}

// promptLine reads one line from the command's stdin, for values not passed
// as flags.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
