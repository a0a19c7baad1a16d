package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// NewLoginCmd-style constructors, one per auth verb.

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and merge the local cart with the server-side one",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				var err error
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			sess, err := client.Session.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", sess.User.FullName())
			return nil
		}),
	}
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			if err := client.Session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		}),
	}
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				var err error
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			sess, err := client.Session.Register(ctx, ports.RegisterInput{
				FirstName:            first,
				LastName:             last,
				Email:                args[0],
				Password:             password,
				PasswordConfirmation: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", sess.User.FullName())
			return nil
		}),
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withClient(func(_ context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			user, ok := client.Session.CurrentUser()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.FullName(), user.Email, user.Role)
			return nil
		}),
	}
}
