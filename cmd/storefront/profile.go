package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecomsuite/storefront-client/internal/bootstrap"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the account profile",
	}
	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newChangePasswordCmd())
	cmd.AddCommand(newForgotPasswordCmd())
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			update := ports.ProfileUpdate{}
			update.FirstName, _ = cmd.Flags().GetString("first-name")
			update.LastName, _ = cmd.Flags().GetString("last-name")
			update.Email, _ = cmd.Flags().GetString("email")
			update.PhoneNumber, _ = cmd.Flags().GetString("phone")
			update.Street, _ = cmd.Flags().GetString("street")
			update.City, _ = cmd.Flags().GetString("city")
			update.PostalCode, _ = cmd.Flags().GetString("postal-code")
			update.CountryCode, _ = cmd.Flags().GetString("country")

			user, err := client.Profile.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", user.FullName())
			return nil
		}),
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("street", "", "Street")
	cmd.Flags().String("city", "", "City")
	cmd.Flags().String("postal-code", "", "Postal code")
	cmd.Flags().String("country", "", "Country code")
	return cmd
}

func newChangePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, _ []string) error {
			current, err := promptLine(cmd, "Current password: ")
			if err != nil {
				return err
			}
			next, err := promptLine(cmd, "New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptLine(cmd, "Confirm new password: ")
			if err != nil {
				return err
			}

			if err := client.Profile.ChangePassword(ctx, ports.PasswordChange{
				CurrentPassword:      current,
				Password:             next,
				PasswordConfirmation: confirm,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		}),
	}
}

func newForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Send a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, client *bootstrap.Client, cmd *cobra.Command, args []string) error {
			if err := client.Session.ForgotPassword(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset instructions sent to %s\n", args[0])
			return nil
		}),
	}
}
