package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pioneersx/pioneersx/pkg/client"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var update domain.ProfileUpdate
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Change name, phone or company",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			if update.Empty() {
				return errors.New("nothing to update: pass --name, --phone or --company")
			}
			res := api.UpdateProfile(ctx, update)
			return c.emit(res, func() error {
				printOK(c.out, res.Message)
				var u domain.User
				if err := res.Decode(&u); err == nil {
					printUser(c.out, &u)
				}
				return nil
			})
		}),
	}
	updateCmd.Flags().StringVar(&update.Name, "name", "", "Full name")
	updateCmd.Flags().StringVar(&update.Phone, "phone", "", "Phone number")
	updateCmd.Flags().StringVar(&update.Company, "company", "", "Company name")

	cmd.AddCommand(updateCmd)
	return cmd
}

func (c *cli) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage your password",
	}

	var change domain.PasswordChange
	changeCmd := &cobra.Command{
		Use:   "change",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			var err error
			if change.CurrentPassword, err = c.valueOr(change.CurrentPassword, "Current password: ", true); err != nil {
				return err
			}
			if change.NewPassword, err = c.valueOr(change.NewPassword, "New password: ", true); err != nil {
				return err
			}
			return c.emit(api.ChangePassword(ctx, change), nil)
		}),
	}
	changeCmd.Flags().StringVar(&change.CurrentPassword, "current", "", "Current password (prompted when omitted)")
	changeCmd.Flags().StringVar(&change.NewPassword, "new", "", "New password (prompted when omitted)")

	cmd.AddCommand(changeCmd)
	return cmd
}
