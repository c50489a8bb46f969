package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pioneersx/pioneersx/pkg/client"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			var err error
			if email, err = c.valueOr(email, "Email: ", false); err != nil {
				return err
			}
			if password, err = c.valueOr(password, "Password: ", true); err != nil {
				return err
			}
			res := api.Login(ctx, email, password)
			return c.emit(res, func() error {
				return c.printAuth(res, "Signed in as ")
			})
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var req domain.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			var err error
			if req.Name, err = c.valueOr(req.Name, "Name: ", false); err != nil {
				return err
			}
			if req.Email, err = c.valueOr(req.Email, "Email: ", false); err != nil {
				return err
			}
			if req.Password, err = c.valueOr(req.Password, "Password: ", true); err != nil {
				return err
			}
			res := api.Register(ctx, req)
			return c.emit(res, func() error {
				return c.printAuth(res, "Account created for ")
			})
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Company, "company", "", "Company name")
	return cmd
}

func (c *cli) printAuth(res client.Result, prefix string) error {
	var payload domain.AuthPayload
	if err := res.Decode(&payload); err != nil || payload.User == nil {
		printOK(c.out, res.Message)
		return nil
	}
	printOK(c.out, prefix+payload.User.DisplayName())
	return nil
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			// A token without a profile is still a session; clear regardless.
			tok, tokErr := api.Token(ctx)
			if err := api.Logout(ctx); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			if tokErr == nil && tok == "" {
				fmt.Fprintln(c.out, "Already signed out.")
				return nil
			}
			printOK(c.out, "Signed out.")
			return nil
		}),
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			if cached {
				user, err := api.CurrentUser(ctx)
				if err != nil {
					return fmt.Errorf("whoami: %w", err)
				}
				if user == nil {
					printSignedOut(c.out)
					return nil
				}
				printUser(c.out, user)
				return nil
			}
			res := api.GetMe(ctx)
			return c.emit(res, func() error {
				var u domain.User
				if err := res.Decode(&u); err != nil {
					return err
				}
				printUser(c.out, &u)
				return nil
			})
		}),
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "Show the stored profile without calling the backend")
	return cmd
}

func (c *cli) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Email a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			return c.emit(api.ForgotPassword(ctx, args[0]), nil)
		}),
	}
}

func (c *cli) resetPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			var err error
			if password, err = c.valueOr(password, "New password: ", true); err != nil {
				return err
			}
			return c.emit(api.ResetPassword(ctx, args[0], password), nil)
		}),
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (prompted when omitted)")
	return cmd
}

func (c *cli) verifyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email <token>",
		Short: "Confirm an email address",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			return c.emit(api.VerifyEmail(ctx, args[0]), nil)
		}),
	}
}
