package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pioneersx/pioneersx/pkg/client"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

func productList() string {
	ids := make([]string, 0, len(domain.Products))
	for id := range domain.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}

func (c *cli) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create and capture PayPal orders",
	}

	var cycle string
	var open bool
	createCmd := &cobra.Command{
		Use:   "create <product> <plan>",
		Short: "Start a checkout for a plan",
		Long:  "Start a checkout for a plan. Products: " + productList() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			product, plan := strings.ToLower(args[0]), args[1]
			if !domain.ValidProduct(product) {
				return fmt.Errorf("unknown product %q (want one of %s)", product, productList())
			}
			if !domain.ValidBillingCycle(cycle) {
				return fmt.Errorf("unknown billing cycle %q (want monthly or yearly)", cycle)
			}
			res := api.CreateOrder(ctx, product, plan, cycle)
			return c.emit(res, func() error {
				var order domain.Order
				if err := res.Decode(&order); err != nil {
					return err
				}
				printOK(c.out, "Order "+order.ID+" created")
				if order.ApprovalURL == "" {
					return nil
				}
				if open {
					if err := c.open(order.ApprovalURL); err == nil {
						fmt.Fprintln(c.out, hintStyle.Render("Approve the payment in your browser."))
					} else {
						fmt.Fprintf(c.out, "Could not open browser. Visit this URL manually:\n  %s\n", order.ApprovalURL)
					}
				} else {
					fmt.Fprintf(c.out, "Approve the payment at:\n  %s\n", order.ApprovalURL)
				}
				fmt.Fprintln(c.out, hintStyle.Render("Then run: pioneersx order capture "+order.ID))
				return nil
			})
		}),
	}
	createCmd.Flags().StringVarP(&cycle, "cycle", "c", domain.BillingMonthly, "Billing cycle: monthly or yearly")
	createCmd.Flags().BoolVar(&open, "open", false, "Open the PayPal approval link in the browser")

	captureCmd := &cobra.Command{
		Use:   "capture <order-id>",
		Short: "Capture an approved order",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			return c.emit(api.CaptureOrder(ctx, args[0]), nil)
		}),
	}

	cmd.AddCommand(createCmd, captureCmd)
	return cmd
}

func (c *cli) paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "Show your payment history",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			res := api.GetPaymentHistory(ctx)
			return c.emit(res, func() error {
				var payments []domain.Payment
				if err := decodeList(res, &payments); err != nil {
					return err
				}
				printPayments(c.out, payments)
				return nil
			})
		}),
	}
}

func (c *cli) plansCmd() *cobra.Command {
	var cycle, product string
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			if !domain.ValidBillingCycle(cycle) {
				return fmt.Errorf("unknown billing cycle %q (want monthly or yearly)", cycle)
			}
			res := api.GetSubscriptionPlans(ctx)
			return c.emit(res, func() error {
				var plans []domain.Plan
				if err := decodeList(res, &plans); err != nil {
					return err
				}
				if product != "" {
					filtered := plans[:0]
					for _, p := range plans {
						if strings.EqualFold(p.Product, product) {
							filtered = append(filtered, p)
						}
					}
					plans = filtered
				}
				printPlans(c.out, plans, cycle)
				return nil
			})
		}),
	}
	cmd.Flags().StringVarP(&cycle, "cycle", "c", domain.BillingMonthly, "Show prices for monthly or yearly billing")
	cmd.Flags().StringVar(&product, "product", "", "Only show plans for one product")
	return cmd
}

func (c *cli) subsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subs",
		Aliases: []string{"subscriptions"},
		Short:   "Manage your subscriptions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your subscriptions",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			res := api.GetMySubscriptions(ctx)
			return c.emit(res, func() error {
				var subs []domain.Subscription
				if err := decodeList(res, &subs); err != nil {
					return err
				}
				printSubscriptions(c.out, subs)
				return nil
			})
		}),
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			res := api.GetSubscription(ctx, args[0])
			return c.emit(res, func() error {
				var sub domain.Subscription
				if err := res.Decode(&sub); err != nil {
					return err
				}
				printSubscription(c.out, sub)
				return nil
			})
		}),
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription at the end of its period",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			return c.emit(api.CancelSubscription(ctx, args[0]), nil)
		}),
	}

	reactivateCmd := &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Undo a pending cancellation",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, api *client.Client, args []string) error {
			return c.emit(api.ReactivateSubscription(ctx, args[0]), nil)
		}),
	}

	cmd.AddCommand(listCmd, getCmd, cancelCmd, reactivateCmd)
	return cmd
}

// decodeList decodes a list result, treating an empty data block as an
// empty list.
func decodeList(res client.Result, v any) error {
	if err := res.Decode(v); err != nil && !errors.Is(err, client.ErrNoData) {
		return err
	}
	return nil
}
