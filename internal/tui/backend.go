package tui

import (
	"context"
	"errors"

	"github.com/pioneersx/pioneersx/pkg/client"
)

// Backend is the part of the API client the dashboard drives.
type Backend interface {
	GetMe(ctx context.Context) client.Result
	GetMySubscriptions(ctx context.Context) client.Result
	CancelSubscription(ctx context.Context, id string) client.Result
	ReactivateSubscription(ctx context.Context, id string) client.Result
	GetPaymentHistory(ctx context.Context) client.Result
	GetSubscriptionPlans(ctx context.Context) client.Result
	CreateOrder(ctx context.Context, product, plan, billingCycle string) client.Result
	CaptureOrder(ctx context.Context, orderID string) client.Result
}

var _ Backend = (*client.Client)(nil)

// failure is implemented by every message that carries a backend error,
// letting the root model react to session expiry in one place.
type failure interface {
	failure() error
}

// decode turns a Result into a typed value. An empty data block decodes to
// the zero value so empty lists render as empty rather than as errors.
func decode[T any](res client.Result) (T, error) {
	var v T
	if err := res.Decode(&v); err != nil && !errors.Is(err, client.ErrNoData) {
		return v, err
	}
	return v, nil
}

// errText renders a backend error for the status line.
func errText(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
