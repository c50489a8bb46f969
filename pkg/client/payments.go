package client

import (
	"context"
	"net/http"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

// CreateOrder opens a PayPal order for a product plan.
func (c *Client) CreateOrder(ctx context.Context, product, plan, billingCycle string) Result {
	req := domain.OrderRequest{Product: product, Plan: plan, BillingCycle: billingCycle}
	return c.Execute(ctx, http.MethodPost, "/payments/create-order", req, nil)
}

// CaptureOrder captures an approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) Result {
	return c.Execute(ctx, http.MethodPost, "/payments/capture-order", domain.CaptureRequest{OrderID: orderID}, nil)
}

// GetPaymentHistory lists the caller's payments.
func (c *Client) GetPaymentHistory(ctx context.Context) Result {
	return c.Execute(ctx, http.MethodGet, "/payments/history", nil, nil)
}
