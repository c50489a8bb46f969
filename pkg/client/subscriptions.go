package client

import (
	"context"
	"net/http"
	"net/url"
)

// GetSubscriptionPlans lists the plan catalogue.
func (c *Client) GetSubscriptionPlans(ctx context.Context) Result {
	return c.Execute(ctx, http.MethodGet, "/subscriptions/plans", nil, nil)
}

// GetMySubscriptions lists the caller's subscriptions.
func (c *Client) GetMySubscriptions(ctx context.Context) Result {
	return c.Execute(ctx, http.MethodGet, "/subscriptions/my", nil, nil)
}

// GetSubscription fetches one subscription.
func (c *Client) GetSubscription(ctx context.Context, id string) Result {
	return c.Execute(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(id), nil, nil)
}

// CancelSubscription cancels a subscription.
func (c *Client) CancelSubscription(ctx context.Context, id string) Result {
	return c.Execute(ctx, http.MethodPut, "/subscriptions/"+url.PathEscape(id)+"/cancel", nil, nil)
}

// ReactivateSubscription undoes a pending cancellation.
func (c *Client) ReactivateSubscription(ctx context.Context, id string) Result {
	return c.Execute(ctx, http.MethodPut, "/subscriptions/"+url.PathEscape(id)+"/reactivate", nil, nil)
}
