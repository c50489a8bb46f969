package domain

import "time"

// OrderRequest is the payload for /payments/create-order.
type OrderRequest struct {
	Product      string `json:"product"`
	Plan         string `json:"plan"`
	BillingCycle string `json:"billingCycle"`
}

// CaptureRequest is the payload for /payments/capture-order.
type CaptureRequest struct {
	OrderID string `json:"orderId"`
}

// Order is a pending PayPal order. ApprovalURL is where the buyer approves it.
type Order struct {
	ID          string `json:"orderId"`
	Status      string `json:"status,omitempty"`
	ApprovalURL string `json:"approvalUrl,omitempty"`
}

// Payment is one entry of the payment history.
type Payment struct {
	ID           FlexibleID `json:"id"`
	OrderID      string     `json:"orderId"`
	Product      string     `json:"product"`
	Plan         string     `json:"plan"`
	BillingCycle string     `json:"billingCycle"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}
