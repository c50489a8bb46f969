package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pioneersx/pioneersx/pkg/client"
)

// fakeBackend serves canned results and records the calls made.
type fakeBackend struct {
	me, subs, payments, plans client.Result
	cancel, reactivate        client.Result
	order, capture            client.Result
	calls                     []string
}

func okResult(data string) client.Result {
	return client.Result{Success: true, Data: json.RawMessage(data), Message: client.MsgSuccess, Kind: client.KindOK}
}

func failed(kind client.Kind, status int, msg string) client.Result {
	return client.Result{Message: msg, Kind: kind, Status: status}
}

func (f *fakeBackend) GetMe(context.Context) client.Result {
	f.calls = append(f.calls, "me")
	return f.me
}

func (f *fakeBackend) GetMySubscriptions(context.Context) client.Result {
	f.calls = append(f.calls, "subs")
	return f.subs
}

func (f *fakeBackend) CancelSubscription(_ context.Context, id string) client.Result {
	f.calls = append(f.calls, "cancel "+id)
	return f.cancel
}

func (f *fakeBackend) ReactivateSubscription(_ context.Context, id string) client.Result {
	f.calls = append(f.calls, "reactivate "+id)
	return f.reactivate
}

func (f *fakeBackend) GetPaymentHistory(context.Context) client.Result {
	f.calls = append(f.calls, "payments")
	return f.payments
}

func (f *fakeBackend) GetSubscriptionPlans(context.Context) client.Result {
	f.calls = append(f.calls, "plans")
	return f.plans
}

func (f *fakeBackend) CreateOrder(_ context.Context, product, plan, cycle string) client.Result {
	f.calls = append(f.calls, "order "+product+" "+plan+" "+cycle)
	return f.order
}

func (f *fakeBackend) CaptureOrder(_ context.Context, orderID string) client.Result {
	f.calls = append(f.calls, "capture "+orderID)
	return f.capture
}

func TestDecodeToleratesEmptyData(t *testing.T) {
	subs, err := decode[[]int](okResult("null"))
	if err != nil {
		t.Fatalf("decode null: %v", err)
	}
	if subs != nil {
		t.Errorf("expected nil slice, got %v", subs)
	}

	_, err = decode[[]int](failed(client.KindDomain, 500, "boom"))
	if err == nil {
		t.Fatal("expected error for failed result")
	}
	if got := errText(err); got != "boom" {
		t.Errorf("errText = %q, want %q", got, "boom")
	}
}

func TestErrTextPlainError(t *testing.T) {
	if got := errText(errors.New("plain")); got != "plain" {
		t.Errorf("errText = %q", got)
	}
}
