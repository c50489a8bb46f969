package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

const plansJSON = `[
	{"id":1,"product":"analyticsx","name":"Growth","monthlyPrice":29,"yearlyPrice":290,"currency":"USD","features":["10 dashboards"]},
	{"id":2,"product":"assistx","slug":"assist-pro","name":"Pro","monthlyPrice":59,"yearlyPrice":590}
]`

func loadedPlans(t *testing.T, fb *fakeBackend, open func(string) error) plansModel {
	t.Helper()
	fb.plans = okResult(plansJSON)
	m := newPlansModel(fb, open)
	m, _ = m.Update(m.Init()())
	if len(m.plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(m.plans))
	}
	return m
}

func TestPlansViewAndCycleToggle(t *testing.T) {
	m := loadedPlans(t, &fakeBackend{}, nil)
	view := m.View()
	if !strings.Contains(view, "29.00 USD") || !strings.Contains(view, "10 dashboards") {
		t.Errorf("monthly view missing price or features:\n%s", view)
	}
	m, _ = m.Update(keyMsg("b"))
	if m.cycle != domain.BillingYearly {
		t.Fatalf("cycle = %q, want yearly", m.cycle)
	}
	if !strings.Contains(m.View(), "290.00 USD") {
		t.Error("yearly view missing yearly price")
	}
}

func TestPlansCheckoutFlow(t *testing.T) {
	fb := &fakeBackend{
		order:   okResult(`{"orderId":"PAY-1","approvalUrl":"https://paypal.example/approve?token=PAY-1"}`),
		capture: okResult(`{"status":"COMPLETED"}`),
	}
	fb.capture.Message = "Payment captured"
	var opened string
	m := loadedPlans(t, fb, func(u string) error { opened = u; return nil })

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("b"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected create-order command")
	}
	m, _ = m.Update(cmd())
	if got := fb.calls[len(fb.calls)-1]; got != "order assistx assist-pro yearly" {
		t.Errorf("create order call = %q", got)
	}
	if opened != "https://paypal.example/approve?token=PAY-1" {
		t.Errorf("opened = %q", opened)
	}
	if m.order == nil || m.order.ID != "PAY-1" {
		t.Fatal("expected pending order PAY-1")
	}
	if !strings.Contains(m.View(), "pending order") {
		t.Error("expected pending order line")
	}

	m, cmd = m.Update(keyMsg("p"))
	if cmd == nil {
		t.Fatal("expected capture command")
	}
	m, next := m.Update(cmd())
	if got := fb.calls[len(fb.calls)-1]; got != "capture PAY-1" {
		t.Errorf("capture call = %q", got)
	}
	if m.order != nil {
		t.Error("expected order cleared after capture")
	}
	if next == nil {
		t.Fatal("expected subscriptions-changed notification")
	}
	if _, ok := next().(subscriptionsChangedMsg); !ok {
		t.Error("expected subscriptionsChangedMsg")
	}
}

func TestPlansOpenFailureShowsLink(t *testing.T) {
	fb := &fakeBackend{order: okResult(`{"orderId":"PAY-2","approvalUrl":"https://paypal.example/a"}`)}
	m := loadedPlans(t, fb, func(string) error { return errors.New("no browser") })
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	if !strings.Contains(m.statusMsg, "open https://paypal.example/a") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestPlansOrderWithoutID(t *testing.T) {
	fb := &fakeBackend{order: okResult(`{"status":"CREATED"}`)}
	m := loadedPlans(t, fb, nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	if m.order != nil {
		t.Error("order without id should not be pending")
	}
	if !strings.Contains(m.statusMsg, "no order id") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestPlansCaptureWithoutOrder(t *testing.T) {
	m := loadedPlans(t, &fakeBackend{}, nil)
	if _, cmd := m.Update(keyMsg("p")); cmd != nil {
		t.Error("capture without a pending order should be a no-op")
	}
}

func TestPlansEmpty(t *testing.T) {
	m := newPlansModel(nil, nil)
	m, _ = m.Update(plansLoadedMsg{})
	if !strings.Contains(m.View(), "no plans available") {
		t.Error("expected empty-state text")
	}
}
