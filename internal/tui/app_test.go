package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/pkg/client"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

func newTestApp() App {
	a := NewApp(nil, nil)
	a.width = 80
	a.height = 30
	return a
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewAccount},
		{"2", viewSubs},
		{"3", viewPayments},
		{"4", viewPlans},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			model, _ := newTestApp().Update(keyMsg(tc.key))
			a := model.(App)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
		})
	}
}

func TestAppTabSwitchLoadsView(t *testing.T) {
	fb := &fakeBackend{payments: okResult(`[]`)}
	a := NewApp(fb, nil)
	_, cmd := a.Update(keyMsg("3"))
	if cmd == nil {
		t.Fatal("expected load command when switching to payments")
	}
	if _, ok := cmd().(paymentsLoadedMsg); !ok {
		t.Error("expected paymentsLoadedMsg from load command")
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	_, cmd := newTestApp().Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppSessionExpiredQuits(t *testing.T) {
	a := newTestApp()
	err := failed(client.KindSessionExpired, 401, client.MsgSessionExpired).Err()
	model, cmd := a.Update(accountLoadedMsg{err: err})
	a = model.(App)
	if !a.SessionExpired() {
		t.Error("expected SessionExpired() after a 401")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppDomainErrorDoesNotQuit(t *testing.T) {
	a := newTestApp()
	err := failed(client.KindDomain, 500, "server down").Err()
	model, _ := a.Update(accountLoadedMsg{err: err})
	a = model.(App)
	if a.SessionExpired() {
		t.Error("domain failure must not flag session expiry")
	}
	if !strings.Contains(a.View(), "server down") {
		t.Error("expected error message in account view")
	}
}

func TestAppConfirmBlocksGlobalKeys(t *testing.T) {
	a := newTestApp()
	a.view = viewSubs
	a.subs.loading = false
	a.subs.subs = []domain.Subscription{{ID: "s1", Product: "clinix", Plan: "pro", Status: domain.SubscriptionActive}}

	model, _ := a.Update(keyMsg("x"))
	a = model.(App)
	if !a.subs.confirming {
		t.Fatal("expected confirm prompt after 'x'")
	}
	model, _ = a.Update(keyMsg("1"))
	a = model.(App)
	if a.view != viewSubs {
		t.Error("tab key should not switch view while confirming")
	}
	model, _ = a.Update(keyMsg("n"))
	a = model.(App)
	if a.subs.confirming {
		t.Error("expected 'n' to dismiss the confirm prompt")
	}
}

func TestAppSubscriptionsChangedReloads(t *testing.T) {
	fb := &fakeBackend{subs: okResult(`[]`), payments: okResult(`[]`)}
	a := NewApp(fb, nil)
	_, cmd := a.Update(subscriptionsChangedMsg{})
	if cmd == nil {
		t.Fatal("expected reload command")
	}
}

func TestAppWindowSizePropagates(t *testing.T) {
	model, _ := NewApp(nil, nil).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a := model.(App)
	if a.width != 100 || a.height != 40 {
		t.Errorf("app size = %dx%d", a.width, a.height)
	}
	if a.subs.height != 36 || a.plans.width != 100 {
		t.Errorf("body size not propagated: subs.height=%d plans.width=%d", a.subs.height, a.plans.width)
	}
}

func TestAppViewShowsTabsAndUser(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(accountLoadedMsg{user: &domain.User{Name: "Ada Lovelace", Email: "ada@example.com"}})
	a = model.(App)
	view := a.View()
	for _, want := range []string{"Account", "Subscriptions", "Payments", "Plans", "Ada Lovelace", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestAppShimmerTickAdvancesFrame(t *testing.T) {
	a := newTestApp()
	model, cmd := a.Update(shimmerTickMsg{})
	if model.(App).frame != 1 {
		t.Errorf("frame = %d, want 1", model.(App).frame)
	}
	if cmd == nil {
		t.Error("expected next tick command")
	}
}
