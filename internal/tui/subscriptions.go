package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

type subsLoadedMsg struct {
	subs []domain.Subscription
	err  error
}

func (m subsLoadedMsg) failure() error { return m.err }

type subActionMsg struct {
	id      string
	action  string // "cancel" or "reactivate"
	message string
	err     error
}

func (m subActionMsg) failure() error { return m.err }

type copyMsg struct {
	what string
	err  error
}

// writeClipboard is swapped in tests; headless CI has no clipboard.
var writeClipboard = clipboard.WriteAll

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyMsg{what: what, err: writeClipboard(text)}
	}
}

type subsModel struct {
	backend    Backend
	subs       []domain.Subscription
	cursor     int
	confirming bool // waiting for y/n on a cancel
	busy       bool
	loading    bool
	statusMsg  string
	err        string
	width      int
	height     int
}

func newSubsModel(b Backend) subsModel {
	return subsModel{backend: b, loading: true}
}

func (m subsModel) Init() tea.Cmd {
	b := m.backend
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		subs, err := decode[[]domain.Subscription](b.GetMySubscriptions(context.Background()))
		return subsLoadedMsg{subs: subs, err: err}
	}
}

func (m subsModel) selected() (domain.Subscription, bool) {
	if m.cursor < 0 || m.cursor >= len(m.subs) {
		return domain.Subscription{}, false
	}
	return m.subs[m.cursor], true
}

func (m subsModel) runAction(action, id string) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx := context.Background()
		res := b.CancelSubscription
		if action == "reactivate" {
			res = b.ReactivateSubscription
		}
		r := res(ctx, id)
		return subActionMsg{id: id, action: action, message: r.Message, err: r.Err()}
	}
}

func (m subsModel) Update(msg tea.Msg) (subsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case subsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.subs = msg.subs
		m.cursor = moveCursor(m.cursor, 0, len(m.subs))

	case subActionMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = errStyle.Render(msg.action + " failed: " + errText(msg.err))
			return m, nil
		}
		m.statusMsg = okStyle.Render(msg.message)
		return m, m.Init()

	case copyMsg:
		if msg.err != nil {
			m.statusMsg = errStyle.Render("copy failed: " + msg.err.Error())
		} else {
			m.statusMsg = okStyle.Render(msg.what + " copied")
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m subsModel) handleKey(msg tea.KeyMsg) (subsModel, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			if sub, ok := m.selected(); ok {
				m.busy = true
				m.statusMsg = dimStyle.Render("cancelling...")
				return m, m.runAction("cancel", sub.ID.String())
			}
		case "n", "esc":
			m.confirming = false
			m.statusMsg = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.cursor = moveCursor(m.cursor, 1, len(m.subs))
	case "k", "up":
		m.cursor = moveCursor(m.cursor, -1, len(m.subs))
	case "x":
		if sub, ok := m.selected(); ok && !m.busy {
			if !sub.Cancellable() {
				m.statusMsg = warnStyle.Render("subscription is not active")
				return m, nil
			}
			m.confirming = true
		}
	case "a":
		if sub, ok := m.selected(); ok && !m.busy {
			if !sub.Reactivatable() {
				m.statusMsg = warnStyle.Render("nothing to reactivate")
				return m, nil
			}
			m.busy = true
			m.statusMsg = dimStyle.Render("reactivating...")
			return m, m.runAction("reactivate", sub.ID.String())
		}
	case "c":
		if sub, ok := m.selected(); ok {
			return m, copyCmd("subscription id", sub.ID.String())
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m subsModel) helpKeys() string {
	if m.confirming {
		return helpLine([2]string{"y", "confirm cancel"}, [2]string{"n", "keep"})
	}
	return helpLine([2]string{"j/k", "nav"}, [2]string{"x", "cancel"}, [2]string{"a", "reactivate"},
		[2]string{"c", "copy id"}, [2]string{"r", "refresh"}, [2]string{"q", "quit"})
}

func (m subsModel) View() string {
	if m.loading && m.subs == nil {
		return "\n  " + dimStyle.Render("loading subscriptions...")
	}
	if m.err != "" {
		return "\n  " + errStyle.Render(m.err)
	}
	if len(m.subs) == 0 {
		return "\n  " + dimStyle.Render("no subscriptions yet. press 4 to browse plans")
	}

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render(
		padRight("PRODUCT", 12)+padRight("PLAN", 14)+padRight("CYCLE", 9)+padRight("STATUS", 12)+"RENEWS") + "\n")
	for i, s := range m.subs {
		status := s.Status
		if s.CancelAtPeriodEnd && s.Status == domain.SubscriptionActive {
			status = "ending"
		}
		line := ProductStyle(s.Product).Render(padRight(domain.ProductName(s.Product), 12)) +
			normalStyle.Render(padRight(s.Plan, 14)) +
			dimStyle.Render(padRight(s.BillingCycle, 9)) +
			StatusStyle(s.Status).Render(padRight(status, 12)) +
			metaStyle.Render(formatDate(s.CurrentPeriodEnd))
		if i == m.cursor {
			line = selectedRowBg.Render(accentStyle.Render("> ") + line)
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}

	if m.confirming {
		if sub, ok := m.selected(); ok {
			fmt.Fprintf(&b, "\n  %s", warnStyle.Render(fmt.Sprintf("cancel %s %s? (y/n)", domain.ProductName(sub.Product), sub.Plan)))
		}
	} else if m.statusMsg != "" {
		b.WriteString("\n  " + m.statusMsg)
	}
	return b.String()
}
