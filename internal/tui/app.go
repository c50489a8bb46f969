// Package tui is the interactive account dashboard.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pioneersx/pioneersx/internal/browser"
	"github.com/pioneersx/pioneersx/pkg/client"
)

type view int

const (
	viewAccount view = iota
	viewSubs
	viewPayments
	viewPlans
)

// App is the root Bubbletea model.
type App struct {
	view     view
	account  accountModel
	subs     subsModel
	payments paymentsModel
	plans    plansModel
	expired  bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates the dashboard. open is used for checkout approval links
// and may be nil.
func NewApp(b Backend, open browser.Opener) App {
	return App{
		account:  newAccountModel(b),
		subs:     newSubsModel(b),
		payments: newPaymentsModel(b),
		plans:    newPlansModel(b, open),
	}
}

// SessionExpired reports whether the dashboard quit because the backend
// rejected the stored session.
func (a App) SessionExpired() bool { return a.expired }

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.account.Init(), a.subs.Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f, ok := msg.(failure); ok && client.IsKind(f.failure(), client.KindSessionExpired) {
		a.expired = true
		return a, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.account, _ = a.account.Update(bodyMsg)
		a.subs, _ = a.subs.Update(bodyMsg)
		a.payments, _ = a.payments.Update(bodyMsg)
		a.plans, _ = a.plans.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case subscriptionsChangedMsg:
		return a, tea.Batch(a.subs.Init(), a.payments.Init())

	case tea.KeyMsg:
		if !a.subs.confirming {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				return a.switchTo(viewAccount, a.account.Init)
			case "2":
				return a.switchTo(viewSubs, a.subs.Init)
			case "3":
				return a.switchTo(viewPayments, a.payments.Init)
			case "4":
				return a.switchTo(viewPlans, a.plans.Init)
			}
		}
		var cmd tea.Cmd
		switch a.view {
		case viewAccount:
			a.account, cmd = a.account.Update(msg)
		case viewSubs:
			a.subs, cmd = a.subs.Update(msg)
		case viewPayments:
			a.payments, cmd = a.payments.Update(msg)
		case viewPlans:
			a.plans, cmd = a.plans.Update(msg)
		}
		return a, cmd
	}

	// Result messages are routed to every tab; each ignores what isn't its own.
	var cmds [4]tea.Cmd
	a.account, cmds[0] = a.account.Update(msg)
	a.subs, cmds[1] = a.subs.Update(msg)
	a.payments, cmds[2] = a.payments.Update(msg)
	a.plans, cmds[3] = a.plans.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

func (a App) switchTo(v view, load func() tea.Cmd) (tea.Model, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	return a, load()
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo + "\n"
	if a.account.user != nil {
		who := metaStyle.Render(a.account.user.DisplayName())
		header += strings.Repeat(" ", max((a.width-lipgloss.Width(who))/2, 0)) + who
	}

	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Account", viewAccount},
		{"2", "Subscriptions", viewSubs},
		{"3", "Payments", viewPayments},
		{"4", "Plans", viewPlans},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewAccount:
		body = a.account.View()
		help = helpLine([2]string{"1-4", "tabs"}, [2]string{"r", "refresh"}, [2]string{"q", "quit"})
	case viewSubs:
		body = a.subs.View()
		help = a.subs.helpKeys()
	case viewPayments:
		body = a.payments.View()
		help = helpLine([2]string{"1-4", "tabs"}, [2]string{"j/k", "nav"}, [2]string{"c", "copy order id"}, [2]string{"r", "refresh"}, [2]string{"q", "quit"})
	case viewPlans:
		body = a.plans.View()
		help = a.plans.helpKeys()
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}
