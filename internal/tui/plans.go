package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/internal/browser"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

type plansLoadedMsg struct {
	plans []domain.Plan
	err   error
}

func (m plansLoadedMsg) failure() error { return m.err }

type orderCreatedMsg struct {
	order *domain.Order
	err   error
}

func (m orderCreatedMsg) failure() error { return m.err }

type orderCapturedMsg struct {
	message string
	err     error
}

func (m orderCapturedMsg) failure() error { return m.err }

// subscriptionsChangedMsg tells the other tabs a purchase went through.
type subscriptionsChangedMsg struct{}

type plansModel struct {
	backend   Backend
	open      browser.Opener
	plans     []domain.Plan
	cursor    int
	cycle     string
	order     *domain.Order // pending checkout
	busy      bool
	loading   bool
	statusMsg string
	err       string
	width     int
	height    int
}

func newPlansModel(b Backend, open browser.Opener) plansModel {
	return plansModel{backend: b, open: open, cycle: domain.BillingMonthly, loading: true}
}

func (m plansModel) Init() tea.Cmd {
	b := m.backend
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		plans, err := decode[[]domain.Plan](b.GetSubscriptionPlans(context.Background()))
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (m plansModel) createOrder(plan domain.Plan) tea.Cmd {
	b, cycle := m.backend, m.cycle
	return func() tea.Msg {
		order, err := decode[*domain.Order](b.CreateOrder(context.Background(), plan.Product, plan.Key(), cycle))
		if err == nil && (order == nil || order.ID == "") {
			err = fmt.Errorf("backend returned no order id")
		}
		return orderCreatedMsg{order: order, err: err}
	}
}

func (m plansModel) captureOrder(orderID string) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		res := b.CaptureOrder(context.Background(), orderID)
		return orderCapturedMsg{message: res.Message, err: res.Err()}
	}
}

func (m plansModel) Update(msg tea.Msg) (plansModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case plansLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.plans = msg.plans
		m.cursor = moveCursor(m.cursor, 0, len(m.plans))

	case orderCreatedMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = errStyle.Render("checkout failed: " + errText(msg.err))
			return m, nil
		}
		m.order = msg.order
		switch {
		case m.order.ApprovalURL == "":
			m.statusMsg = warnStyle.Render("order " + m.order.ID + " created without an approval link")
		case m.open != nil && m.open(m.order.ApprovalURL) == nil:
			m.statusMsg = okStyle.Render("approve the payment in your browser, then press p")
		default:
			m.statusMsg = warnStyle.Render("open " + m.order.ApprovalURL + " then press p")
		}

	case orderCapturedMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = errStyle.Render("capture failed: " + errText(msg.err))
			return m, nil
		}
		m.order = nil
		m.statusMsg = okStyle.Render(msg.message)
		return m, func() tea.Msg { return subscriptionsChangedMsg{} }

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

func (m plansModel) handleKey(msg tea.KeyMsg) (plansModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.cursor = moveCursor(m.cursor, 1, len(m.plans))
	case "k", "up":
		m.cursor = moveCursor(m.cursor, -1, len(m.plans))
	case "b":
		if m.cycle == domain.BillingMonthly {
			m.cycle = domain.BillingYearly
		} else {
			m.cycle = domain.BillingMonthly
		}
	case "enter":
		if m.busy || m.cursor >= len(m.plans) {
			return m, nil
		}
		m.busy = true
		m.statusMsg = dimStyle.Render("creating order...")
		return m, m.createOrder(m.plans[m.cursor])
	case "p":
		if m.order == nil || m.busy {
			return m, nil
		}
		m.busy = true
		m.statusMsg = dimStyle.Render("capturing payment...")
		return m, m.captureOrder(m.order.ID)
	case "c":
		if m.order != nil && m.order.ApprovalURL != "" {
			return m, copyCmd("approval link", m.order.ApprovalURL)
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m plansModel) helpKeys() string {
	entries := [][2]string{{"j/k", "nav"}, {"b", "monthly/yearly"}, {"enter", "subscribe"}}
	if m.order != nil {
		entries = append(entries, [2]string{"p", "capture"}, [2]string{"c", "copy link"})
	}
	return helpLine(append(entries, [2]string{"q", "quit"})...)
}

func (m plansModel) View() string {
	if m.loading && m.plans == nil {
		return "\n  " + dimStyle.Render("loading plans...")
	}
	if m.err != "" {
		return "\n  " + errStyle.Render(m.err)
	}
	if len(m.plans) == 0 {
		return "\n  " + dimStyle.Render("no plans available")
	}

	var b strings.Builder
	monthly, yearly := dimStyle.Render("monthly"), dimStyle.Render("yearly")
	if m.cycle == domain.BillingYearly {
		yearly = accentStyle.Render("yearly")
	} else {
		monthly = accentStyle.Render("monthly")
	}
	b.WriteString("\n  " + monthly + metaStyle.Render(" / ") + yearly + "\n\n")

	for i, p := range m.plans {
		price := formatMoney(p.Price(m.cycle), p.Currency)
		line := ProductStyle(p.Product).Render(padRight(domain.ProductName(p.Product), 12)) +
			normalStyle.Render(padRight(p.Name, 16)) +
			selectedStyle.Render(price)
		if i == m.cursor {
			line = selectedRowBg.Render(accentStyle.Render("> ") + line)
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
		if i == m.cursor && len(p.Features) > 0 {
			for _, f := range p.Features {
				b.WriteString("      " + dimStyle.Render("· "+truncStr(f, 60)) + "\n")
			}
		}
	}
	if m.order != nil {
		b.WriteString("\n  " + metaStyle.Render("pending order ") + normalStyle.Render(m.order.ID))
	}
	if m.statusMsg != "" {
		b.WriteString("\n  " + m.statusMsg)
	}
	return b.String()
}
