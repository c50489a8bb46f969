package tui

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

type paymentsLoadedMsg struct {
	payments []domain.Payment
	err      error
}

func (m paymentsLoadedMsg) failure() error { return m.err }

type paymentsModel struct {
	backend  Backend
	payments []domain.Payment
	cursor   int
	loading  bool
	err      string
	width    int
	height   int
}

func newPaymentsModel(b Backend) paymentsModel {
	return paymentsModel{backend: b, loading: true}
}

func (m paymentsModel) Init() tea.Cmd {
	b := m.backend
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		payments, err := decode[[]domain.Payment](b.GetPaymentHistory(context.Background()))
		return paymentsLoadedMsg{payments: payments, err: err}
	}
}

func (m paymentsModel) Update(msg tea.Msg) (paymentsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case paymentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.payments = msg.payments
		m.cursor = moveCursor(m.cursor, 0, len(m.payments))
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.cursor = moveCursor(m.cursor, 1, len(m.payments))
		case "k", "up":
			m.cursor = moveCursor(m.cursor, -1, len(m.payments))
		case "c":
			if m.cursor < len(m.payments) {
				return m, copyCmd("order id", m.payments[m.cursor].OrderID)
			}
		case "r":
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

// total sums completed payments per currency.
func (m paymentsModel) total() map[string]float64 {
	sums := make(map[string]float64)
	for _, p := range m.payments {
		if strings.EqualFold(p.Status, "completed") {
			cur := strings.ToUpper(p.Currency)
			if cur == "" {
				cur = "USD"
			}
			sums[cur] += p.Amount
		}
	}
	return sums
}

func (m paymentsModel) View() string {
	if m.loading && m.payments == nil {
		return "\n  " + dimStyle.Render("loading payments...")
	}
	if m.err != "" {
		return "\n  " + errStyle.Render(m.err)
	}
	if len(m.payments) == 0 {
		return "\n  " + dimStyle.Render("no payments yet")
	}

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render(
		padRight("DATE", 13)+padRight("PRODUCT", 12)+padRight("PLAN", 12)+padRight("AMOUNT", 14)+"STATUS") + "\n")
	for i, p := range m.payments {
		created := p.CreatedAt
		line := metaStyle.Render(padRight(formatDate(&created), 13)) +
			ProductStyle(p.Product).Render(padRight(domain.ProductName(p.Product), 12)) +
			normalStyle.Render(padRight(p.Plan, 12)) +
			normalStyle.Render(padRight(formatMoney(p.Amount, p.Currency), 14)) +
			StatusStyle(p.Status).Render(p.Status)
		if i == m.cursor {
			line = selectedRowBg.Render(accentStyle.Render("> ") + line)
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}
	totals := m.total()
	currencies := make([]string, 0, len(totals))
	for cur := range totals {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)
	for _, cur := range currencies {
		b.WriteString("\n  " + dimStyle.Render("total paid ") + selectedStyle.Render(formatMoney(totals[cur], cur)))
	}
	return b.String()
}
