package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pioneersx/pioneersx/internal/tui"
	"github.com/pioneersx/pioneersx/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474"))
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
)

var signedOutTaglines = [...]string{
	"Your dashboards are waiting. AnalyticsX keeps the numbers warm.",
	"AssistX answered a few hundred customers while you were away.",
	"CliniX has appointments to show you. Sign in first.",
	"WebAR scenes don't render for anonymous visitors.",
	"The studio ships custom software. Your account ships with it.",
}

// printSignedOut prints the banner shown when a command needs a session
// and none is stored.
func printSignedOut(w io.Writer) {
	msg := signedOutTaglines[rand.IntN(len(signedOutTaglines))]
	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n",
		titleStyle.Render("P I O N E E R S X"),
		hintStyle.Render(msg),
		labelStyle.Render("To sign in: pioneersx login"))
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, okStyle.Render("✓ ")+msg)
}

func printUser(w io.Writer, u *domain.User) {
	if u == nil {
		fmt.Fprintln(w, labelStyle.Render("no profile"))
		return
	}
	verified := "not verified"
	if u.IsVerified {
		verified = okStyle.Render("verified")
	}
	fmt.Fprintf(w, "%s\n", titleStyle.Render(u.DisplayName()))
	rows := [][2]string{
		{"email", u.Email + "  " + verified},
		{"phone", u.Phone},
		{"company", u.Company},
		{"role", u.Role},
		{"member since", dateOrDash(u.CreatedAt)},
		{"account id", u.ID.String()},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", r[0])), r[1])
	}
}

func printPlans(w io.Writer, plans []domain.Plan, cycle string) {
	if len(plans) == 0 {
		fmt.Fprintln(w, labelStyle.Render("no plans available"))
		return
	}
	sorted := append([]domain.Plan(nil), plans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Product < sorted[j].Product })

	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf("%-12s %-16s %-14s %s", "PRODUCT", "PLAN", "KEY", strings.ToUpper(cycle))))
	for _, p := range sorted {
		fmt.Fprintf(w, "%s %-16s %-14s %s\n",
			tui.ProductStyle(p.Product).Render(fmt.Sprintf("%-12s", domain.ProductName(p.Product))),
			p.Name, p.Key(), money(p.Price(cycle), p.Currency))
	}
}

func printSubscriptions(w io.Writer, subs []domain.Subscription) {
	if len(subs) == 0 {
		fmt.Fprintln(w, labelStyle.Render("no subscriptions yet. see `pioneersx plans`"))
		return
	}
	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf("%-10s %-12s %-14s %-9s %-10s %s", "ID", "PRODUCT", "PLAN", "CYCLE", "STATUS", "RENEWS")))
	for _, s := range subs {
		status := s.Status
		if s.CancelAtPeriodEnd && s.Status == domain.SubscriptionActive {
			status = "ending"
		}
		fmt.Fprintf(w, "%-10s %s %-14s %-9s %s %s\n",
			s.ID.String(),
			tui.ProductStyle(s.Product).Render(fmt.Sprintf("%-12s", domain.ProductName(s.Product))),
			s.Plan, s.BillingCycle,
			tui.StatusStyle(s.Status).Render(fmt.Sprintf("%-10s", status)),
			dateOrDash(s.CurrentPeriodEnd))
	}
}

func printSubscription(w io.Writer, s domain.Subscription) {
	fmt.Fprintf(w, "%s %s\n", tui.ProductStyle(s.Product).Render(domain.ProductName(s.Product)), s.Plan)
	created := s.CreatedAt
	rows := [][2]string{
		{"id", s.ID.String()},
		{"status", tui.StatusStyle(s.Status).Render(s.Status)},
		{"billing", s.BillingCycle},
		{"renews", dateOrDash(s.CurrentPeriodEnd)},
		{"started", dateOrDash(&created)},
	}
	if s.CancelAtPeriodEnd {
		rows = append(rows, [2]string{"note", "cancels at the end of the period"})
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", r[0])), r[1])
	}
}

func printPayments(w io.Writer, payments []domain.Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(w, labelStyle.Render("no payments yet"))
		return
	}
	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf("%-12s %-20s %-12s %-12s %-14s %s", "DATE", "ORDER", "PRODUCT", "PLAN", "AMOUNT", "STATUS")))
	for _, p := range payments {
		created := p.CreatedAt
		fmt.Fprintf(w, "%-12s %-20s %s %-12s %-14s %s\n",
			dateOrDash(&created), p.OrderID,
			tui.ProductStyle(p.Product).Render(fmt.Sprintf("%-12s", domain.ProductName(p.Product))),
			p.Plan, money(p.Amount, p.Currency),
			tui.StatusStyle(p.Status).Render(p.Status))
	}
}

func dateOrDash(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func money(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
}
