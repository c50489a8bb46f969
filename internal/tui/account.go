package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

type accountLoadedMsg struct {
	user *domain.User
	err  error
}

func (m accountLoadedMsg) failure() error { return m.err }

type accountModel struct {
	backend Backend
	user    *domain.User
	err     string
	loading bool
	width   int
	height  int
}

func newAccountModel(b Backend) accountModel {
	return accountModel{backend: b, loading: true}
}

func (m accountModel) Init() tea.Cmd {
	b := m.backend
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		user, err := decode[*domain.User](b.GetMe(context.Background()))
		return accountLoadedMsg{user: user, err: err}
	}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case accountLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.user = msg.user
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func (m accountModel) View() string {
	if m.loading && m.user == nil {
		return "\n  " + dimStyle.Render("loading profile...")
	}
	if m.err != "" {
		return "\n  " + errStyle.Render(m.err)
	}
	if m.user == nil {
		return "\n  " + dimStyle.Render("no profile")
	}

	u := m.user
	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render(u.DisplayName()) + "\n\n")

	verified := errStyle.Render("not verified")
	if u.IsVerified {
		verified = okStyle.Render("verified")
	}
	rows := [][2]string{
		{"email", u.Email + "  " + verified},
		{"phone", orDash(u.Phone)},
		{"company", orDash(u.Company)},
		{"role", orDash(u.Role)},
		{"member since", formatDate(u.CreatedAt)},
		{"account id", orDash(u.ID.String())},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render(padRight(r[0], 14)), normalStyle.Render(r[1]))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
