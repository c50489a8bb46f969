package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pioneersx/pioneersx/internal/tui"
	"github.com/pioneersx/pioneersx/pkg/client"
)

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive account dashboard",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, api *client.Client, _ []string) error {
			if !api.IsLoggedIn(ctx) {
				printSignedOut(c.out)
				return nil
			}
			c.quietExpiry = true
			p := tea.NewProgram(tui.NewApp(api, c.open), tea.WithAltScreen(), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			if app, ok := final.(tui.App); ok && app.SessionExpired() {
				printSignedOut(c.out)
			}
			return nil
		}),
	}
}
