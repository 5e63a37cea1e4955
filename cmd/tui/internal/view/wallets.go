package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

// WalletsModel lists every wallet with its balance and the shape of the
// last thirty days.
type WalletsModel struct {
	CommonModel
	env *Env

	wallets []*wallet.Wallet
	history map[uuid.UUID][]int64
	cursor  int
	loading bool
	err     error
}

func NewWalletsModel(env *Env) WalletsModel {
	return WalletsModel{env: env, loading: true}
}

func (m WalletsModel) Title() string { return "Wallets" }

func (m WalletsModel) ShortHelp() string { return "Esc: back | ↑/↓: move | r: refresh" }

func (m WalletsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WalletsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case walletsMsg:
		m.loading = false
		m.wallets, m.history, m.err = msg.wallets, msg.history, msg.err
		m.cursor = min(m.cursor, max(0, len(m.wallets)-1))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			m.cursor = max(0, m.cursor-1)
		case "down", "j":
			m.cursor = min(max(0, len(m.wallets)-1), m.cursor+1)
		}
	}

	return m, nil
}

func (m WalletsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.loading:
		return style.Render("Loading wallets...")
	case m.err != nil:
		return style.Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.wallets) == 0:
		return style.Render("No wallets yet.\n\n" + faintStyle.Render(m.ShortHelp()))
	}

	var (
		sb    strings.Builder
		total int64
	)

	for i, w := range m.wallets {
		total += w.Balance

		cursor := "  "
		name := w.Name

		if i == m.cursor {
			cursor = "> "
			name = activeStyle(name)
		}

		fmt.Fprintf(&sb, "%s%-20s %14s  %s\n", cursor, name, FormatAmount(w.Balance), Sparkline(m.history[w.ID]))
	}

	fmt.Fprintf(&sb, "\n  %-20s %14s", "Total", FormatAmount(total))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Wallets · last 30 days"),
		panelStyle.Render(sb.String()),
		faintStyle.Render(m.ShortHelp()),
	))
}

type walletsMsg struct {
	wallets []*wallet.Wallet
	history map[uuid.UUID][]int64
	err     error
}

func (m WalletsModel) loadCmd() tea.Cmd {
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := env.Wallets.List(ctx, env.UserID)
		if err != nil {
			return walletsMsg{err: err}
		}

		series := make([][]int64, len(wallets))

		g, gctx := errgroup.WithContext(ctx)
		for i, w := range wallets {
			g.Go(func() error {
				points, err := env.Analytics.WalletHistory(gctx, env.UserID, analytics.Daily, &w.ID)
				if err != nil {
					return fmt.Errorf("wallet %s: %w", w.Name, err)
				}

				for _, p := range points {
					series[i] = append(series[i], p.Balance)
				}

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return walletsMsg{err: err}
		}

		history := make(map[uuid.UUID][]int64, len(wallets))
		for i, w := range wallets {
			history[w.ID] = series[i]
		}

		return walletsMsg{wallets: wallets, history: history}
	}
}
