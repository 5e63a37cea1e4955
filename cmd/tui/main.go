package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/savr/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/config"
	"github.com/MrJamesThe3rd/savr/internal/database"
	"github.com/MrJamesThe3rd/savr/internal/debt"
	debtStore "github.com/MrJamesThe3rd/savr/internal/debt/store"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	goalStore "github.com/MrJamesThe3rd/savr/internal/goal/store"
	"github.com/MrJamesThe3rd/savr/internal/importer"
	"github.com/MrJamesThe3rd/savr/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/savr/internal/matching/store"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	txStore "github.com/MrJamesThe3rd/savr/internal/transaction/store"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
	walletStore "github.com/MrJamesThe3rd/savr/internal/wallet/store"
)

var errNoUser = errors.New("TUI_USER_ID is not set")

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewGoals
	ViewWallets
	ViewLog
	ViewTransactions
	ViewImport
)

type model struct {
	env *view.Env

	currentView View
	screen      tea.Model
	width       int
	height      int
}

func newEnv() (*view.Env, func() error, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if cfg.TUI.UserID == "" {
		return nil, nil, errNoUser
	}

	userID, err := uuid.Parse(cfg.TUI.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing TUI_USER_ID: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	walletSvc := wallet.NewService(walletStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), loc)
	goalSvc := goal.NewService(goalStore.New(db))
	debtSvc := debt.NewService(debtStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))

	env := &view.Env{
		UserID:       userID,
		Loc:          loc,
		Wallets:      walletSvc,
		Transactions: txSvc,
		Goals:        goalSvc,
		Matching:     matchSvc,
		Importer:     importer.NewService(loc, matchSvc),
		Analytics: analytics.NewService(
			analytics.NewSource(walletSvc, txSvc, goalSvc, debtSvc),
			loc,
			cfg.Analytics.TopCategories,
		),
	}

	return env, db.Close, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewDashboard:
		m.screen = view.NewDashboardModel(m.env)
	case ViewGoals:
		m.screen = view.NewGoalsModel(m.env)
	case ViewWallets:
		m.screen = view.NewWalletsModel(m.env)
	case ViewLog:
		m.screen = view.NewLogModel(m.env)
	case ViewTransactions:
		m.screen = view.NewTransactionsModel(m.env)
	case ViewImport:
		m.screen = view.NewImportModel(m.env)
	default:
		return m, nil
	}

	m.currentView = v

	cmds := []tea.Cmd{m.screen.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6":
				return m.open(View(msg.String()[0] - '0'))
			}

			return m, nil
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Savr\n\n" +
				"1. Dashboard\n" +
				"2. Goals\n" +
				"3. Wallets\n" +
				"4. Log Transaction\n" +
				"5. Transactions\n" +
				"6. Import CSV\n\n" +
				"q. Quit",
		)
	}

	return m.screen.View()
}

func main() {
	env, closeDB, err := newEnv()
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	p := tea.NewProgram(model{env: env}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
