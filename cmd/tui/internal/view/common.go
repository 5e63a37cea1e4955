package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/importer"
	"github.com/MrJamesThe3rd/savr/internal/matching"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

const dbTimeout = 5 * time.Second

// Env is what every screen needs: the services and the single user the
// terminal acts for.
type Env struct {
	UserID       uuid.UUID
	Loc          *time.Location
	Wallets      *wallet.Service
	Transactions *transaction.Service
	Goals        *goal.Service
	Analytics    *analytics.Service
	Matching     *matching.Service
	Importer     *importer.Service
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
