package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
)

type DashboardModel struct {
	CommonModel
	env *Env

	spinner spinner.Model
	stats   *analytics.DashboardStats
	loading bool
	err     error
}

func NewDashboardModel(env *Env) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return DashboardModel{env: env, spinner: s, loading: true}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.stats, m.err = msg.stats, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render(m.spinner.View() + " Crunching numbers...")
	}

	if m.err != nil {
		return style.Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.stats

	totals := panelStyle.Render(fmt.Sprintf(
		"%s\n\nBalance   %s  %s\nIncome    %s  %s\nExpense   %s  %s\nNet       %s  %s\nTransfers %s",
		titleStyle.Render("This month"),
		FormatAmount(s.TotalBalance), FormatTrend(s.Trends.Balance),
		FormatAmount(s.Month.Income), FormatTrend(s.Trends.Income),
		FormatAmount(s.Month.Expense), FormatTrend(s.Trends.Expense),
		FormatAmount(s.Month.Net()), FormatTrend(s.Trends.Net),
		FormatAmount(s.Month.Transfer),
	))

	var cats strings.Builder

	cats.WriteString(titleStyle.Render("Top spending") + "\n\n")

	if len(s.SpendingByCategory) == 0 {
		cats.WriteString(faintStyle.Render("No spending yet"))
	}

	for _, c := range s.SpendingByCategory {
		fmt.Fprintf(&cats, "%-16s %s\n", c.Label, FormatAmount(c.Amount))
	}

	week := panelStyle.Render(fmt.Sprintf(
		"%s\n\n         %s\nSpending %s\nIncome   %s\nTransfer %s",
		titleStyle.Render("This week"),
		weekdayHeader(s.Week.Spending),
		Sparkline(amounts(s.Week.Spending)),
		Sparkline(amounts(s.Week.Income)),
		Sparkline(amounts(s.Week.Transfer)),
	))

	var goals strings.Builder

	goals.WriteString(titleStyle.Render("Goals") + "\n\n")

	if len(s.GoalProgress) == 0 {
		goals.WriteString(faintStyle.Render("No goals yet"))
	}

	for _, g := range s.GoalProgress {
		fmt.Fprintf(&goals, "%-16s %s %5.1f%%\n", g.Slug, Bar(g.Progress, 20), g.Progress)
	}

	debts := fmt.Sprintf("Debts: %d active · owed to you %s · you owe %s",
		s.Debts.ActiveCount, FormatAmount(s.Debts.TotalOwedToYou), FormatAmount(s.Debts.TotalOwedByYou))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, totals, " ", panelStyle.Render(cats.String()), " ", week),
		panelStyle.Render(goals.String()),
		debts,
		renderWarnings(s.Warnings),
		faintStyle.Render(m.ShortHelp()),
	))
}

func renderWarnings(w analytics.Warnings) string {
	var lines []string

	if w.Overspending {
		lines = append(lines, warnStyle.Render("! Spending is outpacing income"))
	}

	if w.GoalAchieved {
		lines = append(lines, okStyle.Render("✓ Your savings have reached a goal"))
	}

	if w.Ahead {
		lines = append(lines, okStyle.Render("↑ Ahead of pace on a goal"))
	}

	if w.Behind {
		lines = append(lines, warnStyle.Render("↓ Behind pace on a goal"))
	}

	return strings.Join(lines, "\n")
}

func weekdayHeader(days []analytics.DayAmount) string {
	var sb strings.Builder
	for _, d := range days {
		sb.WriteString(d.Day[:1])
	}

	return sb.String()
}

func amounts(days []analytics.DayAmount) []int64 {
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = d.Amount
	}

	return out
}

type dashboardMsg struct {
	stats *analytics.DashboardStats
	err   error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := env.Analytics.Dashboard(ctx, env.UserID)

		return dashboardMsg{stats: stats, err: err}
	}
}
