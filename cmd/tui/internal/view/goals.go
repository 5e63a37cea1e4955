package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
)

type GoalsModel struct {
	CommonModel
	env *Env

	table    table.Model
	progress []*analytics.GoalProgress
	loading  bool
	err      error
}

func NewGoalsModel(env *Env) GoalsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Goal", Width: 16},
			{Title: "Progress", Width: 28},
			{Title: "Saved", Width: 14},
			{Title: "Remaining", Width: 14},
			{Title: "Per day", Width: 12},
			{Title: "Days left", Width: 9},
			{Title: "Projected", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return GoalsModel{env: env, table: t, loading: true}
}

func (m GoalsModel) Title() string { return "Goals" }

func (m GoalsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsMsg:
		m.loading = false
		m.progress, m.err = msg.progress, msg.err

		if msg.err == nil {
			m.table.SetRows(goalRows(msg.progress))
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m GoalsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.loading:
		return style.Render("Loading goals...")
	case m.err != nil:
		return style.Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.progress) == 0:
		return style.Render("No goals yet.\n\n" + faintStyle.Render(m.ShortHelp()))
	}

	detail := ""
	if i := m.table.Cursor(); i >= 0 && i < len(m.progress) {
		detail = goalDetail(m.progress[i])
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Goals"),
		panelStyle.Render(m.table.View()),
		detail,
		faintStyle.Render(m.ShortHelp()),
	))
}

func goalRows(progress []*analytics.GoalProgress) []table.Row {
	rows := make([]table.Row, len(progress))

	for i, p := range progress {
		projected := "-"
		if p.ProjectedCompletionDate != nil {
			projected = FormatDate(*p.ProjectedCompletionDate)
		}

		rows[i] = table.Row{
			p.Slug,
			fmt.Sprintf("%s %5.1f%%", Bar(p.ProgressPercentage, 20), p.ProgressPercentage),
			FormatAmount(p.Saved),
			FormatAmount(p.Remaining),
			FormatAmount(int64(p.Feasibility.RequiredDaily)),
			fmt.Sprint(p.Feasibility.DaysLeft),
			projected,
		}
	}

	return rows
}

func goalDetail(p *analytics.GoalProgress) string {
	status := okStyle.Render("On track")
	if !p.Feasibility.Feasible {
		status = warnStyle.Render("Out of time")
	}

	return fmt.Sprintf("%s · in %s · out %s · net %s",
		status,
		FormatAmount(p.TotalIncomeLogged),
		FormatAmount(p.TotalExpenseLogged),
		FormatAmount(p.NetSavings),
	)
}

type goalsMsg struct {
	progress []*analytics.GoalProgress
	err      error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := env.Goals.List(ctx, env.UserID)
		if err != nil {
			return goalsMsg{err: err}
		}

		progress := make([]*analytics.GoalProgress, 0, len(goals))

		for _, g := range goals {
			p, err := env.Analytics.GoalProgress(ctx, env.UserID, g.ID)
			if err != nil {
				return goalsMsg{err: fmt.Errorf("goal %s: %w", g.Slug, err)}
			}

			progress = append(progress, p)
		}

		return goalsMsg{progress: progress}
	}
}

