package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

type logState int

const (
	logStateLoading logState = iota
	logStateForm
	logStateSaving
	logStateResult
)

// LogModel records a single income, expense, savings or transfer entry.
type LogModel struct {
	CommonModel
	env *Env

	state   logState
	form    *huh.Form
	wallets []*wallet.Wallet
	goals   []*goal.Goal

	// Form fields live behind a pointer so the bindings survive the model
	// being copied between updates.
	vals *logValues

	status string
	err    error
}

type logValues struct {
	Type     transaction.Type
	Wallet   string
	To       string
	Amount   string
	Category string
	Notes    string
	Goal     string
}

func NewLogModel(env *Env) LogModel {
	return LogModel{env: env}
}

func (m LogModel) Title() string { return "Log Transaction" }

func (m LogModel) ShortHelp() string { return "Esc: back | Enter: next" }

func (m LogModel) Init() tea.Cmd {
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := env.Wallets.List(ctx, env.UserID)
		if err != nil {
			return logOptionsMsg{err: err}
		}

		goals, err := env.Goals.List(ctx, env.UserID)
		if err != nil {
			return logOptionsMsg{err: err}
		}

		return logOptionsMsg{wallets: wallets, goals: goals}
	}
}

func (m LogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logOptionsMsg:
		if msg.err != nil {
			m.state = logStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.wallets) == 0 {
			m.state = logStateResult
			m.err = wallet.ErrNotFound
			m.status = "No wallets yet. Create one first."

			return m, nil
		}

		m.wallets, m.goals = msg.wallets, msg.goals

		return m.startForm()

	case logSavedMsg:
		m.state = logStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Logged %s %s.", msg.tx.Type, FormatAmount(msg.tx.Amount))
		if msg.tx.Category != "" {
			m.status = fmt.Sprintf("Logged %s %s under %s.", msg.tx.Type, FormatAmount(msg.tx.Amount), msg.tx.Category)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == logStateResult && msg.String() == "n" && m.wallets != nil {
			return m.startForm()
		}
	}

	if m.state != logStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = logStateSaving

	return m, m.saveCmd()
}

func (m LogModel) startForm() (tea.Model, tea.Cmd) {
	v := &logValues{Type: transaction.TypeExpense, Wallet: m.wallets[0].ID.String()}
	v.To = v.Wallet
	m.vals = v

	walletOpts := make([]huh.Option[string], len(m.wallets))
	for i, w := range m.wallets {
		walletOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", w.Name, FormatAmount(w.Balance)), w.ID.String())
	}

	goalOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, g := range m.goals {
		goalOpts = append(goalOpts, huh.NewOption(g.Slug, g.ID.String()))
	}

	isTransfer := func() bool { return v.Type == transaction.TypeTransfer }

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
					huh.NewOption("Savings", transaction.TypeSavings),
					huh.NewOption("Transfer", transaction.TypeTransfer),
				).
				Value(&v.Type),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("From wallet").
				Options(walletOpts...).
				Value(&v.Wallet),
			huh.NewSelect[string]().
				Title("To wallet").
				Options(walletOpts...).
				Value(&v.To).
				Validate(func(s string) error {
					if isTransfer() && s == v.Wallet {
						return fmt.Errorf("pick a different wallet")
					}

					return nil
				}),
		).WithHideFunc(func() bool { return !isTransfer() }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Wallet").
				Options(walletOpts...).
				Value(&v.Wallet),
		).WithHideFunc(isTransfer),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("1,250.75").
				Value(&v.Amount).
				Validate(func(s string) error {
					cents, err := money.Parse(s)
					if err != nil {
						return err
					}

					if cents <= 0 {
						return fmt.Errorf("amount must be positive")
					}

					return nil
				}),
			huh.NewInput().
				Title("Notes").
				Value(&v.Notes),
			huh.NewInput().
				Title("Category").
				Placeholder("leave empty to use a learned match").
				Value(&v.Category),
			huh.NewSelect[string]().
				Title("Goal").
				Options(goalOpts...).
				Value(&v.Goal),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = logStateForm
	m.status, m.err = "", nil

	return m, m.form.Init()
}

func (m LogModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case logStateLoading:
		return style.Render("Loading wallets...")
	case logStateForm:
		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Log transaction"),
			m.form.View(),
			faintStyle.Render(m.ShortHelp()),
		))
	case logStateSaving:
		return style.Render("Saving...")
	case logStateResult:
		if m.err != nil {
			return style.Render(errStyle.Render(m.status) + "\n\n(Esc to go back)")
		}

		return style.Render(okStyle.Render(m.status) + "\n\n(n: log another | Esc: back)")
	}

	return ""
}

type logOptionsMsg struct {
	wallets []*wallet.Wallet
	goals   []*goal.Goal
	err     error
}

type logSavedMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m LogModel) saveCmd() tea.Cmd {
	env := m.env
	v := *m.vals
	category, notes := strings.TrimSpace(v.Category), strings.TrimSpace(v.Notes)

	return func() tea.Msg {
		amount, err := money.Parse(v.Amount)
		if err != nil {
			return logSavedMsg{err: err}
		}

		params := transaction.LogParams{
			Amount: amount,
			Type:   v.Type,
			Notes:  notes,
		}

		from, err := uuid.Parse(v.Wallet)
		if err != nil {
			return logSavedMsg{err: err}
		}

		if v.Type == transaction.TypeTransfer {
			to, err := uuid.Parse(v.To)
			if err != nil {
				return logSavedMsg{err: err}
			}

			params.TransferFromWalletID, params.TransferToWalletID = &from, &to
		} else {
			params.WalletID = &from
		}

		if v.Goal != "" {
			id, err := uuid.Parse(v.Goal)
			if err != nil {
				return logSavedMsg{err: err}
			}

			params.GoalID = &id
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if category == "" && notes != "" {
			if category, err = env.Matching.Suggest(ctx, env.UserID, notes); err != nil {
				return logSavedMsg{err: err}
			}
		}

		params.Category = category

		tx, err := env.Transactions.Log(ctx, env.UserID, params)

		return logSavedMsg{tx: tx, err: err}
	}
}
