package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx      *transaction.Transaction
	wallets map[uuid.UUID]string
	loc     *time.Location
}

func (i txItem) Title() string {
	kind := faintStyle.Render(fmt.Sprintf("[%s]", i.tx.Type))

	label := i.tx.Category
	if label == "" {
		label = i.tx.Notes
	}

	return fmt.Sprintf("%s  %12s  %s  %s", FormatDate(i.tx.CreatedAt.In(i.loc)), FormatAmount(i.tx.Amount), kind, label)
}

func (i txItem) Description() string {
	if i.tx.Type == transaction.TypeTransfer {
		return fmt.Sprintf("%s → %s", i.walletName(i.tx.TransferFromWalletID), i.walletName(i.tx.TransferToWalletID))
	}

	if i.tx.Notes != "" && i.tx.Category != "" {
		return fmt.Sprintf("%s · %s", i.walletName(i.tx.WalletID), i.tx.Notes)
	}

	return i.walletName(i.tx.WalletID)
}

func (i txItem) FilterValue() string {
	return i.tx.Category + " " + i.tx.Notes
}

func (i txItem) walletName(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}

	if name, ok := i.wallets[*id]; ok {
		return name
	}

	return "(deleted wallet)"
}

var typeFilters = []*transaction.Type{
	nil,
	new(transaction.TypeIncome),
	new(transaction.TypeExpense),
	new(transaction.TypeTransfer),
	new(transaction.TypeSavings),
	new(transaction.TypeDebtPayment),
}

type TransactionsModel struct {
	CommonModel
	env *Env

	list      list.Model
	timeframe Timeframe
	typeIdx   int

	loading bool
	err     error
}

func NewTransactionsModel(env *Env) TransactionsModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Transactions"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)

	return TransactionsModel{
		env:       env,
		list:      l,
		timeframe: TimeframeThisMonth,
		loading:   true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	return "Esc: back | d: date range | t: type | r: refresh | /: filter"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			items := make([]list.Item, len(msg.txs))
			// Newest first.
			for i, tx := range msg.txs {
				items[len(msg.txs)-1-i] = txItem{tx: tx, wallets: msg.wallets, loc: m.env.Loc}
			}

			return m, m.list.SetItems(items)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			m.timeframe = m.timeframe.Next()
			m.loading = true

			return m, m.loadCmd()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) View() string {
	typeLabel := "All"
	if t := typeFilters[m.typeIdx]; t != nil {
		typeLabel = string(*t)
	}

	header := fmt.Sprintf("[d] Range: %s | [t] Type: %s", activeStyle(m.timeframe.String()), activeStyle(typeLabel))

	var body string

	switch {
	case m.loading:
		body = "Loading transactions..."
	case m.err != nil:
		body = errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		body = m.list.View()
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			body,
			faintStyle.Render(m.ShortHelp()),
		),
	)
}

// Messages

type loadTxsMsg struct {
	txs     []*transaction.Transaction
	wallets map[uuid.UUID]string
	err     error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	from, to := m.timeframe.Range(time.Now(), m.env.Loc)
	filter := transaction.ListFilter{From: from, To: to, Type: typeFilters[m.typeIdx]}
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := env.Wallets.List(ctx, env.UserID)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		txs, err := env.Transactions.List(ctx, env.UserID, filter)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(wallets))
		for _, w := range wallets {
			names[w.ID] = w.Name
		}

		return loadTxsMsg{txs: txs, wallets: names}
	}
}
