package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateWalletSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateConflicts
	importStateResult
)

type ImportModel struct {
	CommonModel
	env *Env

	state        importState
	filePicker   filepicker.Model
	wallets      []*wallet.Wallet
	walletCursor int

	newRows      []transaction.ImportRow
	conflicts    []transaction.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(env *Env) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		env:        env,
		filePicker: fp,
		selected:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateConflicts {
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	env := m.env

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := env.Wallets.List(ctx, env.UserID)

		return importWalletsMsg{wallets: wallets, err: err}
	}
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importWalletsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.wallets = msg.wallets

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateWalletSelect {
			return m.updateWalletSelect(msg)
		}

		if m.state == importStateConflicts {
			return m.updateConflicts(msg)
		}

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.result.Conflicts) == 0 {
			m.state = importStateResult
			m.status = fmt.Sprintf("Imported %d transactions.", len(msg.result.Imported))

			return m, nil
		}

		m.newRows = msg.result.New
		m.conflicts = msg.result.Conflicts
		m.selected = make(map[int]bool)
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c, index: i, loc: m.env.Loc}
		}

		m.conflictList = list.New(items, conflictDelegate{selected: &m.selected}, 80, 20)
		m.conflictList.Title = "Possible duplicates"
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateWalletSelect
		return m, nil
	case importStateResult:
		m.state = importStateWalletSelect
		m.err = nil
		m.status = ""

		return m, nil
	case importStateConflicts:
		m.state = importStateWalletSelect
		m.conflicts = nil
		m.newRows = nil
		m.selected = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateWalletSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.walletCursor > 0 {
			m.walletCursor--
		}
	case tea.KeyDown:
		if m.walletCursor < len(m.wallets)-1 {
			m.walletCursor++
		}
	case tea.KeyEnter:
		if len(m.wallets) == 0 {
			return m, nil
		}

		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateWalletSelect:
		return m.viewWalletSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a CSV for %s:\n\n%s", activeStyle(m.wallet().Name), m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, m.conflictList.View(), faintStyle.Render(m.ShortHelp())),
		)
	case importStateResult:
		style := errStyle
		if m.err == nil {
			style = okStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewWalletSelect() string {
	if len(m.wallets) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No wallets yet. Create one first.\n\n(Esc to go back)")
	}

	s := "Import into wallet:\n\n"

	for i, w := range m.wallets {
		cursor := " "
		if i == m.walletCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s  %s\n", cursor, w.Name, faintStyle.Render(FormatAmount(w.Balance)))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) wallet() *wallet.Wallet {
	return m.wallets[m.walletCursor]
}

// Messages

type importWalletsMsg struct {
	wallets []*wallet.Wallet
	err     error
}

type importResultMsg struct {
	result *transaction.ImportResult
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	env := m.env
	walletID := m.wallet().ID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		rows, err := env.Importer.Parse(ctx, env.UserID, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		result, err := env.Transactions.Import(ctx, env.UserID, walletID, rows)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	env := m.env
	walletID := m.wallet().ID
	rows := append([]transaction.ImportRow(nil), m.newRows...)

	for i, c := range m.conflicts {
		if m.selected[i] {
			rows = append(rows, c.Incoming)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := env.Transactions.ImportConfirmed(ctx, env.UserID, walletID, rows)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(txs)}
	}
}

// Conflict list item

type conflictItem struct {
	conflict transaction.Conflict
	index    int
	loc      *time.Location
}

func (i conflictItem) Title() string       { return "" }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return "" }

// Conflict list delegate

type conflictDelegate struct {
	selected *map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	line1 := fmt.Sprintf("%s%s %s  %s  %s  %s",
		cursor, checkbox,
		FormatDate(incoming.Date.In(item.loc)),
		FormatAmount(incoming.Amount),
		incoming.Type,
		incoming.Notes,
	)

	line2 := fmt.Sprintf("      Existing: %s  %s  %s  %s",
		FormatDate(existing.CreatedAt.In(item.loc)),
		FormatAmount(existing.Amount),
		existing.Type,
		existing.Notes,
	)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
