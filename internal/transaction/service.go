package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// LogTransactions applies every entry to its wallets and persists it,
	// all-or-nothing.
	LogTransactions(ctx context.Context, userID uuid.UUID, txs []*Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc, now: time.Now}
}

type LogParams struct {
	Amount               int64
	Type                 Type
	Category             string
	WalletID             *uuid.UUID
	TransferFromWalletID *uuid.UUID
	TransferToWalletID   *uuid.UUID
	GoalID               *uuid.UUID
	Method               string
	Notes                string
	Timestamp            *time.Time
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	WalletID *uuid.UUID
	GoalID   *uuid.UUID
	Type     *Type
}

type Totals struct {
	Income  int64
	Expense int64
	Net     int64
}

// Log validates and records a user-initiated entry. Debt payments are
// written by the debt service and are rejected here.
func (s *Service) Log(ctx context.Context, userID uuid.UUID, params LogParams) (*Transaction, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	tx := &Transaction{
		UserID:   userID,
		Amount:   params.Amount,
		Type:     params.Type,
		Category: params.Category,
		GoalID:   params.GoalID,
		Method:   params.Method,
		Notes:    params.Notes,
	}

	if params.Type == TypeTransfer {
		tx.TransferFromWalletID = params.TransferFromWalletID
		tx.TransferToWalletID = params.TransferToWalletID
	} else {
		tx.WalletID = params.WalletID
	}

	tx.CreatedAt = s.now()
	if params.Timestamp != nil {
		tx.CreatedAt = *params.Timestamp
	}

	if err := s.repo.LogTransactions(ctx, userID, []*Transaction{tx}); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// MonthlyTotals sums income and expense for one calendar month.
func (s *Service) MonthlyTotals(ctx context.Context, userID uuid.UUID, year int, month time.Month) (Totals, error) {
	if month < time.January || month > time.December {
		return Totals{}, fmt.Errorf("invalid month %d", month)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	txs, err := s.repo.ListTransactions(ctx, userID, ListFilter{From: &start, To: &end})
	if err != nil {
		return Totals{}, fmt.Errorf("listing transactions: %w", err)
	}

	var totals Totals

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			totals.Income += tx.Amount
		case TypeExpense:
			totals.Expense += tx.Amount
		}
	}

	totals.Net = totals.Income - totals.Expense

	return totals, nil
}

// ImportRow is one parsed line of a bank or spreadsheet export.
type ImportRow struct {
	Date     time.Time
	Type     Type
	Amount   int64
	Category string
	Notes    string
}

type ImportResult struct {
	Imported  []*Transaction
	New       []ImportRow
	Conflicts []Conflict
}

type Conflict struct {
	Incoming ImportRow
	Existing *Transaction
}

// Import records rows against walletID unless any of them looks like an
// entry already in the ledger; in that case nothing is written and the
// conflicts are returned for the caller to resolve.
func (s *Service) Import(ctx context.Context, userID, walletID uuid.UUID, rows []ImportRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	if err := validateRows(rows); err != nil {
		return nil, err
	}

	minDate, maxDate := s.dateRange(rows)

	existing, err := s.repo.ListTransactions(ctx, userID, ListFilter{
		From:     &minDate,
		To:       &maxDate,
		WalletID: &walletID,
	})
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date   string
		Amount int64
		Type   Type
		Notes  string
	}

	lookup := make(map[dupKey]*Transaction, len(existing))

	for _, e := range existing {
		k := dupKey{
			Date:   e.CreatedAt.In(s.loc).Format(time.DateOnly),
			Amount: e.Amount,
			Type:   e.Type,
			Notes:  e.Notes,
		}
		lookup[k] = e
	}

	var newRows []ImportRow

	var conflicts []Conflict

	for _, r := range rows {
		k := dupKey{
			Date:   r.Date.In(s.loc).Format(time.DateOnly),
			Amount: r.Amount,
			Type:   r.Type,
			Notes:  r.Notes,
		}

		if found, ok := lookup[k]; ok {
			conflicts = append(conflicts, Conflict{Incoming: r, Existing: found})
			continue
		}

		newRows = append(newRows, r)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newRows, Conflicts: conflicts}, nil
	}

	txs := rowsToTransactions(userID, walletID, newRows)
	if err := s.repo.LogTransactions(ctx, userID, txs); err != nil {
		return nil, fmt.Errorf("log imported transactions: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// ImportConfirmed records rows the user already reviewed, skipping the
// duplicate check.
func (s *Service) ImportConfirmed(ctx context.Context, userID, walletID uuid.UUID, rows []ImportRow) ([]*Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	if err := validateRows(rows); err != nil {
		return nil, err
	}

	txs := rowsToTransactions(userID, walletID, rows)
	if err := s.repo.LogTransactions(ctx, userID, txs); err != nil {
		return nil, fmt.Errorf("log imported transactions: %w", err)
	}

	return txs, nil
}

func validate(p LogParams) error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch p.Type {
	case TypeIncome, TypeExpense, TypeSavings:
		if p.WalletID == nil {
			return ErrWalletRequired
		}
	case TypeTransfer:
		if p.TransferFromWalletID == nil || p.TransferToWalletID == nil ||
			*p.TransferFromWalletID == *p.TransferToWalletID {
			return ErrTransferWallets
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}

	return nil
}

func validateRows(rows []ImportRow) error {
	for i, r := range rows {
		if r.Amount <= 0 {
			return fmt.Errorf("row %d: %w", i+1, ErrInvalidAmount)
		}

		if r.Type != TypeIncome && r.Type != TypeExpense {
			return fmt.Errorf("row %d: %w: %q", i+1, ErrInvalidType, r.Type)
		}
	}

	return nil
}

func (s *Service) dateRange(rows []ImportRow) (time.Time, time.Time) {
	minDate := rows[0].Date
	maxDate := rows[0].Date

	for _, r := range rows[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}

		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	minDate = minDate.In(s.loc)
	maxDate = maxDate.In(s.loc)

	start := time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, 1).Add(-time.Nanosecond)

	return start, end
}

func rowsToTransactions(userID, walletID uuid.UUID, rows []ImportRow) []*Transaction {
	txs := make([]*Transaction, len(rows))
	for i, r := range rows {
		txs[i] = &Transaction{
			UserID:    userID,
			WalletID:  new(walletID),
			Amount:    r.Amount,
			Type:      r.Type,
			Category:  r.Category,
			Notes:     r.Notes,
			CreatedAt: r.Date,
		}
	}

	return txs
}
