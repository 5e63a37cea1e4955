package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	activitystore "github.com/MrJamesThe3rd/savr/internal/activity/store"
	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	txstore "github.com/MrJamesThe3rd/savr/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDebtColumns = `
	id, user_id, name, type, total_amount, remaining_amount, interest_rate, due_date, notes, status, created_at, updated_at
`

func scanDebt(s scanner) (*debt.Debt, error) {
	var d debt.Debt

	var typeStr, statusStr string

	var rate sql.NullFloat64

	var due sql.NullTime

	var notes sql.NullString

	if err := s.Scan(
		&d.ID, &d.UserID, &d.Name, &typeStr, &d.TotalAmount, &d.RemainingAmount,
		&rate, &due, &notes, &statusStr, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Type = debt.Type(typeStr)
	d.Status = debt.Status(statusStr)
	d.Notes = notes.String

	if rate.Valid {
		d.InterestRate = new(rate.Float64)
	}

	if due.Valid {
		d.DueDate = new(due.Time)
	}

	return &d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt, walletID *uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO debts (
			user_id, name, type, total_amount, remaining_amount, interest_rate, due_date, notes, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
		RETURNING id
	`

	err = dbTx.QueryRowContext(ctx, query,
		d.UserID, d.Name, d.Type, d.TotalAmount, d.RemainingAmount, d.InterestRate, d.DueDate,
		d.Notes, d.Status, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	if walletID != nil {
		entry := &transaction.Transaction{
			WalletID:  walletID,
			DebtID:    new(d.ID),
			Amount:    d.TotalAmount,
			Type:      transaction.TypeExpense,
			Category:  transaction.CategoryDebtCreation,
			Notes:     "Lent to " + d.Name,
			CreatedAt: d.CreatedAt,
		}

		if d.Type == debt.TypeOwedByYou {
			entry.Type = transaction.TypeIncome
			entry.Category = transaction.CategoryLoanProceeds
			entry.Notes = "Borrowed from " + d.Name
		}

		if _, err := txstore.Apply(ctx, dbTx, d.UserID, []*transaction.Transaction{entry}); err != nil {
			return err
		}
	}

	description := fmt.Sprintf("Lent ₱%s to %s", money.Format(d.TotalAmount), d.Name)
	if d.Type == debt.TypeOwedByYou {
		description = fmt.Sprintf("Borrowed ₱%s from %s", money.Format(d.TotalAmount), d.Name)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      d.UserID,
		Type:        activity.TypeDebtCreate,
		Description: description,
		Amount:      new(d.TotalAmount),
		RelatedID:   new(d.ID),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetDebt(ctx context.Context, userID, id uuid.UUID) (*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE user_id = $1 AND id = $2`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, debt.ErrNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) ListDebts(ctx context.Context, userID uuid.UUID) ([]*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debts: %w", err)
	}

	return debts, nil
}

func (s *Store) UpdateDebt(ctx context.Context, d *debt.Debt) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE debts
		SET name = $1, total_amount = $2, remaining_amount = $3, interest_rate = $4, due_date = $5,
			notes = NULLIF($6, ''), status = $7, updated_at = $8
		WHERE user_id = $9 AND id = $10
	`

	res, err := dbTx.ExecContext(ctx, query,
		d.Name, d.TotalAmount, d.RemainingAmount, d.InterestRate, d.DueDate,
		d.Notes, d.Status, d.UpdatedAt, d.UserID, d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return debt.ErrNotFound
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      d.UserID,
		Type:        activity.TypeDebtUpdate,
		Description: "Updated debt: " + d.Name,
		Amount:      new(d.RemainingAmount),
		RelatedID:   new(d.ID),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteDebt removes the debt; its payments go with it through the foreign
// key cascade.
func (s *Store) DeleteDebt(ctx context.Context, userID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var name string

	err = dbTx.QueryRowContext(ctx,
		`DELETE FROM debts WHERE user_id = $1 AND id = $2 RETURNING name`, userID, id,
	).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return debt.ErrNotFound
		}

		return fmt.Errorf("deleting debt: %w", err)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      userID,
		Type:        activity.TypeDebtDelete,
		Description: "Deleted debt: " + name,
		RelatedID:   new(id),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) MakePayment(ctx context.Context, userID, debtID uuid.UUID, params debt.PaymentParams) (*debt.Payment, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE user_id = $1 AND id = $2 FOR UPDATE`

	d, err := scanDebt(dbTx.QueryRowContext(ctx, query, userID, debtID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, debt.ErrNotFound
		}

		return nil, fmt.Errorf("locking debt: %w", err)
	}

	d.Pay(params.Amount)

	_, err = dbTx.ExecContext(ctx,
		`UPDATE debts SET remaining_amount = $1, status = $2, updated_at = $3 WHERE id = $4`,
		d.RemainingAmount, d.Status, params.Date, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating debt: %w", err)
	}

	p := &debt.Payment{
		UserID: userID,
		DebtID: d.ID,
		Amount: params.Amount,
		Date:   params.Date,
		Notes:  params.Notes,
	}

	if params.WalletID != nil {
		entry := &transaction.Transaction{
			WalletID:  params.WalletID,
			DebtID:    new(d.ID),
			DebtSign:  d.Type.Sign(),
			Amount:    params.Amount,
			Type:      transaction.TypeDebtPayment,
			Category:  transaction.CategoryDebtPayment,
			Notes:     params.Notes,
			CreatedAt: params.Date,
		}

		if _, err := txstore.Apply(ctx, dbTx, userID, []*transaction.Transaction{entry}); err != nil {
			return nil, err
		}

		p.TransactionID = new(entry.ID)
	}

	insert := `
		INSERT INTO debt_payments (user_id, debt_id, amount, date, transaction_id, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id
	`

	if err := dbTx.QueryRowContext(ctx, insert,
		p.UserID, p.DebtID, p.Amount, p.Date, p.TransactionID, p.Notes,
	).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	description := fmt.Sprintf("Received ₱%s from %s", money.Format(p.Amount), d.Name)
	if d.Type == debt.TypeOwedByYou {
		description = fmt.Sprintf("Paid ₱%s to %s", money.Format(p.Amount), d.Name)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      userID,
		Type:        activity.TypeDebtPayment,
		Description: description,
		Amount:      new(p.Amount),
		RelatedID:   new(d.ID),
	}); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, userID, debtID uuid.UUID) ([]*debt.Payment, error) {
	query := `
		SELECT id, user_id, debt_id, amount, date, transaction_id, notes
		FROM debt_payments
		WHERE user_id = $1 AND debt_id = $2
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, debtID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*debt.Payment

	for rows.Next() {
		var p debt.Payment

		var notes sql.NullString

		if err := rows.Scan(&p.ID, &p.UserID, &p.DebtID, &p.Amount, &p.Date, &p.TransactionID, &notes); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Notes = notes.String
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}
