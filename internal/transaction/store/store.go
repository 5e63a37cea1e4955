package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	activitystore "github.com/MrJamesThe3rd/savr/internal/activity/store"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
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

// Expected column order matches selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var method, notes sql.NullString

	var debtSign sql.NullInt64

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.WalletID, &tx.TransferFromWalletID, &tx.TransferToWalletID,
		&tx.GoalID, &tx.DebtID, &debtSign, &tx.Amount, &typeStr, &tx.Category, &method, &notes, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Method = method.String
	tx.Notes = notes.String
	tx.DebtSign = debtSign.Int64

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.user_id, t.wallet_id, t.transfer_from_wallet_id, t.transfer_to_wallet_id,
	t.goal_id, t.debt_id, t.debt_sign, t.amount, t.type, t.category, t.method, t.notes, t.created_at
`

// Wallet is the locked state of one wallet inside Apply.
type Wallet struct {
	ID      uuid.UUID
	Name    string
	Balance int64
}

// Apply writes txs inside dbTx. The wallets they touch are locked in id
// order, ownership of wallets and tagged goals is checked, every effect is applied in sequence and no
// balance may go below zero. It returns the locked wallets after the update.
func Apply(
	ctx context.Context,
	dbTx *sql.Tx,
	userID uuid.UUID,
	txs []*transaction.Transaction,
) (map[uuid.UUID]*Wallet, error) {
	var ids []string

	for _, tx := range txs {
		for _, id := range []*uuid.UUID{tx.WalletID, tx.TransferFromWalletID, tx.TransferToWalletID} {
			if id != nil && !slices.Contains(ids, id.String()) {
				ids = append(ids, id.String())
			}
		}
	}

	for _, tx := range txs {
		if tx.GoalID == nil {
			continue
		}

		if err := checkGoal(ctx, dbTx, userID, *tx.GoalID); err != nil {
			return nil, err
		}
	}

	wallets, err := lockWallets(ctx, dbTx, userID, ids)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		for _, e := range tx.Effects() {
			w := wallets[e.WalletID]

			if w.Balance+e.Delta < 0 {
				return nil, fmt.Errorf("%w in %s", transaction.ErrInsufficientFunds, w.Name)
			}

			w.Balance += e.Delta
		}
	}

	for _, w := range wallets {
		if _, err := dbTx.ExecContext(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`, w.Balance, w.ID); err != nil {
			return nil, fmt.Errorf("updating wallet balance: %w", err)
		}
	}

	for _, tx := range txs {
		if err := insertTransaction(ctx, dbTx, userID, tx); err != nil {
			return nil, err
		}
	}

	return wallets, nil
}

func checkGoal(ctx context.Context, dbTx *sql.Tx, userID, goalID uuid.UUID) error {
	var one int

	err := dbTx.QueryRowContext(ctx,
		`SELECT 1 FROM goals WHERE user_id = $1 AND id = $2 FOR SHARE`,
		userID, goalID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return transaction.ErrGoalNotFound
	}

	if err != nil {
		return fmt.Errorf("checking goal: %w", err)
	}

	return nil
}

func lockWallets(ctx context.Context, dbTx *sql.Tx, userID uuid.UUID, ids []string) (map[uuid.UUID]*Wallet, error) {
	wallets := make(map[uuid.UUID]*Wallet, len(ids))
	if len(ids) == 0 {
		return wallets, nil
	}

	slices.Sort(ids)

	query := `
		SELECT id, name, balance
		FROM wallets
		WHERE user_id = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE
	`

	rows, err := dbTx.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("locking wallets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Balance); err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets[w.ID] = &w
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallets: %w", err)
	}

	if len(wallets) != len(ids) {
		return nil, transaction.ErrWalletNotFound
	}

	return wallets, nil
}

func insertTransaction(ctx context.Context, dbTx *sql.Tx, userID uuid.UUID, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			user_id, wallet_id, transfer_from_wallet_id, transfer_to_wallet_id, goal_id, debt_id,
			debt_sign, amount, type, category, method, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), $13)
		RETURNING id
	`

	tx.UserID = userID

	err := dbTx.QueryRowContext(ctx, query,
		userID,
		tx.WalletID,
		tx.TransferFromWalletID,
		tx.TransferToWalletID,
		tx.GoalID,
		tx.DebtID,
		tx.DebtSign,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Method,
		tx.Notes,
		tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) LogTransactions(ctx context.Context, userID uuid.UUID, txs []*transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	wallets, err := Apply(ctx, dbTx, userID, txs)
	if err != nil {
		return err
	}

	for _, a := range describe(userID, txs, wallets) {
		if err := activitystore.Record(ctx, dbTx, a); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// describe builds the feed entries for a write: one per entry for a single
// log, one summary for a batch import.
func describe(userID uuid.UUID, txs []*transaction.Transaction, wallets map[uuid.UUID]*Wallet) []*activity.Activity {
	name := func(id *uuid.UUID) string {
		if id == nil || wallets[*id] == nil {
			return "unknown wallet"
		}

		return wallets[*id].Name
	}

	if len(txs) > 1 {
		var total int64
		for _, tx := range txs {
			total += tx.Amount
		}

		return []*activity.Activity{{
			UserID:      userID,
			Type:        activity.TypeImport,
			Description: fmt.Sprintf("Imported %d transactions into %s", len(txs), name(txs[0].WalletID)),
			Amount:      new(total),
			RelatedID:   txs[0].WalletID,
		}}
	}

	tx := txs[0]
	a := &activity.Activity{
		UserID:    userID,
		Amount:    new(tx.Amount),
		RelatedID: tx.WalletID,
	}

	switch tx.Type {
	case transaction.TypeTransfer:
		a.Type = activity.TypeTransfer
		a.Description = fmt.Sprintf("Transferred ₱%s from %s to %s",
			money.Format(tx.Amount), name(tx.TransferFromWalletID), name(tx.TransferToWalletID))
		a.RelatedID = tx.TransferFromWalletID
	case transaction.TypeIncome:
		a.Type = activity.TypeIncome
		a.Description = fmt.Sprintf("Income: %s (%s)", tx.Category, name(tx.WalletID))
	case transaction.TypeSavings:
		a.Type = activity.TypeSavings
		a.Description = fmt.Sprintf("Savings: %s (%s)", tx.Category, name(tx.WalletID))
	default:
		a.Type = activity.TypeExpense
		a.Description = fmt.Sprintf("Expense: %s (%s)", tx.Category, name(tx.WalletID))
	}

	return []*activity.Activity{a}
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1 AND t.id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	if filter.WalletID != nil {
		query += fmt.Sprintf(
			" AND (t.wallet_id = $%[1]d OR t.transfer_from_wallet_id = $%[1]d OR t.transfer_to_wallet_id = $%[1]d)",
			argIdx,
		)

		args = append(args, *filter.WalletID)
		argIdx++
	}

	if filter.GoalID != nil {
		query += fmt.Sprintf(" AND t.goal_id = $%d", argIdx)

		args = append(args, *filter.GoalID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
	}

	query += " ORDER BY t.created_at ASC, t.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}
