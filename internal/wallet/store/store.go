package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	activitystore "github.com/MrJamesThe3rd/savr/internal/activity/store"
	"github.com/MrJamesThe3rd/savr/internal/database"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	txstore "github.com/MrJamesThe3rd/savr/internal/transaction/store"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
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

const selectWalletColumns = `id, user_id, slug, name, type, balance, created_at`

func scanWallet(s scanner) (*wallet.Wallet, error) {
	var w wallet.Wallet

	var typeStr string

	if err := s.Scan(&w.ID, &w.UserID, &w.Slug, &w.Name, &typeStr, &w.Balance, &w.CreatedAt); err != nil {
		return nil, err
	}

	w.Type = wallet.Type(typeStr)

	return &w, nil
}

func (s *Store) CreateWallet(ctx context.Context, w *wallet.Wallet) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO wallets (user_id, slug, name, type, balance, created_at)
		VALUES ($1, $2, $3, $4, 0, NOW())
		RETURNING id, created_at
	`

	if err := dbTx.QueryRowContext(ctx, query, w.UserID, w.Slug, w.Name, w.Type).Scan(&w.ID, &w.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return wallet.ErrSlugTaken
		}

		return fmt.Errorf("creating wallet: %w", err)
	}

	if w.Balance > 0 {
		opening := &transaction.Transaction{
			WalletID:  new(w.ID),
			Amount:    w.Balance,
			Type:      transaction.TypeIncome,
			Category:  transaction.CategoryOpeningBalance,
			CreatedAt: w.CreatedAt,
		}

		if _, err := txstore.Apply(ctx, dbTx, w.UserID, []*transaction.Transaction{opening}); err != nil {
			return fmt.Errorf("recording opening balance: %w", err)
		}
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      w.UserID,
		Type:        activity.TypeWalletCreate,
		Description: "Created wallet: " + w.Name,
		Amount:      new(w.Balance),
		RelatedID:   new(w.ID),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetWallet(ctx context.Context, userID, id uuid.UUID) (*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallets WHERE user_id = $1 AND id = $2`

	w, err := scanWallet(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	return w, nil
}

func (s *Store) ListWallets(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallets: %w", err)
	}

	return wallets, nil
}

func (s *Store) UpdateWallet(ctx context.Context, userID, id uuid.UUID, params wallet.UpdateParams) (*wallet.Wallet, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectWalletColumns + ` FROM wallets WHERE user_id = $1 AND id = $2 FOR UPDATE`

	w, err := scanWallet(dbTx.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("locking wallet: %w", err)
	}

	if params.Name != nil {
		w.Name = *params.Name
	}

	if params.Slug != nil {
		w.Slug = *params.Slug
	}

	if params.Type != nil {
		w.Type = *params.Type
	}

	update := `UPDATE wallets SET name = $1, slug = $2, type = $3 WHERE id = $4`
	if _, err := dbTx.ExecContext(ctx, update, w.Name, w.Slug, w.Type, w.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, wallet.ErrSlugTaken
		}

		return nil, fmt.Errorf("updating wallet: %w", err)
	}

	if params.Balance != nil && *params.Balance != w.Balance {
		adjustment := balanceAdjustment(w, *params.Balance)

		locked, err := txstore.Apply(ctx, dbTx, userID, []*transaction.Transaction{adjustment})
		if err != nil {
			return nil, fmt.Errorf("recording balance adjustment: %w", err)
		}

		w.Balance = locked[w.ID].Balance
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      userID,
		Type:        activity.TypeWalletUpdate,
		Description: "Updated wallet: " + w.Name,
		Amount:      new(w.Balance),
		RelatedID:   new(w.ID),
	}); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return w, nil
}

func balanceAdjustment(w *wallet.Wallet, target int64) *transaction.Transaction {
	tx := &transaction.Transaction{
		WalletID:  new(w.ID),
		Type:      transaction.TypeIncome,
		Amount:    target - w.Balance,
		Category:  transaction.CategoryAdjustment,
		CreatedAt: time.Now(),
	}

	if tx.Amount < 0 {
		tx.Type = transaction.TypeExpense
		tx.Amount = -tx.Amount
	}

	return tx
}

func (s *Store) DeleteWallet(ctx context.Context, userID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var name string

	err = dbTx.QueryRowContext(ctx,
		`DELETE FROM wallets WHERE user_id = $1 AND id = $2 RETURNING name`, userID, id,
	).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return wallet.ErrNotFound
		}

		return fmt.Errorf("deleting wallet: %w", err)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      userID,
		Type:        activity.TypeWalletDelete,
		Description: "Deleted wallet: " + name,
		RelatedID:   new(id),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
