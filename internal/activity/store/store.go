package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/activity"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so other stores can
// record activities inside their own database transaction.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts a and fills in its ID and CreatedAt.
func Record(ctx context.Context, q Querier, a *activity.Activity) error {
	query := `
		INSERT INTO activities (user_id, type, description, amount, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		a.UserID,
		a.Type,
		a.Description,
		a.Amount,
		a.RelatedID,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}

	return nil
}

func (s *Store) ListActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*activity.Activity, error) {
	query := `
		SELECT id, user_id, type, description, amount, related_id, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*activity.Activity

	for rows.Next() {
		var a activity.Activity

		var typeStr string

		var amount sql.NullInt64

		if err := rows.Scan(&a.ID, &a.UserID, &typeStr, &a.Description, &amount, &a.RelatedID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		a.Type = activity.Type(typeStr)
		if amount.Valid {
			a.Amount = new(amount.Int64)
		}

		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return activities, nil
}
