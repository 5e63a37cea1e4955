package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	activitystore "github.com/MrJamesThe3rd/savr/internal/activity/store"
	"github.com/MrJamesThe3rd/savr/internal/database"
	"github.com/MrJamesThe3rd/savr/internal/goal"
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

const selectGoalColumns = `
	id, user_id, slug, target_amount, target_months, start_date,
	required_monthly_savings, required_weekly_savings, required_daily_savings, deadline, created_at
`

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	var start sql.NullTime

	if err := s.Scan(
		&g.ID, &g.UserID, &g.Slug, &g.TargetAmount, &g.TargetMonths, &start,
		&g.RequiredMonthlySavings, &g.RequiredWeeklySavings, &g.RequiredDailySavings, &g.Deadline, &g.CreatedAt,
	); err != nil {
		return nil, err
	}

	if start.Valid {
		g.StartDate = new(start.Time)
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO goals (
			user_id, slug, target_amount, target_months, start_date,
			required_monthly_savings, required_weekly_savings, required_daily_savings, deadline, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err = dbTx.QueryRowContext(ctx, query,
		g.UserID, g.Slug, g.TargetAmount, g.TargetMonths, g.StartDate,
		g.RequiredMonthlySavings, g.RequiredWeeklySavings, g.RequiredDailySavings, g.Deadline, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return goal.ErrSlugTaken
		}

		return fmt.Errorf("creating goal: %w", err)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      g.UserID,
		Type:        activity.TypeGoalCreate,
		Description: "Created goal: " + g.Slug,
		Amount:      new(g.TargetAmount),
		RelatedID:   new(g.ID),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE user_id = $1 AND id = $2`

	return s.getOne(ctx, query, userID, id)
}

func (s *Store) GetGoalBySlug(ctx context.Context, userID uuid.UUID, slug string) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE user_id = $1 AND slug = $2`

	return s.getOne(ctx, query, userID, slug)
}

func (s *Store) getOne(ctx context.Context, query string, args ...any) (*goal.Goal, error) {
	g, err := scanGoal(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE goals
		SET slug = $1, target_amount = $2, target_months = $3, start_date = $4,
			required_monthly_savings = $5, required_weekly_savings = $6, required_daily_savings = $7, deadline = $8
		WHERE user_id = $9 AND id = $10
	`

	res, err := dbTx.ExecContext(ctx, query,
		g.Slug, g.TargetAmount, g.TargetMonths, g.StartDate,
		g.RequiredMonthlySavings, g.RequiredWeeklySavings, g.RequiredDailySavings, g.Deadline,
		g.UserID, g.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return goal.ErrSlugTaken
		}

		return fmt.Errorf("updating goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      g.UserID,
		Type:        activity.TypeGoalUpdate,
		Description: "Updated goal: " + g.Slug,
		Amount:      new(g.TargetAmount),
		RelatedID:   new(g.ID),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var slug string

	err = dbTx.QueryRowContext(ctx,
		`DELETE FROM goals WHERE user_id = $1 AND id = $2 RETURNING slug`, userID, id,
	).Scan(&slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return goal.ErrNotFound
		}

		return fmt.Errorf("deleting goal: %w", err)
	}

	if err := activitystore.Record(ctx, dbTx, &activity.Activity{
		UserID:      userID,
		Type:        activity.TypeGoalDelete,
		Description: "Deleted goal: " + slug,
		RelatedID:   new(id),
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
