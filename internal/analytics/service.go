package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=analytics

// Source reads the ledger of a single user.
type Source interface {
	ListWallets(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*goal.Goal, error)
	ListDebts(ctx context.Context, userID uuid.UUID) ([]*debt.Debt, error)
}

const DefaultTopCategories = 5

type Service struct {
	source Source
	loc    *time.Location
	topN   int
	now    func() time.Time
	group  singleflight.Group
}

// NewService ranks topN spending categories on the dashboard, falling back
// to DefaultTopCategories when topN is not positive.
func NewService(source Source, loc *time.Location, topN int) *Service {
	if topN <= 0 {
		topN = DefaultTopCategories
	}

	return &Service{
		source: source,
		loc:    loc,
		topN:   topN,
		now:    time.Now,
	}
}

// Dashboard computes the full set of dashboard figures for userID.
// Concurrent requests for the same user share one computation.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	return shared(ctx, s, "dashboard:"+userID.String(), func(ctx context.Context) (*DashboardStats, error) {
		snap, err := s.snapshot(ctx, userID, true)
		if err != nil {
			return nil, err
		}

		return BuildDashboard(snap, s.now(), s.loc, s.topN), nil
	})
}

// WalletHistory replays the ledger into a balance series. With a nil
// walletID the series is the sum over all wallets.
func (s *Service) WalletHistory(ctx context.Context, userID uuid.UUID, g Granularity, walletID *uuid.UUID) ([]HistoryPoint, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("history:%s:%s", userID, g)
	if walletID != nil {
		key += ":" + walletID.String()
	}

	return shared(ctx, s, key, func(ctx context.Context) ([]HistoryPoint, error) {
		snap, err := s.snapshot(ctx, userID, false)
		if err != nil {
			return nil, err
		}

		if walletID != nil && !slices.ContainsFunc(snap.Wallets, func(w *wallet.Wallet) bool { return w.ID == *walletID }) {
			return nil, wallet.ErrNotFound
		}

		now := s.now()

		return Replay(ReplayParams{
			Wallets:      snap.Wallets,
			Transactions: snap.Transactions,
			WalletID:     walletID,
			WindowStart:  g.WindowStart(now),
			Now:          now,
			Granularity:  g,
			Location:     s.loc,
		}), nil
	})
}

// GoalProgress measures one goal against the entries tagged to it.
func (s *Service) GoalProgress(ctx context.Context, userID, goalID uuid.UUID) (*GoalProgress, error) {
	var (
		g   *goal.Goal
		txs []*transaction.Transaction
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		g, err = s.source.GetGoal(egCtx, userID, goalID)

		return err
	})

	eg.Go(func() error {
		var err error
		if txs, err = s.source.ListTransactions(egCtx, userID); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return ComputeGoalProgress(g, txs, s.now()), nil
}

// snapshot fetches the ledger concurrently. Goals and debts are only read
// when full is set.
func (s *Service) snapshot(ctx context.Context, userID uuid.UUID, full bool) (Snapshot, error) {
	var snap Snapshot

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		if snap.Wallets, err = s.source.ListWallets(egCtx, userID); err != nil {
			return fmt.Errorf("list wallets: %w", err)
		}

		return nil
	})

	eg.Go(func() error {
		var err error
		if snap.Transactions, err = s.source.ListTransactions(egCtx, userID); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		return nil
	})

	if full {
		eg.Go(func() error {
			var err error
			if snap.Debts, err = s.source.ListDebts(egCtx, userID); err != nil {
				return fmt.Errorf("list debts: %w", err)
			}

			return nil
		})

		eg.Go(func() error {
			var err error
			if snap.Goals, err = s.source.ListGoals(egCtx, userID); err != nil {
				return fmt.Errorf("list goals: %w", err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Snapshot{}, err
	}

	slog.Debug("ledger snapshot loaded",
		"user_id", userID,
		"wallets", len(snap.Wallets),
		"transactions", len(snap.Transactions),
		"goals", len(snap.Goals),
		"debts", len(snap.Debts),
	)

	return snap, nil
}

// shared runs fn once per key among concurrent callers. The computation is
// detached from the first caller's cancellation so a disconnecting client
// does not fail the others; each caller still stops waiting on its own ctx.
func shared[T any](ctx context.Context, s *Service, key string, fn func(context.Context) (T, error)) (T, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}

		return res.Val.(T), nil
	}
}
