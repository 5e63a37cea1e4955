package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

type ledger struct {
	wallets      *wallet.Service
	transactions *transaction.Service
	goals        *goal.Service
	debts        *debt.Service
}

// NewSource reads the ledger through the domain services.
func NewSource(w *wallet.Service, t *transaction.Service, g *goal.Service, d *debt.Service) Source {
	return &ledger{wallets: w, transactions: t, goals: g, debts: d}
}

func (l *ledger) ListWallets(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	return l.wallets.List(ctx, userID)
}

func (l *ledger) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	return l.transactions.List(ctx, userID, transaction.ListFilter{})
}

func (l *ledger) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	return l.goals.List(ctx, userID)
}

func (l *ledger) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*goal.Goal, error) {
	return l.goals.Get(ctx, userID, goalID)
}

func (l *ledger) ListDebts(ctx context.Context, userID uuid.UUID) ([]*debt.Debt, error) {
	return l.debts.List(ctx, userID)
}
