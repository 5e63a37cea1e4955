package debt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	// CreateDebt inserts d. With a wallet, the lent amount leaves it or the
	// borrowed amount enters it as a ledger entry.
	CreateDebt(ctx context.Context, d *Debt, walletID *uuid.UUID) error
	GetDebt(ctx context.Context, userID, id uuid.UUID) (*Debt, error)
	ListDebts(ctx context.Context, userID uuid.UUID) ([]*Debt, error)
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, userID, id uuid.UUID) error
	// MakePayment locks the debt, applies Debt.Pay and stores the payment,
	// moving money through the wallet when one is given.
	MakePayment(ctx context.Context, userID, debtID uuid.UUID, params PaymentParams) (*Payment, error)
	ListPayments(ctx context.Context, userID, debtID uuid.UUID) ([]*Payment, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Name         string
	Type         Type
	TotalAmount  int64
	InterestRate *float64
	DueDate      *time.Time
	Notes        string
	WalletID     *uuid.UUID
}

type UpdateParams struct {
	Name         *string
	TotalAmount  *int64
	InterestRate *float64
	DueDate      *time.Time
	Notes        *string
}

type PaymentParams struct {
	Amount   int64
	WalletID *uuid.UUID
	Notes    string
	Date     time.Time
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Debt, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, params.Type)
	}

	if params.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()

	d := &Debt{
		UserID:          userID,
		Name:            name,
		Type:            params.Type,
		TotalAmount:     params.TotalAmount,
		RemainingAmount: params.TotalAmount,
		InterestRate:    params.InterestRate,
		DueDate:         params.DueDate,
		Notes:           params.Notes,
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateDebt(ctx, d, params.WalletID); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Debt, error) {
	return s.repo.GetDebt(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Debt, error) {
	return s.repo.ListDebts(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Debt, error) {
	d, err := s.repo.GetDebt(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrInvalidName
		}

		d.Name = name
	}

	if params.TotalAmount != nil {
		if *params.TotalAmount <= 0 {
			return nil, ErrInvalidAmount
		}

		d.SetTotal(*params.TotalAmount)
	}

	if params.InterestRate != nil {
		d.InterestRate = params.InterestRate
	}

	if params.DueDate != nil {
		d.DueDate = params.DueDate
	}

	if params.Notes != nil {
		d.Notes = *params.Notes
	}

	d.UpdatedAt = s.now()

	if err := s.repo.UpdateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// Delete removes the debt and its payment history. Ledger entries that
// referenced it stay and are skipped by replay.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteDebt(ctx, userID, id)
}

func (s *Service) MakePayment(ctx context.Context, userID, debtID uuid.UUID, params PaymentParams) (*Payment, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if params.Date.IsZero() {
		params.Date = s.now()
	}

	return s.repo.MakePayment(ctx, userID, debtID, params)
}

// Payments lists a debt's payments newest first.
func (s *Service) Payments(ctx context.Context, userID, debtID uuid.UUID) ([]*Payment, error) {
	if _, err := s.repo.GetDebt(ctx, userID, debtID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, userID, debtID)
}

func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	debts, err := s.repo.ListDebts(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("listing debts: %w", err)
	}

	return Summarize(debts), nil
}
