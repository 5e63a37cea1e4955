package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/slug"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	// CreateWallet inserts w and records a non-zero opening balance as an
	// income entry so replay reproduces it.
	CreateWallet(ctx context.Context, w *Wallet) error
	GetWallet(ctx context.Context, userID, id uuid.UUID) (*Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]*Wallet, error)
	// UpdateWallet applies params; a balance change is recorded as an
	// adjustment entry for the difference.
	UpdateWallet(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Wallet, error)
	DeleteWallet(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Slug    string
	Type    Type
	Balance int64
}

type UpdateParams struct {
	Name    *string
	Slug    *string
	Type    *Type
	Balance *int64
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Wallet, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, params.Type)
	}

	if params.Balance < 0 {
		return nil, ErrNegativeBalance
	}

	source := params.Slug
	if source == "" {
		source = name
	}

	walletSlug := slug.Make(source)
	if walletSlug == "" {
		return nil, ErrInvalidName
	}

	w := &Wallet{
		UserID:  userID,
		Slug:    walletSlug,
		Name:    name,
		Type:    params.Type,
		Balance: params.Balance,
	}

	if err := s.repo.CreateWallet(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Wallet, error) {
	return s.repo.GetWallet(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Wallet, error) {
	return s.repo.ListWallets(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Wallet, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrInvalidName
		}

		params.Name = &name
	}

	if params.Slug != nil {
		walletSlug := slug.Make(*params.Slug)
		if walletSlug == "" {
			return nil, ErrInvalidName
		}

		params.Slug = &walletSlug
	}

	if params.Type != nil && !params.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, *params.Type)
	}

	if params.Balance != nil && *params.Balance < 0 {
		return nil, ErrNegativeBalance
	}

	return s.repo.UpdateWallet(ctx, userID, id, params)
}

// Delete removes the wallet. Its past entries stay in the ledger and are
// skipped by replay.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteWallet(ctx, userID, id)
}
