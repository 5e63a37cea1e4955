package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/slug"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	GetGoalBySlug(ctx context.Context, userID uuid.UUID, slug string) (*Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Slug         string
	TargetAmount int64
	TargetMonths int
	StartDate    *time.Time
}

type UpdateParams struct {
	Slug         *string
	TargetAmount *int64
	TargetMonths *int
	StartDate    *time.Time
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Goal, error) {
	goalSlug := slug.Make(params.Slug)
	if goalSlug == "" {
		return nil, ErrInvalidSlug
	}

	if err := validateTarget(params.TargetAmount, params.TargetMonths); err != nil {
		return nil, err
	}

	now := s.now()

	g := &Goal{
		UserID:       userID,
		Slug:         goalSlug,
		TargetAmount: params.TargetAmount,
		TargetMonths: params.TargetMonths,
		StartDate:    params.StartDate,
		CreatedAt:    now,
	}

	g.apply(ComputeRequired(g.TargetAmount, g.TargetMonths, g.Anchor()))

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, userID, id)
}

func (s *Service) BySlug(ctx context.Context, userID uuid.UUID, goalSlug string) (*Goal, error) {
	return s.repo.GetGoalBySlug(ctx, userID, slug.Make(goalSlug))
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// Update merges params into the stored goal and derives the required
// savings again. Without a start date the deadline stays anchored at the
// goal's creation time.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Slug != nil {
		goalSlug := slug.Make(*params.Slug)
		if goalSlug == "" {
			return nil, ErrInvalidSlug
		}

		g.Slug = goalSlug
	}

	if params.TargetAmount != nil {
		g.TargetAmount = *params.TargetAmount
	}

	if params.TargetMonths != nil {
		g.TargetMonths = *params.TargetMonths
	}

	if params.StartDate != nil {
		g.StartDate = params.StartDate
	}

	if err := validateTarget(g.TargetAmount, g.TargetMonths); err != nil {
		return nil, err
	}

	g.apply(ComputeRequired(g.TargetAmount, g.TargetMonths, g.Anchor()))

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}

func validateTarget(amount int64, months int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, amount)
	}

	if months <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMonths, months)
	}

	return nil
}
