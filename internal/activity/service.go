package activity

import (
	"context"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=activity
type Repository interface {
	ListActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*Activity, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the newest activities first. A non-positive limit means the
// default; anything above MaxLimit is capped.
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]*Activity, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return s.repo.ListActivities(ctx, userID, limit)
}
