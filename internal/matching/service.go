package matching

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidMapping = errors.New("pattern and category are required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindCategory(ctx context.Context, userID uuid.UUID, notes string) (string, error)
	CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern found in
// notes, ignoring case. Returns empty string if nothing matches.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", nil
	}

	return s.repo.FindCategory(ctx, userID, notes)
}

// Learn remembers that notes containing rawPattern belong to category.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, rawPattern, category string) error {
	rawPattern = strings.TrimSpace(rawPattern)
	category = strings.TrimSpace(category)

	if rawPattern == "" || category == "" {
		return ErrInvalidMapping
	}

	return s.repo.CreateMapping(ctx, userID, rawPattern, category)
}
