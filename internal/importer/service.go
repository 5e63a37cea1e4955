package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=suggester_mock.go -package=importer
type Suggester interface {
	Suggest(ctx context.Context, userID uuid.UUID, notes string) (string, error)
}

type Service struct {
	parser    *Parser
	suggester Suggester
}

func NewService(loc *time.Location, suggester Suggester) *Service {
	return &Service{
		parser:    NewParser(loc),
		suggester: suggester,
	}
}

// Parse reads r and fills in missing categories from the user's learned
// note patterns.
func (s *Service) Parse(ctx context.Context, userID uuid.UUID, r io.Reader) ([]transaction.ImportRow, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	suggested := make(map[string]string)

	for i := range rows {
		if rows[i].Category != "" || rows[i].Notes == "" {
			continue
		}

		category, seen := suggested[rows[i].Notes]
		if !seen {
			category, err = s.suggester.Suggest(ctx, userID, rows[i].Notes)
			if err != nil {
				return nil, fmt.Errorf("suggest category: %w", err)
			}

			suggested[rows[i].Notes] = category
		}

		rows[i].Category = category
	}

	return rows, nil
}
