package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/goal"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    goal.CreateParams
		setupMock func(m *goal.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: goal.CreateParams{Slug: "New Laptop", TargetAmount: 1_000_000, TargetMonths: 10, StartDate: &start},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal) error {
						assert.Equal(t, "new-laptop", g.Slug)
						assert.Equal(t, userID, g.UserID)
						assert.InDelta(t, 100_000, g.RequiredMonthlySavings, 1e-9)
						assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), g.Deadline)
						g.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "ZeroTarget",
			params:  goal.CreateParams{Slug: "x", TargetAmount: 0, TargetMonths: 10},
			wantErr: goal.ErrInvalidTarget,
		},
		{
			name:    "ZeroMonths",
			params:  goal.CreateParams{Slug: "x", TargetAmount: 100, TargetMonths: 0},
			wantErr: goal.ErrInvalidMonths,
		},
		{
			name:    "EmptySlug",
			params:  goal.CreateParams{Slug: " !! ", TargetAmount: 100, TargetMonths: 1},
			wantErr: goal.ErrInvalidSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := goal.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	stored := func() *goal.Goal {
		return &goal.Goal{
			ID:           goalID,
			UserID:       userID,
			Slug:         "trip",
			TargetAmount: 600_000,
			TargetMonths: 6,
			CreatedAt:    created,
		}
	}

	type testCase struct {
		name      string
		params    goal.UpdateParams
		setupMock func(m *goal.MockRepository)
		wantErr   error
		check     func(t *testing.T, g *goal.Goal)
	}

	tests := []testCase{
		{
			name:   "RecomputesFromCreation",
			params: goal.UpdateParams{TargetMonths: new(12)},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), userID, goalID).Return(stored(), nil)
				m.EXPECT().UpdateGoal(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, g *goal.Goal) {
				assert.Equal(t, 12, g.TargetMonths)
				assert.InDelta(t, 50_000, g.RequiredMonthlySavings, 1e-9)
				assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), g.Deadline)
			},
		},
		{
			name:   "RejectsZeroTarget",
			params: goal.UpdateParams{TargetAmount: new(int64(0))},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), userID, goalID).Return(stored(), nil)
			},
			wantErr: goal.ErrInvalidTarget,
		},
		{
			name:   "NotFound",
			params: goal.UpdateParams{},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), userID, goalID).Return(nil, goal.ErrNotFound)
			},
			wantErr: goal.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := goal.NewService(repo)
			got, err := svc.Update(context.Background(), userID, goalID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_BySlug(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)
	userID := uuid.New()

	repo.EXPECT().GetGoalBySlug(gomock.Any(), userID, "emergency-fund").Return(&goal.Goal{Slug: "emergency-fund"}, nil)

	got, err := svc.BySlug(context.Background(), userID, "Emergency Fund")
	require.NoError(t, err)
	assert.Equal(t, "emergency-fund", got.Slug)
}
