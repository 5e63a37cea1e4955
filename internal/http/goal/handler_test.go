package goal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/auth"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	goalhttp "github.com/MrJamesThe3rd/savr/internal/http/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

func TestHandler(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()
	created := time.Now().AddDate(0, 0, -10)

	stored := &goal.Goal{
		ID:                   goalID,
		UserID:               userID,
		Slug:                 "laptop",
		TargetAmount:         3_000_000,
		TargetMonths:         3,
		RequiredDailySavings: 3_000_000 / (3 * goal.DaysPerMonth),
		Deadline:             created.AddDate(0, 3, 0),
		CreatedAt:            created,
	}

	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupRepo  func(m *goal.MockRepository)
		setupSrc   func(m *analytics.MockSource)
		wantStatus int
		wantBody   []string
	}

	tests := []testCase{
		{
			name:   "Create",
			method: http.MethodPost,
			path:   "/goals",
			body:   `{"slug":"New Laptop","target_amount":"30000","target_months":3}`,
			setupRepo: func(m *goal.MockRepository) {
				m.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *goal.Goal) error {
					assert.Equal(t, "new-laptop", g.Slug)
					assert.Equal(t, int64(3_000_000), g.TargetAmount)
					g.ID = goalID

					return nil
				})
			},
			wantStatus: http.StatusCreated,
			wantBody:   []string{`"slug":"new-laptop"`, `"required_monthly_savings":"10000"`},
		},
		{
			name:       "CreateRejectsZeroMonths",
			method:     http.MethodPost,
			path:       "/goals",
			body:       `{"slug":"laptop","target_amount":"30000","target_months":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "CreateDuplicateSlug",
			method: http.MethodPost,
			path:   "/goals",
			body:   `{"slug":"laptop","target_amount":"30000","target_months":3}`,
			setupRepo: func(m *goal.MockRepository) {
				m.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).Return(goal.ErrSlugTaken)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "BySlug",
			method: http.MethodGet,
			path:   "/goals/slug/Laptop",
			setupRepo: func(m *goal.MockRepository) {
				m.EXPECT().GetGoalBySlug(gomock.Any(), userID, "laptop").Return(stored, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"id":"` + goalID.String() + `"`},
		},
		{
			name:   "GetUnknown",
			method: http.MethodGet,
			path:   "/goals/" + goalID.String(),
			setupRepo: func(m *goal.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), userID, goalID).Return(nil, goal.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "GetBadID",
			method:     http.MethodGet,
			path:       "/goals/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Progress",
			method: http.MethodGet,
			path:   "/goals/" + goalID.String() + "/progress",
			setupSrc: func(m *analytics.MockSource) {
				m.EXPECT().GetGoal(gomock.Any(), userID, goalID).Return(stored, nil)
				m.EXPECT().ListTransactions(gomock.Any(), userID).Return([]*transaction.Transaction{
					{Type: transaction.TypeIncome, GoalID: &goalID, Amount: 1_000_000, CreatedAt: created},
					{Type: transaction.TypeExpense, GoalID: &goalID, Amount: 250_000, CreatedAt: created},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"saved":"7500"`, `"remaining":"22500"`, `"progress_percentage":25`},
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			path:   "/goals/" + goalID.String(),
			setupRepo: func(m *goal.MockRepository) {
				m.EXPECT().DeleteGoal(gomock.Any(), userID, goalID).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			source := analytics.NewMockSource(ctrl)
			if tt.setupSrc != nil {
				tt.setupSrc(source)
			}

			h := goalhttp.NewHandler(goal.NewService(repo), analytics.NewService(source, time.UTC, analytics.DefaultTopCategories))

			r := chi.NewRouter()
			r.Route("/goals", h.Routes)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req = req.WithContext(auth.WithUser(req.Context(), userID))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
