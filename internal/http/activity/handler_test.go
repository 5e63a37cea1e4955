package activity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	"github.com/MrJamesThe3rd/savr/internal/auth"
	activityhttp "github.com/MrJamesThe3rd/savr/internal/http/activity"
)

func TestHandler_List(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name       string
		path       string
		setupMock  func(m *activity.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "DefaultLimit",
			path: "/activities",
			setupMock: func(m *activity.MockRepository) {
				m.EXPECT().ListActivities(gomock.Any(), userID, activity.DefaultLimit).Return([]*activity.Activity{
					{Type: activity.TypeExpense, Description: "Expense: Food", Amount: new(int64(12_550))},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"amount":"125.5"`,
		},
		{
			name: "CappedLimit",
			path: "/activities?limit=500",
			setupMock: func(m *activity.MockRepository) {
				m.EXPECT().ListActivities(gomock.Any(), userID, activity.MaxLimit).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "BadLimit",
			path:       "/activities?limit=ten",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := activity.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			r := chi.NewRouter()
			r.Route("/activities", activityhttp.NewHandler(activity.NewService(repo)).Routes)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req = req.WithContext(auth.WithUser(req.Context(), userID))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
