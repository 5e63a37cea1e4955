package matching_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/auth"
	matchinghttp "github.com/MrJamesThe3rd/savr/internal/http/matching"
	"github.com/MrJamesThe3rd/savr/internal/matching"
)

func TestHandler(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "Suggest",
			method: http.MethodGet,
			path:   "/matching/suggest?notes=GrabFood+order",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindCategory(gomock.Any(), userID, "GrabFood order").Return("Food", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"notes":"GrabFood order","category":"Food"}`,
		},
		{
			name:       "SuggestWithoutNotes",
			method:     http.MethodGet,
			path:       "/matching/suggest",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Learn",
			method: http.MethodPost,
			path:   "/matching",
			body:   `{"pattern":" meralco ","category":"Utilities"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), userID, "meralco", "Utilities").Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "LearnWithoutCategory",
			method:     http.MethodPost,
			path:       "/matching",
			body:       `{"pattern":"meralco"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			r := chi.NewRouter()
			r.Route("/matching", matchinghttp.NewHandler(matching.NewService(repo)).Routes)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req = req.WithContext(auth.WithUser(req.Context(), userID))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
