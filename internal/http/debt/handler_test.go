package debt_test

import (
	"context"
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
	"github.com/MrJamesThe3rd/savr/internal/debt"
	debthttp "github.com/MrJamesThe3rd/savr/internal/http/debt"
)

func TestHandler(t *testing.T) {
	userID := uuid.New()
	debtID := uuid.New()

	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(m *debt.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "Create",
			method: http.MethodPost,
			path:   "/debts",
			body:   `{"name":"Juan","type":"owed_to_you","total_amount":"5000"}`,
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any(), gomock.Nil()).
					DoAndReturn(func(_ context.Context, d *debt.Debt, _ *uuid.UUID) error {
						assert.Equal(t, int64(500_000), d.TotalAmount)
						assert.Equal(t, int64(500_000), d.RemainingAmount)
						d.ID = debtID

						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"status":"active"`,
		},
		{
			name:       "CreateRejectsZero",
			method:     http.MethodPost,
			path:       "/debts",
			body:       `{"name":"Juan","type":"owed_to_you","total_amount":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Summary",
			method: http.MethodGet,
			path:   "/debts/summary",
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().ListDebts(gomock.Any(), userID).Return([]*debt.Debt{
					{Type: debt.TypeOwedToYou, Status: debt.StatusActive, RemainingAmount: 10_000},
					{Type: debt.TypeOwedByYou, Status: debt.StatusActive, RemainingAmount: 2_500},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"active_count":2,"total_owed_to_you":"100","total_owed_by_you":"25"}`,
		},
		{
			name:   "PayUnknownDebt",
			method: http.MethodPost,
			path:   "/debts/" + debtID.String() + "/payments",
			body:   `{"amount":"100"}`,
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().MakePayment(gomock.Any(), userID, debtID, gomock.Any()).Return(nil, debt.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Payments",
			method: http.MethodGet,
			path:   "/debts/" + debtID.String() + "/payments",
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), userID, debtID).Return(&debt.Debt{ID: debtID}, nil)
				m.EXPECT().ListPayments(gomock.Any(), userID, debtID).Return([]*debt.Payment{
					{ID: uuid.New(), DebtID: debtID, Amount: 1_000},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"amount":"10"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			r := chi.NewRouter()
			r.Route("/debts", debthttp.NewHandler(debt.NewService(repo)).Routes)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
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
