package wallet_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/auth"
	wallethttp "github.com/MrJamesThe3rd/savr/internal/http/wallet"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

func newRouter(svc *wallet.Service, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(auth.WithUser(req.Context(), userID))
			}

			next.ServeHTTP(w, req)
		})
	})
	r.Route("/wallets", wallethttp.NewHandler(svc).Routes)

	return r
}

func TestHandler(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		userID     uuid.UUID
		setupMock  func(m *wallet.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "CreateParsesDecimalBalance",
			method: http.MethodPost,
			path:   "/wallets",
			body:   `{"name":"GCash","type":"e_wallet","balance":"1500.50"}`,
			userID: userID,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						assert.Equal(t, int64(150_050), w.Balance)
						assert.Equal(t, "gcash", w.Slug)
						w.ID = walletID

						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"balance":"1500.5"`,
		},
		{
			name:       "CreateRejectsUnknownType",
			method:     http.MethodPost,
			path:       "/wallets",
			body:       `{"name":"Gold","type":"gold"}`,
			userID:     userID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "CreateRejectsMalformedBody",
			method:     http.MethodPost,
			path:       "/wallets",
			body:       `{"name":`,
			userID:     userID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RequiresUser",
			method:     http.MethodGet,
			path:       "/wallets",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "GetNotFound",
			method: http.MethodGet,
			path:   "/wallets/" + walletID.String(),
			userID: userID,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), userID, walletID).Return(nil, wallet.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "GetInvalidID",
			method:     http.MethodGet,
			path:       "/wallets/not-a-uuid",
			userID:     userID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/wallets",
			userID: userID,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().ListWallets(gomock.Any(), userID).Return([]*wallet.Wallet{
					{ID: walletID, Name: "Cash", Slug: "cash", Type: wallet.TypeCash, Balance: 123_456},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"balance":"1234.56"`,
		},
		{
			name:   "UpdateSlugTaken",
			method: http.MethodPatch,
			path:   "/wallets/" + walletID.String(),
			body:   `{"slug":"cash"}`,
			userID: userID,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().UpdateWallet(gomock.Any(), userID, walletID, gomock.Any()).Return(nil, wallet.ErrSlugTaken)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			path:   "/wallets/" + walletID.String(),
			userID: userID,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().DeleteWallet(gomock.Any(), userID, walletID).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := wallet.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(wallet.NewService(repo), tt.userID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
