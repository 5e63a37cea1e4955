package wallet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		params    wallet.CreateParams
		setupMock func(m *wallet.MockRepository)
		wantErr   error
		wantSlug  string
	}

	tests := []testCase{
		{
			name:   "SlugFromName",
			params: wallet.CreateParams{Name: "  BPI Savings ", Type: wallet.TypeBank, Balance: 100000},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						assert.Equal(t, userID, w.UserID)
						assert.Equal(t, "BPI Savings", w.Name)
						assert.Equal(t, int64(100000), w.Balance)
						w.ID = uuid.New()

						return nil
					})
			},
			wantSlug: "bpi-savings",
		},
		{
			name:   "ExplicitSlug",
			params: wallet.CreateParams{Name: "Wallet", Slug: "My Cash", Type: wallet.TypeCash},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantSlug: "my-cash",
		},
		{
			name:    "EmptyName",
			params:  wallet.CreateParams{Name: "   ", Type: wallet.TypeCash},
			wantErr: wallet.ErrInvalidName,
		},
		{
			name:    "UnknownType",
			params:  wallet.CreateParams{Name: "Crypto", Type: "crypto"},
			wantErr: wallet.ErrInvalidType,
		},
		{
			name:    "NegativeBalance",
			params:  wallet.CreateParams{Name: "Cash", Type: wallet.TypeCash, Balance: -1},
			wantErr: wallet.ErrNegativeBalance,
		},
		{
			name:   "SlugTaken",
			params: wallet.CreateParams{Name: "Cash", Type: wallet.TypeCash},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).Return(wallet.ErrSlugTaken)
			},
			wantErr: wallet.ErrSlugTaken,
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

			svc := wallet.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, got.Slug)
		})
	}
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	type testCase struct {
		name      string
		params    wallet.UpdateParams
		setupMock func(m *wallet.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "NormalizesFields",
			params: wallet.UpdateParams{Name: new(" GCash "), Slug: new("G Cash"), Balance: new(int64(0))},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					UpdateWallet(gomock.Any(), userID, walletID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ uuid.UUID, p wallet.UpdateParams) (*wallet.Wallet, error) {
						assert.Equal(t, "GCash", *p.Name)
						assert.Equal(t, "g-cash", *p.Slug)

						return &wallet.Wallet{ID: walletID, Name: *p.Name}, nil
					})
			},
		},
		{
			name:    "NegativeBalance",
			params:  wallet.UpdateParams{Balance: new(int64(-5))},
			wantErr: wallet.ErrNegativeBalance,
		},
		{
			name:    "BlankName",
			params:  wallet.UpdateParams{Name: new("")},
			wantErr: wallet.ErrInvalidName,
		},
		{
			name:    "BadType",
			params:  wallet.UpdateParams{Type: new(wallet.Type("stocks"))},
			wantErr: wallet.ErrInvalidType,
		},
		{
			name:   "NotFound",
			params: wallet.UpdateParams{},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().UpdateWallet(gomock.Any(), userID, walletID, gomock.Any()).Return(nil, wallet.ErrNotFound)
			},
			wantErr: wallet.ErrNotFound,
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

			svc := wallet.NewService(repo)
			got, err := svc.Update(context.Background(), userID, walletID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, walletID, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := wallet.NewMockRepository(ctrl)
	svc := wallet.NewService(repo)
	userID, walletID := uuid.New(), uuid.New()

	repo.EXPECT().DeleteWallet(gomock.Any(), userID, walletID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), userID, walletID))
}
