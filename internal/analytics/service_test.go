package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

func TestService_Dashboard(t *testing.T) {
	userID := uuid.New()
	cash := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *analytics.MockSource)
		wantErr   string
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *analytics.MockSource) {
				m.EXPECT().ListWallets(gomock.Any(), userID).Return([]*wallet.Wallet{{ID: cash, Balance: 1_500}}, nil)
				m.EXPECT().ListTransactions(gomock.Any(), userID).Return([]*transaction.Transaction{income(cash, 1_500, time.Now().Add(-time.Hour))}, nil)
				m.EXPECT().ListGoals(gomock.Any(), userID).Return(nil, nil)
				m.EXPECT().ListDebts(gomock.Any(), userID).Return(nil, nil)
			},
		},
		{
			name: "SourceError",
			setupMock: func(m *analytics.MockSource) {
				m.EXPECT().ListWallets(gomock.Any(), userID).Return(nil, errors.New("db down"))
				m.EXPECT().ListTransactions(gomock.Any(), userID).Return(nil, nil).AnyTimes()
				m.EXPECT().ListGoals(gomock.Any(), userID).Return(nil, nil).AnyTimes()
				m.EXPECT().ListDebts(gomock.Any(), userID).Return(nil, nil).AnyTimes()
			},
			wantErr: "list wallets: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := analytics.NewMockSource(ctrl)
			tt.setupMock(source)

			svc := analytics.NewService(source, manila, analytics.DefaultTopCategories)
			got, err := svc.Dashboard(context.Background(), userID)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1_500), got.TotalBalance)
			assert.Len(t, got.Week.Spending, 7)
		})
	}
}

func TestService_WalletHistory(t *testing.T) {
	userID := uuid.New()
	cash := uuid.New()

	type testCase struct {
		name        string
		granularity analytics.Granularity
		walletID    *uuid.UUID
		setupMock   func(m *analytics.MockSource)
		wantErr     error
		wantPoints  int
	}

	ledger := func(m *analytics.MockSource) {
		m.EXPECT().ListWallets(gomock.Any(), userID).Return([]*wallet.Wallet{{ID: cash}}, nil)
		m.EXPECT().ListTransactions(gomock.Any(), userID).Return([]*transaction.Transaction{
			income(cash, 1_000, time.Now().AddDate(0, 0, -40)),
			income(cash, 500, time.Now().Add(-time.Hour)),
		}, nil)
	}

	tests := []testCase{
		{
			name:        "DailyWindow",
			granularity: analytics.Daily,
			setupMock:   ledger,
			wantPoints:  1,
		},
		{
			name:        "MonthlyWindow",
			granularity: analytics.Monthly,
			walletID:    &cash,
			setupMock:   ledger,
			wantPoints:  2,
		},
		{
			name:        "UnknownWallet",
			granularity: analytics.Daily,
			walletID:    new(uuid.New()),
			setupMock:   ledger,
			wantErr:     wallet.ErrNotFound,
		},
		{
			name:        "InvalidPeriod",
			granularity: "hourly",
			setupMock:   func(*analytics.MockSource) {},
			wantErr:     analytics.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := analytics.NewMockSource(ctrl)
			tt.setupMock(source)

			svc := analytics.NewService(source, manila, analytics.DefaultTopCategories)
			got, err := svc.WalletHistory(context.Background(), userID, tt.granularity, tt.walletID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.wantPoints)
			assert.Equal(t, int64(1_500), got[len(got)-1].Balance)
		})
	}
}

func TestService_GoalProgress(t *testing.T) {
	userID := uuid.New()
	w := uuid.New()
	g := newGoal(10_000, 1, time.Now().AddDate(0, 0, -1))

	type testCase struct {
		name      string
		setupMock func(m *analytics.MockSource)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *analytics.MockSource) {
				m.EXPECT().GetGoal(gomock.Any(), userID, g.ID).Return(g, nil)
				m.EXPECT().ListTransactions(gomock.Any(), userID).Return([]*transaction.Transaction{
					tagged(income(w, 2_500, time.Now().Add(-time.Hour)), g),
				}, nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *analytics.MockSource) {
				m.EXPECT().GetGoal(gomock.Any(), userID, g.ID).Return(nil, goal.ErrNotFound)
				m.EXPECT().ListTransactions(gomock.Any(), userID).Return(nil, nil).AnyTimes()
			},
			wantErr: goal.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := analytics.NewMockSource(ctrl)
			tt.setupMock(source)

			svc := analytics.NewService(source, manila, analytics.DefaultTopCategories)
			got, err := svc.GoalProgress(context.Background(), userID, g.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, 25, got.ProgressPercentage, 1e-9)
			assert.Equal(t, int64(7_500), got.Remaining)
		})
	}
}
