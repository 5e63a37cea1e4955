package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

var manila = time.FixedZone("PHT", 8*60*60)

func TestService_Log(t *testing.T) {
	userID := uuid.New()
	walletA := uuid.New()
	walletB := uuid.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, manila)

	type args struct {
		params transaction.LogParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *transaction.Transaction)
	}

	tests := []testCase{
		{
			name: "Income",
			args: args{params: transaction.LogParams{
				Amount:    50000,
				Type:      transaction.TypeIncome,
				Category:  "Salary",
				WalletID:  &walletA,
				Timestamp: &at,
			}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					LogTransactions(gomock.Any(), userID, gomock.Len(1)).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, txs []*transaction.Transaction) error {
						txs[0].ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.NotEqual(t, uuid.Nil, got.ID)
				assert.Equal(t, userID, got.UserID)
				assert.Equal(t, &walletA, got.WalletID)
				assert.Nil(t, got.TransferFromWalletID)
				assert.True(t, at.Equal(got.CreatedAt))
			},
		},
		{
			name: "TransferDropsWalletID",
			args: args{params: transaction.LogParams{
				Amount:               20000,
				Type:                 transaction.TypeTransfer,
				WalletID:             &walletA,
				TransferFromWalletID: &walletA,
				TransferToWalletID:   &walletB,
			}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LogTransactions(gomock.Any(), userID, gomock.Len(1)).Return(nil)
			},
			check: func(t *testing.T, got *transaction.Transaction) {
				assert.Nil(t, got.WalletID)
				assert.Equal(t, &walletA, got.TransferFromWalletID)
				assert.Equal(t, &walletB, got.TransferToWalletID)
				assert.False(t, got.CreatedAt.IsZero())
			},
		},
		{
			name:    "ZeroAmount",
			args:    args{params: transaction.LogParams{Amount: 0, Type: transaction.TypeExpense, WalletID: &walletA}},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:    "MissingWallet",
			args:    args{params: transaction.LogParams{Amount: 100, Type: transaction.TypeSavings}},
			wantErr: transaction.ErrWalletRequired,
		},
		{
			name: "TransferSameWallet",
			args: args{params: transaction.LogParams{
				Amount:               100,
				Type:                 transaction.TypeTransfer,
				TransferFromWalletID: &walletA,
				TransferToWalletID:   &walletA,
			}},
			wantErr: transaction.ErrTransferWallets,
		},
		{
			name:    "DebtPaymentRejected",
			args:    args{params: transaction.LogParams{Amount: 100, Type: transaction.TypeDebtPayment, WalletID: &walletA}},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "InsufficientFunds",
			args: args{params: transaction.LogParams{Amount: 100, Type: transaction.TypeExpense, WalletID: &walletA}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LogTransactions(gomock.Any(), userID, gomock.Any()).Return(transaction.ErrInsufficientFunds)
			},
			wantErr: transaction.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo, manila)
			got, err := svc.Log(context.Background(), userID, tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_MonthlyTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo, manila)
	userID := uuid.New()

	repo.EXPECT().
		ListTransactions(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.True(t, f.From.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, manila)))
			assert.True(t, f.To.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, manila)))

			return []*transaction.Transaction{
				{Type: transaction.TypeIncome, Amount: 100000},
				{Type: transaction.TypeExpense, Amount: 30000},
				{Type: transaction.TypeExpense, Amount: 5000},
				{Type: transaction.TypeTransfer, Amount: 99999},
			}, nil
		})

	got, err := svc.MonthlyTotals(context.Background(), userID, 2024, time.December)
	require.NoError(t, err)
	assert.Equal(t, transaction.Totals{Income: 100000, Expense: 35000, Net: 65000}, got)

	_, err = svc.MonthlyTotals(context.Background(), userID, 2024, 13)
	assert.Error(t, err)
}

func TestService_Import(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, manila)

	rows := []transaction.ImportRow{
		{Date: day, Type: transaction.TypeExpense, Amount: 15000, Category: "Food", Notes: "JOLLIBEE"},
		{Date: day.AddDate(0, 0, 2), Type: transaction.TypeIncome, Amount: 200000, Category: "Salary", Notes: "PAYROLL"},
	}

	type testCase struct {
		name          string
		rows          []transaction.ImportRow
		setupMock     func(m *transaction.MockRepository)
		wantErr       error
		wantImported  int
		wantConflicts int
	}

	tests := []testCase{
		{
			name: "NoDuplicates",
			rows: rows,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, f transaction.ListFilter) ([]*transaction.Transaction, error) {
						assert.Equal(t, &walletID, f.WalletID)
						assert.True(t, f.From.Equal(day))
						assert.True(t, f.To.Before(day.AddDate(0, 0, 3)))
						assert.True(t, f.To.After(day.AddDate(0, 0, 2)))

						return nil, nil
					})
				m.EXPECT().LogTransactions(gomock.Any(), userID, gomock.Len(2)).Return(nil)
			},
			wantImported: 2,
		},
		{
			name: "ConflictWritesNothing",
			rows: rows,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), userID, gomock.Any()).
					Return([]*transaction.Transaction{{
						ID:        uuid.New(),
						Type:      transaction.TypeExpense,
						Amount:    15000,
						Notes:     "JOLLIBEE",
						CreatedAt: day.Add(13 * time.Hour),
					}}, nil)
			},
			wantConflicts: 1,
		},
		{
			name:    "RejectsTransferRows",
			rows:    []transaction.ImportRow{{Date: day, Type: transaction.TypeTransfer, Amount: 100}},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "ListError",
			rows: rows,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListTransactions(gomock.Any(), userID, gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("find duplicates: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo, manila)
			got, err := svc.Import(context.Background(), userID, walletID, tt.rows)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, transaction.ErrInvalidType) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Imported, tt.wantImported)
			assert.Len(t, got.Conflicts, tt.wantConflicts)

			for _, tx := range got.Imported {
				assert.Equal(t, &walletID, tx.WalletID)
			}
		})
	}
}

func TestService_ImportConfirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo, manila)
	userID := uuid.New()
	walletID := uuid.New()

	repo.EXPECT().LogTransactions(gomock.Any(), userID, gomock.Len(1)).Return(nil)

	got, err := svc.ImportConfirmed(context.Background(), userID, walletID, []transaction.ImportRow{
		{Date: time.Now(), Type: transaction.TypeExpense, Amount: 100, Notes: "dup"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dup", got[0].Notes)
}
