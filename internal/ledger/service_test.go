package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

func TestService_Snapshot(t *testing.T) {
	restaurantID := uuid.New()
	r := march(10, 10)
	from, to := r.Bounds()

	type testCase struct {
		name        string
		rng         ledger.DateRange
		setupMock   func(m *ledger.MockRepository)
		wantRevenue int64
		wantErr     error
	}

	tests := []testCase{
		{
			name: "Success",
			rng:  r,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					ListMovements(gomock.Any(), ledger.ListFilter{
						RestaurantID:     restaurantID,
						From:             &from,
						To:               &to,
						ExcludeCancelled: true,
					}).
					Return(sampleDay(), nil)
			},
			wantRevenue: 800,
		},
		{
			name:    "InvalidRange",
			rng:     march(11, 10),
			wantErr: ledger.ErrInvalidRange,
		},
		{
			name: "RepoError",
			rng:  r,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					ListMovements(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("listing movements: db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Snapshot(context.Background(), restaurantID, tt.rng)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ledger.ErrInvalidRange) {
					assert.ErrorIs(t, err, ledger.ErrInvalidRange)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRevenue, got.TotalRevenue)
		})
	}
}

func TestService_OpenTill(t *testing.T) {
	restaurantID := uuid.New()

	type testCase struct {
		name      string
		amount    int64
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			amount: 1000,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					AppendMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mv *ledger.Movement) error {
						assert.Equal(t, restaurantID, mv.RestaurantID)
						assert.Equal(t, ledger.TypeOpening, mv.Type)
						assert.Equal(t, int64(1000), mv.Total)
						mv.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "ZeroAmount",
			amount:  0,
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			amount:  -5,
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:   "AppendFailure",
			amount: 1000,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					AppendMovement(gomock.Any(), gomock.Any()).
					Return(errors.New("insert failed"))
			},
			wantErr: ledger.ErrAppendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No setupMock means AppendMovement must not be called at all.
			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.OpenTill(context.Background(), restaurantID, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_CloseTill_NoSurplusAppendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(sampleDay(), nil)

	out, err := svc.CloseTill(context.Background(), uuid.New(), 1500, march(10, 10))
	require.NoError(t, err)
	assert.Equal(t, ledger.CloseResult{AmountToRegister: 0, FinalDayRevenue: 800}, out.Result)
	assert.Nil(t, out.Adjustment)
	assert.Equal(t, int64(1500), out.Snapshot.TotalCashInDrawer)
}

func TestService_CloseTill_SurplusAppendsCounterSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)
	restaurantID := uuid.New()

	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(sampleDay(), nil)
	repo.EXPECT().
		AppendMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *ledger.Movement) error {
			assert.Equal(t, restaurantID, mv.RestaurantID)
			assert.Equal(t, ledger.TypeCounter, mv.Type)
			assert.Equal(t, ledger.PaymentCash, mv.PaymentMethod)
			assert.Equal(t, int64(500), mv.Total)
			assert.Empty(t, mv.Items)
			assert.Equal(t, ledger.StatusCompleted, mv.Status)
			return nil
		})

	out, err := svc.CloseTill(context.Background(), restaurantID, 2000, march(10, 10))
	require.NoError(t, err)
	assert.Equal(t, ledger.CloseResult{AmountToRegister: 500, FinalDayRevenue: 1300}, out.Result)
	require.NotNil(t, out.Adjustment)
	assert.Equal(t, int64(500), out.Adjustment.Total)
}

func TestService_CloseTill_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	_, err := svc.CloseTill(context.Background(), uuid.New(), 0, march(10, 10))
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = svc.CloseTill(context.Background(), uuid.New(), 1500, march(11, 10))
	assert.ErrorIs(t, err, ledger.ErrInvalidRange)

	repo.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(sampleDay(), nil)
	repo.EXPECT().AppendMovement(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	out, err := svc.CloseTill(context.Background(), uuid.New(), 2000, march(10, 10))
	assert.ErrorIs(t, err, ledger.ErrAppendFailed)
	assert.Contains(t, err.Error(), "insert failed")
	assert.Nil(t, out)
}
