package activity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/activity"
)

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		limit     int
		wantLimit int
	}

	tests := []testCase{
		{name: "zero uses default", limit: 0, wantLimit: activity.DefaultLimit},
		{name: "negative uses default", limit: -3, wantLimit: activity.DefaultLimit},
		{name: "within range", limit: 20, wantLimit: 20},
		{name: "capped", limit: 500, wantLimit: activity.MaxLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := activity.NewMockRepository(ctrl)
			svc := activity.NewService(repo)

			userID := uuid.New()
			want := []*activity.Activity{{ID: uuid.New(), UserID: userID, Type: activity.TypeIncome}}

			repo.EXPECT().ListActivities(gomock.Any(), userID, tc.wantLimit).Return(want, nil)

			got, err := svc.List(context.Background(), userID, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
