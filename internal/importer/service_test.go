package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savr/internal/importer"
)

func TestService_Parse(t *testing.T) {
	userID := uuid.New()

	csv := `date,type,amount,category,notes
2025-01-05,expense,100,,GRAB FOOD
2025-01-06,expense,200,,GRAB FOOD
2025-01-07,expense,300,Bills,MERALCO
2025-01-08,expense,400,,
`

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	suggester := importer.NewMockSuggester(ctrl)
	suggester.EXPECT().Suggest(gomock.Any(), userID, "GRAB FOOD").Return("Food", nil).Times(1)

	rows, err := importer.NewService(manila, suggester).Parse(context.Background(), userID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Food", rows[0].Category)
	assert.Equal(t, "Food", rows[1].Category)
	assert.Equal(t, "Bills", rows[2].Category)
	assert.Equal(t, "", rows[3].Category)
}

func TestService_ParseSuggestError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	suggester := importer.NewMockSuggester(ctrl)
	suggester.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("db down"))

	_, err := importer.NewService(manila, suggester).Parse(
		context.Background(), uuid.New(), strings.NewReader("date,type,amount,notes\n2025-01-05,expense,1,X\n"),
	)
	assert.ErrorContains(t, err, "suggest category")
}
