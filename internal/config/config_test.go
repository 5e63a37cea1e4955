package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/savr/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "Asia/Manila", cfg.App.Timezone)
	assert.Equal(t, 5, cfg.Analytics.TopCategories)
	assert.Equal(t, "postgres://postgres:@localhost:5432/savr?sslmode=disable", cfg.ConnectionString())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Manila", loc.String())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("AUTH_SECRET"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTopCategories(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("ANALYTICS_TOP_CATEGORIES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLocation_Unknown(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = cfg.Location()
	assert.Error(t, err)
}
