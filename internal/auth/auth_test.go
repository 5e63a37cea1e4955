package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_IssueVerify(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)
	userID := uuid.New()

	token, err := a.Issue(userID)
	require.NoError(t, err)

	got, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthenticator_Verify(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name   string
		token  func(t *testing.T) string
		verify *Authenticator
	}

	signer := NewAuthenticator("secret", time.Hour)
	signer.now = func() time.Time { return issuedAt }

	valid := func(t *testing.T) string {
		tok, err := signer.Issue(uuid.New())
		require.NoError(t, err)

		return tok
	}

	tests := []testCase{
		{
			name:   "WrongSecret",
			token:  valid,
			verify: &Authenticator{secret: []byte("other"), now: func() time.Time { return issuedAt }},
		},
		{
			name:   "Expired",
			token:  valid,
			verify: &Authenticator{secret: []byte("secret"), now: func() time.Time { return issuedAt.Add(2 * time.Hour) }},
		},
		{
			name:   "Garbage",
			token:  func(*testing.T) string { return "not-a-token" },
			verify: &Authenticator{secret: []byte("secret"), now: time.Now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verify.Verify(tt.token(t))
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)
	userID := uuid.New()

	token, err := a.Issue(userID)
	require.NoError(t, err)

	var seen uuid.UUID

	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, err = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, err)
		assert.Equal(t, userID, seen)
	})
}

func TestUserFromContext_Empty(t *testing.T) {
	_, err := UserFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}
