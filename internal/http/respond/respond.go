// Package respond holds the request and response plumbing shared by the
// resource handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/auth"
	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/importer"
	"github.com/MrJamesThe3rd/savr/internal/matching"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

var (
	badRequest = []error{
		transaction.ErrInvalidAmount,
		transaction.ErrInvalidType,
		transaction.ErrWalletRequired,
		transaction.ErrTransferWallets,
		wallet.ErrInvalidName,
		wallet.ErrInvalidType,
		wallet.ErrNegativeBalance,
		goal.ErrInvalidSlug,
		goal.ErrInvalidTarget,
		goal.ErrInvalidMonths,
		debt.ErrInvalidName,
		debt.ErrInvalidType,
		debt.ErrInvalidAmount,
		matching.ErrInvalidMapping,
		analytics.ErrInvalidPeriod,
		importer.ErrUnknownFormat,
		money.ErrInvalidAmount,
	}

	notFound = []error{
		transaction.ErrNotFound,
		transaction.ErrWalletNotFound,
		transaction.ErrGoalNotFound,
		wallet.ErrNotFound,
		goal.ErrNotFound,
		debt.ErrNotFound,
	}

	conflict = []error{
		transaction.ErrInsufficientFunds,
		wallet.ErrSlugTaken,
		goal.ErrSlugTaken,
	}
)

// Status maps a domain error to the HTTP status it is reported with.
func Status(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Unexpected errors are logged
// and reported without detail.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v and answers 400 when it cannot.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// User resolves the authenticated caller or answers 401.
func User(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := auth.UserFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}

	return userID, true
}

// PathID parses the named URL parameter as a UUID or answers 400.
func PathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// QueryID parses an optional UUID query parameter. A missing value yields
// nil; a malformed one answers 400.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return nil, false
	}

	return &id, true
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
