package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	loc *time.Location
}

func NewHandler(svc *transaction.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/monthly", h.monthly)
	r.Get("/{id}", h.get)
}

type createTransactionRequest struct {
	Type                 transaction.Type `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	Category             string           `json:"category"`
	WalletID             *uuid.UUID       `json:"wallet_id"`
	TransferFromWalletID *uuid.UUID       `json:"transfer_from_wallet_id"`
	TransferToWalletID   *uuid.UUID       `json:"transfer_to_wallet_id"`
	GoalID               *uuid.UUID       `json:"goal_id"`
	Method               string           `json:"method"`
	Notes                string           `json:"notes"`
	Timestamp            *time.Time       `json:"timestamp"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Log(r.Context(), userID, transaction.LogParams{
		Amount:               money.FromDecimal(req.Amount),
		Type:                 req.Type,
		Category:             req.Category,
		WalletID:             req.WalletID,
		TransferFromWalletID: req.TransferFromWalletID,
		TransferToWalletID:   req.TransferToWalletID,
		GoalID:               req.GoalID,
		Method:               req.Method,
		Notes:                req.Notes,
		Timestamp:            req.Timestamp,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

// list accepts from and to as calendar dates; to is inclusive.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := transaction.ListFilter{}

	if s := q.Get("from"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}

		filter.From = &t
	}

	if s := q.Get("to"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}

		filter.To = new(t.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}

	if s := q.Get("type"); s != "" {
		typ := transaction.Type(s)
		if !typ.Valid() {
			http.Error(w, "invalid type", http.StatusBadRequest)
			return
		}

		filter.Type = &typ
	}

	if filter.WalletID, ok = respond.QueryID(w, r, "wallet_id"); !ok {
		return
	}

	if filter.GoalID, ok = respond.QueryID(w, r, "goal_id"); !ok {
		return
	}

	txs, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

// monthly defaults to the current month when year or month is omitted.
func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	now := time.Now().In(h.loc)
	year, month := now.Year(), int(now.Month())

	if s := r.URL.Query().Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = v
	}

	if s := r.URL.Query().Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		month = v
	}

	totals, err := h.svc.MonthlyTotals(r.Context(), userID, year, time.Month(month))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, totalsResponse{
		Year:    year,
		Month:   month,
		Income:  money.ToDecimal(totals.Income),
		Expense: money.ToDecimal(totals.Expense),
		Net:     money.ToDecimal(totals.Net),
	})
}
