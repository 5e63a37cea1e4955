package debt

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.pay)
	r.Get("/{id}/payments", h.payments)
}

type debtResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Type            debt.Type       `json:"type"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	InterestRate    *float64        `json:"interest_rate,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          debt.Status     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toResponse(d *debt.Debt) debtResponse {
	return debtResponse{
		ID:              d.ID,
		Name:            d.Name,
		Type:            d.Type,
		TotalAmount:     money.ToDecimal(d.TotalAmount),
		RemainingAmount: money.ToDecimal(d.RemainingAmount),
		InterestRate:    d.InterestRate,
		DueDate:         d.DueDate,
		Notes:           d.Notes,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type paymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	DebtID        uuid.UUID       `json:"debt_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	TransactionID *uuid.UUID      `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

func toPaymentResponse(p *debt.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		DebtID:        p.DebtID,
		Amount:        money.ToDecimal(p.Amount),
		Date:          p.Date,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
	}
}

type createDebtRequest struct {
	Name         string          `json:"name"`
	Type         debt.Type       `json:"type"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InterestRate *float64        `json:"interest_rate"`
	DueDate      *time.Time      `json:"due_date"`
	Notes        string          `json:"notes"`
	WalletID     *uuid.UUID      `json:"wallet_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var req createDebtRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	d, err := h.svc.Create(r.Context(), userID, debt.CreateParams{
		Name:         req.Name,
		Type:         req.Type,
		TotalAmount:  money.FromDecimal(req.TotalAmount),
		InterestRate: req.InterestRate,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
		WalletID:     req.WalletID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	debts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toResponse(d)
	}

	respond.JSON(w, http.StatusOK, resp)
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

	d, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

type summaryResponse struct {
	ActiveCount    int             `json:"active_count"`
	TotalOwedToYou decimal.Decimal `json:"total_owed_to_you"`
	TotalOwedByYou decimal.Decimal `json:"total_owed_by_you"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		ActiveCount:    s.ActiveCount,
		TotalOwedToYou: money.ToDecimal(s.TotalOwedToYou),
		TotalOwedByYou: money.ToDecimal(s.TotalOwedByYou),
	})
}

type updateDebtRequest struct {
	Name         *string          `json:"name,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	InterestRate *float64         `json:"interest_rate,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req updateDebtRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := debt.UpdateParams{
		Name:         req.Name,
		InterestRate: req.InterestRate,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	}

	if req.TotalAmount != nil {
		params.TotalAmount = new(money.FromDecimal(*req.TotalAmount))
	}

	d, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type paymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	WalletID *uuid.UUID      `json:"wallet_id"`
	Notes    string          `json:"notes"`
	Date     *time.Time      `json:"date"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req paymentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := debt.PaymentParams{
		Amount:   money.FromDecimal(req.Amount),
		WalletID: req.WalletID,
		Notes:    req.Notes,
	}

	if req.Date != nil {
		params.Date = *req.Date
	}

	p, err := h.svc.MakePayment(r.Context(), userID, id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.svc.Payments(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}
