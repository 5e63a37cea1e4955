package wallet

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

type Handler struct {
	svc *wallet.Service
}

func NewHandler(svc *wallet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type walletResponse struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Type      wallet.Type     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(w *wallet.Wallet) walletResponse {
	return walletResponse{
		ID:        w.ID,
		Slug:      w.Slug,
		Name:      w.Name,
		Type:      w.Type,
		Balance:   money.ToDecimal(w.Balance),
		CreatedAt: w.CreatedAt,
	}
}

type createWalletRequest struct {
	Name    string          `json:"name"`
	Slug    string          `json:"slug"`
	Type    wallet.Type     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var req createWalletRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), userID, wallet.CreateParams{
		Name:    req.Name,
		Slug:    req.Slug,
		Type:    req.Type,
		Balance: money.FromDecimal(req.Balance),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	wallets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]walletResponse, len(wallets))
	for i, wt := range wallets {
		resp[i] = toResponse(wt)
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

	wt, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(wt))
}

type updateWalletRequest struct {
	Name    *string          `json:"name,omitempty"`
	Slug    *string          `json:"slug,omitempty"`
	Type    *wallet.Type     `json:"type,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
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

	var req updateWalletRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := wallet.UpdateParams{
		Name: req.Name,
		Slug: req.Slug,
		Type: req.Type,
	}

	if req.Balance != nil {
		params.Balance = new(money.FromDecimal(*req.Balance))
	}

	updated, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
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
