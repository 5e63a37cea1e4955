package activity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/activity"
	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
)

type Handler struct {
	svc *activity.Service
}

func NewHandler(svc *activity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type activityResponse struct {
	ID          uuid.UUID        `json:"id"`
	Type        activity.Type    `json:"type"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	RelatedID   *uuid.UUID       `json:"related_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var limit int

	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = v
	}

	activities, err := h.svc.List(r.Context(), userID, limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]activityResponse, len(activities))

	for i, a := range activities {
		resp[i] = activityResponse{
			ID:          a.ID,
			Type:        a.Type,
			Description: a.Description,
			RelatedID:   a.RelatedID,
			CreatedAt:   a.CreatedAt,
		}

		if a.Amount != nil {
			resp[i].Amount = new(money.ToDecimal(*a.Amount))
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
