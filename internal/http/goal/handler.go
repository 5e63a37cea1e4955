package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
)

type Handler struct {
	svc       *goal.Service
	analytics *analytics.Service
}

func NewHandler(svc *goal.Service, analyticsSvc *analytics.Service) *Handler {
	return &Handler{svc: svc, analytics: analyticsSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/slug/{slug}", h.bySlug)
	r.Get("/{id}", h.get)
	r.Get("/{id}/progress", h.progress)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type goalResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Slug                   string          `json:"slug"`
	TargetAmount           decimal.Decimal `json:"target_amount"`
	TargetMonths           int             `json:"target_months"`
	StartDate              *time.Time      `json:"start_date,omitempty"`
	RequiredMonthlySavings decimal.Decimal `json:"required_monthly_savings"`
	RequiredWeeklySavings  decimal.Decimal `json:"required_weekly_savings"`
	RequiredDailySavings   decimal.Decimal `json:"required_daily_savings"`
	Deadline               time.Time       `json:"deadline"`
	CreatedAt              time.Time       `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:                     g.ID,
		Slug:                   g.Slug,
		TargetAmount:           money.ToDecimal(g.TargetAmount),
		TargetMonths:           g.TargetMonths,
		StartDate:              g.StartDate,
		RequiredMonthlySavings: rate(g.RequiredMonthlySavings),
		RequiredWeeklySavings:  rate(g.RequiredWeeklySavings),
		RequiredDailySavings:   rate(g.RequiredDailySavings),
		Deadline:               g.Deadline,
		CreatedAt:              g.CreatedAt,
	}
}

// rate renders a fractional centavo rate in major units, to the centavo.
func rate(cents float64) decimal.Decimal {
	return decimal.NewFromFloat(cents).Shift(-2).Round(2)
}

type feasibilityResponse struct {
	DaysLeft                 int64           `json:"days_left"`
	RequiredDaily            decimal.Decimal `json:"required_daily"`
	RemainingRequiredSavings decimal.Decimal `json:"remaining_required_savings"`
	Feasible                 bool            `json:"feasible"`
}

type progressResponse struct {
	GoalID                  string              `json:"goal_id"`
	Slug                    string              `json:"slug"`
	TotalIncomeLogged       decimal.Decimal     `json:"total_income_logged"`
	TotalExpenseLogged      decimal.Decimal     `json:"total_expense_logged"`
	NetSavings              decimal.Decimal     `json:"net_savings"`
	Saved                   decimal.Decimal     `json:"saved"`
	Remaining               decimal.Decimal     `json:"remaining"`
	ProgressPercentage      float64             `json:"progress_percentage"`
	ProjectedCompletionDate *time.Time          `json:"projected_completion_date"`
	Feasibility             feasibilityResponse `json:"feasibility"`
}

type createGoalRequest struct {
	Slug         string          `json:"slug"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetMonths int             `json:"target_months"`
	StartDate    *time.Time      `json:"start_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	g, err := h.svc.Create(r.Context(), userID, goal.CreateParams{
		Slug:         req.Slug,
		TargetAmount: money.FromDecimal(req.TargetAmount),
		TargetMonths: req.TargetMonths,
		StartDate:    req.StartDate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
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

	g, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) bySlug(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	g, err := h.svc.BySlug(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.analytics.GoalProgress(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, progressResponse{
		GoalID:                  p.GoalID,
		Slug:                    p.Slug,
		TotalIncomeLogged:       money.ToDecimal(p.TotalIncomeLogged),
		TotalExpenseLogged:      money.ToDecimal(p.TotalExpenseLogged),
		NetSavings:              money.ToDecimal(p.NetSavings),
		Saved:                   money.ToDecimal(p.Saved),
		Remaining:               money.ToDecimal(p.Remaining),
		ProgressPercentage:      p.ProgressPercentage,
		ProjectedCompletionDate: p.ProjectedCompletionDate,
		Feasibility: feasibilityResponse{
			DaysLeft:                 p.Feasibility.DaysLeft,
			RequiredDaily:            rate(p.Feasibility.RequiredDaily),
			RemainingRequiredSavings: money.ToDecimal(p.Feasibility.RemainingRequiredSavings),
			Feasible:                 p.Feasibility.Feasible,
		},
	})
}

type updateGoalRequest struct {
	Slug         *string          `json:"slug,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	TargetMonths *int             `json:"target_months,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
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

	var req updateGoalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := goal.UpdateParams{
		Slug:         req.Slug,
		TargetMonths: req.TargetMonths,
		StartDate:    req.StartDate,
	}

	if req.TargetAmount != nil {
		params.TargetAmount = new(money.FromDecimal(*req.TargetAmount))
	}

	g, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
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
