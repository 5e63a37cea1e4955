package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/money"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/wallet-history", h.walletHistory)
}

type walletSummary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type trendsResponse struct {
	Balance float64 `json:"balance"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type goalSummary struct {
	Slug      string          `json:"slug"`
	Progress  float64         `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	Saved     decimal.Decimal `json:"saved"`
}

type labelAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type dayAmount struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

type debtSummary struct {
	ActiveCount    int             `json:"active_count"`
	TotalOwedToYou decimal.Decimal `json:"total_owed_to_you"`
	TotalOwedByYou decimal.Decimal `json:"total_owed_by_you"`
}

type warningsResponse struct {
	Overspending bool `json:"overspending"`
	GoalAchieved bool `json:"goal_achieved"`
	Ahead        bool `json:"ahead"`
	Behind       bool `json:"behind"`
}

type dashboardResponse struct {
	Wallets             []walletSummary  `json:"wallets"`
	TotalBalance        decimal.Decimal  `json:"total_balance"`
	MonthIncome         decimal.Decimal  `json:"month_income"`
	MonthExpense        decimal.Decimal  `json:"month_expense"`
	MonthTransferVolume decimal.Decimal  `json:"month_transfer_volume"`
	MonthNet            decimal.Decimal  `json:"month_net"`
	Trends              trendsResponse   `json:"trends"`
	GoalProgress        []goalSummary    `json:"goal_progress"`
	SpendingByCategory  []labelAmount    `json:"spending_by_category"`
	SpendingHistory     []dayAmount      `json:"spending_history"`
	IncomeHistory       []dayAmount      `json:"income_history"`
	TransferHistory     []dayAmount      `json:"transfer_history"`
	Debts               debtSummary      `json:"debts"`
	Warnings            warningsResponse `json:"warnings"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Dashboard(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := dashboardResponse{
		Wallets:             make([]walletSummary, len(stats.Wallets)),
		TotalBalance:        money.ToDecimal(stats.TotalBalance),
		MonthIncome:         money.ToDecimal(stats.Month.Income),
		MonthExpense:        money.ToDecimal(stats.Month.Expense),
		MonthTransferVolume: money.ToDecimal(stats.Month.Transfer),
		MonthNet:            money.ToDecimal(stats.Month.Net()),
		Trends:              trendsResponse(stats.Trends),
		GoalProgress:        make([]goalSummary, len(stats.GoalProgress)),
		SpendingByCategory:  make([]labelAmount, len(stats.SpendingByCategory)),
		SpendingHistory:     toDays(stats.Week.Spending),
		IncomeHistory:       toDays(stats.Week.Income),
		TransferHistory:     toDays(stats.Week.Transfer),
		Debts: debtSummary{
			ActiveCount:    stats.Debts.ActiveCount,
			TotalOwedToYou: money.ToDecimal(stats.Debts.TotalOwedToYou),
			TotalOwedByYou: money.ToDecimal(stats.Debts.TotalOwedByYou),
		},
		Warnings: warningsResponse(stats.Warnings),
	}

	for i, wt := range stats.Wallets {
		resp.Wallets[i] = walletSummary{ID: wt.ID.String(), Name: wt.Name, Balance: money.ToDecimal(wt.Balance)}
	}

	for i, g := range stats.GoalProgress {
		resp.GoalProgress[i] = goalSummary{
			Slug:      g.Slug,
			Progress:  g.Progress,
			Remaining: money.ToDecimal(g.Remaining),
			Saved:     money.ToDecimal(g.Saved),
		}
	}

	for i, c := range stats.SpendingByCategory {
		resp.SpendingByCategory[i] = labelAmount{Label: c.Label, Amount: money.ToDecimal(c.Amount)}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type historyPoint struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// walletHistory defaults to a daily series across all wallets.
func (h *Handler) walletHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(analytics.Daily)
	}

	granularity, err := analytics.ParseGranularity(period)
	if err != nil {
		respond.Error(w, err)
		return
	}

	walletID, ok := respond.QueryID(w, r, "wallet_id")
	if !ok {
		return
	}

	points, err := h.svc.WalletHistory(r.Context(), userID, granularity, walletID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]historyPoint, len(points))
	for i, p := range points {
		resp[i] = historyPoint{Date: p.Date, Balance: money.ToDecimal(p.Balance)}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func toDays(days []analytics.DayAmount) []dayAmount {
	out := make([]dayAmount, len(days))
	for i, d := range days {
		out[i] = dayAmount{Day: d.Day, Amount: money.ToDecimal(d.Amount)}
	}

	return out
}
