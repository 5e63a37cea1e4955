package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/http/respond"
	"github.com/MrJamesThe3rd/savr/internal/importer"
	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Type      transaction.Type `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Category  string           `json:"category,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type rowDTO struct {
	Date     time.Time        `json:"date"`
	Type     transaction.Type `json:"type"`
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Notes    string           `json:"notes"`
}

type conflictDTO struct {
	Incoming rowDTO              `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	WalletID  uuid.UUID     `json:"wallet_id"`
	New       []rowDTO      `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

type confirmRequest struct {
	WalletID uuid.UUID `json:"wallet_id"`
	Rows     []rowDTO  `json:"rows"`
}

// importCSV records every row of the uploaded file against wallet_id. When
// any row looks like an existing entry nothing is written and the caller
// gets 409 with the split, to resubmit through confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	walletID, err := uuid.Parse(r.FormValue("wallet_id"))
	if err != nil {
		http.Error(w, "wallet_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(r.Context(), userID, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.txSvc.Import(r.Context(), userID, walletID, rows)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			WalletID:  walletID,
			New:       make([]rowDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, row := range result.New {
			resp.New = append(resp.New, toRowDTO(row))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toRowDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var req confirmRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	rows := make([]transaction.ImportRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, transaction.ImportRow{
			Date:     row.Date,
			Type:     row.Type,
			Amount:   money.FromDecimal(row.Amount),
			Category: row.Category,
			Notes:    row.Notes,
		})
	}

	txs, err := h.txSvc.ImportConfirmed(r.Context(), userID, req.WalletID, rows)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Type:      tx.Type,
		Amount:    money.ToDecimal(tx.Amount),
		Category:  tx.Category,
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt,
	}
}

func toRowDTO(row transaction.ImportRow) rowDTO {
	return rowDTO{
		Date:     row.Date,
		Type:     row.Type,
		Amount:   money.ToDecimal(row.Amount),
		Category: row.Category,
		Notes:    row.Notes,
	}
}
