package handlers

import (
	"context"
	"net/http"

	"dimdim-server/src/models"
	"dimdim-server/src/util"

	"github.com/rs/zerolog/log"
)

// TransactionRules is the transaction rule engine as seen by the HTTP layer.
type TransactionRules interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	FindByClient(ctx context.Context, clientID int64) ([]models.Transaction, error)
	FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error)
	FindByDateRange(ctx context.Context, start, end models.Date) ([]models.Transaction, error)
	FindByClientAndDateRange(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error)
	Create(ctx context.Context, txn models.Transaction) (*models.Transaction, error)
	Update(ctx context.Context, id int64, data models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) error
	TotalForClient(ctx context.Context, clientID int64) (float64, error)
	CountForClient(ctx context.Context, clientID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Date is optional: the rule engine fills in today on create.
type transactionRequest struct {
	Amount   *float64    `json:"amount" validate:"required,gt=0"`
	Date     models.Date `json:"date"`
	ClientID *int64      `json:"client_id" validate:"required,gt=0"`
}

func decodeTransaction(w http.ResponseWriter, r *http.Request) (models.Transaction, bool) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		log.Error().Err(err).Msg("Failed to decode transaction request body")
		writeError(w, http.StatusBadRequest, "invalid request")
		return models.Transaction{}, false
	}
	if errs := util.ValidateStruct(req); errs != nil {
		writeValidationError(w, errs)
		return models.Transaction{}, false
	}
	return models.Transaction{Amount: *req.Amount, Date: req.Date, ClientID: *req.ClientID}, true
}

func listTransactions(w http.ResponseWriter, txns []models.Transaction, err error, msg string) {
	if err != nil {
		log.Error().Err(err).Msg(msg)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func ListTransactions(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := svc.List(r.Context())
		listTransactions(w, txns, err, "Failed to list transactions")
	}
}

func GetTransaction(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "transaction_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txn, err := svc.Get(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
			writeServiceError(w, err)
			return
		}
		if txn == nil {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func GetTransactionsByClient(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txns, err := svc.FindByClient(r.Context(), clientID)
		listTransactions(w, txns, err, "Failed to get transactions for client")
	}
}

func GetTransactionsByDate(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dateParam(r, "date")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txns, err := svc.FindByDate(r.Context(), date)
		listTransactions(w, txns, err, "Failed to get transactions for date")
	}
}

func GetTransactionsByRange(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := rangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txns, err := svc.FindByDateRange(r.Context(), start, end)
		listTransactions(w, txns, err, "Failed to get transactions for period")
	}
}

func GetClientTransactionsByRange(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		start, end, err := rangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txns, err := svc.FindByClientAndDateRange(r.Context(), clientID, start, end)
		listTransactions(w, txns, err, "Failed to get client transactions for period")
	}
}

func CreateTransaction(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txn, ok := decodeTransaction(w, r)
		if !ok {
			return
		}
		created, err := svc.Create(r.Context(), txn)
		if err != nil {
			log.Warn().Err(err).Int64("client_id", txn.ClientID).Msg("Failed to create transaction")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "transaction_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txn, ok := decodeTransaction(w, r)
		if !ok {
			return
		}
		updated, err := svc.Update(r.Context(), id, txn)
		if err != nil {
			log.Warn().Err(err).Int64("transaction_id", id).Msg("Failed to update transaction")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "transaction_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			log.Warn().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetClientTotal(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		total, err := svc.TotalForClient(r.Context(), clientID)
		if err != nil {
			log.Error().Err(err).Int64("client_id", clientID).Msg("Failed to sum transactions for client")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "total": total})
	}
}

func CountClientTransactions(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		n, err := svc.CountForClient(r.Context(), clientID)
		if err != nil {
			log.Error().Err(err).Int64("client_id", clientID).Msg("Failed to count transactions for client")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "count": n})
	}
}

func CountTransactions(svc TransactionRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to count transactions")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"count": n})
	}
}
