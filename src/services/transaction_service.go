package services

import (
	"context"
	"time"

	"dimdim-server/src/models"

	"github.com/rs/zerolog/log"
)

type TransactionService struct {
	transactions TransactionStore
	clients      ClientStore
	tx           TxManager
	now          func() time.Time
}

func NewTransactionService(transactions TransactionStore, clients ClientStore, tx TxManager) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		clients:      clients,
		tx:           tx,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to default transaction dates.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	log.Info().Msg("Listing all transactions")
	return s.readMany(ctx, "list transactions", func(ctx context.Context) ([]models.Transaction, error) {
		return s.transactions.FindAll(ctx)
	})
}

// Get returns nil without error when the transaction does not exist.
func (s *TransactionService) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	log.Info().Int64("transaction_id", id).Msg("Fetching transaction")
	var txn *models.Transaction
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		txn, err = s.transactions.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, models.StoreError("get transaction", err)
	}
	return txn, nil
}

func (s *TransactionService) FindByClient(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	log.Info().Int64("client_id", clientID).Msg("Fetching transactions for client")
	return s.readMany(ctx, "find transactions by client", func(ctx context.Context) ([]models.Transaction, error) {
		return s.transactions.FindByClientID(ctx, clientID)
	})
}

func (s *TransactionService) FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error) {
	log.Info().Stringer("date", date).Msg("Fetching transactions for date")
	return s.readMany(ctx, "find transactions by date", func(ctx context.Context) ([]models.Transaction, error) {
		return s.transactions.FindByDate(ctx, date)
	})
}

// FindByDateRange matches dates in [start, end].
func (s *TransactionService) FindByDateRange(ctx context.Context, start, end models.Date) ([]models.Transaction, error) {
	log.Info().Stringer("start", start).Stringer("end", end).Msg("Fetching transactions for period")
	return s.readMany(ctx, "find transactions by period", func(ctx context.Context) ([]models.Transaction, error) {
		return s.transactions.FindByDateBetween(ctx, start, end)
	})
}

func (s *TransactionService) FindByClientAndDateRange(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error) {
	log.Info().Int64("client_id", clientID).Stringer("start", start).Stringer("end", end).Msg("Fetching client transactions for period")
	return s.readMany(ctx, "find client transactions by period", func(ctx context.Context) ([]models.Transaction, error) {
		return s.transactions.FindByClientIDAndDateBetween(ctx, clientID, start, end)
	})
}

func (s *TransactionService) Create(ctx context.Context, txn models.Transaction) (*models.Transaction, error) {
	log.Info().Float64("amount", txn.Amount).Int64("client_id", txn.ClientID).Msg("Creating transaction")
	var created *models.Transaction
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		ok, err := s.clients.ExistsByID(ctx, txn.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Int64("client_id", txn.ClientID).Msg("Rejected transaction for unknown client")
			return models.NewError(models.KindClientNotFound, "client not found")
		}
		if txn.Date.IsZero() {
			txn.Date = models.DateOf(s.now())
			log.Info().Stringer("date", txn.Date).Msg("No date given, using today")
		}
		created, err = s.transactions.Insert(ctx, &txn)
		return err
	})
	if err != nil {
		return nil, models.StoreError("create transaction", err)
	}
	log.Info().Int64("transaction_id", created.ID).Msg("Created transaction")
	return created, nil
}

// Update overwrites amount, date and client reference. A zero date keeps
// the stored one.
func (s *TransactionService) Update(ctx context.Context, id int64, data models.Transaction) (*models.Transaction, error) {
	log.Info().Int64("transaction_id", id).Msg("Updating transaction")
	var updated *models.Transaction
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.transactions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			log.Warn().Int64("transaction_id", id).Msg("Transaction to update was not found")
			return models.NewError(models.KindNotFound, "transaction not found")
		}
		if existing.ClientID != data.ClientID {
			ok, err := s.clients.ExistsByID(ctx, data.ClientID)
			if err != nil {
				return err
			}
			if !ok {
				log.Warn().Int64("transaction_id", id).Int64("client_id", data.ClientID).Msg("Rejected move of transaction to unknown client")
				return models.NewError(models.KindClientNotFound, "client not found")
			}
		}
		existing.Amount = data.Amount
		if !data.Date.IsZero() {
			existing.Date = data.Date
		}
		existing.ClientID = data.ClientID
		updated, err = s.transactions.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, models.StoreError("update transaction", err)
	}
	log.Info().Int64("transaction_id", id).Msg("Updated transaction")
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	log.Info().Int64("transaction_id", id).Msg("Deleting transaction")
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		ok, err := s.transactions.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Int64("transaction_id", id).Msg("Transaction to delete was not found")
			return models.NewError(models.KindNotFound, "transaction not found")
		}
		return s.transactions.DeleteByID(ctx, id)
	})
	if err != nil {
		return models.StoreError("delete transaction", err)
	}
	log.Info().Int64("transaction_id", id).Msg("Deleted transaction")
	return nil
}

// TotalForClient is zero for a client without transactions.
func (s *TransactionService) TotalForClient(ctx context.Context, clientID int64) (float64, error) {
	log.Info().Int64("client_id", clientID).Msg("Summing transactions for client")
	var total float64
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		total, err = s.transactions.SumAmountByClientID(ctx, clientID)
		return err
	})
	if err != nil {
		return 0, models.StoreError("sum transactions", err)
	}
	return total, nil
}

func (s *TransactionService) CountForClient(ctx context.Context, clientID int64) (int64, error) {
	log.Info().Int64("client_id", clientID).Msg("Counting transactions for client")
	return s.readCount(ctx, "count client transactions", func(ctx context.Context) (int64, error) {
		return s.transactions.CountByClientID(ctx, clientID)
	})
}

func (s *TransactionService) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		ok, err = s.transactions.ExistsByID(ctx, id)
		return err
	})
	if err != nil {
		return false, models.StoreError("check transaction", err)
	}
	return ok, nil
}

func (s *TransactionService) Count(ctx context.Context) (int64, error) {
	return s.readCount(ctx, "count transactions", s.transactions.Count)
}

func (s *TransactionService) readMany(ctx context.Context, op string, find func(context.Context) ([]models.Transaction, error)) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		txns, err = find(ctx)
		return err
	})
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	return txns, nil
}

func (s *TransactionService) readCount(ctx context.Context, op string, count func(context.Context) (int64, error)) (int64, error) {
	var n int64
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		n, err = count(ctx)
		return err
	})
	if err != nil {
		return 0, models.StoreError(op, err)
	}
	return n, nil
}
