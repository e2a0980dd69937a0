package memory

import (
	"context"

	"dimdim-server/src/models"
)

type TransactionStore struct {
	s *Store
}

func (t *TransactionStore) FindAll(ctx context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	t.s.read(ctx, func() {
		out = t.s.sortedTransactions(func(models.Transaction) bool { return true }, false)
	})
	return out, nil
}

func (t *TransactionStore) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var out *models.Transaction
	t.s.read(ctx, func() {
		if txn, ok := t.s.transactions[id]; ok {
			out = &txn
		}
	})
	return out, nil
}

func (t *TransactionStore) FindByClientID(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	t.s.read(ctx, func() {
		out = t.s.sortedTransactions(func(txn models.Transaction) bool { return txn.ClientID == clientID }, false)
	})
	return out, nil
}

func (t *TransactionStore) FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	t.s.read(ctx, func() {
		out = t.s.sortedTransactions(func(txn models.Transaction) bool { return txn.Date.Equal(date) }, false)
	})
	return out, nil
}

func (t *TransactionStore) FindByDateBetween(ctx context.Context, start, end models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	t.s.read(ctx, func() {
		out = t.s.sortedTransactions(func(txn models.Transaction) bool { return inRange(txn.Date, start, end) }, true)
	})
	return out, nil
}

func (t *TransactionStore) FindByClientIDAndDateBetween(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	t.s.read(ctx, func() {
		out = t.s.sortedTransactions(func(txn models.Transaction) bool {
			return txn.ClientID == clientID && inRange(txn.Date, start, end)
		}, true)
	})
	return out, nil
}

func (t *TransactionStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	t.s.read(ctx, func() { _, ok = t.s.transactions[id] })
	return ok, nil
}

func (t *TransactionStore) Insert(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	var out models.Transaction
	err := t.s.write(ctx, func() error {
		if _, ok := t.s.clients[txn.ClientID]; !ok {
			return models.NewError(models.KindClientNotFound, "client not found")
		}
		if txn.Amount <= 0 {
			return models.NewError(models.KindValidation, "amount must be positive")
		}
		t.s.nextTxnID++
		now := t.s.now()
		out = models.Transaction{
			ID:        t.s.nextTxnID,
			Amount:    txn.Amount,
			Date:      txn.Date,
			ClientID:  txn.ClientID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.s.transactions[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TransactionStore) Update(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	var out models.Transaction
	err := t.s.write(ctx, func() error {
		existing, ok := t.s.transactions[txn.ID]
		if !ok {
			return models.NewError(models.KindNotFound, "transaction not found")
		}
		if _, ok := t.s.clients[txn.ClientID]; !ok {
			return models.NewError(models.KindClientNotFound, "client not found")
		}
		if txn.Amount <= 0 {
			return models.NewError(models.KindValidation, "amount must be positive")
		}
		existing.Amount = txn.Amount
		existing.Date = txn.Date
		existing.ClientID = txn.ClientID
		existing.UpdatedAt = t.s.now()
		t.s.transactions[existing.ID] = existing
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TransactionStore) DeleteByID(ctx context.Context, id int64) error {
	return t.s.write(ctx, func() error {
		if _, ok := t.s.transactions[id]; !ok {
			return models.NewError(models.KindNotFound, "transaction not found")
		}
		delete(t.s.transactions, id)
		return nil
	})
}

func (t *TransactionStore) Count(ctx context.Context) (int64, error) {
	var n int64
	t.s.read(ctx, func() { n = int64(len(t.s.transactions)) })
	return n, nil
}

func (t *TransactionStore) CountByClientID(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	t.s.read(ctx, func() {
		for _, txn := range t.s.transactions {
			if txn.ClientID == clientID {
				n++
			}
		}
	})
	return n, nil
}

func (t *TransactionStore) SumAmountByClientID(ctx context.Context, clientID int64) (float64, error) {
	var total float64
	t.s.read(ctx, func() {
		for _, txn := range t.s.transactions {
			if txn.ClientID == clientID {
				total += txn.Amount
			}
		}
	})
	return total, nil
}
