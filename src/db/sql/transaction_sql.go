package db

import (
	"context"
	"errors"
	"time"

	"dimdim-server/src/db"
	"dimdim-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, amount, date, client_id, created_at, updated_at`

type TransactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	var date time.Time
	if err := row.Scan(&t.ID, &t.Amount, &date, &t.ClientID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Date = models.DateOf(date)
	return &t, nil
}

func (s *TransactionStore) queryMany(ctx context.Context, op, query string, args ...any) ([]models.Transaction, error) {
	rows, err := db.Conn(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return txns, nil
}

func (s *TransactionStore) FindAll(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY id`
	return s.queryMany(ctx, "find all transactions", query)
}

func (s *TransactionStore) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(db.Conn(ctx, s.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find transaction", err)
	}
	return t, nil
}

func (s *TransactionStore) FindByClientID(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE client_id = $1 ORDER BY id`
	return s.queryMany(ctx, "find transactions by client", query, clientID)
}

func (s *TransactionStore) FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE date = $1 ORDER BY id`
	return s.queryMany(ctx, "find transactions by date", query, date.Time())
}

func (s *TransactionStore) FindByDateBetween(ctx context.Context, start, end models.Date) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id
	`
	return s.queryMany(ctx, "find transactions by period", query, start.Time(), end.Time())
}

func (s *TransactionStore) FindByClientIDAndDateBetween(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE client_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id
	`
	return s.queryMany(ctx, "find client transactions by period", query, clientID, start.Time(), end.Time())
}

func (s *TransactionStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, classify("check transaction", err)
	}
	return exists, nil
}

func (s *TransactionStore) Insert(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (amount, date, client_id)
		VALUES ($1, $2, $3)
		RETURNING ` + transactionColumns
	t, err := scanTransaction(db.Conn(ctx, s.pool).QueryRow(ctx, query, txn.Amount, txn.Date.Time(), txn.ClientID))
	if err != nil {
		return nil, classify("insert transaction", err)
	}
	return t, nil
}

func (s *TransactionStore) Update(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $1, date = $2, client_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + transactionColumns
	t, err := scanTransaction(db.Conn(ctx, s.pool).QueryRow(ctx, query, txn.Amount, txn.Date.Time(), txn.ClientID, txn.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.KindNotFound, "transaction not found")
	}
	if err != nil {
		return nil, classify("update transaction", err)
	}
	return t, nil
}

func (s *TransactionStore) DeleteByID(ctx context.Context, id int64) error {
	cmd, err := db.Conn(ctx, s.pool).Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return classify("delete transaction", err)
	}
	if cmd.RowsAffected() == 0 {
		return models.NewError(models.KindNotFound, "transaction not found")
	}
	return nil
}

func (s *TransactionStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, classify("count transactions", err)
	}
	return n, nil
}

func (s *TransactionStore) CountByClientID(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM transactions WHERE client_id = $1`
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, query, clientID).Scan(&n); err != nil {
		return 0, classify("count client transactions", err)
	}
	return n, nil
}

func (s *TransactionStore) SumAmountByClientID(ctx context.Context, clientID int64) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0)::DOUBLE PRECISION FROM transactions WHERE client_id = $1`
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, query, clientID).Scan(&total); err != nil {
		return 0, classify("sum client transactions", err)
	}
	return total, nil
}
