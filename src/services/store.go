package services

import (
	"context"

	"dimdim-server/src/models"
)

// TxManager runs fn inside one store transaction. The transaction commits
// when fn returns nil and rolls back on any error or panic.
type TxManager interface {
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	ReadWrite(ctx context.Context, fn func(ctx context.Context) error) error
}

// ClientStore finders return (nil, nil) when no row matches.
type ClientStore interface {
	FindAll(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id int64) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	FindByNameContaining(ctx context.Context, name string) ([]models.Client, error)
	ExistsByEmailAndIDNot(ctx context.Context, email string, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type TransactionStore interface {
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindByClientID(ctx context.Context, clientID int64) ([]models.Transaction, error)
	FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error)
	FindByDateBetween(ctx context.Context, start, end models.Date) ([]models.Transaction, error)
	FindByClientIDAndDateBetween(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByClientID(ctx context.Context, clientID int64) (int64, error)
	SumAmountByClientID(ctx context.Context, clientID int64) (float64, error)
}
