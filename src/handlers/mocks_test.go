package handlers

import (
	"context"

	"dimdim-server/src/models"
)

type mockClientRules struct {
	ListFn       func(ctx context.Context) ([]models.Client, error)
	GetFn        func(ctx context.Context, id int64) (*models.Client, error)
	FindByNameFn func(ctx context.Context, name string) ([]models.Client, error)
	CreateFn     func(ctx context.Context, client models.Client) (*models.Client, error)
	UpdateFn     func(ctx context.Context, id int64, data models.Client) (*models.Client, error)
	DeleteFn     func(ctx context.Context, id int64) error
	CountFn      func(ctx context.Context) (int64, error)
}

func (m *mockClientRules) List(ctx context.Context) ([]models.Client, error) {
	return m.ListFn(ctx)
}

func (m *mockClientRules) Get(ctx context.Context, id int64) (*models.Client, error) {
	return m.GetFn(ctx, id)
}

func (m *mockClientRules) FindByName(ctx context.Context, name string) ([]models.Client, error) {
	return m.FindByNameFn(ctx, name)
}

func (m *mockClientRules) Create(ctx context.Context, client models.Client) (*models.Client, error) {
	return m.CreateFn(ctx, client)
}

func (m *mockClientRules) Update(ctx context.Context, id int64, data models.Client) (*models.Client, error) {
	return m.UpdateFn(ctx, id, data)
}

func (m *mockClientRules) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockClientRules) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

type mockTransactionRules struct {
	ListFn                     func(ctx context.Context) ([]models.Transaction, error)
	GetFn                      func(ctx context.Context, id int64) (*models.Transaction, error)
	FindByClientFn             func(ctx context.Context, clientID int64) ([]models.Transaction, error)
	FindByDateFn               func(ctx context.Context, date models.Date) ([]models.Transaction, error)
	FindByDateRangeFn          func(ctx context.Context, start, end models.Date) ([]models.Transaction, error)
	FindByClientAndDateRangeFn func(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error)
	CreateFn                   func(ctx context.Context, txn models.Transaction) (*models.Transaction, error)
	UpdateFn                   func(ctx context.Context, id int64, data models.Transaction) (*models.Transaction, error)
	DeleteFn                   func(ctx context.Context, id int64) error
	TotalForClientFn           func(ctx context.Context, clientID int64) (float64, error)
	CountForClientFn           func(ctx context.Context, clientID int64) (int64, error)
	CountFn                    func(ctx context.Context) (int64, error)
}

func (m *mockTransactionRules) List(ctx context.Context) ([]models.Transaction, error) {
	return m.ListFn(ctx)
}

func (m *mockTransactionRules) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	return m.GetFn(ctx, id)
}

func (m *mockTransactionRules) FindByClient(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	return m.FindByClientFn(ctx, clientID)
}

func (m *mockTransactionRules) FindByDate(ctx context.Context, date models.Date) ([]models.Transaction, error) {
	return m.FindByDateFn(ctx, date)
}

func (m *mockTransactionRules) FindByDateRange(ctx context.Context, start, end models.Date) ([]models.Transaction, error) {
	return m.FindByDateRangeFn(ctx, start, end)
}

func (m *mockTransactionRules) FindByClientAndDateRange(ctx context.Context, clientID int64, start, end models.Date) ([]models.Transaction, error) {
	return m.FindByClientAndDateRangeFn(ctx, clientID, start, end)
}

func (m *mockTransactionRules) Create(ctx context.Context, txn models.Transaction) (*models.Transaction, error) {
	return m.CreateFn(ctx, txn)
}

func (m *mockTransactionRules) Update(ctx context.Context, id int64, data models.Transaction) (*models.Transaction, error) {
	return m.UpdateFn(ctx, id, data)
}

func (m *mockTransactionRules) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockTransactionRules) TotalForClient(ctx context.Context, clientID int64) (float64, error) {
	return m.TotalForClientFn(ctx, clientID)
}

func (m *mockTransactionRules) CountForClient(ctx context.Context, clientID int64) (int64, error) {
	return m.CountForClientFn(ctx, clientID)
}

func (m *mockTransactionRules) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(ctx context.Context) error { return m.err }
