package db

import (
	"context"
	"errors"

	"dimdim-server/src/db"
	"dimdim-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, name, email, phone, created_at, updated_at`

type ClientStore struct {
	pool *pgxpool.Pool
}

func NewClientStore(pool *pgxpool.Pool) *ClientStore {
	return &ClientStore{pool: pool}
}

func scanClient(row scanner) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClientStore) queryOne(ctx context.Context, op, query string, args ...any) (*models.Client, error) {
	c, err := scanClient(db.Conn(ctx, s.pool).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

func (s *ClientStore) queryMany(ctx context.Context, op, query string, args ...any) ([]models.Client, error) {
	rows, err := db.Conn(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return clients, nil
}

func (s *ClientStore) FindAll(ctx context.Context) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
	return s.queryMany(ctx, "find all clients", query)
}

func (s *ClientStore) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return s.queryOne(ctx, "find client", query, id)
}

func (s *ClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	return s.queryOne(ctx, "find client by email", query, email)
}

func (s *ClientStore) FindByNameContaining(ctx context.Context, name string) ([]models.Client, error) {
	// strpos keeps % and _ in the search term literal
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE strpos(lower(name), lower($1)) > 0
		ORDER BY id
	`
	return s.queryMany(ctx, "find clients by name", query, name)
}

func (s *ClientStore) ExistsByEmailAndIDNot(ctx context.Context, email string, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1 AND id <> $2)`
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, query, email, id).Scan(&exists); err != nil {
		return false, classify("check client email", err)
	}
	return exists, nil
}

func (s *ClientStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, classify("check client", err)
	}
	return exists, nil
}

func (s *ClientStore) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING ` + clientColumns
	c, err := scanClient(db.Conn(ctx, s.pool).QueryRow(ctx, query, client.Name, client.Email, client.Phone))
	if err != nil {
		return nil, classify("insert client", err)
	}
	return c, nil
}

func (s *ClientStore) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + clientColumns
	c, err := scanClient(db.Conn(ctx, s.pool).QueryRow(ctx, query, client.Name, client.Email, client.Phone, client.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.KindNotFound, "client not found")
	}
	if err != nil {
		return nil, classify("update client", err)
	}
	return c, nil
}

// DeleteByID relies on ON DELETE CASCADE to remove the client's transactions.
func (s *ClientStore) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	cmd, err := db.Conn(ctx, s.pool).Exec(ctx, query, id)
	if err != nil {
		return classify("delete client", err)
	}
	if cmd.RowsAffected() == 0 {
		return models.NewError(models.KindNotFound, "client not found")
	}
	return nil
}

func (s *ClientStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.Conn(ctx, s.pool).QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, classify("count clients", err)
	}
	return n, nil
}
