package memory

import (
	"context"

	"dimdim-server/src/models"
)

type ClientStore struct {
	s *Store
}

func (c *ClientStore) FindAll(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	c.s.read(ctx, func() {
		out = c.s.sortedClients(func(models.Client) bool { return true })
	})
	return out, nil
}

func (c *ClientStore) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	var out *models.Client
	c.s.read(ctx, func() {
		if cl, ok := c.s.clients[id]; ok {
			out = &cl
		}
	})
	return out, nil
}

func (c *ClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var out *models.Client
	c.s.read(ctx, func() {
		for _, cl := range c.s.clients {
			if cl.Email == email {
				cl := cl
				out = &cl
				return
			}
		}
	})
	return out, nil
}

func (c *ClientStore) FindByNameContaining(ctx context.Context, name string) ([]models.Client, error) {
	var out []models.Client
	c.s.read(ctx, func() {
		out = c.s.sortedClients(func(cl models.Client) bool { return containsFold(cl.Name, name) })
	})
	return out, nil
}

func (c *ClientStore) ExistsByEmailAndIDNot(ctx context.Context, email string, id int64) (bool, error) {
	var taken bool
	c.s.read(ctx, func() { taken = c.s.emailTaken(email, id) })
	return taken, nil
}

func (c *ClientStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	c.s.read(ctx, func() { _, ok = c.s.clients[id] })
	return ok, nil
}

func (c *ClientStore) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	var out models.Client
	err := c.s.write(ctx, func() error {
		if c.s.emailTaken(client.Email, 0) {
			return models.NewError(models.KindDuplicateEmail, "a client with this email already exists")
		}
		c.s.nextClientID++
		now := c.s.now()
		out = models.Client{
			ID:        c.s.nextClientID,
			Name:      client.Name,
			Email:     client.Email,
			Phone:     client.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		c.s.clients[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ClientStore) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	var out models.Client
	err := c.s.write(ctx, func() error {
		existing, ok := c.s.clients[client.ID]
		if !ok {
			return models.NewError(models.KindNotFound, "client not found")
		}
		if c.s.emailTaken(client.Email, client.ID) {
			return models.NewError(models.KindDuplicateEmail, "a client with this email already exists")
		}
		existing.Name = client.Name
		existing.Email = client.Email
		existing.Phone = client.Phone
		existing.UpdatedAt = c.s.now()
		c.s.clients[existing.ID] = existing
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteByID cascades to the client's transactions.
func (c *ClientStore) DeleteByID(ctx context.Context, id int64) error {
	return c.s.write(ctx, func() error {
		if _, ok := c.s.clients[id]; !ok {
			return models.NewError(models.KindNotFound, "client not found")
		}
		delete(c.s.clients, id)
		for tid, t := range c.s.transactions {
			if t.ClientID == id {
				delete(c.s.transactions, tid)
			}
		}
		return nil
	})
}

func (c *ClientStore) Count(ctx context.Context) (int64, error) {
	var n int64
	c.s.read(ctx, func() { n = int64(len(c.s.clients)) })
	return n, nil
}
