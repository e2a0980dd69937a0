package services

import (
	"context"

	"dimdim-server/src/models"

	"github.com/rs/zerolog/log"
)

type ClientService struct {
	clients ClientStore
	tx      TxManager
}

func NewClientService(clients ClientStore, tx TxManager) *ClientService {
	return &ClientService{clients: clients, tx: tx}
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	log.Info().Msg("Listing all clients")
	var clients []models.Client
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		clients, err = s.clients.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, models.StoreError("list clients", err)
	}
	return clients, nil
}

// Get returns nil without error when the client does not exist.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	log.Info().Int64("client_id", id).Msg("Fetching client")
	var client *models.Client
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		client, err = s.clients.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, models.StoreError("get client", err)
	}
	return client, nil
}

func (s *ClientService) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	log.Info().Str("email", email).Msg("Fetching client by email")
	var client *models.Client
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		client, err = s.clients.FindByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, models.StoreError("find client by email", err)
	}
	return client, nil
}

func (s *ClientService) FindByName(ctx context.Context, name string) ([]models.Client, error) {
	log.Info().Str("name", name).Msg("Searching clients by name")
	var clients []models.Client
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		clients, err = s.clients.FindByNameContaining(ctx, name)
		return err
	})
	if err != nil {
		return nil, models.StoreError("find clients by name", err)
	}
	return clients, nil
}

func (s *ClientService) Create(ctx context.Context, client models.Client) (*models.Client, error) {
	log.Info().Str("name", client.Name).Msg("Creating client")
	var created *models.Client
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.clients.FindByEmail(ctx, client.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Warn().Str("email", client.Email).Msg("Rejected client with an email already in use")
			return models.NewError(models.KindDuplicateEmail, "a client with this email already exists")
		}
		created, err = s.clients.Insert(ctx, &client)
		return err
	})
	if err != nil {
		return nil, models.StoreError("create client", err)
	}
	log.Info().Int64("client_id", created.ID).Msg("Created client")
	return created, nil
}

// Update overwrites name, email and phone of an existing client.
func (s *ClientService) Update(ctx context.Context, id int64, data models.Client) (*models.Client, error) {
	log.Info().Int64("client_id", id).Msg("Updating client")
	var updated *models.Client
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.clients.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			log.Warn().Int64("client_id", id).Msg("Client to update was not found")
			return models.NewError(models.KindNotFound, "client not found")
		}
		if existing.Email != data.Email {
			taken, err := s.clients.ExistsByEmailAndIDNot(ctx, data.Email, id)
			if err != nil {
				return err
			}
			if taken {
				log.Warn().Int64("client_id", id).Str("email", data.Email).Msg("Rejected update to an email held by another client")
				return models.NewError(models.KindDuplicateEmail, "another client with this email already exists")
			}
		}
		existing.Name = data.Name
		existing.Email = data.Email
		existing.Phone = data.Phone
		updated, err = s.clients.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, models.StoreError("update client", err)
	}
	log.Info().Int64("client_id", id).Msg("Updated client")
	return updated, nil
}

// Delete removes the client together with its transactions.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	log.Info().Int64("client_id", id).Msg("Deleting client")
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		ok, err := s.clients.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Int64("client_id", id).Msg("Client to delete was not found")
			return models.NewError(models.KindNotFound, "client not found")
		}
		return s.clients.DeleteByID(ctx, id)
	})
	if err != nil {
		return models.StoreError("delete client", err)
	}
	log.Info().Int64("client_id", id).Msg("Deleted client")
	return nil
}

func (s *ClientService) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		ok, err = s.clients.ExistsByID(ctx, id)
		return err
	})
	if err != nil {
		return false, models.StoreError("check client", err)
	}
	return ok, nil
}

func (s *ClientService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.clients.Count(ctx)
		return err
	})
	if err != nil {
		return 0, models.StoreError("count clients", err)
	}
	return n, nil
}
