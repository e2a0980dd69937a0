package handlers

import (
	"context"
	"net/http"
	"strings"

	"dimdim-server/src/models"
	"dimdim-server/src/util"

	"github.com/rs/zerolog/log"
)

// ClientRules is the client rule engine as seen by the HTTP layer.
type ClientRules interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	FindByName(ctx context.Context, name string) ([]models.Client, error)
	Create(ctx context.Context, client models.Client) (*models.Client, error)
	Update(ctx context.Context, id int64, data models.Client) (*models.Client, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type clientRequest struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

func (req clientRequest) toModel() models.Client {
	return models.Client{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: req.Phone,
	}
}

func decodeClient(w http.ResponseWriter, r *http.Request) (models.Client, bool) {
	var req clientRequest
	if err := decode(r, &req); err != nil {
		log.Error().Err(err).Msg("Failed to decode client request body")
		writeError(w, http.StatusBadRequest, "invalid request")
		return models.Client{}, false
	}
	if errs := util.ValidateStruct(req); errs != nil {
		writeValidationError(w, errs)
		return models.Client{}, false
	}
	return req.toModel(), true
}

func ListClients(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := svc.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to list clients")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	}
}

func GetClient(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		client, err := svc.Get(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Int64("client_id", id).Msg("Failed to get client")
			writeServiceError(w, err)
			return
		}
		if client == nil {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeJSON(w, http.StatusOK, client)
	}
}

func SearchClients(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := r.URL.Query()["name"]
		if !ok || strings.TrimSpace(name[0]) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		clients, err := svc.FindByName(r.Context(), strings.TrimSpace(name[0]))
		if err != nil {
			log.Error().Err(err).Str("name", name[0]).Msg("Failed to search clients")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	}
}

func CreateClient(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, ok := decodeClient(w, r)
		if !ok {
			return
		}
		created, err := svc.Create(r.Context(), client)
		if err != nil {
			log.Warn().Err(err).Str("email", client.Email).Msg("Failed to create client")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateClient(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		client, ok := decodeClient(w, r)
		if !ok {
			return
		}
		updated, err := svc.Update(r.Context(), id, client)
		if err != nil {
			log.Warn().Err(err).Int64("client_id", id).Msg("Failed to update client")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteClient(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "client_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			log.Warn().Err(err).Int64("client_id", id).Msg("Failed to delete client")
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CountClients(svc ClientRules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to count clients")
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"count": n})
	}
}
