package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dimdim-server/src/models"
	"dimdim-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Message string             `json:"message"`
	Details []util.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeValidationError(w http.ResponseWriter, details []util.FieldError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request data", Details: details})
}

// StatusFor maps a rule-engine error kind onto an HTTP status.
func StatusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindDuplicateEmail, models.KindClientNotFound, models.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	var e *models.Error
	if errors.As(err, &e) {
		writeJSON(w, status, errorResponse{
			Message: e.Message,
			Details: []util.FieldError{{Message: e.Message, Type: e.Kind.String()}},
		})
		return
	}
	writeError(w, status, err.Error())
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func dateParam(r *http.Request, name string) (models.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return models.Date{}, errors.New(name + " is required")
	}
	return models.ParseDate(raw)
}

func rangeParams(r *http.Request) (models.Date, models.Date, error) {
	start, err := dateParam(r, "start")
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	end, err := dateParam(r, "end")
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	if end.Before(start) {
		return models.Date{}, models.Date{}, errors.New("end must not be before start")
	}
	return start, end, nil
}
