package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/models/domain"
)

const (
	MessageServerError  = "Server Error"
	MessageUnauthorized = "Unauthorized"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}

func Success(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	JSON(w, r, status, api.Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, api.Envelope{Success: false, Data: message})
}

// Error maps err onto a status code and envelope. Unexpected errors are logged
// and reported with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		Fail(w, r, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		Fail(w, r, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Fail(w, r, http.StatusUnauthorized, MessageUnauthorized)
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("request failed")
		Fail(w, r, http.StatusInternalServerError, MessageServerError)
	}
}
