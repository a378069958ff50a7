package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	moviedomain "github.com/cannoahgkt/moviesapi/internal/domain/movie"
	userdomain "github.com/cannoahgkt/moviesapi/internal/domain/user"
	authusecase "github.com/cannoahgkt/moviesapi/internal/usecase/auth"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []userdomain.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps service-layer failures onto the HTTP surface.
// Anything unrecognised becomes a 500 with a generic body; the cause is
// logged server-side only.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *userdomain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: ve.Fields})
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, userdomain.ErrInvalidCredentials.Error())
	case errors.Is(err, userdomain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, userdomain.ErrNotFound), errors.Is(err, moviedomain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authusecase.ErrTokenInvalid), errors.Is(err, authusecase.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
