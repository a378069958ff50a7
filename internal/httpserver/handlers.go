package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	userdomain "github.com/cannoahgkt/moviesapi/internal/domain/user"
	authusecase "github.com/cannoahgkt/moviesapi/internal/usecase/auth"
	userusecase "github.com/cannoahgkt/moviesapi/internal/usecase/user"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "enjoy watching"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string  `json:"username"`
		Password string  `json:"password"`
		Email    string  `json:"email"`
		Birthday *string `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	birthday, ok := parseBirthday(payload.Birthday)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: []userdomain.FieldError{
			{Field: "birthday", Message: "must be a date in YYYY-MM-DD format"},
		}})
		return
	}

	u, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Username: payload.Username,
		Password: payload.Password,
		Email:    payload.Email,
		Birthday: birthday,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, u, err := s.authService.Login(r.Context(), userdomain.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  u,
		"token": token,
	})
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movieService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movieService.GetByTitle(r.Context(), chi.URLParam(r, "title"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	g, err := s.movieService.GetGenre(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetDirector(w http.ResponseWriter, r *http.Request) {
	d, err := s.movieService.GetDirector(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
		Email    *string `json:"email"`
		Birthday *string `json:"birthday"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	input := userusecase.UpdateInput{
		Username: payload.Username,
		Password: payload.Password,
		Email:    payload.Email,
	}
	if payload.Birthday != nil {
		birthday, ok := parseBirthday(payload.Birthday)
		if !ok {
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: []userdomain.FieldError{
				{Field: "birthday", Message: "must be a date in YYYY-MM-DD format"},
			}})
			return
		}
		input.Birthday = birthday
	}

	u, err := s.userService.Update(r.Context(), chi.URLParam(r, "username"), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	u, err := s.userService.AddFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movieID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	u, err := s.userService.RemoveFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movieID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// parseBirthday accepts YYYY-MM-DD or RFC3339 input; nil or blank means
// "not provided".
func parseBirthday(raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}
