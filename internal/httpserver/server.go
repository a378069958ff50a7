package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cannoahgkt/moviesapi/internal/config"
	moviedomain "github.com/cannoahgkt/moviesapi/internal/domain/movie"
	userdomain "github.com/cannoahgkt/moviesapi/internal/domain/user"
	authusecase "github.com/cannoahgkt/moviesapi/internal/usecase/auth"
	userusecase "github.com/cannoahgkt/moviesapi/internal/usecase/user"

	"github.com/go-chi/chi/v5"
)

// AuthService is the authentication surface the server depends on.
type AuthService interface {
	Register(ctx context.Context, input authusecase.RegisterInput) (*userdomain.User, error)
	Login(ctx context.Context, creds userdomain.Credentials) (string, *userdomain.User, error)
	Authenticate(ctx context.Context, token string) (authusecase.Identity, error)
}

// UserService covers profile and favorite-list operations.
type UserService interface {
	List(ctx context.Context) ([]*userdomain.User, error)
	Update(ctx context.Context, username string, input userusecase.UpdateInput) (*userdomain.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*userdomain.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*userdomain.User, error)
}

// MovieService covers catalog reads.
type MovieService interface {
	List(ctx context.Context) ([]*moviedomain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*moviedomain.Movie, error)
	GetGenre(ctx context.Context, name string) (*moviedomain.Genre, error)
	GetDirector(ctx context.Context, name string) (*moviedomain.Director, error)
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer   *http.Server
	router       chi.Router
	authService  AuthService
	userService  UserService
	movieService MovieService
	metrics      *Metrics
	loginLimiter *RateLimiter
	addr         string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, authService AuthService, userService UserService, movieService MovieService) *Server {
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	srv := &Server{
		router:       chi.NewRouter(),
		authService:  authService,
		userService:  userService,
		movieService: movieService,
		metrics:      NewMetrics(),
		loginLimiter: NewRateLimiter(perMinute(cfg.LoginRatePerMin), cfg.LoginBurst),
		addr:         addr,
	}
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}
	srv.registerRoutes(cfg.AllowedOrigins)
	return srv
}

func (s *Server) registerRoutes(allowedOrigins []string) {
	s.router.Use(withLogging)
	s.router.Use(withCORS(allowedOrigins))
	s.router.Use(s.metrics.Middleware)

	s.router.Get("/", s.handleRoot)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.With(s.loginLimiter.Middleware).Post("/login", s.handleLogin)
	s.router.Post("/users", s.handleRegister)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/movies", s.handleListMovies)
		r.Get("/movies/{title}", s.handleGetMovie)
		r.Get("/movies/genres/{name}", s.handleGetGenre)
		r.Get("/movies/directors/{name}", s.handleGetDirector)

		r.Get("/users", s.handleListUsers)
		r.Put("/users/{username}", s.handleUpdateUser)
		r.Delete("/users/{username}", s.handleDeleteUser)
		r.Post("/users/{username}/movies/{movieID}", s.handleAddFavorite)
		r.Delete("/users/{username}/movies/{movieID}", s.handleRemoveFavorite)
	})
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server and the limiter's cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.loginLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
