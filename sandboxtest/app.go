package sandboxtest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// App runs the mock service as a real HTTP server, for the demo tooling and
// end-to-end tests that want a network round trip.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config

	// Repo is exposed so callers can assert on issued tokens.
	Repo *Repository
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "sandbox"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting sandbox...")

	a.Repo = NewRepository()
	api := NewAPI(NewService(a.Repo, a.config))

	router := chi.NewRouter()
	router.Use(requestLogger(a.logger))
	api.AppendRoutes(router)
	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()
	a.srv = &http.Server{Handler: router}

	a.wg.Add(1)
	go func() {
		a.logger.Info("sandbox started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("serving http", "err", err)
			}
			a.logger.Info("sandbox stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down sandbox...")
	a.srv.Shutdown(context.Background())
	a.wg.Wait()
}

// URL returns the base URL to point a simplify.Client at via WithBaseURL.
func (a *App) URL() string {
	return "http://" + a.Addr
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r)
		})
	}
}
