package wsh

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mr-league/internal/logging"
	mtH "mr-league/internal/matchHandlers"
	"mr-league/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the match form and the JSON API.
type Server struct {
	Matches *mtH.Handler
	Teams   models.Teams
	League  string

	tmpl *template.Template
}

func NewServer(matches *mtH.Handler, teams models.Teams, league string) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"label": func(s models.Stat) string { return s.Label() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{Matches: matches, Teams: teams, League: league, tmpl: tmpl}, nil
}

// Routes builds the router with the standard middleware stack.
func (s *Server) Routes(corsOrigins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.HealthCheck)

	r.Get("/", s.ServeForm)
	r.Post("/", s.ServeForm)
	r.Post("/matches", s.SubmitForm)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", s.GetTeams)
		r.Get("/players", s.GetPlayers)
		r.Get("/rounds/{round}/teams/{team}/roster", s.GetRoster)
		r.Get("/matches/next-id", s.GetNextMatchID)
		r.Post("/matches/preview", s.PreviewMatch)
		r.Post("/matches", s.CreateMatch)
	})

	return r
}

// StartWS runs the HTTP server until ctx is cancelled.
func StartWS(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown failed")
			return srv.Close()
		}
		return nil
	}
}
