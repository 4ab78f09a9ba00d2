package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	apihandlers "wordreader/internal/api/handlers"
	"wordreader/internal/api/middleware"
	"wordreader/internal/auth"
	"wordreader/internal/domain"
	"wordreader/internal/service"
	"wordreader/internal/speech"
)

// Deps are the services the HTTP API is built on
type Deps struct {
	Manager     *service.WorkspaceManager
	Library     *service.LibraryService
	Auth        *service.AuthService
	Voices      *speech.VoiceRegistry
	Locales     domain.Locales
	JWT         *auth.JWTService
	CORSOrigins []string
	Logger      *zap.Logger
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(cors.Handler(middleware.CORSHandler(d.CORSOrigins)))

	// Handlers
	authHandler := apihandlers.NewAuthHandler(d.Auth, d.Logger)
	libraryHandler := apihandlers.NewLibraryHandler(d.Library, d.Logger)
	voicesHandler := apihandlers.NewVoicesHandler(d.Voices, d.Locales)
	workspaceHandler := apihandlers.NewWorkspaceHandler(d.Manager, d.JWT, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
		})
		r.Get("/voices", voicesHandler.List)
		r.Get("/library", libraryHandler.List)
		r.Post("/auth/signup", authHandler.SignUp)

		r.Post("/workspaces", workspaceHandler.Create)
		r.Route("/workspaces/{id}", func(r chi.Router) {
			r.Delete("/", workspaceHandler.Delete)

			// Table
			r.Get("/table", workspaceHandler.GetTable)
			r.Post("/table/rows", workspaceHandler.AddRow)
			r.Post("/table/columns", workspaceHandler.AddColumn)
			r.Put("/table/cells/{row}/{col}", workspaceHandler.SetCell)
			r.Post("/table/import", workspaceHandler.Import)
			r.Get("/table/export", workspaceHandler.Export)

			// Library
			r.Post("/library/{name}", workspaceHandler.SaveTable)
			r.Post("/library/{name}/load", workspaceHandler.LoadTable)

			// Playback
			r.Get("/playback", workspaceHandler.PlaybackStatus)
			r.Post("/playback", workspaceHandler.Play)
			r.Post("/playback/pause", workspaceHandler.Pause)
			r.Post("/playback/resume", workspaceHandler.Resume)
			r.Delete("/playback", workspaceHandler.Stop)
			r.Put("/voices", workspaceHandler.SelectVoice)
			r.Put("/rate", workspaceHandler.SetRate)

			// Session
			r.Post("/auth/login", workspaceHandler.Login)
			r.With(middleware.AuthMiddleware(d.JWT)).Post("/auth/logout", workspaceHandler.Logout)
		})
	})

	return r
}

// NewHandler wraps the router with a combined-format access log
func NewHandler(d Deps, accessLog io.Writer) http.Handler {
	return handlers.CombinedLoggingHandler(accessLog, NewRouter(d))
}
