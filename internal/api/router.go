package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Eriw/podcast-transcriber/internal/api/handlers"
	"github.com/Eriw/podcast-transcriber/internal/api/middleware"
	"github.com/Eriw/podcast-transcriber/internal/auth"
	"github.com/Eriw/podcast-transcriber/internal/catalog"
	"github.com/Eriw/podcast-transcriber/internal/config"
	"github.com/Eriw/podcast-transcriber/internal/db"
	"github.com/Eriw/podcast-transcriber/internal/itunes"
	"github.com/Eriw/podcast-transcriber/internal/job"
	"github.com/Eriw/podcast-transcriber/internal/summarize"
	"github.com/Eriw/podcast-transcriber/internal/transcribe"
)

func NewRouter(
	database *db.Database,
	jwtService *auth.JWTService,
	cfg *config.Config,
	jobQueue *job.JobQueue,
	transcriber *transcribe.Service,
	summarizer *summarize.Service,
	cat *catalog.Catalog,
	itunesClient *itunes.Client,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))
	r.Use(middleware.MaxBodySize(10 << 20))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	searchHandler := handlers.NewSearchHandler(cat)
	itunesHandler := handlers.NewITunesHandler(itunesClient)
	transcribeHandler := handlers.NewTranscribeHandler(database, transcriber)
	summarizeHandler := handlers.NewSummarizeHandler(summarizer)
	jobHandler := handlers.NewJobHandler(jobQueue)
	settingsHandler := handlers.NewSettingsHandler(database)
	transcriptsHandler := handlers.NewTranscriptsHandler(database)

	rateLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Handler)

			r.Post("/auth/login", authHandler.Login)

			r.Get("/search", searchHandler.Search)
			r.Get("/itunes/podcasts", itunesHandler.SearchPodcasts)
			r.Get("/itunes/episodes", itunesHandler.SearchEpisodes)

			r.Post("/transcribe", transcribeHandler.Transcribe)
			r.Post("/summarize", summarizeHandler.Summarize)
			r.Get("/summarize/styles", summarizeHandler.Styles)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Jobs
			r.Post("/jobs/transcribe", jobHandler.EnqueueTranscribe)
			r.Post("/jobs/summarize", jobHandler.EnqueueSummarize)
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)

			// Transcript cache
			r.Get("/transcripts", transcriptsHandler.List)
			r.Get("/transcripts/{id}", transcriptsHandler.Get)
			r.Delete("/transcripts/{id}", transcriptsHandler.Delete)

			// Settings (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
