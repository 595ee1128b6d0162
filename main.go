package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Eriw/podcast-transcriber/internal/api"
	"github.com/Eriw/podcast-transcriber/internal/auth"
	"github.com/Eriw/podcast-transcriber/internal/catalog"
	"github.com/Eriw/podcast-transcriber/internal/config"
	"github.com/Eriw/podcast-transcriber/internal/db"
	"github.com/Eriw/podcast-transcriber/internal/ffmpeg"
	"github.com/Eriw/podcast-transcriber/internal/itunes"
	"github.com/Eriw/podcast-transcriber/internal/job"
	"github.com/Eriw/podcast-transcriber/internal/summarize"
	"github.com/Eriw/podcast-transcriber/internal/transcribe"
	"github.com/Eriw/podcast-transcriber/internal/worker"
)

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	if ffmpeg.Available() {
		log.Printf("FFmpeg detected, large audio will be split into segments")
	} else {
		log.Printf("FFmpeg not found, large audio falls back to byte-range chunks")
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Settings stored in the database override environment defaults and
	// take effect without a restart
	resolveOpenAIKey := func() string { return database.GetSetting("openai_api_key", cfg.OpenAIAPIKey) }
	resolveGeminiKey := func() string { return database.GetSetting("gemini_api_key", cfg.GeminiAPIKey) }
	resolveWhisperModel := func() string { return database.GetSetting("whisper_model", "whisper-1") }
	resolveWhisperURL := func() string { return database.GetSetting("whisper_url", cfg.WhisperURL) }
	resolveSummaryModel := func() string { return database.GetSetting("summary_model", "gpt-4o") }
	resolveGeminiModel := func() string { return database.GetSetting("gemini_model", "gemini-2.0-flash") }

	// Transcription engines
	transcriber := transcribe.NewService(func() string {
		return database.GetSetting("transcribe_engine", cfg.TranscribeEngine)
	})
	transcriber.Register(transcribe.NewOpenAIEngine(resolveOpenAIKey, resolveWhisperModel))
	transcriber.Register(transcribe.NewWhisperCppEngine(resolveWhisperURL))

	// Summarization engines
	summarizer := summarize.NewService(
		func() string { return database.GetSetting("summary_engine", cfg.SummaryEngine) },
		func() string { return database.GetSetting("summary_prompt", "") },
	)
	summarizer.Register(summarize.NewOpenAIEngine(resolveOpenAIKey, resolveSummaryModel))
	summarizer.Register(summarize.NewGeminiEngine(resolveGeminiKey, resolveGeminiModel))

	// Job queue and background worker
	jobQueue := job.NewJobQueue(database.DB())
	worker.New(database, transcriber, summarizer).Attach(jobQueue)
	jobQueue.Start()

	// Episode catalog and iTunes proxy
	cat := catalog.New(func() string { return database.GetSetting("catalog_feed_url", cfg.FeedURL) })
	itunesClient := itunes.NewClient()

	// Create router
	router := api.NewRouter(database, jwtService, cfg, jobQueue, transcriber, summarizer, cat, itunesClient)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
