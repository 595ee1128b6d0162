package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          int
	DataPath      string
	DBPath        string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	// Provider credentials and endpoints. The settings table can override
	// the keys at runtime; these are the boot defaults.
	OpenAIAPIKey     string
	GeminiAPIKey     string
	WhisperURL       string // optional whisper.cpp server, e.g. http://localhost:8178
	TranscribeEngine string
	SummaryEngine    string

	// FeedURL points the default search at an RSS feed instead of the
	// built-in sample episodes.
	FeedURL string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8000"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:             port,
		DataPath:         dataPath,
		DBPath:           getEnv("DB_PATH", dataPath+"/podcast-transcriber.db"),
		JWTSecret:        jwtSecret,
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:      corsOrigins,
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		WhisperURL:       os.Getenv("WHISPER_URL"),
		TranscribeEngine: getEnv("TRANSCRIBE_ENGINE", "openai"),
		SummaryEngine:    getEnv("SUMMARY_ENGINE", "openai"),
		FeedURL:          os.Getenv("FEED_URL"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
