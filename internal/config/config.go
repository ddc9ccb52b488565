package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Supported LLM / embedding providers.
const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// HTTP API
	HTTPAddr string

	// LLM completion
	LLMProvider     string
	LLMModel        string
	Temperature     float64
	MaxChunkTokens  int
	MaxReduceTokens int
	// SummaryLanguage is the ISO 639-1 language the final summary is
	// written in. Chunks detected in another language get a translation
	// instruction prepended to their prompt.
	SummaryLanguage string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Embeddings
	EmbedProvider  string
	EmbedModel     string
	EmbedDimension int

	// Content fetching
	TranscriptLanguages []string
	WebpageMaxChars     int
	YouTubeAPIKey       string

	// Places enrichment
	PlacesAPIKey   string
	PlacesLanguage string
	PlacesRegion   string
	MaxPhotos      int
	EnrichWorkers  int

	// Chunking
	ChunkSize int

	// File persistence
	ChunksDir    string
	SummariesDir string

	// SurrealDB document store
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		HTTPAddr: getEnv("TRIPNOTES_HTTP_ADDR", ":8080"),

		LLMProvider:     getEnv("TRIPNOTES_LLM_PROVIDER", ProviderOpenAI),
		LLMModel:        getEnv("TRIPNOTES_LLM_MODEL", "gpt-4o-mini"),
		Temperature:     getEnvFloat("TRIPNOTES_LLM_TEMPERATURE", 0.1),
		MaxChunkTokens:  getEnvInt("TRIPNOTES_MAX_CHUNK_TOKENS", 1500),
		MaxReduceTokens: getEnvInt("TRIPNOTES_MAX_REDUCE_TOKENS", 4096),
		SummaryLanguage: getEnv("TRIPNOTES_SUMMARY_LANGUAGE", "ko"),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		EmbedProvider:  getEnv("TRIPNOTES_EMBED_PROVIDER", ProviderOpenAI),
		EmbedModel:     getEnv("TRIPNOTES_EMBED_MODEL", "text-embedding-3-small"),
		EmbedDimension: getEnvInt("TRIPNOTES_EMBED_DIMENSION", 1536),

		TranscriptLanguages: getEnvList("TRIPNOTES_TRANSCRIPT_LANGUAGES", []string{"ko", "en"}),
		WebpageMaxChars:     getEnvInt("TRIPNOTES_WEBPAGE_MAX_CHARS", 10000),
		YouTubeAPIKey:       getEnv("YOUTUBE_API_KEY", ""),

		PlacesAPIKey:   getEnv("GOOGLE_PLACES_API_KEY", ""),
		PlacesLanguage: getEnv("TRIPNOTES_PLACES_LANGUAGE", "ko"),
		PlacesRegion:   getEnv("TRIPNOTES_PLACES_REGION", "jp"),
		MaxPhotos:      getEnvInt("TRIPNOTES_MAX_PHOTOS", 5),
		EnrichWorkers:  getEnvInt("TRIPNOTES_ENRICH_WORKERS", 4),

		ChunkSize: getEnvInt("TRIPNOTES_CHUNK_SIZE", 2048),

		ChunksDir:    getEnv("TRIPNOTES_CHUNKS_DIR", "data/chunks"),
		SummariesDir: getEnv("TRIPNOTES_SUMMARIES_DIR", "data/summaries"),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "tripnotes"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "content"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LogFile:  getEnv("TRIPNOTES_LOG_FILE", "/tmp/tripnotes.log"),
		LogLevel: parseLogLevel(getEnv("TRIPNOTES_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
