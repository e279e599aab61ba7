package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Object store backends.
const (
	StoreS3    = "s3"
	StoreLocal = "local"
	StoreNone  = "none"
)

// Config holds application configuration. It is read once and never mutated.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	OpenAIAPIKey     string
	LLMModel         string
	PromptVersion    string
	ObjectStoreType  string
	LocalStoreDir    string
	AWSRegion        string
	S3Bucket         string
	SSEKMSKeyID      string
	StorageTimeout   time.Duration
	GenerateRatePerM float64
	GenerateBurst    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; existing
	// variables are never overridden.
	loadEnvFiles(".env", "cmd/.env")

	bucket := getEnv("S3_BUCKET_NAME", os.Getenv("S3_BUCKET"))

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:4200")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4"),
		PromptVersion:    getEnv("PROMPT_VERSION", "v1"),
		ObjectStoreType:  normalizeStoreType(os.Getenv("OBJECT_STORE"), bucket),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		S3Bucket:         bucket,
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		StorageTimeout:   time.Duration(getInt("STORAGE_TIMEOUT_SECONDS", 10)) * time.Second,
		GenerateRatePerM: float64(getInt("GENERATE_RATE_PER_MINUTE", 10)),
		GenerateBurst:    getInt("GENERATE_BURST", 5),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw, bucket string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StoreS3:
		return StoreS3
	case StoreLocal:
		return StoreLocal
	case StoreNone:
		return StoreNone
	}
	if strings.TrimSpace(bucket) != "" {
		return StoreS3
	}
	return StoreNone
}
