package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the engine's runtime configuration. MongoURI and RedisAddr
// are optional: left empty, the engine runs fully self-contained with the
// bundled demo catalog and in-memory stores.
type Config struct {
	HTTPPort string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	SyncInterval  time.Duration
	DraftDebounce time.Duration
	TransmitDelay time.Duration

	SkipLanguageSelectIfSingle bool
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		HTTPPort:                   getEnv("PORT", "8080"),
		MongoURI:                   os.Getenv("MONGO_URI"),
		MongoDB:                    getEnv("MONGO_DB", "sarvekshan"),
		RedisAddr:                  os.Getenv("REDIS_URI"),
		SyncInterval:               getEnvDuration("SYNC_INTERVAL_SECONDS", 30) * time.Second,
		DraftDebounce:              getEnvDuration("DRAFT_DEBOUNCE_MS", 1000) * time.Millisecond,
		TransmitDelay:              getEnvDuration("TRANSMIT_DELAY_MS", 500) * time.Millisecond,
		SkipLanguageSelectIfSingle: getEnvBool("SKIP_SINGLE_LANGUAGE_SELECT", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal int64) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultVal)
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
