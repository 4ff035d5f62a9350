package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile   string // path to a prompts seed YAML (optional, empty = no seeding)
	TrustProxy bool   // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Generation facade (OpenAI-compatible provider)
	OpenAIAPIKey  string        // optional; calls degrade to sentinel messages when empty
	OpenAIBaseURL string        // optional, for OpenAI-compatible providers
	GenerateModel string        // fast model for one-shot prompt generation
	ChatModel     string        // larger model for multi-turn chat
	ImageModel    string        // image edit model
	FacadeTimeout time.Duration // per-request timeout for provider calls

	// Rate limiting on generation endpoints
	GenBurst             int // token bucket burst per client IP
	GenRefillPerIPPerMin int // refill rate per client IP per minute

	// Redis persistence adapter (optional, empty addr = volatile-only library)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	SnapshotInterval    time.Duration // interval between full library snapshots
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DECK_PRETTY_LOG", true),

		// Library seeding
		SeedFile:   getenv("DECK_SEED_FILE", ""), // Optional, empty = no seeding
		TrustProxy: mustBool("DECK_TRUST_PROXY", false),

		// Generation facade
		OpenAIAPIKey:  getenv("DECK_OPENAI_API_KEY", ""),
		OpenAIBaseURL: getenv("DECK_OPENAI_BASE_URL", ""),
		GenerateModel: getenv("DECK_MODEL_GENERATE", ""),
		ChatModel:     getenv("DECK_MODEL_CHAT", ""),
		ImageModel:    getenv("DECK_MODEL_IMAGE", ""),
		FacadeTimeout: mustDuration("DECK_FACADE_TIMEOUT", 120*time.Second),

		// Rate limiting
		GenBurst:             getenvInt("DECK_GEN_BURST", 5),
		GenRefillPerIPPerMin: getenvInt("DECK_GEN_REFILL_PER_MIN", 10),

		// Redis settings (all optional)
		RedisAddr:           getenv("DECK_REDIS_ADDR", ""),
		RedisUser:           getenv("DECK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("DECK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DECK_REDIS_DB", 0),
		RedisDT:             mustDuration("DECK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("DECK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("DECK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("DECK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("DECK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("DECK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("DECK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("DECK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("DECK_REDIS_WARN_THRESHOLD", 3),
		SnapshotInterval:    mustDuration("DECK_SNAPSHOT_INTERVAL", 5*time.Minute),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.OpenAIAPIKey != "" {
			cfgCopy.OpenAIAPIKey = "***REDACTED***"
		}
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// PersistenceEnabled reports whether the optional Redis adapter is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
