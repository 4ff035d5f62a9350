package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptdeck/promptdeck/internal/genai"
	"github.com/promptdeck/promptdeck/internal/library"
	"github.com/promptdeck/promptdeck/internal/logger"
	redisstore "github.com/promptdeck/promptdeck/internal/store/redis"
	"github.com/promptdeck/promptdeck/internal/utils"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Library  *library.Library  // in-memory prompt library (authoritative)
	Facade   genai.Facade      // generation request facade (injectable for tests)
	Store    *redisstore.Store // optional persistence adapter (nil = volatile-only)
	InFlight *utils.InFlight   // per-control duplicate request guard

	RedisClient *redis.Client // nil when persistence is disabled

	TrustProxy           bool // true if running behind a trusted reverse proxy
	FacadeConfigured     bool // true when an API key is present
	GenBurst             int  // rate limit burst for generation endpoints
	GenRefillPerIPPerMin int  // rate limit refill for generation endpoints
}
