package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/httpserver/handlers"
	"github.com/promptdeck/promptdeck/internal/httpserver/mw"
)

func init() { Register(registerGeneration) }

// Generation endpoints share one rate limiter: provider calls are slow
// and billed per token.
func registerGeneration(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.GenBurst,
		RefillPerIPPerMin: d.GenRefillPerIPPerMin,
		MaxEntries:        4096,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))

	limited.Post("/api/generate", handlers.Generate(d))
	limited.Post("/api/chat", handlers.Chat(d))
	limited.Post("/api/image/edit", handlers.EditImage(d))
}
