package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/mw"
)

func init() { Register(registerRelay) }

// The three relay endpoints share one rate limiter.
func registerRelay(r chi.Router, d deps.Deps) {
	r.Route("/relay", func(rr chi.Router) {
		rr.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		rr.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateBurst,
			RefillPerIPPerMin: d.RatePerMin,
			MaxEntries:        10_000,
			TrustProxy:        d.TrustProxy,
			Now:               d.TimeNow,
			Logger:            d.Logger,
		}))

		rr.Get("/chat-profile", handlers.ChatProfile(d))
		rr.Get("/platform-profile", handlers.PlatformProfile(d))
		rr.Get("/avatar", handlers.Avatar(d))
	})
}
