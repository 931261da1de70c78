package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/mw"
)

func init() { Register(registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/healthz", handlers.Healthz(d))
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/infra", handlers.Infra(d))
}
