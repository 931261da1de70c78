package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/utils"
)

const forbiddenBody = `{"error":"Forbidden"}` + "\n"

func forbid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(forbiddenBody))
}

// AllowOnlyCIDRS restricts a route to clients inside the listed IPs/CIDRs.
// An empty list lets everyone through. trustProxy decides whether proxy
// headers are believed when resolving the client IP.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("ops endpoints open to every client")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("ops endpoints restricted",
		logger.Int("rules", len(allowed)),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("client ip rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				forbid(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnforceHost lets a request through only when its Host, port stripped,
// matches one of allowedHosts. "*.example.com" matches any subdomain of
// example.com but not example.com itself. An empty list is a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}
	if len(patterns) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("relay host allowlist", logger.Strings("hosts", patterns))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.ParseHostNoPort(r.Host))
			for _, p := range patterns {
				if matchHost(host, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("host rejected", logger.String("host", r.Host))
			forbid(w)
		})
	}
}

func matchHost(host, pattern string) bool {
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return host == utils.ParseHostNoPort(pattern)
}
