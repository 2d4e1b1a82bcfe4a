// Package server wires the HTTP API: public read endpoints, the admin
// endpoints behind JWT auth, rate limiting and the git change log.
package server

import (
	"net/http"
	"time"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/config"
	"github.com/hoxhox/tvsource/internal/gitlog"
	"github.com/hoxhox/tvsource/internal/server/handlers"
	"github.com/hoxhox/tvsource/internal/server/ratelimit"
)

// Options carries the dependencies for New.
type Options struct {
	Categories *catalog.CategoryService
	Streams    *catalog.StreamService
	Cfg        *config.Config
	Git        *gitlog.Manager
	Version    string
}

// New builds the API handler.
func New(opts Options) http.Handler {
	h := handlers.New(opts.Categories, opts.Streams, opts.Cfg, opts.Version)
	secret := []byte(opts.Cfg.JWTSecret)

	limits := opts.Cfg.RateLimits
	loginTier := ratelimit.NewLimiter(limits.LoginPerMin(), time.Minute, limits.LoginPerMin())
	writeTier := ratelimit.NewLimiter(limits.WritePerMin(), time.Minute, limits.WritePerMin())

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", Wrap(h.Health))
	mux.Handle("GET /api/streams", Wrap(h.GetStreams))

	mux.Handle("POST /api/admin/login", WrapLimited(h.Login, loginTier))
	mux.Handle("POST /api/admin/categories", WrapAdmin(h.SaveCategory, secret, opts.Git, writeTier))
	mux.Handle("DELETE /api/admin/categories", WrapAdmin(h.DeleteCategory, secret, opts.Git, writeTier))
	mux.Handle("POST /api/admin/streams", WrapAdmin(h.SaveStream, secret, opts.Git, writeTier))
	mux.Handle("DELETE /api/admin/streams", WrapAdmin(h.DeleteStream, secret, opts.Git, writeTier))
	mux.Handle("GET /api/admin/streams/get", WrapAdmin(h.GetStream, secret, opts.Git, writeTier))
	mux.Handle("POST /api/admin/sort", WrapAdmin(h.Sort, secret, opts.Git, writeTier))
	mux.Handle("GET /api/admin/export", WrapAdminRaw(h.Export, secret))

	return corsMiddleware(mux)
}
