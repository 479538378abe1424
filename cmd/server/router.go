package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/huma-hello/internal/config"
	"github.com/janisto/huma-hello/internal/http/root"
	applog "github.com/janisto/huma-hello/internal/platform/logging"
	"github.com/janisto/huma-hello/internal/platform/metrics"
	appmiddleware "github.com/janisto/huma-hello/internal/platform/middleware"
	"github.com/janisto/huma-hello/internal/platform/respond"
)

const docsPath = "/docs"

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// newRouter assembles the public handler. m may be nil when metrics are off.
func newRouter(cfg config.Config, m *metrics.HTTP) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	if m != nil {
		router.Use(m.Middleware())
	}
	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For / X-Real-IP; run behind a trusted proxy only.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(cfg.Debug),
		chimiddleware.GetHead,
	)

	api := humachi.New(router, apiConfig(cfg))
	root.Register(api, root.Options{Delay: cfg.HandlerDelay})
	return router
}

// apiConfig keeps "/" the only public route unless docs are enabled, and drops
// the $schema link so the root body stays exactly {"hello":"world"}.
func apiConfig(cfg config.Config) huma.Config {
	hc := huma.DefaultConfig("Hello API", Version)
	hc.CreateHooks = nil
	if cfg.DocsEnabled {
		hc.DocsPath = docsPath
		return hc
	}
	hc.OpenAPIPath = ""
	hc.DocsPath = ""
	hc.SchemasPath = ""
	return hc
}
