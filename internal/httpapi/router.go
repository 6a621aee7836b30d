// Package httpapi wires the HTTP surface of the merchant service.
// It keeps handlers thin, delegating validation and storage to the merchant service.
package httpapi

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
    "log/slog"

    "github.com/tinoosan/merchants/internal/service/merchant"
)

// Collection paths of the two merchant trees.
const (
    MemoryPrefix     = "/memory/merchants"
    PersistentPrefix = "/db/merchants"
)

// Server wires handlers and middleware using Chi.
// The two merchant services are fully independent; each is mounted under its own prefix.
type Server struct {
    memory     merchant.Service
    persistent merchant.Service
    ready      []ReadyChecker
    docs       *apiDocs
    log        *slog.Logger
    rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// checks are consulted by /readyz; stores that cannot fail may be omitted.
func New(memory, persistent merchant.Service, logger *slog.Logger, checks ...ReadyChecker) *Server {
    r := chi.NewRouter()
    r.Use(requestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        memory:     memory,
        persistent: persistent,
        ready:      checks,
        docs:       newAPIDocs(),
        log:        logger,
        rt:         r,
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.Get("/", s.discovery)
    s.mountMerchants(MemoryPrefix, s.memory)
    s.mountMerchants(PersistentPrefix, s.persistent)
    // Docs
    s.rt.Get("/docs", s.docsPage)
    s.rt.Get("/openapi.json", s.openapiJSON)
    s.rt.Get("/openapi.yaml", s.openapiYAML)
    // Ops
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}

// mountMerchants attaches the five merchant routes for one store under prefix.
func (s *Server) mountMerchants(prefix string, svc merchant.Service) {
    h := &merchantHandler{svc: svc, log: s.log.With("backend", svc.Backend())}
    s.rt.Route(prefix, func(r chi.Router) {
        r.Get("/", h.list)
        r.With(validateMerchantBody(svc)).Post("/", h.create)
        r.Route("/{id}", func(r chi.Router) {
            r.Use(validateMerchantID(svc))
            r.Get("/", h.get)
            r.With(validateMerchantBody(svc)).Put("/", h.update)
            r.Delete("/", h.delete)
        })
    })
}
