package httpapi

import (
    "context"
    "net/http"
    "strings"
    "time"
)

const serviceName = "Merchant CRUD Service"

// discovery serves GET /: the two collection URLs and the docs URL, built from
// the request's own base URL.
func (s *Server) discovery(w http.ResponseWriter, r *http.Request) {
    base := baseURL(r)
    toJSON(w, http.StatusOK, discoveryResponse{
        Service:       serviceName,
        NonPersistent: base + MemoryPrefix,
        Persistent:    base + PersistentPrefix,
        Docs:          base + "/docs",
    })
}

// baseURL returns scheme://host for r, honouring X-Forwarded-Proto from a proxy.
func baseURL(r *http.Request) string {
    scheme := "http"
    if r.TLS != nil { scheme = "https" }
    if p := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); p != "" {
        scheme = strings.ToLower(strings.Split(p, ",")[0])
    }
    return scheme + "://" + r.Host
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    deadline := 800 * time.Millisecond
    ctx, cancel := context.WithTimeout(r.Context(), deadline)
    defer cancel()
    for _, rc := range s.ready {
        if err := rc.Ready(ctx); err != nil {
            s.log.Warn("readiness check failed", "err", err)
            w.WriteHeader(http.StatusServiceUnavailable)
            return
        }
    }
    w.WriteHeader(http.StatusOK)
}
