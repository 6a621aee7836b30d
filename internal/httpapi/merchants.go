// Merchant handlers: list, create, get, full-replace update, delete.
package httpapi

import (
    "log/slog"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/merchants/internal/service/merchant"
)

// merchantHandler serves one merchant tree backed by a single service.
type merchantHandler struct {
    svc merchant.Service
    log *slog.Logger
}

func (h *merchantHandler) list(w http.ResponseWriter, r *http.Request) {
    ms, err := h.svc.List(r.Context())
    if err != nil {
        writeStoreErr(w, r, h.log, "list", err)
        return
    }
    out := make([]merchantResponse, 0, len(ms))
    for _, m := range ms {
        out = append(out, toMerchantResponse(m))
    }
    toJSON(w, http.StatusOK, out)
}

func (h *merchantHandler) create(w http.ResponseWriter, r *http.Request) {
    in, ok := merchantInputFrom(r)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    m, err := h.svc.Create(r.Context(), in)
    if err != nil {
        writeStoreErr(w, r, h.log, "create", err)
        return
    }
    h.log.Debug("merchant created", "req_id", chimw.GetReqID(r.Context()), "id", m.ID)
    toJSON(w, http.StatusCreated, toMerchantResponse(m))
}

func (h *merchantHandler) get(w http.ResponseWriter, r *http.Request) {
    id, ok := merchantIDFrom(r)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated id missing"})
        return
    }
    m, err := h.svc.Get(r.Context(), id)
    if err != nil {
        writeStoreErr(w, r, h.log, "get", err)
        return
    }
    toJSON(w, http.StatusOK, toMerchantResponse(m))
}

// update handles PUT /{prefix}/{id}. The body replaces name and description wholesale.
func (h *merchantHandler) update(w http.ResponseWriter, r *http.Request) {
    id, ok := merchantIDFrom(r)
    in, ok2 := merchantInputFrom(r)
    if !ok || !ok2 {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    m, err := h.svc.Update(r.Context(), id, in)
    if err != nil {
        writeStoreErr(w, r, h.log, "update", err)
        return
    }
    toJSON(w, http.StatusOK, toMerchantResponse(m))
}

func (h *merchantHandler) delete(w http.ResponseWriter, r *http.Request) {
    id, ok := merchantIDFrom(r)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated id missing"})
        return
    }
    if err := h.svc.Delete(r.Context(), id); err != nil {
        writeStoreErr(w, r, h.log, "delete", err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
