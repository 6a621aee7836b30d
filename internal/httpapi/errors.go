package httpapi

import (
    "errors"
    "log/slog"
    "net/http"

    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/merchants/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func notFound(w http.ResponseWriter) { writeErr(w, http.StatusNotFound, "merchant not found", "not_found") }
func unprocessable(w http.ResponseWriter, msg, code string) {
    writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeStoreErr maps a service error onto a response. Anything that is neither
// NotFound nor a validation failure is a storage fault: logged, answered with 500.
func writeStoreErr(w http.ResponseWriter, r *http.Request, l *slog.Logger, op string, err error) {
    switch {
    case errors.Is(err, errs.ErrNotFound):
        notFound(w)
    case errors.Is(err, errs.ErrUnprocessable), errors.Is(err, errs.ErrInvalid):
        unprocessable(w, err.Error(), "validation_error")
    default:
        l.Error("store operation failed", "req_id", chimw.GetReqID(r.Context()), "op", op, "err", err)
        writeErr(w, http.StatusInternalServerError, "internal error", "internal")
    }
}
