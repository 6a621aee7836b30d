package httpapi

import (
    "context"
    "encoding/json"
    "io"
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/merchants/internal/model"
    "github.com/tinoosan/merchants/internal/service/merchant"
)

type ctxKey string

const ctxKeyMerchantID ctxKey = "validatedMerchantID"
const ctxKeyMerchantInput ctxKey = "validatedMerchantInput"

// validateMerchantID parses the {id} path parameter and rejects anything that is
// not an integer >= 1 with 422, so such requests never reach the store.
func validateMerchantID(svc merchant.Service) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
            if err != nil {
                unprocessable(w, "id must be an integer", "validation_error")
                return
            }
            if err := svc.ValidateID(id); err != nil {
                unprocessable(w, err.Error(), "validation_error")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyMerchantID, id)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateMerchantBody decodes a merchant body, checks field constraints and
// stores the resulting model.Input in the request context for the handler to use.
func validateMerchantBody(svc merchant.Service) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var req merchantRequest
            dec := json.NewDecoder(r.Body)
            if err := dec.Decode(&req); err != nil {
                unprocessable(w, "invalid JSON: "+err.Error(), "invalid_json")
                return
            }
            // the body must hold exactly one JSON value
            if err := dec.Decode(&struct{}{}); err != io.EOF {
                unprocessable(w, "invalid JSON: unexpected data after the request object", "invalid_json")
                return
            }
            in := toInput(req)
            if err := svc.ValidateInput(in); err != nil {
                unprocessable(w, err.Error(), "validation_error")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyMerchantInput, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func merchantIDFrom(r *http.Request) (int64, bool) {
    id, ok := r.Context().Value(ctxKeyMerchantID).(int64)
    return id, ok
}

func merchantInputFrom(r *http.Request) (model.Input, bool) {
    in, ok := r.Context().Value(ctxKeyMerchantInput).(model.Input)
    return in, ok
}
