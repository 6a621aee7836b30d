package httpapi

import (
    "net/http"
    "strings"
)

// requireJSON rejects bodies declared as anything other than application/json
// (parameters such as charset are allowed). A missing Content-Type is accepted.
// A mismatch is an invalid body: writes 422 and returns false.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
    ct := r.Header.Get("Content-Type")
    if ct == "" { return true }
    mime := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
    if mime != "application/json" {
        unprocessable(w, "content type must be application/json", "invalid_json")
        return false
    }
    return true
}
