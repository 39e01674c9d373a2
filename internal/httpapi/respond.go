package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates any error into the {"error","code"} envelope and
// HTTP status from §7, via clawerr.ToEnvelope.
func writeError(w http.ResponseWriter, err error) {
	env, status := clawerr.ToEnvelope(err)
	writeJSON(w, status, env)
}

// decodeJSON reads and decodes a request body, translating a malformed
// body into a validation error rather than a 500.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return clawerr.InvalidArgument("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return clawerr.InvalidArgumentf("malformed request body: %v", err)
	}
	return nil
}
