package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teemow/calbridge/internal/service"
	"github.com/teemow/calbridge/internal/upstream"
)

// kindInvalidInput tags caller mistakes, as opposed to upstream failure
// kinds.
const kindInvalidInput = "invalid_input"

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeError maps an error to a status code and a tagged JSON body.
// Invalid input is the caller's fault (400). Upstream failures map by
// kind: rate limiting means the provider wants us to back off (503),
// everything else is a bad gateway (502).
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: kindInvalidInput})
		return
	}

	kind := upstream.KindOf(err)
	status := http.StatusBadGateway
	if kind == upstream.KindRateLimited {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: string(kind)})
}

// writeBadRequest reports a malformed or incomplete request body.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Kind: kindInvalidInput})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
