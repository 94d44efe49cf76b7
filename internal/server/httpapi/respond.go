package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is reported as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
