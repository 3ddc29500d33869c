package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type degradedResponse struct {
	Results []catalog.MovieSummary `json:"results"`
	Detail  string                 `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, detailResponse{Detail: detail})
}

// respondError is the single place errors become HTTP statuses. NotFound is
// checked before Upstream because it wraps the upstream 404.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidationError(err):
		respondDetail(w, http.StatusBadRequest, err.Error())
	case apperrors.IsForbidden(err):
		respondDetail(w, http.StatusForbidden, err.Error())
	case apperrors.IsCredentialMissing(err):
		respondJSON(w, http.StatusOK, degradedResponse{Results: []catalog.MovieSummary{}, Detail: err.Error()})
	case apperrors.IsNotFound(err):
		respondDetail(w, http.StatusNotFound, err.Error())
	case apperrors.IsUpstreamError(err):
		slog.Warn("Upstream request failed", "error", err)
		respondDetail(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "internal error")
	}
}
