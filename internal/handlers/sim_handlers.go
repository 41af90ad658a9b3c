package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sajeeb007/qkd-bb84-sim/internal/codec"
	models "github.com/sajeeb007/qkd-bb84-sim/internal/models/sim"
	simcore "github.com/sajeeb007/qkd-bb84-sim/internal/sim"
)

// SimHandler manages simulation-related HTTP requests
type SimHandler struct {
	runs *simcore.RunManager
}

// NewSimHandler creates a new simulation handler with its own run registry.
func NewSimHandler() *SimHandler {
	return &SimHandler{
		runs: simcore.NewRunManager(),
	}
}

// RunHandler handles POST /api/v1/sim/run
// Executes a full BB84-plus-image-cipher simulation and returns the run record.
func (h *SimHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg := simcore.Config{
		QubitCount:             req.QubitCount,
		EavesdropperEnabled:    req.EavesdropperEnabled,
		TransmissionDistanceKM: req.TransmissionDistanceKM,
		NoiseCoefficient:       req.NoiseCoefficient,
		GaussianStdDev:         req.GaussianStdDev,
		MaxFlipProbability:     req.MaxFlipProbability,
		ImageDim:               req.ImageDim,
		PixelBlockSize:         req.PixelBlockSize,
		Degradation:            req.Degradation,
		RandomSeed:             req.RandomSeed,
	}
	if err := cfg.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var img codec.Image
	if req.ImageBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid image encoding")
			return
		}
		img, err = simcore.ValidateImagePayload(raw, cfg.ImageDim)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	record, err := h.runs.Execute(cfg, img)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, models.RunResponse{Run: record})
}

// GetRunHandler handles GET /api/v1/sim/run/{id}
func (h *SimHandler) GetRunHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, ok := parseRunID(w, r.URL.Path, 5)
	if !ok {
		return
	}

	record, err := h.runs.Get(runID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == models.ErrRunNotFound {
			statusCode = http.StatusNotFound
		}
		respondWithError(w, statusCode, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, models.RunResponse{Run: record})
}

// ListRunsHandler handles GET /api/v1/sim/runs
func (h *SimHandler) ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"runs": h.runs.List(),
	})
}

// GetImageHandler handles GET /api/v1/sim/run/{id}/image?kind={original|cipher|decrypted|degraded}
// Serves one of a run's image buffers base64 encoded for the plotting layer.
func (h *SimHandler) GetImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, ok := parseRunID(w, r.URL.Path, 5)
	if !ok {
		return
	}

	record, err := h.runs.Get(runID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == models.ErrRunNotFound {
			statusCode = http.StatusNotFound
		}
		respondWithError(w, statusCode, err.Error())
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "degraded"
	}

	var buf []byte
	switch kind {
	case "original":
		buf = record.OriginalPixels
	case "cipher":
		buf = record.CipherBytes
	case "decrypted":
		buf = record.DecryptedPixels
	case "degraded":
		buf = record.DegradedPixels
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown image kind")
		return
	}

	respondWithJSON(w, http.StatusOK, models.ImageResponse{
		RunID:       record.RunID.String(),
		Kind:        kind,
		ImageDim:    record.ImageDim,
		ImageBase64: base64.StdEncoding.EncodeToString(buf),
	})
}

// parseRunID extracts the run ID path segment at the given index.
func parseRunID(w http.ResponseWriter, path string, index int) (uuid.UUID, bool) {
	pathParts := strings.Split(path, "/")
	if len(pathParts) <= index {
		respondWithError(w, http.StatusBadRequest, "Invalid URL format")
		return uuid.Nil, false
	}

	runID, err := uuid.Parse(pathParts[index])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, models.ErrInvalidRunID.Error())
		return uuid.Nil, false
	}
	return runID, true
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
