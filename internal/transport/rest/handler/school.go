package handler

import (
	"encoding/json"
	"net/http"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/service"
)

// SchoolHandler handles school cache endpoints
type SchoolHandler struct {
	offlineSvc *service.OfflineService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(offlineSvc *service.OfflineService) *SchoolHandler {
	return &SchoolHandler{offlineSvc: offlineSvc}
}

// CacheSchoolsRequest is the request body for caching a directory snapshot.
// An empty school list caches the bundled demo directory.
type CacheSchoolsRequest struct {
	Schools []model.School `json:"schools"`
}

// Cache handles POST /v1/schools/cache
func (h *SchoolHandler) Cache(w http.ResponseWriter, r *http.Request) {
	var req CacheSchoolsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schools := req.Schools
	if len(schools) == 0 {
		schools = repository.DemoSchools()
	}

	info, err := h.offlineSvc.CacheSchools(r.Context(), schools)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Info handles GET /v1/schools/cache
func (h *SchoolHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.offlineSvc.CacheInfo(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}
