package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"sarvekshan/internal/service"
)

// NetworkHandler handles connectivity endpoints
type NetworkHandler struct {
	networkSvc *service.NetworkService
	offlineSvc *service.OfflineService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(networkSvc *service.NetworkService, offlineSvc *service.OfflineService) *NetworkHandler {
	return &NetworkHandler{
		networkSvc: networkSvc,
		offlineSvc: offlineSvc,
	}
}

// ToggleRequest is the request body for the connectivity toggle
type ToggleRequest struct {
	Online bool `json:"online"`
}

// Status handles GET /v1/network
func (h *NetworkHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"online":     h.networkSvc.IsOnline(),
		"downloaded": h.networkSvc.DownloadedIDs(),
	})
}

// Toggle handles PUT /v1/network
func (h *NetworkHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.networkSvc.SetOnline(req.Online)
	h.Status(w, r)
}

// Download handles POST /v1/surveys/{surveyId}/download
func (h *NetworkHandler) Download(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	if err := h.offlineSvc.DownloadSurvey(r.Context(), surveyID); err != nil {
		switch {
		case errors.Is(err, service.ErrNetworkRequired):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSurveyNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"surveyId": surveyID, "status": "downloaded"})
}

// Foreground handles POST /v1/app/foreground
func (h *NetworkHandler) Foreground(w http.ResponseWriter, r *http.Request) {
	h.offlineSvc.Foreground(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
