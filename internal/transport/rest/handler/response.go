package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"sarvekshan/internal/service"
	"sarvekshan/internal/store"
)

// ResponseHandler handles submitted response and export endpoints
type ResponseHandler struct {
	responses store.ResponseStore
	exportSvc *service.ExportService
	syncSvc   *service.SyncService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responses store.ResponseStore, exportSvc *service.ExportService, syncSvc *service.SyncService) *ResponseHandler {
	return &ResponseHandler{
		responses: responses,
		exportSvc: exportSvc,
		syncSvc:   syncSvc,
	}
}

// List handles GET /v1/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responses.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// Get handles GET /v1/responses/{surveyId}
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	resp, err := h.responses.Get(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /v1/responses/{surveyId}/export
func (h *ResponseHandler) Export(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	export, err := h.exportSvc.Export(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, store.ErrResponseNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, export)
}

// ListExports handles GET /v1/exports
func (h *ResponseHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	exports, err := h.exportSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"exports": exports})
}

// GetExport handles GET /v1/exports/{exportId}
func (h *ResponseHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	exportID := mux.Vars(r)["exportId"]

	export, err := h.exportSvc.Get(r.Context(), exportID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if export == nil {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.Content))
		return
	}
	writeJSON(w, http.StatusOK, export)
}

// SyncNow handles POST /v1/responses/sync
func (h *ResponseHandler) SyncNow(w http.ResponseWriter, r *http.Request) {
	if err := h.syncSvc.SyncNow(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
