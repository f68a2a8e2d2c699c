package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"sarvekshan/internal/model"
	"sarvekshan/internal/service"
	"sarvekshan/internal/transport/rest/middleware"
)

// SessionHandler handles survey session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// VerifySchoolRequest is the request body for school verification
type VerifySchoolRequest struct {
	UDISECode string `json:"udiseCode"`
}

// SelectLanguageRequest is the request body for language selection
type SelectLanguageRequest struct {
	Language string `json:"language"`
}

// SetAnswerRequest is the request body for recording an answer
type SetAnswerRequest struct {
	QuestionID string            `json:"questionId"`
	Value      model.AnswerValue `json:"value"`
}

// Start handles POST /v1/surveys/{surveyId}/session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	view, err := h.sessionSvc.Start(r.Context(), surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// VerifySchool handles POST /v1/surveys/{surveyId}/session/verify-school
func (h *SessionHandler) VerifySchool(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req VerifySchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessionSvc.VerifySchool(r.Context(), surveyID, req.UDISECode)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SelectLanguage handles POST /v1/surveys/{surveyId}/session/language
func (h *SessionHandler) SelectLanguage(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SelectLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessionSvc.SelectLanguage(r.Context(), surveyID, req.Language)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetAnswer handles PUT /v1/surveys/{surveyId}/session/answer
func (h *SessionHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessionSvc.SetAnswer(r.Context(), surveyID, req.QuestionID, req.Value)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Next handles POST /v1/surveys/{surveyId}/session/next
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	view, err := h.sessionSvc.Next(r.Context(), surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Previous handles POST /v1/surveys/{surveyId}/session/previous
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	view, err := h.sessionSvc.Previous(r.Context(), surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Current handles GET /v1/surveys/{surveyId}/session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	view, err := h.sessionSvc.View(surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Submit handles POST /v1/surveys/{surveyId}/session/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	submittedBy := middleware.GetInspectorName(r.Context())

	resp, err := h.sessionSvc.Submit(r.Context(), surveyID, submittedBy)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Discard handles DELETE /v1/surveys/{surveyId}/session
func (h *SessionHandler) Discard(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	if err := h.sessionSvc.Discard(r.Context(), surveyID); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

// writeSessionError maps session service errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	var reqErr *service.RequiredFieldError
	if errors.As(err, &reqErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      reqErr.Error(),
			"questionId": reqErr.QuestionID,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnavailableOffline), errors.Is(err, service.ErrWrongStage):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnknownLanguage),
		errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
