package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/service"
	"sarvekshan/internal/store"
)

// SurveyHandler handles survey catalog endpoints
type SurveyHandler struct {
	catalog    repository.SurveyCatalog
	networkSvc *service.NetworkService
	sessionSvc *service.SessionService
	responses  store.ResponseStore
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(
	catalog repository.SurveyCatalog,
	networkSvc *service.NetworkService,
	sessionSvc *service.SessionService,
	responses store.ResponseStore,
) *SurveyHandler {
	return &SurveyHandler{
		catalog:    catalog,
		networkSvc: networkSvc,
		sessionSvc: sessionSvc,
		responses:  responses,
	}
}

// SurveyCard is a survey annotated with its state on this device
type SurveyCard struct {
	*model.Survey
	AvailableOffline bool             `json:"availableOffline"`
	HasDraft         bool             `json:"hasDraft"`
	ResponseStatus   model.SyncStatus `json:"responseStatus,omitempty"`
}

// List handles GET /v1/surveys with optional q, type and access filters
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := strings.ToLower(r.URL.Query().Get("q"))
	typeFilter := r.URL.Query().Get("type")
	accessFilter := r.URL.Query().Get("access")

	statuses := make(map[string]model.SyncStatus)
	if responses, err := h.responses.List(r.Context()); err == nil {
		for _, resp := range responses {
			statuses[resp.SurveyID] = resp.SyncStatus
		}
	}

	cards := make([]*SurveyCard, 0, len(surveys))
	for _, survey := range surveys {
		if query != "" &&
			!strings.Contains(strings.ToLower(survey.Name), query) &&
			!strings.Contains(strings.ToLower(survey.Description), query) {
			continue
		}
		if typeFilter != "" && string(survey.Type) != typeFilter {
			continue
		}
		if accessFilter != "" && string(survey.Access) != accessFilter {
			continue
		}
		cards = append(cards, &SurveyCard{
			Survey:           survey,
			AvailableOffline: h.networkSvc.IsAvailableOffline(survey.ID),
			HasDraft:         h.sessionSvc.HasDraft(r.Context(), survey.ID),
			ResponseStatus:   statuses[survey.ID],
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": cards})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.catalog.GetByID(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if survey == nil {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}

	writeJSON(w, http.StatusOK, &SurveyCard{
		Survey:           survey,
		AvailableOffline: h.networkSvc.IsAvailableOffline(survey.ID),
		HasDraft:         h.sessionSvc.HasDraft(r.Context(), survey.ID),
	})
}
