package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"sarvekshan/internal/repository"
	"sarvekshan/internal/service"
	"sarvekshan/internal/store"
	"sarvekshan/internal/transport/rest/handler"
	"sarvekshan/internal/transport/rest/middleware"
	"sarvekshan/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	NetworkService *service.NetworkService
	SessionService *service.SessionService
	OfflineService *service.OfflineService
	ExportService  *service.ExportService
	SyncService    *service.SyncService
	Catalog        repository.SurveyCatalog
	Responses      store.ResponseStore
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.Catalog, c.NetworkService, c.SessionService, c.Responses)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	networkHandler := handler.NewNetworkHandler(c.NetworkService, c.OfflineService)
	schoolHandler := handler.NewSchoolHandler(c.OfflineService)
	responseHandler := handler.NewResponseHandler(c.Responses, c.ExportService, c.SyncService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/events", wsHandler.EventsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Inspector routes (require auth)
	inspector := v1.NewRoute().Subrouter()
	inspector.Use(authMW.RequireInspector)

	inspector.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/download", networkHandler.Download).Methods("POST", "OPTIONS")

	inspector.HandleFunc("/surveys/{surveyId}/session", sessionHandler.Start).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session", sessionHandler.Current).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session", sessionHandler.Discard).Methods("DELETE", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/verify-school", sessionHandler.VerifySchool).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/language", sessionHandler.SelectLanguage).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/answer", sessionHandler.SetAnswer).Methods("PUT", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/next", sessionHandler.Next).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/previous", sessionHandler.Previous).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/surveys/{surveyId}/session/submit", sessionHandler.Submit).Methods("POST", "OPTIONS")

	inspector.HandleFunc("/network", networkHandler.Status).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/network", networkHandler.Toggle).Methods("PUT", "OPTIONS")
	inspector.HandleFunc("/app/foreground", networkHandler.Foreground).Methods("POST", "OPTIONS")

	inspector.HandleFunc("/schools/cache", schoolHandler.Cache).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/schools/cache", schoolHandler.Info).Methods("GET", "OPTIONS")

	inspector.HandleFunc("/responses", responseHandler.List).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/responses/sync", responseHandler.SyncNow).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/responses/{surveyId}", responseHandler.Get).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/responses/{surveyId}/export", responseHandler.Export).Methods("POST", "OPTIONS")
	inspector.HandleFunc("/exports", responseHandler.ListExports).Methods("GET", "OPTIONS")
	inspector.HandleFunc("/exports/{exportId}", responseHandler.GetExport).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
