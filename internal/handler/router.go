package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"studium-server/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"studium-server"}`))
	}).Methods("GET")

	// Initialize handlers
	documentHandler := NewDocumentHandler(
		container.DocumentService, container.DocumentStore,
		container.ProcessingQueue, container.Config, container.Logger)
	generateHandler := NewGenerateHandler(
		container.GenerationService, container.DocumentStore, container.Logger)
	studyPlanHandler := NewStudyPlanHandler(
		container.StudyPlanService, container.StudyPlanStore,
		container.DocumentStore, container.Logger)

	// Document routes
	api.HandleFunc("/upload", documentHandler.Upload).Methods("POST")
	api.HandleFunc("/process/{id}", documentHandler.Process).Methods("POST")
	api.HandleFunc("/process/{id}/status", documentHandler.Status).Methods("GET")
	api.HandleFunc("/documents", documentHandler.List).Methods("GET")
	api.HandleFunc("/documents/{id}/text", documentHandler.GetText).Methods("GET")
	api.HandleFunc("/documents/{id}", documentHandler.Delete).Methods("DELETE")

	// Generation routes
	api.HandleFunc("/generate", generateHandler.Generate).Methods("POST")
	for suffix, activityType := range pathActivityTypes {
		api.HandleFunc("/generate/"+suffix, generateHandler.GenerateTyped(activityType)).Methods("POST")
	}
	api.HandleFunc("/ai-status", generateHandler.AIStatus).Methods("GET")

	// Study plan routes
	api.HandleFunc("/student/learn/plan/generate", studyPlanHandler.Generate).Methods("POST")
	api.HandleFunc("/student/learn/plan/{plan_id}", studyPlanHandler.Get).Methods("GET")
	api.HandleFunc("/student/learn/plans", studyPlanHandler.List).Methods("GET")
	api.HandleFunc("/student/learn/plan/{plan_id}", studyPlanHandler.Delete).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://localhost:8081", // Expo dev client
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(router)
}
