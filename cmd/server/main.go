package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/smartpractice/backend/internal/adaptive"
	"github.com/smartpractice/backend/internal/auth"
	"github.com/smartpractice/backend/internal/database"
	"github.com/smartpractice/backend/internal/feedback"
	"github.com/smartpractice/backend/internal/middleware"
	"github.com/smartpractice/backend/internal/practice"
	"github.com/smartpractice/backend/internal/questions"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	questionStore := questions.NewStore(db)
	practiceStore := practice.NewStore(db)
	adaptiveStore := adaptive.NewStore(db)

	// Services
	adaptiveService := adaptive.NewService(adaptiveStore, questionStore)
	practiceService := practice.NewService(practiceStore, questionStore)
	practiceService.SetGapUpdater(adaptiveService)
	feedbackService := feedback.NewService(feedback.NewEngine(), practiceStore, questionStore)

	// Handlers
	authHandler := auth.NewHandler(db)
	questionHandler := questions.NewHandler(questionStore)
	practiceHandler := practice.NewHandler(practiceService)
	adaptiveHandler := adaptive.NewHandler(adaptiveService)
	feedbackHandler := feedback.NewHandler(feedbackService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/topics", questionHandler.ListTopics).Methods("GET")
	protected.HandleFunc("/topics", questionHandler.CreateTopic).Methods("POST")
	protected.HandleFunc("/topics/{id}/subtopics", questionHandler.ListSubtopics).Methods("GET")
	protected.HandleFunc("/topics/{id}/subtopics", questionHandler.CreateSubtopic).Methods("POST")
	protected.HandleFunc("/question-types", questionHandler.ListQuestionTypes).Methods("GET")
	protected.HandleFunc("/questions", questionHandler.CreateQuestion).Methods("POST")
	protected.HandleFunc("/questions/{id}", questionHandler.GetQuestion).Methods("GET")

	protected.HandleFunc("/practice/sessions", practiceHandler.InitSession).Methods("POST")
	protected.HandleFunc("/practice/attempts", practiceHandler.RecordAttempt).Methods("POST")
	protected.HandleFunc("/practice/sessions/{id}/complete", practiceHandler.CompleteSession).Methods("POST")
	protected.HandleFunc("/practice/sessions/{id}", practiceHandler.GetSession).Methods("GET")
	protected.HandleFunc("/progress", practiceHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/admin/progress/rebuild", practiceHandler.RebuildProgress).Methods("POST")

	protected.HandleFunc("/adaptive/questions", adaptiveHandler.GetAdaptiveQuestions).Methods("GET")
	protected.HandleFunc("/adaptive/gaps", adaptiveHandler.GetGaps).Methods("GET")
	protected.HandleFunc("/adaptive/settings", adaptiveHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/adaptive/settings", adaptiveHandler.UpdateSettings).Methods("PUT")

	protected.HandleFunc("/feedback/sessions/{id}", feedbackHandler.SessionFeedback).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
