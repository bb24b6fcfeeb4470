package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/crediflow/cartera-service/internal/config"
	"github.com/crediflow/cartera-service/internal/handler"
	"github.com/crediflow/cartera-service/internal/integrations/banrep"
	"github.com/crediflow/cartera-service/internal/middleware"
	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/repository"
	"github.com/crediflow/cartera-service/internal/service"
	"github.com/crediflow/cartera-service/internal/utils/email"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.InitSchema(); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger, cfg)
	h := handler.NewHandler(svc, logger)
	rateClient := banrep.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Central bank policy rate, display only
	r.HandleFunc("/reference-rate", h.ReferenceRate(rateClient)).Methods("GET")

	// Authenticated client routes
	authRouter := r.PathPrefix("/me").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/summary", h.GetAccountSummary).Methods("GET")

	// Admin routes
	adminRouter := r.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	adminRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users", h.CreateUser).Methods("POST")
	adminRouter.HandleFunc("/users/{id}", h.UpdateUser).Methods("PUT")
	adminRouter.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
	adminRouter.HandleFunc("/products", h.ListProducts).Methods("GET")
	adminRouter.HandleFunc("/products", h.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	adminRouter.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	adminRouter.HandleFunc("/credits", h.ListCredits).Methods("GET")
	adminRouter.HandleFunc("/credits", h.CreateCredit).Methods("POST")
	adminRouter.HandleFunc("/credits/{id}", h.GetCredit).Methods("GET")
	adminRouter.HandleFunc("/credits/{id}/plan", h.GetCreditPlan).Methods("GET")
	adminRouter.HandleFunc("/credits/{id}/payments", h.ListCreditPayments).Methods("GET")
	adminRouter.HandleFunc("/payments", h.ListPayments).Methods("GET")
	adminRouter.HandleFunc("/payments", h.RecordPayment).Methods("POST")
	adminRouter.HandleFunc("/stats", h.GetStats).Methods("GET")

	// Daily payment reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderSchedule, func() {
		svc.SendPaymentReminders(time.Now())
	}); err != nil {
		logger.Fatalf("Failed to schedule reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
