package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/edusys/school-payments/internal/config"
	"github.com/edusys/school-payments/internal/handler"
	"github.com/edusys/school-payments/internal/middleware"
	"github.com/edusys/school-payments/internal/models"
	"github.com/edusys/school-payments/internal/repository"
	"github.com/edusys/school-payments/internal/service"
	"github.com/edusys/school-payments/internal/utils/email"
)

func main() {
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
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc, logger)

	// Overdue marking runs on a schedule; installments past their due date
	// move from pending to overdue.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.OverdueCron, func() {
		if _, err := svc.MarkOverduePayments(time.Now()); err != nil {
			logger.Errorf("Overdue job failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule overdue job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/payments", h.ListPayments).Methods("GET")
	authRouter.HandleFunc("/payments/{id}/proof", h.PaymentProof).Methods("GET")
	authRouter.HandleFunc("/courses", h.ListCourses).Methods("GET")
	authRouter.HandleFunc("/reports/payments", h.PaymentReport).Methods("GET")
	authRouter.HandleFunc("/reports/payments.xml", h.PaymentReportXML).Methods("GET")

	// Verification and administration require an admin role
	adminRouter := authRouter.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	adminRouter.HandleFunc("/payments/{id}/verify", h.VerifyPayment).Methods("PUT")
	adminRouter.HandleFunc("/payments/{id}/reject", h.RejectPayment).Methods("PUT")
	adminRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users", h.CreateUser).Methods("POST")
	adminRouter.HandleFunc("/users/{id}/active", h.SetUserActive).Methods("PUT")
	adminRouter.HandleFunc("/courses", h.CreateCourse).Methods("POST")
	adminRouter.HandleFunc("/audit", h.ListAudit).Methods("GET")

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
