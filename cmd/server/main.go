package main

import (
	"context"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduportal/config"
	"eduportal/db"
	"eduportal/http"
	"eduportal/http/handlers"
	"eduportal/logger"
	"eduportal/services"
	"eduportal/store"
)

func main() {
	config.LoadConfig()

	database, err := db.Open()
	if err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}
	defer database.Close()

	gateway := store.New(database)

	// Kafka producer (non-fatal; disabled when brokers unset)
	publisher := services.NewKafkaPublisher(config.AppConfig.KafkaBrokers)

	var notifier services.ReceiptNotifier
	if n := services.NewEmailNotifier(); n != nil {
		notifier = n
	}

	checkout := services.NewStripeCheckout(config.AppConfig.StripeSecretKey)

	registrationService := services.NewRegistrationService(gateway, publisher)
	paymentService := services.NewPaymentService(gateway, checkout, publisher, config.AppConfig.Currency)
	webhookService := services.NewWebhookService(gateway, config.AppConfig.StripeWebhookSecret, publisher, notifier)
	activityService := services.NewActivityService(gateway)
	newsService := services.NewNewsService(gateway)
	competitionService := services.NewCompetitionService(gateway)
	courseService := services.NewCourseService(gateway)
	adminService := services.NewAdminService(gateway, config.AppConfig.JWTSecret)

	h := &http.Handlers{
		Registrations: handlers.NewRegistrationHandler(registrationService),
		Payments:      handlers.NewPaymentHandler(paymentService, webhookService),
		Activities:    handlers.NewActivityHandler(activityService),
		News:          handlers.NewNewsHandler(newsService),
		Competitions:  handlers.NewCompetitionHandler(competitionService),
		Courses:       handlers.NewCourseHandler(courseService),
		Admins:        handlers.NewAdminHandler(adminService),
		Exports:       handlers.NewExportHandler(registrationService, paymentService, activityService),
	}

	mux := netHttp.NewServeMux()
	http.SetupRoutes(mux, h, adminService)

	server := &netHttp.Server{
		Addr:    config.AppConfig.ServerAddr,
		Handler: mux,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != netHttp.ErrServerClosed {
			logger.Fatal("Server error: %v", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down server: %v", err)
	}

	if err := publisher.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
