package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doktu-co/notify/internal/database"
	"github.com/doktu-co/notify/internal/email"
	"github.com/doktu-co/notify/internal/engine"
	"github.com/doktu-co/notify/internal/logging"
	"github.com/doktu-co/notify/internal/push"
	"github.com/doktu-co/notify/internal/server"
	"github.com/doktu-co/notify/internal/sms"
)

func main() {
	logger := logging.Setup(os.Getenv("NOTIFY_LOG_LEVEL"))

	port := os.Getenv("NOTIFY_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("NOTIFY_DB_PATH")
	if dbPath == "" {
		dbPath = "notify.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	emailClient := email.NewClient(
		os.Getenv("MAILGUN_API_KEY"),
		os.Getenv("MAILGUN_DOMAIN"),
		os.Getenv("MAILGUN_FROM_EMAIL"),
	)
	smsClient := sms.NewClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_FROM_NUMBER"),
	)

	var pushSvc *push.Service
	if pub, priv := os.Getenv("VAPID_PUBLIC_KEY"), os.Getenv("VAPID_PRIVATE_KEY"); pub != "" && priv != "" {
		subscriber := os.Getenv("VAPID_SUBSCRIBER")
		if subscriber == "" {
			subscriber = "mailto:support@doktu.co"
		}
		pushSvc = push.NewService(pub, priv, subscriber)
	}

	cfg := engine.DefaultConfig()
	if supportEmail := os.Getenv("NOTIFY_SUPPORT_EMAIL"); supportEmail != "" {
		cfg.SupportEmail = supportEmail
	}
	if dashboardURL := os.Getenv("NOTIFY_DASHBOARD_URL"); dashboardURL != "" {
		cfg.DashboardURL = dashboardURL
	}

	srv, err := server.New(db, emailClient, smsClient, pushSvc, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.Start(ctx)
	defer srv.Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("notifyd listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
