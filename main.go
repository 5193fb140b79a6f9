package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/mailer"
	"github.com/dmarchetti/citazioni/maintenance"
	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/router"
	"github.com/dmarchetti/citazioni/session"
)

func main() {
	var err error

	// Optional .env file, same as the original deployment
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Maintenance flag survives restarts
	maint, err := maintenance.Load(cfg.DataDir)
	if err != nil {
		slog.Error("failed to load maintenance state", "error", err)
		os.Exit(1)
	}
	if enabled, _ := maint.Enabled(); enabled {
		slog.Warn("starting with maintenance mode enabled")
	}

	var sender mailer.Sender
	if cfg.NoMail {
		sender = &mailer.LogSender{SiteURL: cfg.SiteURL}
		slog.Warn("running with -no-mail, confirmation emails are logged only")
	} else {
		sender = mailer.NewSMTPSender(cfg.SMTP, cfg.SiteURL)
	}

	// Create router
	handler := router.New(dbConn, cfg, router.Deps{
		Sender:      sender,
		Sessions:    session.NewStore(session.DefaultTTL),
		Maintenance: maint,
		Metrics:     metrics.New(),
		StaticDir:   "static",
	})

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
