package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "investiga-web/internal/api/http"
	"investiga-web/internal/cache"
	"investiga-web/internal/config"
	"investiga-web/internal/domain"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/jobs"
	"investiga-web/internal/logger"
	"investiga-web/internal/metrics"
	"investiga-web/internal/repository/rest"
	"investiga-web/internal/repository/store"
	"investiga-web/internal/scheduler"
	"investiga-web/internal/security"
	"investiga-web/internal/service"

	"golang.org/x/crypto/acme/autocert"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Investiga web...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "public_url", cfg.Server.PublicURL)
	logger.Info("Backend configuration", "base_url", cfg.Backend.BaseURL, "timeout", cfg.BackendTimeout())

	m := metrics.New()

	// Initialize session store
	ctx := context.Background()
	sessionRepo, closeStore, err := store.OpenSessions(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open session store", "store", cfg.Session.Store, "error", err)
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closeStore()
	logger.Info("Session store ready", "store", cfg.Session.Store)

	// Initialize REST backend client and repositories
	client, err := rest.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout(), m)
	if err != nil {
		logger.Error("Failed to create backend client", "error", err)
		log.Fatalf("Failed to create backend client: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Session.Secret)

	// Initialize Services
	sessionSvc := service.NewSessionService(sessionRepo, tokenManager, cfg.SessionTTL())
	authSvc := service.NewAuthService(rest.NewAuthRepository(client))
	projectSvc := service.NewProjectService(rest.NewProjectRepository(client))
	catalog := &service.Catalog{
		Institutions: service.NewReferenceService(rest.NewInstitutionRepository(client), "institutions"),
		Facilities:   service.NewReferenceService(rest.NewFacilityRepository(client), "facilities", "institution"),
		Departments:  service.NewReferenceService(rest.NewDepartmentRepository(client), "research-departments", "facility.institution"),
		Interests:    service.NewReferenceService(rest.NewInterestRepository(client), "interests"),
	}
	userSvc := service.NewReferenceService[domain.User, domain.User](rest.NewUserRepository(client), "users",
		"institution", "researchDepartment", "interests", "enrollments.project")

	var reportSvc service.ReportService
	if cfg.ReportingEnabled() {
		reportSvc = service.NewReportService(cfg.Report.SendGridAPIKey, cfg.Report.FromEmail, cfg.Report.FromName, cfg.Report.ToEmail)
		logger.Info("Issue reports enabled", "to", cfg.Report.ToEmail)
	} else {
		reportSvc = service.NewDisabledReportService()
		logger.Warn("Issue reports disabled, SendGrid is not configured")
	}

	queryCache := cache.NewQueryCache(cfg.CacheTTL(), m)
	dispatcher := enrollment.NewDispatcher(rest.NewEnrollmentRepository(client), m)

	srv, err := httpapi.NewServer(httpapi.Deps{
		Config:     cfg,
		Sessions:   sessionSvc,
		Auth:       authSvc,
		Projects:   projectSvc,
		Catalog:    catalog,
		Users:      userSvc,
		Reports:    reportSvc,
		Dispatcher: dispatcher,
		Cache:      queryCache,
		Tokens:     tokenManager,
		Metrics:    m,
	})
	if err != nil {
		logger.Error("Failed to build web server", "error", err)
		log.Fatalf("Failed to build web server: %v", err)
	}

	// Housekeeping jobs run in-process so they can reach the query cache
	cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(sessionSvc, queryCache, m, cfg))
	if err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	if len(cfg.Server.AutocertDomains) > 0 {
		certManager := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.Server.AutocertDomains...),
			Cache:      autocert.DirCache(cfg.Server.AutocertCache),
		}
		httpServer.Addr = ":443"
		httpServer.TLSConfig = certManager.TLSConfig()
		go func() {
			// ACME http-01 challenges and HTTPS redirects
			logger.Info("ACME challenge listener started", "address", ":80")
			if err := http.ListenAndServe(":80", certManager.HTTPHandler(nil)); err != nil {
				logger.Error("ACME challenge listener stopped", "error", err)
			}
		}()
		go func() {
			logger.Info("HTTPS server listening", "address", httpServer.Addr, "domains", cfg.Server.AutocertDomains)
			errCh <- httpServer.ListenAndServeTLS("", "")
		}()
	} else {
		go func() {
			logger.Info("HTTP server listening", "address", httpServer.Addr)
			errCh <- httpServer.ListenAndServe()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutting down web server...", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Web server stopped. Goodbye!")
}
