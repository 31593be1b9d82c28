package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"investiga-web/internal/config"
	"investiga-web/internal/jobs"
	"investiga-web/internal/logger"
	"investiga-web/internal/metrics"
	"investiga-web/internal/repository/store"
	"investiga-web/internal/scheduler"
	"investiga-web/internal/security"
	"investiga-web/internal/service"
)

// The standalone runner only sees shared session stores. The query cache lives
// inside the web process and is swept there.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'purge-expired-sessions', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Investiga cronjob runner...", "log_level", cfg.Log.Level, "session_store", cfg.Session.Store)

	if err := checkSessionStore(cfg); err != nil {
		logger.Error("Refusing to start cronjob runner", "error", err)
		log.Fatalf("Invalid session store: %v", err)
	}

	sessionRepo, closeStore, err := store.OpenSessions(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to open session store", "error", err)
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closeStore()

	sessionSvc := service.NewSessionService(sessionRepo, security.NewTokenManager(cfg.Session.Secret), cfg.SessionTTL())

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(sessionSvc, nil, metrics.New(), cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := runJobOnce(jobRunner, *runOnce); err != nil {
			logger.Error("Job execution failed", "job", *runOnce, "error", err)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// checkSessionStore rejects stores the runner cannot reach. The memory store
// is private to the web process.
func checkSessionStore(cfg *config.Config) error {
	if cfg.Session.Store == "memory" {
		return fmt.Errorf("session store %q is not shared with the cronjob runner", cfg.Session.Store)
	}
	return nil
}

// runJobOnce runs a specific job once
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) error {
	switch jobName {
	case jobs.JobPurgeExpiredSessions, "purge-sessions":
		return jobRunner.PurgeExpiredSessions()
	case jobs.JobSweepQueryCache:
		return jobRunner.SweepQueryCache()
	case "all":
		return jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - %s\n", jobs.JobPurgeExpiredSessions)
		fmt.Printf("  - %s\n", jobs.JobSweepQueryCache)
		fmt.Printf("  - all\n")
		return fmt.Errorf("unknown job %q", jobName)
	}
}
