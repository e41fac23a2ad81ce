package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/reminders-comb/app/api"
	"github.com/lysyi3m/reminders-comb/app/cfg"
	"github.com/lysyi3m/reminders-comb/app/config"
	"github.com/lysyi3m/reminders-comb/app/database"
	"github.com/lysyi3m/reminders-comb/app/export"
	"github.com/lysyi3m/reminders-comb/app/migration"
	"github.com/lysyi3m/reminders-comb/app/reminder"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Reminders Comb", "version", appCfg.Version)

	if err := run(appCfg); err != nil {
		slog.Error("Reminders Comb failed", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	if appCfg.Scan {
		return scan(appCfg.InputFile)
	}

	settings, err := config.NewLoader(appCfg.SettingsFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	slog.Info("Opening ledger", "path", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	version, _, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Debug("Ledger schema ready", "version", version)

	runRepo := database.NewRunRepository(db)
	taskRepo := database.NewTaskRepository(db)
	migrator := migration.NewMigrator(settings, runRepo, taskRepo)

	if appCfg.Serve {
		return serve(appCfg, api.NewHandler(migrator, runRepo, taskRepo))
	}

	return migrate(appCfg, migrator)
}

func migrate(appCfg *cfg.Cfg, migrator *migration.Migrator) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := os.ReadFile(appCfg.InputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	startedAt := time.Now()
	now := appCfg.Clock()

	result, err := migrator.Run(ctx, appCfg.InputFile, data, now)
	if err != nil {
		return err
	}

	if appCfg.DryRun {
		return result.Report(os.Stdout, now)
	}

	if err := export.NewCSVWriter().WriteFile(appCfg.OutputFile, result.Rows()); err != nil {
		return err
	}

	if err := migrator.Commit(ctx, result, startedAt); err != nil {
		return err
	}

	slog.Info("Migration completed",
		"run", result.RunID,
		"output", appCfg.OutputFile,
		"rows", len(result.Entries),
		"skipped", len(result.Skipped))
	return nil
}

func scan(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	defer f.Close()

	records, err := reminder.NewWalker().Run(f)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(reminder.NewSurvey(records)); err != nil {
		return fmt.Errorf("failed to encode survey: %w", err)
	}
	return encoder.Close()
}

func serve(appCfg *cfg.Cfg, handler *api.Handler) error {
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serverErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case serverErr = <-serverErrChan:
		slog.Error("Server error", "error", serverErr)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Reminders Comb shutdown complete")
	return serverErr
}
