package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"savingsTracker/internal/config"
	"savingsTracker/internal/db"
	grpcserver "savingsTracker/internal/grpc"
	"savingsTracker/internal/logging"
	"savingsTracker/internal/receipt"
	"savingsTracker/models"
	"savingsTracker/repository"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(level, os.Stderr)
	slog.SetDefault(log)
	log.Info("configuration loaded", "config", cfg.String())

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	creds, ledger, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStores(); err != nil {
			log.Warn("close stores", "err", err)
		}
	}()

	if err := bootstrapAdmin(context.Background(), creds, cfg.Auth, log); err != nil {
		return err
	}

	deps := grpcserver.Deps{
		Credentials: creds,
		Ledger:      ledger,
		Logger:      log,
	}
	if cfg.Receipts.Enabled {
		deps.Receipts = receipt.NewGenerator(cfg.Receipts.Dir)
	}

	// Start gRPC
	shutdown, err := grpcserver.StartGRPC(cfg, deps)
	if err != nil {
		return fmt.Errorf("start grpc: %w", err)
	}
	log.Info("gRPC server listening", "addr", cfg.GRPC.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn("shutdown error", "err", err)
	}
	return nil
}

// openStores builds the credential and ledger stores for the configured backend.
func openStores(cfg *config.Config) (repository.CredentialRepositoryI, repository.LedgerRepositoryI, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		d, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open db: %w", err)
		}
		return repository.NewSQLiteCredentialRepository(d), repository.NewSQLiteLedgerRepository(d), d.Close, nil
	case config.BackendFile, "":
		return repository.NewCredentialRepository(cfg.Storage.CredentialsPath),
			repository.NewLedgerRepository(cfg.Storage.LedgerPath),
			func() error { return nil }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// bootstrapAdmin creates the configured admin account when it does not exist yet.
// An existing account is never modified.
func bootstrapAdmin(ctx context.Context, creds repository.CredentialRepositoryI, a config.AuthConfig, log *slog.Logger) error {
	if a.AdminUsername == "" {
		return nil
	}
	admin := models.NewAdmin(a.AdminUsername, a.AdminPassword)
	_, err := creds.Register(ctx, admin.Username, admin.Password, admin.Role)
	switch {
	case err == nil:
		log.Info("bootstrap admin created", "user", admin.Username)
		return nil
	case errors.Is(err, repository.ErrUsernameTaken):
		existing, gerr := creds.GetByUsername(ctx, admin.Username)
		if gerr != nil {
			return fmt.Errorf("bootstrap admin: %w", gerr)
		}
		if existing != nil && !existing.Role.IsAdmin() {
			log.Warn("bootstrap admin name belongs to a user-tier account; left unchanged", "user", admin.Username)
		}
		return nil
	}
	return fmt.Errorf("bootstrap admin: %w", err)
}
