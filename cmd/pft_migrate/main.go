// Command pft_migrate imports a legacy transactions file into the relational store
// configured by STORAGE_BACKEND, creating the owning user when it does not exist.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/core/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	file := flag.String("file", cfg.TransactionsFile, "legacy transactions file to import")
	opts := dto.LegacyImportOptions{}
	flag.StringVar(&opts.Username, "username", services.DefaultImportUsername, "owner of the imported transactions")
	flag.StringVar(&opts.Email, "email", services.DefaultImportEmail, "email used when the owner has to be created")
	flag.StringVar(&opts.Password, "password", services.DefaultImportPassword, "password used when the owner has to be created")
	flag.Parse()

	if !cfg.AccountsEnabled() {
		fmt.Fprintf(os.Stderr, "Error: STORAGE_BACKEND=%s has no accounts; use %s or %s.\n", cfg.StorageBackend, config.BackendSQLite, config.BackendPostgres)
		os.Exit(2)
	}

	fmt.Printf("Starting migration from %s to %s...\n", *file, cfg.StorageBackend)

	report, err := migrate(context.Background(), cfg, logger, *file, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during migration: %v\n", err)
		fmt.Fprintln(os.Stderr, "Migration rolled back due to error.")
		os.Exit(1)
	}

	printReport(report, opts)
}

func migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger, file string, opts dto.LegacyImportOptions) (*domain.ImportReport, error) {
	repos, closeRepos, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeRepos()

	container := services.NewServiceContainer(cfg, repos)
	if container.LegacyImport == nil {
		return nil, errors.New("storage backend does not support accounts")
	}
	return container.LegacyImport.ImportFile(ctx, file, opts)
}

func printReport(report *domain.ImportReport, opts dto.LegacyImportOptions) {
	fmt.Printf("Found %d transactions in JSON file\n", report.Found)
	if report.UserCreated {
		fmt.Printf("Created default user: %s with password: %s\n", report.Username, opts.Password)
	} else {
		fmt.Printf("Using existing user: %s\n", report.Username)
	}
	if report.Skipped > 0 {
		fmt.Printf("Skipped %d transactions that could not be converted\n", report.Skipped)
	}
	fmt.Printf("Migration complete. %d transactions now in the database for user %s.\n", report.TotalOwned, report.Username)
	if report.UserCreated {
		fmt.Println("\nYou can now log in with:")
		fmt.Printf("Username: %s\n", report.Username)
		fmt.Printf("Password: %s\n", opts.Password)
	}
}
