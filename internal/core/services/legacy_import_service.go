package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

// Default owner of imported legacy records.
const (
	DefaultImportUsername = "user"
	DefaultImportEmail    = "user@example.com"
	DefaultImportPassword = "password"
)

type legacyImportService struct {
	BaseService
	userSvc         portssvc.UserWriterSvc
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewLegacyImportService creates a service importing legacy transaction files.
func NewLegacyImportService(userSvc portssvc.UserWriterSvc, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.LegacyImportSvc {
	return &legacyImportService{userSvc: userSvc, transactionRepo: transactionRepo}
}

var _ portssvc.LegacyImportSvc = (*legacyImportService)(nil)

// ImportFile reads the legacy JSON array at path and stores every convertible record
// for the import owner in one batch. Records that cannot be converted are skipped.
// Running it twice imports the records twice.
func (s *legacyImportService) ImportFile(ctx context.Context, path string, opts dto.LegacyImportOptions) (*domain.ImportReport, error) {
	opts = withImportDefaults(opts)

	records, err := readLegacyRecords(path)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Legacy file loaded", slog.String("path", path), slog.Int("records", len(records)))

	// The owner is committed on its own; it survives a failed batch.
	user, created, err := s.userSvc.EnsureUser(ctx, opts.Username, opts.Email, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare import owner: %w", err)
	}

	report := &domain.ImportReport{
		Username:    user.Username,
		UserCreated: created,
		Found:       len(records),
	}

	batch := make([]domain.Transaction, 0, len(records))
	for i, element := range records {
		record, err := decodeLegacyRecord(element)
		if err != nil {
			s.LogWarn(ctx, "Skipping legacy record that is not an object", slog.Int("index", i), slog.String("error", err.Error()))
			report.Skipped++
			continue
		}
		txn, err := domain.NewTransaction(record.params(user.UserID))
		if err != nil {
			s.LogWarn(ctx, "Skipping legacy record", slog.Int("index", i), slog.String("error", err.Error()))
			report.Skipped++
			continue
		}
		batch = append(batch, txn)
	}

	if len(batch) > 0 {
		if err := s.transactionRepo.SaveTransactions(ctx, batch); err != nil {
			s.LogError(ctx, err, "Legacy import rolled back", slog.Int("batch_size", len(batch)))
			return nil, fmt.Errorf("import rolled back: %w", err)
		}
	}
	report.Imported = len(batch)

	total, err := s.transactionRepo.CountTransactions(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count imported transactions: %w", err)
	}
	report.TotalOwned = total

	s.LogInfo(ctx, "Legacy import complete",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.Int("total_owned", report.TotalOwned))
	return report, nil
}

func withImportDefaults(opts dto.LegacyImportOptions) dto.LegacyImportOptions {
	if opts.Username == "" {
		opts.Username = DefaultImportUsername
	}
	if opts.Email == "" {
		opts.Email = DefaultImportEmail
	}
	if opts.Password == "" {
		opts.Password = DefaultImportPassword
	}
	return opts
}

// legacyRecord is one element of the legacy file. Fields of the wrong JSON type are
// treated as absent.
type legacyRecord map[string]any

func (r legacyRecord) params(userID int64) domain.NewTransactionParams {
	return domain.NewTransactionParams{
		UserID:   userID,
		Title:    r.str("title"),
		Amount:   r["amount"],
		Type:     r.str("type"),
		Category: r.str("category"),
		Date:     r.str("date"),
	}
}

func (r legacyRecord) str(key string) *string {
	if v, ok := r[key].(string); ok {
		return &v
	}
	return nil
}

func decodeLegacyRecord(element json.RawMessage) (legacyRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(element))
	dec.UseNumber()
	var record legacyRecord
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

// readLegacyRecords returns the raw elements of the legacy array. Each element is
// decoded on its own so one malformed entry cannot sink the rest.
func readLegacyRecords(path string) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: legacy file %s not found", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read legacy file %s: %w", path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: legacy file %s is not a JSON array of records: %v", apperrors.ErrValidation, path, err)
	}
	return records, nil
}
