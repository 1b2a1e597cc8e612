package services

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

// LegacyImportSvc moves records from a legacy transactions file into the relational store.
type LegacyImportSvc interface {
	// ImportFile imports every convertible record of the file at path for the owner
	// described by opts.
	ImportFile(ctx context.Context, path string, opts dto.LegacyImportOptions) (*domain.ImportReport, error)
}
