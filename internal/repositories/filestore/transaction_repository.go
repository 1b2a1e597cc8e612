// Package filestore keeps transactions in a single JSON document on disk.
//
// Every operation reads the whole document and every write rewrites it. Writers in
// this process are serialized; separate processes sharing the file are not
// coordinated and the last writer wins.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/SscSPs/personal_finance_tracker/internal/utils/mapping"
)

// FileTransactionRepository implements portsrepo.TransactionRepositoryFacade on a JSON file.
// The file has no notion of owners: every record belongs to domain.LegacyOwnerID.
type FileTransactionRepository struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

var _ portsrepo.TransactionRepositoryFacade = (*FileTransactionRepository)(nil)

// NewFileTransactionRepository opens the store at path, creating an empty document if
// the file does not exist yet.
func NewFileTransactionRepository(path string) (*FileTransactionRepository, error) {
	r := &FileTransactionRepository{path: path, now: time.Now}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.write(&document{}); err != nil {
			return nil, fmt.Errorf("initialize transactions file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat transactions file: %w", err)
	}
	return r, nil
}

// NewRepositoryProvider builds the providers for running without accounts.
func NewRepositoryProvider(repo *FileTransactionRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{TransactionRepo: repo}
}

func (r *FileTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	r.assignID(txn, doc)
	txn.UserID = domain.LegacyOwnerID
	doc.append(*txn)
	if err := r.write(doc); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactions appends the batch with a single rewrite, so either all records land
// or none do.
func (r *FileTransactionRepository) SaveTransactions(ctx context.Context, batch []domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("failed to save transaction batch: %w", err)
	}
	for i := range batch {
		r.assignID(&batch[i], doc)
		batch[i].UserID = domain.LegacyOwnerID
		doc.append(batch[i])
	}
	if err := r.write(doc); err != nil {
		return fmt.Errorf("failed to save transaction batch: %w", err)
	}
	return nil
}

func (r *FileTransactionRepository) FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID != domain.LegacyOwnerID {
		return nil, apperrors.ErrNotFound
	}
	doc, err := r.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	if i := doc.indexOf(transactionID); i >= 0 {
		txn := *doc.entries[i].txn
		return &txn, nil
	}
	return nil, apperrors.ErrNotFound
}

// FindTransactions returns matching records in file order.
func (r *FileTransactionRepository) FindTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []domain.Transaction{}
	if userID != domain.LegacyOwnerID {
		return matched, nil
	}
	doc, err := r.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	for _, txn := range doc.transactions() {
		if filter.Matches(txn) {
			matched = append(matched, txn)
		}
	}
	return matched, nil
}

func (r *FileTransactionRepository) CountTransactions(ctx context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID != domain.LegacyOwnerID {
		return 0, nil
	}
	doc, err := r.read(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return len(doc.transactions()), nil
}

func (r *FileTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if txn.UserID != domain.LegacyOwnerID {
		return apperrors.ErrNotFound
	}
	doc, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}
	i := doc.indexOf(txn.ID)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	doc.entries[i] = entry{txn: &txn}
	if err := r.write(doc); err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}
	return nil
}

func (r *FileTransactionRepository) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID != domain.LegacyOwnerID {
		return nil, apperrors.ErrNotFound
	}
	doc, err := r.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	i := doc.indexOf(transactionID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	removed := *doc.entries[i].txn
	doc.entries = append(doc.entries[:i], doc.entries[i+1:]...)
	if err := r.write(doc); err != nil {
		return nil, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	return &removed, nil
}

// assignID gives txn a time-based id in microseconds, bumped past any id in use.
func (r *FileTransactionRepository) assignID(txn *domain.Transaction, doc *document) {
	id := r.now().UnixMicro()
	for _, t := range doc.transactions() {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	txn.ID = id
}

// entry is one element of the document. Elements that do not decode into a
// transaction keep their original bytes in raw and are written back untouched.
type entry struct {
	txn *domain.Transaction
	raw json.RawMessage
}

type document struct {
	entries []entry
}

func (d *document) append(txn domain.Transaction) {
	d.entries = append(d.entries, entry{txn: &txn})
}

func (d *document) transactions() []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(d.entries))
	for _, e := range d.entries {
		if e.txn != nil {
			txns = append(txns, *e.txn)
		}
	}
	return txns
}

func (d *document) indexOf(id int64) int {
	for i, e := range d.entries {
		if e.txn != nil && e.txn.ID == id {
			return i
		}
	}
	return -1
}

// read loads the document. A missing file or a document that is not a JSON array reads
// as empty. Elements that cannot be decoded are hidden from callers but kept for the
// next write. Any other I/O failure is returned.
func (r *FileTransactionRepository) read(ctx context.Context) (*document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transactions file: %w", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		logger.Warn("Transactions file is not a JSON array, treating as empty", slog.String("path", r.path), slog.String("error", err.Error()))
		return &document{}, nil
	}

	doc := &document{entries: make([]entry, 0, len(elements))}
	for i, element := range elements {
		txn, err := decodeElement(element)
		if err != nil {
			logger.Warn("Keeping undecodable record as is", slog.Int("index", i), slog.String("error", err.Error()))
			doc.entries = append(doc.entries, entry{raw: element})
			continue
		}
		doc.entries = append(doc.entries, entry{txn: &txn})
	}
	return doc, nil
}

func decodeElement(element json.RawMessage) (domain.Transaction, error) {
	var record models.FileTransaction
	dec := json.NewDecoder(bytes.NewReader(element))
	dec.UseNumber()
	if err := dec.Decode(&record); err != nil {
		return domain.Transaction{}, err
	}
	return mapping.FromFileTransaction(record)
}

// write replaces the document atomically through a temporary file in the same directory.
func (r *FileTransactionRepository) write(doc *document) error {
	elements := make([]any, len(doc.entries))
	for i, e := range doc.entries {
		if e.txn == nil {
			elements[i] = e.raw
			continue
		}
		elements[i] = mapping.ToFileTransaction(*e.txn)
	}
	data, err := json.MarshalIndent(elements, "", "    ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace transactions file: %w", err)
	}
	return nil
}
