package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"savingsTracker/internal/fsutil"
	"savingsTracker/models"
)

// LedgerRepository is the flat-file ledger: a CSV file with the columns of
// LedgerHeader, one row per deposit, oldest first. Every call reads the file
// again, so the file is the only authority.
type LedgerRepository struct {
	path string
	mu   sync.Mutex
}

// NewLedgerRepository creates a ledger backed by the CSV file at path.
func NewLedgerRepository(path string) *LedgerRepository {
	return &LedgerRepository{path: path}
}

// Path returns the backing file path.
func (r *LedgerRepository) Path() string { return r.path }

// Load reads all deposits in file order. A missing file yields an empty ledger.
func (r *LedgerRepository) Load(ctx context.Context) ([]models.Deposit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *LedgerRepository) load() ([]models.Deposit, error) {
	data, ok, err := fsutil.ReadFileIfExists(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read ledger: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return []models.Deposit{}, nil
	}
	return DecodeLedgerCSV(data)
}

// Save overwrites the ledger file with deposits in slice order.
func (r *LedgerRepository) Save(ctx context.Context, deposits []models.Deposit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(deposits)
}

func (r *LedgerRepository) save(deposits []models.Deposit) error {
	data, err := EncodeLedgerCSV(deposits)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := fsutil.WriteFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Append adds d at the end of the ledger and rewrites the file.
// The amount is stored as given; policy checks belong to the caller.
func (r *LedgerRepository) Append(ctx context.Context, d models.Deposit) (*models.Deposit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	deposits, err := r.load()
	if err != nil {
		return nil, err
	}
	d.Position = len(deposits)
	deposits = append(deposits, d)
	if err := r.save(deposits); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByUser returns the deposits recorded for username, in file order.
func (r *LedgerRepository) ListByUser(ctx context.Context, username string) ([]models.Deposit, error) {
	deposits, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterDeposits(deposits, LedgerFilter{User: username}), nil
}

// SumByUser totals the amounts recorded for username. No rows sums to zero.
func (r *LedgerRepository) SumByUser(ctx context.Context, username string) (int64, error) {
	deposits, err := r.ListByUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return SumDeposits(deposits), nil
}

// SumAll totals every amount in the ledger.
func (r *LedgerRepository) SumAll(ctx context.Context) (int64, error) {
	deposits, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	return SumDeposits(deposits), nil
}

// DeleteAt removes the deposit at position and rewrites the file; later
// positions shift down by one. If expected is set, the record at position must
// still match it or ErrStaleDeposit is returned and nothing changes.
func (r *LedgerRepository) DeleteAt(ctx context.Context, position int, expected *models.Deposit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	deposits, err := r.load()
	if err != nil {
		return err
	}
	rest, err := removeAt(deposits, position, expected)
	if err != nil {
		return err
	}
	return r.save(rest)
}

// Clear deletes the ledger file. It fails with ErrNoDataToClear when there is no file.
func (r *LedgerRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return ErrNoDataToClear
	}
	return fmt.Errorf("%w: remove ledger: %v", ErrStorageUnavailable, err)
}

// ExportCSV renders the current ledger as CSV text.
func (r *LedgerRepository) ExportCSV(ctx context.Context) ([]byte, error) {
	deposits, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeLedgerCSV(deposits)
}

// HealthCheck verifies the ledger file, when present, parses.
func (r *LedgerRepository) HealthCheck(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}
