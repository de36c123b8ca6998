package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"savingsTracker/models"
)

// SQLiteLedgerRepository keeps the ledger in the deposits table. Rows carry a
// stable autoincrement id; positions are the rank of that id, so they behave
// exactly like file-order positions of the CSV store.
type SQLiteLedgerRepository struct {
	db *sql.DB
}

func NewSQLiteLedgerRepository(db *sql.DB) *SQLiteLedgerRepository {
	return &SQLiteLedgerRepository{db: db}
}

const positionedDeposits = `SELECT ROW_NUMBER() OVER (ORDER BY id) - 1 AS pos, tanggal, user, amount, note FROM deposits`

func (r *SQLiteLedgerRepository) Load(ctx context.Context) ([]models.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, positionedDeposits+` ORDER BY id`)
	if err != nil {
		return nil, storageErr("load deposits", err)
	}
	defer rows.Close()
	return scanDeposits(rows)
}

// Save replaces the ledger with deposits in slice order.
func (r *SQLiteLedgerRepository) Save(ctx context.Context, deposits []models.Deposit) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deposits`); err != nil {
		_ = tx.Rollback()
		return storageErr("clear deposits", err)
	}
	for _, d := range deposits {
		if _, err := tx.ExecContext(ctx, `INSERT INTO deposits (tanggal, user, amount, note) VALUES (?, ?, ?, ?)`, d.Timestamp, d.User, d.Amount, d.Note); err != nil {
			_ = tx.Rollback()
			return storageErr("insert deposit", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (r *SQLiteLedgerRepository) Append(ctx context.Context, d models.Deposit) (*models.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO deposits (tanggal, user, amount, note) VALUES (?, ?, ?, ?)`, d.Timestamp, d.User, d.Amount, d.Note)
	if err != nil {
		return nil, storageErr("insert deposit", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr("insert deposit", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deposits WHERE id < ?`, id).Scan(&d.Position); err != nil {
		return nil, storageErr("position", err)
	}
	return &d, nil
}

func (r *SQLiteLedgerRepository) ListByUser(ctx context.Context, username string) ([]models.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT pos, tanggal, user, amount, note FROM (`+positionedDeposits+`) WHERE user = ? ORDER BY pos`, username)
	if err != nil {
		return nil, storageErr("list deposits", err)
	}
	defer rows.Close()
	return scanDeposits(rows)
}

func (r *SQLiteLedgerRepository) SumByUser(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE user = ?`, username).Scan(&total); err != nil {
		return 0, storageErr("sum deposits", err)
	}
	return total, nil
}

func (r *SQLiteLedgerRepository) SumAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM deposits`).Scan(&total); err != nil {
		return 0, storageErr("sum deposits", err)
	}
	return total, nil
}

// DeleteAt removes the row ranked at position. See LedgerRepository.DeleteAt.
func (r *SQLiteLedgerRepository) DeleteAt(ctx context.Context, position int, expected *models.Deposit) error {
	if position < 0 {
		return ErrPositionOutOfRange
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	var cur models.Deposit
	err = tx.QueryRowContext(ctx, `SELECT id, tanggal, user, amount, note FROM deposits ORDER BY id LIMIT 1 OFFSET ?`, position).
		Scan(&id, &cur.Timestamp, &cur.User, &cur.Amount, &cur.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPositionOutOfRange
		}
		return storageErr("find deposit", err)
	}
	if expected != nil && !cur.SameRecord(*expected) {
		return ErrStaleDeposit
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deposits WHERE id = ?`, id); err != nil {
		return storageErr("delete deposit", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// Clear removes every deposit. An empty table counts as nothing persisted.
func (r *SQLiteLedgerRepository) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM deposits`)
	if err != nil {
		return storageErr("clear deposits", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("clear deposits", err)
	}
	if n == 0 {
		return ErrNoDataToClear
	}
	return nil
}

func (r *SQLiteLedgerRepository) ExportCSV(ctx context.Context) ([]byte, error) {
	deposits, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeLedgerCSV(deposits)
}

func (r *SQLiteLedgerRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanDeposits(rows *sql.Rows) ([]models.Deposit, error) {
	out := []models.Deposit{}
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.Position, &d.Timestamp, &d.User, &d.Amount, &d.Note); err != nil {
			return nil, storageErr("scan deposit", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("scan deposits", err)
	}
	return out, nil
}
