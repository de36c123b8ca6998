package repository

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"savingsTracker/internal/db"
)

var memDBSeq atomic.Int64

// openMemDB opens a private in-memory database with the bootstrap schema applied.
func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", memDBSeq.Add(1))
	d, err := db.Open(name)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

type credentialBackend struct {
	name string
	repo CredentialRepositoryI
}

type ledgerBackend struct {
	name string
	repo LedgerRepositoryI
}

func credentialBackends(t *testing.T) []credentialBackend {
	t.Helper()
	return []credentialBackend{
		{"file", NewCredentialRepository(filepath.Join(t.TempDir(), "user.json"))},
		{"sqlite", NewSQLiteCredentialRepository(openMemDB(t))},
	}
}

func ledgerBackends(t *testing.T) []ledgerBackend {
	t.Helper()
	return []ledgerBackend{
		{"file", NewLedgerRepository(filepath.Join(t.TempDir(), "data_tabungan.csv"))},
		{"sqlite", NewSQLiteLedgerRepository(openMemDB(t))},
	}
}
