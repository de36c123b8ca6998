package repository

import (
	"context"

	"savingsTracker/models"
)

// CredentialRepositoryI defines operations on the credential store.
type CredentialRepositoryI interface {
	Load(ctx context.Context) (map[string]models.Credential, error)
	Save(ctx context.Context, creds map[string]models.Credential) error
	Verify(ctx context.Context, username, password string) (models.Role, error)
	Register(ctx context.Context, username, password string, role models.Role) (*models.Credential, error)
	GetByUsername(ctx context.Context, username string) (*models.Credential, error)
	List(ctx context.Context) ([]models.Credential, error)
	HealthCheck(ctx context.Context) error
}

// LedgerRepositoryI defines operations on the deposit ledger.
type LedgerRepositoryI interface {
	Load(ctx context.Context) ([]models.Deposit, error)
	Save(ctx context.Context, deposits []models.Deposit) error
	Append(ctx context.Context, d models.Deposit) (*models.Deposit, error)
	ListByUser(ctx context.Context, username string) ([]models.Deposit, error)
	SumByUser(ctx context.Context, username string) (int64, error)
	SumAll(ctx context.Context) (int64, error)
	DeleteAt(ctx context.Context, position int, expected *models.Deposit) error
	Clear(ctx context.Context) error
	ExportCSV(ctx context.Context) ([]byte, error)
	HealthCheck(ctx context.Context) error
}

var (
	_ CredentialRepositoryI = (*CredentialRepository)(nil)
	_ CredentialRepositoryI = (*SQLiteCredentialRepository)(nil)
	_ LedgerRepositoryI     = (*LedgerRepository)(nil)
	_ LedgerRepositoryI     = (*SQLiteLedgerRepository)(nil)
)
