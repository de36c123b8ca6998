package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"savingsTracker/internal/db"
	"savingsTracker/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so every pooled connection sees the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// FileStores returns file-backed credential and ledger stores rooted in a fresh temp dir.
func FileStores(t *testing.T) (*repository.CredentialRepository, *repository.LedgerRepository) {
	t.Helper()
	dir := t.TempDir()
	return repository.NewCredentialRepository(filepath.Join(dir, "user.json")),
		repository.NewLedgerRepository(filepath.Join(dir, "data_tabungan.csv"))
}

// GenerateJWTHS256 returns a signed JWT string with the claims the auth package reads.
func GenerateJWTHS256(t *testing.T, secret, name, role, sessionID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"name": name,
		"role": role,
		"jti":  sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
