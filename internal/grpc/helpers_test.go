package grpcserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"savingsTracker/internal/auth"
	"savingsTracker/internal/logging"
	"savingsTracker/internal/testutil"
	"savingsTracker/models"
	"savingsTracker/repository"
)

var fixedNow = time.Date(2024, 5, 1, 9, 15, 42, 0, time.UTC)

type fakeReceipts struct {
	summaries []string
	err       error
}

func (f *fakeReceipts) Generate(summary string) (string, error) {
	f.summaries = append(f.summaries, summary)
	if f.err != nil {
		return "", f.err
	}
	return "images/" + summary + ".png", nil
}

type testEnv struct {
	creds    *repository.CredentialRepository
	ledger   *repository.LedgerRepository
	receipts *fakeReceipts
	sessions *auth.Sessions
	savings  *SavingsServer
	admin    *AdminServer
	auth     *AuthServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	creds, ledger := testutil.FileStores(t)
	log := logging.Discard()
	env := &testEnv{
		creds:    creds,
		ledger:   ledger,
		receipts: &fakeReceipts{},
		sessions: auth.NewSessions(),
	}
	env.savings = &SavingsServer{Ledger: ledger, Receipts: env.receipts, Logger: log, Now: func() time.Time { return fixedNow }}
	env.admin = &AdminServer{Credentials: creds, Ledger: ledger, Logger: log}
	env.auth = &AuthServer{Credentials: creds, Sessions: env.sessions, Secret: "test-secret", Logger: log}
	return env
}

// register creates an account with role.
func (e *testEnv) register(t *testing.T, username string, role models.Role) {
	t.Helper()
	if _, err := e.creds.Register(context.Background(), username, "pw-"+username, role); err != nil && !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("register %s: %v", username, err)
	}
}

// newPrincipalCtx returns a context with the given principal injected.
func newPrincipalCtx(name string, role models.Role) context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{Name: name, Role: role, SessionID: "test-" + name})
}
