package auth

import (
	"context"
	"testing"

	"savingsTracker/internal/testutil"
	"savingsTracker/models"
	"savingsTracker/repository"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRequireUser(t *testing.T) {
	if _, err := RequireUser(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without principal, got %v", err)
	}
	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		ctx := WithPrincipal(context.Background(), &Principal{Name: "x", Role: role})
		if _, err := RequireUser(ctx); err != nil {
			t.Fatalf("RequireUser(%s): %v", role, err)
		}
	}
}

func TestRequireAdmin_WithStoredRoleCheck(t *testing.T) {
	creds, _ := testutil.FileStores(t)
	ctx := context.Background()
	if _, err := creds.Register(ctx, "alice", "pw", models.RoleUser); err != nil {
		t.Fatalf("register alice: %v", err)
	}

	userCtx := WithPrincipal(ctx, &Principal{Name: "alice", Role: models.RoleUser})
	if _, err := RequireAdmin(userCtx, creds); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for user session, got %v", err)
	}

	// Admin claim, but the stored role is user.
	spoofed := WithPrincipal(ctx, &Principal{Name: "alice", Role: models.RoleAdmin})
	if _, err := RequireAdmin(spoofed, creds); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for spoofed admin, got %v", err)
	}

	all, err := creds.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := all["alice"]
	c.Role = models.RoleAdmin
	all["alice"] = c
	if err := creds.Save(ctx, all); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if _, err := RequireAdmin(spoofed, creds); err != nil {
		t.Fatalf("RequireAdmin real admin: %v", err)
	}

	ghost := WithPrincipal(ctx, &Principal{Name: "ghost", Role: models.RoleAdmin})
	if _, err := RequireAdmin(ghost, creds); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for unknown admin, got %v", err)
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	a := s.Open(Principal{Name: "alice", Role: models.RoleUser})
	b := s.Open(Principal{Name: "alice", Role: models.RoleUser})
	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Fatalf("session ids must be unique: %q %q", a.SessionID, b.SessionID)
	}
	if !s.Active(a.SessionID) || s.Len() != 2 {
		t.Fatalf("expected two active sessions")
	}
	if !s.Close(a.SessionID) || s.Close(a.SessionID) {
		t.Fatalf("close should succeed exactly once")
	}
	if s.Active(a.SessionID) || !s.Active(b.SessionID) {
		t.Fatalf("closing one session must not affect the other")
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	secret := "s3cr3t"
	sessions := NewSessions()
	interceptor := NewUnaryAuthInterceptor(secret, sessions, "/health")

	// Allowlisted path: no header, handler runs without a principal.
	hCalled := false
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/health"}, func(ctx context.Context, req any) (any, error) {
		hCalled = true
		if _, ok := FromContext(ctx); ok {
			t.Fatalf("expected no principal on allowlisted path")
		}
		return 123, nil
	})
	if err != nil || !hCalled {
		t.Fatalf("allowlisted handler err=%v called=%v", err, hCalled)
	}

	// Authenticated path with an open session.
	p := sessions.Open(Principal{Name: "bob", Role: models.RoleUser})
	tok, err := IssueToken(secret, p, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		got, ok := FromContext(ctx)
		if !ok || got.Name != "bob" || got.Role != models.RoleUser || got.SessionID != p.SessionID {
			t.Fatalf("principal not injected: %+v ok=%v", got, ok)
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("interceptor auth path: %v", err)
	}

	// Closed session: same token is refused.
	sessions.Close(p.SessionID)
	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		t.Fatalf("handler must not run for a closed session")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated after logout, got %v", err)
	}

	// No header at all.
	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", err)
	}
}

func TestRequireAdmin_SQLiteStore(t *testing.T) {
	creds := repository.NewSQLiteCredentialRepository(testutil.OpenInMemoryDB(t, "authadmin"))
	ctx := context.Background()
	if _, err := creds.Register(ctx, "root", "pw", models.RoleAdmin); err != nil {
		t.Fatalf("register root: %v", err)
	}
	if _, err := creds.Register(ctx, "alice", "pw", models.RoleUser); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := RequireAdmin(WithPrincipal(ctx, &Principal{Name: "root", Role: models.RoleAdmin}), creds); err != nil {
		t.Fatalf("RequireAdmin root: %v", err)
	}
	if _, err := RequireAdmin(WithPrincipal(ctx, &Principal{Name: "alice", Role: models.RoleAdmin}), creds); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for spoofed admin, got %v", err)
	}
}
