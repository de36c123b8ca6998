package grpcserver

import (
	"context"
	"testing"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/internal/testutil"
	"savingsTracker/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &savingsv1.RegisterRequest{Username: " alice ", Password: "pw1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.User.Username != "alice" || reg.User.Role != "user" || reg.User.Password != "" {
		t.Fatalf("unexpected register response: %+v", reg.User)
	}

	login, err := env.auth.Login(ctx, &savingsv1.LoginRequest{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Role != "user" || login.Token == "" {
		t.Fatalf("unexpected login response: %+v", login)
	}
	p, err := auth.ParseFromMD(testutil.CtxWithBearer(ctx, login.Token), "test-secret")
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if p.Name != "alice" || p.Role != models.RoleUser || !env.sessions.Active(p.SessionID) {
		t.Fatalf("token principal %+v, active=%v", p, env.sessions.Active(p.SessionID))
	}

	if _, err := env.auth.Logout(auth.WithPrincipal(ctx, p), &savingsv1.LogoutRequest{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if env.sessions.Active(p.SessionID) {
		t.Fatalf("session still active after logout")
	}
}

func TestAuth_RegisterErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, &savingsv1.RegisterRequest{Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := env.auth.Register(ctx, &savingsv1.RegisterRequest{Username: "alice", Password: "other"})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("duplicate register: want AlreadyExists, got %v", err)
	}
	if _, err := env.auth.Login(ctx, &savingsv1.LoginRequest{Username: "alice", Password: "pw1"}); err != nil {
		t.Fatalf("original password must still work: %v", err)
	}
	for _, req := range []*savingsv1.RegisterRequest{nil, {Username: "  ", Password: "x"}, {Username: "bob"}} {
		if _, err := env.auth.Register(ctx, req); status.Code(err) != codes.InvalidArgument {
			t.Fatalf("register %+v: want InvalidArgument, got %v", req, err)
		}
	}
}

func TestAuth_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", models.RoleUser)
	ctx := context.Background()

	for _, req := range []*savingsv1.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "Alice", Password: "pw-alice"},
		{Username: "nobody", Password: "pw-alice"},
	} {
		if _, err := env.auth.Login(ctx, req); status.Code(err) != codes.Unauthenticated {
			t.Fatalf("login %+v: want Unauthenticated, got %v", req, err)
		}
	}
	if env.sessions.Len() != 0 {
		t.Fatalf("failed logins must not open sessions")
	}
	if _, err := env.auth.Logout(ctx, &savingsv1.LogoutRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("logout without session: want Unauthenticated, got %v", err)
	}
}

func TestAuth_LoginTrimsUsernameLikeRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, &savingsv1.RegisterRequest{Username: " alice ", Password: "pw1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	resp, err := env.auth.Login(ctx, &savingsv1.LoginRequest{Username: " alice ", Password: "pw1"})
	if err != nil {
		t.Fatalf("login with the same input: %v", err)
	}
	if resp.Username != "alice" {
		t.Fatalf("username = %q, want alice", resp.Username)
	}
}

func TestAuth_RejectsControlCharactersInUsername(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "root", models.RoleAdmin)
	ctx := context.Background()
	for _, name := range []string{"a\r\nb", "a\nb", "tab\there", "nul\x00"} {
		if _, err := env.auth.Register(ctx, &savingsv1.RegisterRequest{Username: name, Password: "pw"}); status.Code(err) != codes.InvalidArgument {
			t.Fatalf("register %q: want InvalidArgument, got %v", name, err)
		}
		_, err := env.admin.CreateUser(newPrincipalCtx("root", models.RoleAdmin), &savingsv1.CreateUserRequest{Username: name, Password: "pw"})
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("create user %q: want InvalidArgument, got %v", name, err)
		}
	}
	list, err := env.creds.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("only root should exist: %+v %v", list, err)
	}
}

func TestAuth_LoginWithInvalidStoredRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.creds.Save(ctx, map[string]models.Credential{"alice": {Username: "alice", Password: "pw"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := env.auth.Login(ctx, &savingsv1.LoginRequest{Username: "alice", Password: "pw"})
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("want Unavailable for a credential without a valid role, got %v", err)
	}
	if env.sessions.Len() != 0 {
		t.Fatalf("no session may be opened")
	}
}
