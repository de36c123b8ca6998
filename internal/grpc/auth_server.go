package grpcserver

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/models"
	"savingsTracker/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuthServer implements savings.v1.AuthService.
type AuthServer struct {
	savingsv1.UnimplementedAuthServiceServer
	Credentials repository.CredentialRepositoryI
	Sessions    *auth.Sessions
	Secret      string
	TokenTTL    time.Duration
	Logger      *slog.Logger
}

// Register creates a user-tier account. Admin accounts are created by admins only.
func (s *AuthServer) Register(ctx context.Context, req *savingsv1.RegisterRequest) (*savingsv1.RegisterResponse, error) {
	if req == nil {
		req = &savingsv1.RegisterRequest{}
	}
	username, password, err := credentialsFromReq(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	c, err := s.Credentials.Register(ctx, username, password, models.RoleUser)
	if err != nil {
		return nil, toStatus(err, "register")
	}
	s.Logger.Info("account registered", "user", c.Username)
	return &savingsv1.RegisterResponse{User: toProtoUser(c, false)}, nil
}

// Login verifies the credentials and opens a session.
func (s *AuthServer) Login(ctx context.Context, req *savingsv1.LoginRequest) (*savingsv1.LoginResponse, error) {
	if req == nil {
		req = &savingsv1.LoginRequest{}
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}
	role, err := s.Credentials.Verify(ctx, username, req.Password)
	if err != nil {
		s.Logger.Warn("login failed", "user", username)
		return nil, toStatus(err, "login")
	}
	p := s.Sessions.Open(auth.Principal{Name: username, Role: role})
	token, err := auth.IssueToken(s.Secret, p, s.TokenTTL)
	if err != nil {
		s.Sessions.Close(p.SessionID)
		return nil, status.Errorf(codes.Internal, "issue token: %v", err)
	}
	s.Logger.Info("login", "user", p.Name, "role", p.Role)
	return &savingsv1.LoginResponse{Token: token, Username: p.Name, Role: string(p.Role)}, nil
}

// Logout ends the caller's session; its token is refused afterwards.
func (s *AuthServer) Logout(ctx context.Context, _ *savingsv1.LogoutRequest) (*savingsv1.LogoutResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	s.Sessions.Close(p.SessionID)
	s.Logger.Info("logout", "user", p.Name)
	return &savingsv1.LogoutResponse{}, nil
}

func credentialsFromReq(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", "", status.Error(codes.InvalidArgument, "username and password are required")
	}
	// Usernames end up in ledger CSV rows, where embedded line breaks do not survive a reload.
	if strings.IndexFunc(username, unicode.IsControl) >= 0 {
		return "", "", status.Error(codes.InvalidArgument, "username must not contain control characters")
	}
	return username, password, nil
}
