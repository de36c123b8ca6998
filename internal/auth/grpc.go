package auth

import (
	"context"
	"strings"

	"savingsTracker/repository"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer JWT from incoming metadata and injects the Principal into the context.
// When sessions is non-nil the token's session must still be open.
// Methods listed in allowUnauthenticated bypass authentication (login, health checks).
func NewUnaryAuthInterceptor(secret string, sessions *Sessions, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		p, err := ParseFromMD(ctx, secret)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		if sessions != nil && !sessions.Active(p.SessionID) {
			return nil, status.Error(codes.Unauthenticated, "session has ended")
		}
		return handler(WithPrincipal(ctx, p), req)
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	return p, nil
}

// RequireUser ensures the caller holds a session of either tier.
func RequireUser(ctx context.Context) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.Role.Valid() {
		return nil, status.Error(codes.PermissionDenied, "unknown role")
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin principal AND that the stored
// credential still carries the admin role. A token minted before a demotion,
// or forged with someone else's role claim, is refused.
func RequireAdmin(ctx context.Context, creds repository.CredentialRepositoryI) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "only admin can perform this action")
	}
	if creds == nil {
		return nil, status.Error(codes.Internal, "credential repository not configured")
	}
	c, err := creds.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "get credential: %v", err)
	}
	if c == nil || !c.Role.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "only admin can perform this action")
	}
	return p, nil
}
