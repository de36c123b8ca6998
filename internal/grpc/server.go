package grpcserver

import (
	"context"
	"log/slog"
	"net"
	"time"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/internal/config"
	"savingsTracker/repository"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// Deps bundles the stores and collaborators the services share.
type Deps struct {
	Credentials repository.CredentialRepositoryI
	Ledger      repository.LedgerRepositoryI
	Sessions    *auth.Sessions   // created when nil
	Receipts    ReceiptGenerator // optional
	Logger      *slog.Logger
	Now         func() time.Time // defaults to time.Now
}

// NewServer builds a gRPC server with AuthService, SavingsService, AdminService
// and the standard health service registered. Calls pass a logging interceptor
// first, then authentication; Register, Login and health checks need no token.
func NewServer(cfg *config.Config, deps Deps) (*grpc.Server, *health.Server) {
	if cfg == nil {
		panic("config is required")
	}
	if deps.Sessions == nil {
		deps.Sessions = auth.NewSessions()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		NewUnaryLoggingInterceptor(deps.Logger),
		auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, deps.Sessions,
			savingsv1.AuthService_Register_FullMethodName,
			savingsv1.AuthService_Login_FullMethodName,
			healthCheckMethod,
		),
	))

	savingsv1.RegisterAuthServiceServer(srv, &AuthServer{
		Credentials: deps.Credentials,
		Sessions:    deps.Sessions,
		Secret:      cfg.Auth.JWTSecret,
		TokenTTL:    cfg.Auth.TokenTTL,
		Logger:      deps.Logger,
	})
	savingsv1.RegisterSavingsServiceServer(srv, &SavingsServer{
		Ledger:   deps.Ledger,
		Receipts: deps.Receipts,
		Logger:   deps.Logger,
		Now:      deps.Now,
	})
	savingsv1.RegisterAdminServiceServer(srv, &AdminServer{
		Credentials: deps.Credentials,
		Ledger:      deps.Ledger,
		Logger:      deps.Logger,
	})

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// RefreshHealth probes both stores and publishes the result on hs.
func RefreshHealth(ctx context.Context, hs *health.Server, deps Deps) error {
	st := healthpb.HealthCheckResponse_SERVING
	err := deps.Credentials.HealthCheck(ctx)
	if err == nil {
		err = deps.Ledger.HealthCheck(ctx)
	}
	if err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", st)
	for _, name := range []string{
		savingsv1.AuthService_ServiceDesc.ServiceName,
		savingsv1.SavingsService_ServiceDesc.ServiceName,
		savingsv1.AdminService_ServiceDesc.ServiceName,
	} {
		hs.SetServingStatus(name, st)
	}
	return err
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, deps Deps) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv, hs := NewServer(cfg, deps)
	if err := RefreshHealth(context.Background(), hs, deps); err != nil && deps.Logger != nil {
		deps.Logger.Warn("storage health check failed", "err", err)
	}

	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
