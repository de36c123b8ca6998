package grpcserver

import (
	"context"
	"log/slog"
	"strings"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/models"
	"savingsTracker/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExportFileName is the suggested name of an exported ledger.
const ExportFileName = "data_tabungan.csv"

// AdminServer implements savings.v1.AdminService.
type AdminServer struct {
	savingsv1.UnimplementedAdminServiceServer
	Credentials repository.CredentialRepositoryI
	Ledger      repository.LedgerRepositoryI
	Logger      *slog.Logger
}

// ListDeposits lists every deposit in storage order, optionally filtered.
func (s *AdminServer) ListDeposits(ctx context.Context, req *savingsv1.ListDepositsRequest) (*savingsv1.ListDepositsResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Credentials); err != nil {
		return nil, err
	}
	if req == nil {
		req = &savingsv1.ListDepositsRequest{}
	}
	all, err := s.Ledger.Load(ctx)
	if err != nil {
		return nil, toStatus(err, "load ledger")
	}
	filter := repository.LedgerFilter{User: strings.TrimSpace(req.User), From: req.From, To: req.To}
	if !filter.IsZero() {
		all = repository.FilterDeposits(all, filter)
	}
	return &savingsv1.ListDepositsResponse{
		Deposits: toProtoDeposits(all),
		Total:    repository.SumDeposits(all),
	}, nil
}

// GetTotal returns the sum of every deposit.
func (s *AdminServer) GetTotal(ctx context.Context, _ *savingsv1.GetTotalRequest) (*savingsv1.GetTotalResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Credentials); err != nil {
		return nil, err
	}
	total, err := s.Ledger.SumAll(ctx)
	if err != nil {
		return nil, toStatus(err, "sum ledger")
	}
	return &savingsv1.GetTotalResponse{Total: total}, nil
}

// DeleteDeposit removes the record at a ledger position. When Expected is set
// the record there must still match it.
func (s *AdminServer) DeleteDeposit(ctx context.Context, req *savingsv1.DeleteDepositRequest) (*savingsv1.DeleteDepositResponse, error) {
	p, err := auth.RequireAdmin(ctx, s.Credentials)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "position is required")
	}
	if err := s.Ledger.DeleteAt(ctx, int(req.Position), fromProtoDeposit(req.Expected)); err != nil {
		return nil, toStatus(err, "delete deposit")
	}
	s.Logger.Info("deposit deleted", "admin", p.Name, "position", req.Position)
	total, err := s.Ledger.SumAll(ctx)
	if err != nil {
		return nil, toStatus(err, "sum ledger")
	}
	return &savingsv1.DeleteDepositResponse{Total: total}, nil
}

// ClearLedger removes the whole ledger.
func (s *AdminServer) ClearLedger(ctx context.Context, _ *savingsv1.ClearLedgerRequest) (*savingsv1.ClearLedgerResponse, error) {
	p, err := auth.RequireAdmin(ctx, s.Credentials)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.Clear(ctx); err != nil {
		return nil, toStatus(err, "clear ledger")
	}
	s.Logger.Warn("ledger cleared", "admin", p.Name)
	return &savingsv1.ClearLedgerResponse{}, nil
}

// ExportLedger returns the ledger as CSV.
func (s *AdminServer) ExportLedger(ctx context.Context, _ *savingsv1.ExportLedgerRequest) (*savingsv1.ExportLedgerResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Credentials); err != nil {
		return nil, err
	}
	data, err := s.Ledger.ExportCSV(ctx)
	if err != nil {
		return nil, toStatus(err, "export ledger")
	}
	return &savingsv1.ExportLedgerResponse{
		FileName:    ExportFileName,
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

// ListUsers returns every credential record, passwords included.
func (s *AdminServer) ListUsers(ctx context.Context, _ *savingsv1.ListUsersRequest) (*savingsv1.ListUsersResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Credentials); err != nil {
		return nil, err
	}
	creds, err := s.Credentials.List(ctx)
	if err != nil {
		return nil, toStatus(err, "list users")
	}
	out := make([]*savingsv1.User, 0, len(creds))
	for i := range creds {
		out = append(out, toProtoUser(&creds[i], true))
	}
	return &savingsv1.ListUsersResponse{Users: out}, nil
}

// CreateUser registers an account of either role.
func (s *AdminServer) CreateUser(ctx context.Context, req *savingsv1.CreateUserRequest) (*savingsv1.CreateUserResponse, error) {
	p, err := auth.RequireAdmin(ctx, s.Credentials)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &savingsv1.CreateUserRequest{}
	}
	username, password, err := credentialsFromReq(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown role %q", req.Role)
	}
	c, err := s.Credentials.Register(ctx, username, password, role)
	if err != nil {
		return nil, toStatus(err, "create user")
	}
	s.Logger.Info("account created", "admin", p.Name, "user", c.Username, "role", c.Role)
	return &savingsv1.CreateUserResponse{User: toProtoUser(c, false)}, nil
}
