package grpcserver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/internal/auth"
	"savingsTracker/internal/receipt"
	"savingsTracker/models"
	"savingsTracker/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ReceiptGenerator renders a receipt for a deposit summary and returns its path.
type ReceiptGenerator interface {
	Generate(summary string) (string, error)
}

// SavingsServer implements savings.v1.SavingsService for both tiers.
// Every call is scoped to the caller's own records.
type SavingsServer struct {
	savingsv1.UnimplementedSavingsServiceServer
	Ledger   repository.LedgerRepositoryI
	Receipts ReceiptGenerator // optional
	Logger   *slog.Logger
	Now      func() time.Time
}

func (s *SavingsServer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Deposit records a deposit for the caller, stamped with the server clock.
func (s *SavingsServer) Deposit(ctx context.Context, req *savingsv1.DepositRequest) (*savingsv1.DepositResponse, error) {
	p, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "amount is required")
	}
	if err := models.ValidateAmount(req.Amount); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = models.NoteCash
	}
	if !models.IsKnownNote(note) {
		return nil, status.Errorf(codes.InvalidArgument, "note must be one of %q", models.KnownNotes())
	}

	stored, err := s.Ledger.Append(ctx, models.NewDeposit(p.Name, req.Amount, note, s.now()))
	if err != nil {
		return nil, toStatus(err, "append deposit")
	}
	s.Logger.Info("deposit recorded", "user", p.Name, "amount", stored.Amount, "note", stored.Note, "position", stored.Position)

	resp := &savingsv1.DepositResponse{
		Deposit: toProtoDeposit(*stored),
		Summary: receipt.Summary(p.Name, stored.Amount, stored.Note),
	}
	if s.Receipts != nil {
		// Receipts are decorative; the deposit already succeeded.
		path, err := s.Receipts.Generate(resp.Summary)
		if err != nil {
			s.Logger.Warn("receipt not written", "user", p.Name, "err", err)
		} else {
			resp.ReceiptPath = path
		}
	}
	return resp, nil
}

// GetBalance returns the caller's own total.
func (s *SavingsServer) GetBalance(ctx context.Context, _ *savingsv1.GetBalanceRequest) (*savingsv1.GetBalanceResponse, error) {
	p, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.Ledger.SumByUser(ctx, p.Name)
	if err != nil {
		return nil, toStatus(err, "sum deposits")
	}
	return &savingsv1.GetBalanceResponse{Username: p.Name, Total: total}, nil
}

// ListMyDeposits returns the caller's records in storage order with their ledger positions.
func (s *SavingsServer) ListMyDeposits(ctx context.Context, _ *savingsv1.ListMyDepositsRequest) (*savingsv1.ListMyDepositsResponse, error) {
	p, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	own, err := s.Ledger.ListByUser(ctx, p.Name)
	if err != nil {
		return nil, toStatus(err, "list deposits")
	}
	return &savingsv1.ListMyDepositsResponse{
		Deposits: toProtoDeposits(own),
		Total:    repository.SumDeposits(own),
	}, nil
}
