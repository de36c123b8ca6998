package grpcserver

import (
	"errors"

	"savingsTracker/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps store errors onto gRPC codes. Errors that already carry a
// status (from the auth gate) pass through unchanged.
func toStatus(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrAuthenticationFailed):
		return status.Error(codes.Unauthenticated, "invalid username or password")
	case errors.Is(err, repository.ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, "username already taken")
	case errors.Is(err, repository.ErrPositionOutOfRange):
		return status.Error(codes.OutOfRange, "no deposit at that position")
	case errors.Is(err, repository.ErrNoDataToClear):
		return status.Error(codes.FailedPrecondition, "no data to clear")
	case errors.Is(err, repository.ErrStaleDeposit):
		return status.Error(codes.FailedPrecondition, "deposit at that position has changed")
	case errors.Is(err, repository.ErrStorageUnavailable):
		return status.Errorf(codes.Unavailable, "%s: %v", op, err)
	}
	return status.Errorf(codes.Internal, "%s: %v", op, err)
}
