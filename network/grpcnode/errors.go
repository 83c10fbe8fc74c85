package grpcnode

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"blockref.dev/refstore/network"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return network.ErrNotFound
	case codes.InvalidArgument:
		return network.ErrInvalidContentID
	case codes.FailedPrecondition:
		// Server uses FailedPrecondition for an underfunded account.
		return network.ErrInsufficientFunds
	case codes.DataLoss:
		return network.ErrContentMismatch
	default:
		// Best-effort: if the server sent a known network error message, preserve it.
		switch st.Message() {
		case network.ErrNotFound.Error():
			return network.ErrNotFound
		case network.ErrInvalidContentID.Error():
			return network.ErrInvalidContentID
		case network.ErrInsufficientFunds.Error():
			return network.ErrInsufficientFunds
		case network.ErrContentMismatch.Error():
			return network.ErrContentMismatch
		default:
			return err
		}
	}
}
