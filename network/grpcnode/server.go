package grpcnode

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"blockref.dev/refstore/network"
)

// Server exposes a network.Client over the Node gRPC service.
type Server struct {
	UnimplementedNodeServer
	Node network.Client
}

func (s *Server) Price(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	cost, err := s.Node.Price(ctx, int(in.GetValue()))
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(cost), nil
}

func (s *Server) Balance(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	// The wrapped node is already bound to an account; the address argument
	// exists for multi-tenant servers and is ignored here.
	_ = in
	balance, err := s.Node.Balance(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(balance), nil
}

func (s *Server) Fund(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	receipt, err := s.Node.Fund(ctx, in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(receipt.ID), nil
}

func (s *Server) Upload(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	data, tags, err := decodeUpload(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed upload envelope")
	}
	receipt, err := s.Node.Upload(ctx, data, tags)
	if err != nil {
		return nil, mapErr(err)
	}
	b, err := encodeReceipt(receipt)
	if err != nil {
		return nil, status.Error(codes.Internal, "receipt encoding failed")
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Download(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	b, err := s.Node.Download(ctx, in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(b), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, network.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, network.ErrInvalidContentID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, network.ErrInsufficientFunds):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, network.ErrContentMismatch):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
