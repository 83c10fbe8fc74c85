package grpcnode

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"blockref.dev/refstore/network"
)

// Client implements network.Client over the Node gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client NodeClient
	acct   string

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Account is the chain address sent on balance queries.
	Account string

	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewNodeClient(cc), acct: opts.Account}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

var _ network.Client = (*Client)(nil)

func (c *Client) Price(ctx context.Context, byteLength int) (string, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Price(ctx, wrapperspb.Int64(int64(byteLength)))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Balance(ctx context.Context) (string, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Balance(ctx, wrapperspb.String(c.acct))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Fund(ctx context.Context, atomicAmount string) (*network.FundReceipt, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Fund(ctx, wrapperspb.String(atomicAmount))
	if err != nil {
		return nil, mapRPC(err)
	}
	return &network.FundReceipt{ID: reply.GetValue()}, nil
}

func (c *Client) Upload(ctx context.Context, data []byte, tags []network.Tag) (*network.Receipt, error) {
	env, err := encodeUpload(data, tags)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Upload(ctx, wrapperspb.Bytes(env))
	if err != nil {
		return nil, mapRPC(err)
	}
	return decodeReceipt(reply.GetValue())
}

func (c *Client) Download(ctx context.Context, contentID string) ([]byte, error) {
	if contentID == "" {
		return nil, network.ErrInvalidContentID
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Download(ctx, wrapperspb.String(contentID))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
