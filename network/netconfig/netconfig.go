// Package netconfig provides config-driven selection of a storage-network
// backend.
//
// Example:
//
//	backend = "grpc"
//	grpc_target = "127.0.0.1:7440"
//	account = "0x12345678901234567890123456789012345678ab"
//
//	[local]
//	dir = "/tmp/blockref-cas"
//	price_per_byte = "1000"
//	balance = "1000000000000000000"
package netconfig

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"blockref.dev/refstore/cas"
	"blockref.dev/refstore/network"
	"blockref.dev/refstore/network/gateway"
	"blockref.dev/refstore/network/grpcnode"
	"blockref.dev/refstore/network/localnode"
)

// Config describes how to open a storage-network client.
type Config struct {
	// Backend selects the transport: "local" (in-process node), "grpc"
	// (remote node over gRPC), or "http" (node + public gateway over HTTP).
	Backend string `toml:"backend"`

	// Account is the chain address used for balance queries.
	Account string `toml:"account"`

	// AppName/AppVersion identify this application on upload tags.
	AppName    string `toml:"app_name"`
	AppVersion string `toml:"app_version"`

	// GatewayURL is the public gateway base used for retrieval links.
	GatewayURL string `toml:"gateway_url"`

	// NodeURL is the HTTP node base URL (backend = "http").
	NodeURL string `toml:"node_url"`

	// GRPCTarget is the node address (backend = "grpc").
	GRPCTarget string `toml:"grpc_target"`

	Local LocalConfig `toml:"local"`
}

// LocalConfig configures the in-process node (backend = "local").
type LocalConfig struct {
	// Dir is a filesystem blob directory. Empty means in-memory.
	Dir string `toml:"dir"`

	PricePerByte string `toml:"price_per_byte"`
	Balance      string `toml:"balance"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		Backend:    "local",
		AppName:    "BlockRef",
		AppVersion: "1.0.0",
		GatewayURL: gateway.DefaultGatewayURL,
	}
}

// LoadFile reads a TOML config, applying defaults for absent keys.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("netconfig: empty config path")
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case "local":
		return nil
	case "grpc":
		if c.GRPCTarget == "" {
			return errors.New("netconfig: grpc_target is required for backend \"grpc\"")
		}
		return nil
	case "http":
		if c.NodeURL == "" {
			return errors.New("netconfig: node_url is required for backend \"http\"")
		}
		return nil
	default:
		return fmt.Errorf("netconfig: unknown backend %q", c.Backend)
	}
}

// Open opens a network client per config. The returned closer releases any
// held connections and may be nil-safe to call more than once.
func (c Config) Open() (network.Client, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	switch c.Backend {
	case "local":
		var store cas.Store
		if c.Local.Dir != "" {
			dir, err := cas.NewDir(c.Local.Dir)
			if err != nil {
				return nil, nil, err
			}
			store = dir
		}
		node, err := localnode.New(localnode.Options{
			Store:        store,
			PricePerByte: c.Local.PricePerByte,
			Balance:      c.Local.Balance,
		})
		if err != nil {
			return nil, nil, err
		}
		return node, func() error { return nil }, nil

	case "grpc":
		client, err := grpcnode.Dial(c.GRPCTarget, grpcnode.DialOptions{Account: c.Account})
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil

	case "http":
		client := gateway.New(gateway.Options{
			NodeURL:    c.NodeURL,
			GatewayURL: c.GatewayURL,
			Account:    c.Account,
		})
		return client, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("netconfig: unknown backend %q", c.Backend)
}
