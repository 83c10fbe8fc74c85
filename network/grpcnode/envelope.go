package grpcnode

import (
	"encoding/json"

	"blockref.dev/refstore/network"
)

// uploadEnvelope is the JSON payload of the Upload RPC. Wrapper types cannot
// carry the (data, ordered tags) pair, and this keeps the service free of a
// codegen toolchain.
type uploadEnvelope struct {
	Data []byte        `json:"data"`
	Tags []network.Tag `json:"tags"`
}

func encodeUpload(data []byte, tags []network.Tag) ([]byte, error) {
	return json.Marshal(uploadEnvelope{Data: data, Tags: tags})
}

func decodeUpload(b []byte) ([]byte, []network.Tag, error) {
	var env uploadEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, nil, err
	}
	return env.Data, env.Tags, nil
}

func encodeReceipt(r *network.Receipt) ([]byte, error) {
	return json.Marshal(r)
}

func decodeReceipt(b []byte) (*network.Receipt, error) {
	var r network.Receipt
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
