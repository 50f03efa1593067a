package pegin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RPCDepthChecker asks a parent node for the confirmations of a block.
type RPCDepthChecker struct {
	client HeaderClient
}

func NewRPCDepthChecker(client HeaderClient) *RPCDepthChecker {
	return &RPCDepthChecker{client: client}
}

func (c *RPCDepthChecker) Confirmed(ctx context.Context, blockHash chainhash.Hash, minDepth int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	header, err := c.client.GetBlockHeaderVerbose(&blockHash)
	if err != nil {
		return false, fmt.Errorf("get parent block header %s: %w", blockHash, err)
	}
	return header.Confirmations >= minDepth, nil
}

// AlwaysConfirmed skips depth checks, for deployments that do not validate
// peg-ins against a parent node.
type AlwaysConfirmed struct{}

func (AlwaysConfirmed) Confirmed(context.Context, chainhash.Hash, int64) (bool, error) {
	return true, nil
}
