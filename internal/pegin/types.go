package pegin

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// DepthChecker reports whether a parent block is buried deeply enough.
	DepthChecker interface {
		Confirmed(ctx context.Context, blockHash chainhash.Hash, minDepth int64) (bool, error)
	}
	HeaderClient interface {
		GetBlockHeaderVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error)
	}
)
