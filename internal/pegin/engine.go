// Package pegin matches parent-chain deposits to claim scripts, builds peg-in
// inputs from them and independently verifies peg-in witnesses.
package pegin

import (
	"context"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/parent"
	"github.com/goodnatureofminers/pegforge/internal/parent/bitcoin"
	"github.com/goodnatureofminers/pegforge/internal/parent/signed"
)

// Engine is the peg-in builder and verifier of the configured parent chain.
type Engine interface {
	CreatePegInInput(ctx context.Context, tx *elements.Tx, idx int, claimScripts [][]byte, txData, proofData []byte, snap *chain.Snapshot) (*Claim, error)
	CheckHeader(proof parent.Proof) bool
	Verify(ctx context.Context, stack [][]byte, snap *chain.Snapshot, prevout wire.OutPoint, checkDepth bool) error
}

type engine[T parent.Tx, P parent.Proof] struct {
	*Builder[T, P]
	*Verifier[T, P]
}

// NewEngine returns the Engine for format.
func NewEngine[T parent.Tx, P parent.Proof](format parent.Format[T, P], depth DepthChecker) Engine {
	verifier := NewVerifier(format, depth)
	return &engine[T, P]{
		Builder:  NewBuilder(format, verifier),
		Verifier: verifier,
	}
}

// NewEngineForParams picks the parent format described by params.
func NewEngineForParams(params *chain.Params, depth DepthChecker) Engine {
	if params.ParentHasPow {
		return NewEngine[*bitcoin.Tx, *bitcoin.Proof](bitcoin.NewFormat(params.ParentPowLimit), depth)
	}
	return NewEngine[*signed.Tx, *signed.Proof](signed.NewFormat(params.ParentChallenge, params.ParentPeggedAsset), depth)
}
