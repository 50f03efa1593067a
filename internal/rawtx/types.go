package rawtx

import (
	"context"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/parent"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// PegInBuilder writes peg-in inputs and checks the parent header of
	// their proofs. pegin.Engine satisfies it.
	PegInBuilder interface {
		CreatePegInInput(ctx context.Context, tx *elements.Tx, idx int, claimScripts [][]byte, txData, proofData []byte, snap *chain.Snapshot) (*pegin.Claim, error)
		CheckHeader(proof parent.Proof) bool
	}
)
