package pegin

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/fedpeg"
	"github.com/goodnatureofminers/pegforge/internal/parent"
)

// Verifier re-validates peg-in witnesses from scratch.
type Verifier[T parent.Tx, P parent.Proof] struct {
	format parent.Format[T, P]
	depth  DepthChecker
}

func NewVerifier[T parent.Tx, P parent.Proof](format parent.Format[T, P], depth DepthChecker) *Verifier[T, P] {
	return &Verifier[T, P]{format: format, depth: depth}
}

// Verify checks that stack is a valid peg-in witness for prevout. The
// confirmation depth of the parent block is only checked when checkDepth is
// set; a shallow block then fails with ErrNeedsConfirmations.
func (v *Verifier[T, P]) Verify(ctx context.Context, stack [][]byte, snap *chain.Snapshot, prevout wire.OutPoint, checkDepth bool) error {
	w, err := ParseWitness(stack)
	if err != nil {
		return err
	}

	proof, err := v.format.DecodeProof(w.ProofData)
	if err != nil {
		return ErrMerkleBlock
	}
	root, matches, _, err := proof.Tree().ExtractMatches()
	if err != nil || root != proof.MerkleRoot() || len(matches) != 1 {
		return ErrMerkleBlock
	}

	if !v.format.CheckHeader(proof) {
		return ErrParentHeader
	}

	if !v.checkTx(w, prevout, snap.Fedpegs) {
		return ErrPeginTx
	}

	if prevout.Hash != matches[0] {
		return ErrProofMismatch
	}
	if w.GenesisHash != snap.Params.ParentGenesisHash {
		return ErrGenesisMismatch
	}
	if w.Asset != snap.Params.PeggedAsset {
		return ErrAssetMismatch
	}

	if checkDepth {
		ok, err := v.depth.Confirmed(ctx, proof.BlockHash(), snap.Params.PeginMinDepth)
		if err != nil {
			return fmt.Errorf("%w (%v)", ErrNeedsConfirmations, err)
		}
		if !ok {
			return ErrNeedsConfirmations
		}
	}
	return nil
}

func (v *Verifier[T, P]) checkTx(w *Witness, prevout wire.OutPoint, fedpegs []fedpeg.Config) bool {
	r := bytes.NewReader(w.TxData)
	tx, err := v.format.DecodeTx(r)
	if err != nil || r.Len() != 0 {
		return false
	}
	if tx.TxHash() != prevout.Hash {
		return false
	}
	if int64(prevout.Index) >= int64(tx.NumOutputs()) {
		return false
	}
	amount, ok := v.format.Amount(tx, int(prevout.Index))
	if !ok || amount != w.Value {
		return false
	}
	pkScript := tx.PkScript(int(prevout.Index))
	for _, cfg := range fedpegs {
		dest, err := cfg.Destination(w.ClaimScript)
		if err == nil && bytes.Equal(pkScript, dest) {
			return true
		}
	}
	return false
}
