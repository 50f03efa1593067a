package pegin

import (
	"bytes"
	"context"
	"errors"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/parent"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

// Claim describes a peg-in input written by CreatePegInInput.
type Claim struct {
	ParentTx    parent.Tx
	Proof       parent.Proof
	OutputIndex uint32
	ClaimScript []byte
	Value       int64
	Witness     *Witness
}

// Builder turns parent-chain deposits into peg-in inputs.
type Builder[T parent.Tx, P parent.Proof] struct {
	format   parent.Format[T, P]
	verifier *Verifier[T, P]
}

func NewBuilder[T parent.Tx, P parent.Proof](format parent.Format[T, P], verifier *Verifier[T, P]) *Builder[T, P] {
	return &Builder[T, P]{format: format, verifier: verifier}
}

// CreatePegInInput replaces input idx of tx (growing the input list when
// needed) with a peg-in of the deposit in txData proven by proofData. The
// first of claimScripts that matches a deposit output is used.
func (b *Builder[T, P]) CreatePegInInput(
	ctx context.Context,
	tx *elements.Tx,
	idx int,
	claimScripts [][]byte,
	txData, proofData []byte,
	snap *chain.Snapshot,
) (*Claim, error) {
	if idx < len(tx.TxIn) && (len(tx.TxIn[idx].SignatureScript) != 0 || !tx.TxIn[idx].Witness.IsNull()) {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Attempting to add a peg-in to an input that already has a scriptSig or witness")
	}

	parentTx, err := b.format.DecodeTx(bytes.NewReader(txData))
	if err != nil {
		return nil, rpcerr.New(rpcerr.Type, "The included bitcoinTx is malformed. Are you sure that is the whole string?")
	}

	proof, err := b.format.DecodeProof(proofData)
	if errors.Is(err, parent.ErrTrailingData) {
		return nil, rpcerr.New(rpcerr.InvalidProof, "Invalid tx out proof")
	}
	if err != nil {
		return nil, rpcerr.New(rpcerr.InvalidProof, "The included txoutproof is malformed. Are you sure that is the whole string?")
	}

	root, matches, _, err := proof.Tree().ExtractMatches()
	if err != nil || root != proof.MerkleRoot() {
		return nil, rpcerr.New(rpcerr.InvalidProof, "Invalid tx out proof")
	}
	if len(matches) != 1 || matches[0] != parentTx.TxHash() {
		return nil, rpcerr.New(rpcerr.InvalidProof, "The txoutproof must contain bitcoinTx and only bitcoinTx")
	}

	nOut, claimScript := MatchClaimScripts(parentTx, claimScripts, snap.Fedpegs)
	if nOut == parentTx.NumOutputs() {
		if distinct(claimScripts) == 1 {
			return nil, rpcerr.New(rpcerr.NotFound, "Given claim_script does not match the given Bitcoin transaction.")
		}
		return nil, rpcerr.New(rpcerr.NotFound, "Failed to find output in bitcoinTx to the mainchain_address from getpeginaddress")
	}

	if version, _, ok := script.WitnessProgram(claimScript); !ok || version != 0 {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Given or recovered script is not a v0 witness program.")
	}

	value, ok := b.format.Amount(parentTx, nOut)
	if !ok {
		return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Amounts to pegin must be explicit and asset must be %s", snap.Params.ParentPeggedAsset)
	}

	in := tx.EnsureInput(idx)
	*in = elements.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: matches[0], Index: uint32(nOut)},
		Sequence:         elements.SequenceFinal,
	}

	witness := &Witness{
		Value:       value,
		Asset:       snap.Params.PeggedAsset,
		GenesisHash: snap.Params.ParentGenesisHash,
		ClaimScript: cloneBytes(claimScript),
		TxData:      parentTx.StrippedBytes(),
		ProofData:   proof.Bytes(),
	}
	stack := witness.Stack()
	if err := b.verifier.Verify(ctx, stack, snap, in.PreviousOutPoint, false); err != nil {
		return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Constructed peg-in witness is invalid: %s", err)
	}

	in.IsPegin = true
	in.Witness = elements.TxInWitness{PeginWitness: stack}

	return &Claim{
		ParentTx:    parentTx,
		Proof:       proof,
		OutputIndex: uint32(nOut),
		ClaimScript: witness.ClaimScript,
		Value:       value,
		Witness:     witness,
	}, nil
}

// CheckHeader applies the parent header rule to a proof produced by this
// builder's format.
func (b *Builder[T, P]) CheckHeader(proof parent.Proof) bool {
	p, ok := proof.(P)
	if !ok {
		return false
	}
	return b.format.CheckHeader(p)
}
