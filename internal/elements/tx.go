// Package elements models sidechain transactions and signed block headers in
// their asset-tagged wire format.
package elements

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// OutPointIssuanceFlag marks an input carrying an asset issuance.
	OutPointIssuanceFlag = uint32(1) << 31
	// OutPointPeginFlag marks a peg-in input.
	OutPointPeginFlag = uint32(1) << 30
	// OutPointIndexMask extracts the output index from a flagged index.
	OutPointIndexMask = uint32(0x3fffffff)

	SequenceFinal = uint32(0xffffffff)
	// MaxBIP125RBFSequence is the highest sequence number that signals
	// opt-in replaceability.
	MaxBIP125RBFSequence = uint32(0xfffffffd)
)

// AssetIssuance is the issuance payload attached to an input.
type AssetIssuance struct {
	BlindingNonce chainhash.Hash
	Entropy       chainhash.Hash
	Amount        ConfidentialValue
	InflationKeys ConfidentialValue
}

// TxInWitness is the per-input witness data.
type TxInWitness struct {
	IssuanceRangeProof  []byte
	InflationRangeProof []byte
	ScriptWitness       [][]byte
	PeginWitness        [][]byte
}

// IsNull reports whether the witness carries no data at all.
func (w *TxInWitness) IsNull() bool {
	return len(w.IssuanceRangeProof) == 0 &&
		len(w.InflationRangeProof) == 0 &&
		len(w.ScriptWitness) == 0 &&
		len(w.PeginWitness) == 0
}

// TxIn is a transaction input together with its witness, so inputs and
// witnesses share one index space.
type TxIn struct {
	PreviousOutPoint wire.OutPoint
	SignatureScript  []byte
	Sequence         uint32
	IsPegin          bool
	Issuance         *AssetIssuance
	Witness          TxInWitness
}

// NewTxIn creates an input spending prevOut with the given sequence.
func NewTxIn(prevOut wire.OutPoint, sequence uint32) *TxIn {
	return &TxIn{PreviousOutPoint: prevOut, Sequence: sequence}
}

// TxOutWitness is the per-output witness data.
type TxOutWitness struct {
	SurjectionProof []byte
	RangeProof      []byte
}

func (w *TxOutWitness) IsNull() bool {
	return len(w.SurjectionProof) == 0 && len(w.RangeProof) == 0
}

// TxOut is an asset-tagged transaction output.
type TxOut struct {
	Asset    ConfidentialAsset
	Value    ConfidentialValue
	Nonce    ConfidentialNonce
	PkScript []byte
	Witness  TxOutWitness
}

// NewTxOut creates an explicit output.
func NewTxOut(asset chainhash.Hash, amount int64, pkScript []byte) *TxOut {
	return &TxOut{
		Asset:    ExplicitAsset(asset),
		Value:    ExplicitValue(amount),
		PkScript: pkScript,
	}
}

func (o *TxOut) String() string {
	script := hex.EncodeToString(o.PkScript)
	if len(script) > 30 {
		script = script[:30]
	}
	return fmt.Sprintf("TxOut(asset=%s, value=%s, pkScript=%s)", o.Asset, o.Value, script)
}

// Tx is a sidechain transaction.
type Tx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewTx returns an empty version 2 transaction.
func NewTx() *Tx {
	return &Tx{Version: 2}
}

// EnsureInput grows the input list so that idx exists and returns that input.
// The list never shrinks; new slots are empty inputs.
func (tx *Tx) EnsureInput(idx int) *TxIn {
	for len(tx.TxIn) <= idx {
		tx.TxIn = append(tx.TxIn, &TxIn{
			PreviousOutPoint: wire.OutPoint{Index: wire.MaxPrevOutIndex},
			Sequence:         SequenceFinal,
		})
	}
	return tx.TxIn[idx]
}

// AddTxIn appends an input.
func (tx *Tx) AddTxIn(in *TxIn) {
	tx.TxIn = append(tx.TxIn, in)
}

// AddTxOut appends an output.
func (tx *Tx) AddTxOut(out *TxOut) {
	tx.TxOut = append(tx.TxOut, out)
}

// HasWitness reports whether any input or output carries witness data.
func (tx *Tx) HasWitness() bool {
	for _, in := range tx.TxIn {
		if !in.Witness.IsNull() {
			return true
		}
	}
	for _, out := range tx.TxOut {
		if !out.Witness.IsNull() {
			return true
		}
	}
	return false
}

// SignalsOptInRBF reports whether any input signals replaceability.
func (tx *Tx) SignalsOptInRBF() bool {
	for _, in := range tx.TxIn {
		if in.Sequence <= MaxBIP125RBFSequence {
			return true
		}
	}
	return false
}

// TxHash is the double SHA-256 of the serialization without witness.
func (tx *Tx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = tx.SerializeNoWitness(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Bytes serializes tx including witness data.
func (tx *Tx) Bytes() []byte {
	var buf bytes.Buffer
	_ = tx.Serialize(&buf)
	return buf.Bytes()
}

// Copy returns a deep copy of tx.
func (tx *Tx) Copy() *Tx {
	out, err := DeserializeStrict(tx.Bytes())
	if err != nil {
		return nil
	}
	return out
}
