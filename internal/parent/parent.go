// Package parent describes the capabilities the peg-in engine needs from the
// parent chain's transaction and proof formats.
package parent

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/pegforge/internal/merkle"
)

// ErrTrailingData is returned when a proof does not span its whole buffer.
var ErrTrailingData = errors.New("trailing data after merkle block")

// Tx is a decoded parent-chain transaction.
type Tx interface {
	TxHash() chainhash.Hash
	NumOutputs() int
	PkScript(i int) []byte
	// StrippedBytes serializes the transaction without witness data.
	StrippedBytes() []byte
}

// Proof is a merkle block proving inclusion of parent transactions.
type Proof interface {
	BlockHash() chainhash.Hash
	// MerkleRoot is the root committed to by the header.
	MerkleRoot() chainhash.Hash
	Tree() *merkle.PartialTree
	Bytes() []byte
}

// Format decodes one parent chain's data and judges its headers.
type Format[T Tx, P Proof] interface {
	// DecodeTx reads one transaction from r, leaving any trailing bytes unread.
	DecodeTx(r *bytes.Reader) (T, error)
	// DecodeProof decodes a proof that must span all of b.
	DecodeProof(b []byte) (P, error)
	// CheckHeader reports whether the proof's header is acceptable: enough
	// work for a proof-of-work parent, a valid signature for a signed one.
	CheckHeader(p P) bool
	// Amount returns the explicit pegged amount of output i, false when the
	// output cannot be pegged in.
	Amount(tx T, i int) (int64, bool)
}
