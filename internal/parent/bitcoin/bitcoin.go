// Package bitcoin is the proof-of-work parent chain format.
package bitcoin

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/merkle"
	"github.com/goodnatureofminers/pegforge/internal/parent"
)

var _ parent.Format[*Tx, *Proof] = (*Format)(nil)

// Tx is a parent-chain bitcoin transaction.
type Tx struct {
	msg *wire.MsgTx
}

// NewTx wraps msg.
func NewTx(msg *wire.MsgTx) *Tx {
	return &Tx{msg: msg}
}

func (t *Tx) MsgTx() *wire.MsgTx { return t.msg }

func (t *Tx) TxHash() chainhash.Hash { return t.msg.TxHash() }

func (t *Tx) NumOutputs() int { return len(t.msg.TxOut) }

func (t *Tx) PkScript(i int) []byte { return t.msg.TxOut[i].PkScript }

func (t *Tx) StrippedBytes() []byte {
	var buf bytes.Buffer
	buf.Grow(t.msg.SerializeSizeStripped())
	_ = t.msg.SerializeNoWitness(&buf)
	return buf.Bytes()
}

// Proof is a bitcoin merkle block.
type Proof struct {
	msg  *wire.MsgMerkleBlock
	tree merkle.PartialTree
}

// NewProof wraps msg.
func NewProof(msg *wire.MsgMerkleBlock) *Proof {
	tree := merkle.PartialTree{
		Transactions: msg.Transactions,
		Hashes:       make([]chainhash.Hash, len(msg.Hashes)),
		Flags:        msg.Flags,
	}
	for i, h := range msg.Hashes {
		tree.Hashes[i] = *h
	}
	return &Proof{msg: msg, tree: tree}
}

func (p *Proof) Header() *wire.BlockHeader { return &p.msg.Header }

func (p *Proof) BlockHash() chainhash.Hash { return p.msg.Header.BlockHash() }

func (p *Proof) MerkleRoot() chainhash.Hash { return p.msg.Header.MerkleRoot }

func (p *Proof) Tree() *merkle.PartialTree { return &p.tree }

func (p *Proof) Bytes() []byte {
	var buf bytes.Buffer
	_ = p.msg.BtcEncode(&buf, wire.ProtocolVersion, wire.BaseEncoding)
	return buf.Bytes()
}

// Format decodes bitcoin data and checks header proof of work.
type Format struct {
	powLimit *big.Int
}

// NewFormat returns a Format accepting targets up to powLimit.
func NewFormat(powLimit *big.Int) *Format {
	return &Format{powLimit: powLimit}
}

func (f *Format) DecodeTx(r *bytes.Reader) (*Tx, error) {
	msg := &wire.MsgTx{}
	if err := msg.Deserialize(r); err != nil {
		return nil, fmt.Errorf("decode bitcoin tx: %w", err)
	}
	return &Tx{msg: msg}, nil
}

func (f *Format) DecodeProof(b []byte) (*Proof, error) {
	r := bytes.NewReader(b)
	msg := &wire.MsgMerkleBlock{}
	if err := msg.BtcDecode(r, wire.ProtocolVersion, wire.BaseEncoding); err != nil {
		return nil, fmt.Errorf("decode merkle block: %w", err)
	}
	if r.Len() != 0 {
		return nil, parent.ErrTrailingData
	}
	return NewProof(msg), nil
}

// CheckHeader verifies the header hash meets its own target and the target
// is within the configured limit.
func (f *Format) CheckHeader(p *Proof) bool {
	target := blockchain.CompactToBig(p.msg.Header.Bits)
	if target.Sign() <= 0 || target.Cmp(f.powLimit) > 0 {
		return false
	}
	hash := p.msg.Header.BlockHash()
	return blockchain.HashToBig(&hash).Cmp(target) <= 0
}

func (f *Format) Amount(tx *Tx, i int) (int64, bool) {
	if i < 0 || i >= len(tx.msg.TxOut) {
		return 0, false
	}
	return tx.msg.TxOut[i].Value, true
}
