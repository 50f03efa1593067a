// Package signed is the format of a parent chain whose blocks are signed by a
// federation instead of mined.
package signed

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/merkle"
	"github.com/goodnatureofminers/pegforge/internal/parent"
)

var _ parent.Format[*Tx, *Proof] = (*Format)(nil)

// Tx is a parent-chain sidechain-format transaction.
type Tx struct {
	tx *elements.Tx
}

func NewTx(tx *elements.Tx) *Tx {
	return &Tx{tx: tx}
}

func (t *Tx) Tx() *elements.Tx { return t.tx }

func (t *Tx) TxHash() chainhash.Hash { return t.tx.TxHash() }

func (t *Tx) NumOutputs() int { return len(t.tx.TxOut) }

func (t *Tx) PkScript(i int) []byte { return t.tx.TxOut[i].PkScript }

func (t *Tx) StrippedBytes() []byte {
	var buf bytes.Buffer
	_ = t.tx.SerializeNoWitness(&buf)
	return buf.Bytes()
}

// Proof is a signed merkle block.
type Proof struct {
	block *elements.MerkleBlock
}

func NewProof(block *elements.MerkleBlock) *Proof {
	return &Proof{block: block}
}

func (p *Proof) Header() *elements.BlockHeader { return &p.block.Header }

func (p *Proof) BlockHash() chainhash.Hash { return p.block.Header.BlockHash() }

func (p *Proof) MerkleRoot() chainhash.Hash { return p.block.Header.MerkleRoot }

func (p *Proof) Tree() *merkle.PartialTree { return &p.block.Tree }

func (p *Proof) Bytes() []byte { return p.block.Bytes() }

// Format decodes signed-chain data and checks block signatures.
type Format struct {
	challenge   []byte
	peggedAsset chainhash.Hash
}

// NewFormat returns a Format accepting blocks signed for challenge whose
// peg-outs are denominated in peggedAsset.
func NewFormat(challenge []byte, peggedAsset chainhash.Hash) *Format {
	return &Format{challenge: challenge, peggedAsset: peggedAsset}
}

func (f *Format) DecodeTx(r *bytes.Reader) (*Tx, error) {
	tx := &elements.Tx{}
	if err := tx.Deserialize(r); err != nil {
		return nil, fmt.Errorf("decode parent tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (f *Format) DecodeProof(b []byte) (*Proof, error) {
	r := bytes.NewReader(b)
	block := &elements.MerkleBlock{}
	if err := block.Deserialize(r); err != nil {
		return nil, fmt.Errorf("decode merkle block: %w", err)
	}
	if r.Len() != 0 {
		return nil, parent.ErrTrailingData
	}
	return &Proof{block: block}, nil
}

// CheckHeader verifies the header commits to the configured challenge and its
// solution satisfies it. Supported challenges are OP_TRUE and bare m-of-n
// CHECKMULTISIG.
func (f *Format) CheckHeader(p *Proof) bool {
	h := &p.block.Header
	if !bytes.Equal(h.Challenge, f.challenge) {
		return false
	}
	if len(h.Challenge) == 1 && h.Challenge[0] == txscript.OP_TRUE {
		return len(h.Solution) == 0
	}
	hash := h.BlockHash()
	return checkMultisig(h.Challenge, h.Solution, hash[:])
}

func (f *Format) Amount(tx *Tx, i int) (int64, bool) {
	if i < 0 || i >= len(tx.tx.TxOut) {
		return 0, false
	}
	out := tx.tx.TxOut[i]
	asset, ok := out.Asset.Explicit()
	if !ok || asset != f.peggedAsset {
		return 0, false
	}
	return out.Value.Explicit()
}

func checkMultisig(challenge, solution, hash []byte) bool {
	class, addrs, required, err := txscript.ExtractPkScriptAddrs(challenge, &chaincfg.MainNetParams)
	if err != nil || class != txscript.MultiSigTy {
		return false
	}
	keys := make([]*btcec.PublicKey, 0, len(addrs))
	for _, a := range addrs {
		pk, ok := a.(*btcutil.AddressPubKey)
		if !ok {
			return false
		}
		keys = append(keys, pk.PubKey())
	}

	sigs, ok := parseSolution(solution)
	if !ok || len(sigs) != required {
		return false
	}

	// Signatures must appear in key order; each key is used at most once.
	k := 0
	for _, sig := range sigs {
		for k < len(keys) && !sig.Verify(hash, keys[k]) {
			k++
		}
		if k == len(keys) {
			return false
		}
		k++
	}
	return true
}

// parseSolution reads OP_0 followed by DER signatures, each optionally
// followed by a sighash byte.
func parseSolution(solution []byte) ([]*ecdsa.Signature, bool) {
	tokenizer := txscript.MakeScriptTokenizer(0, solution)
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_0 {
		return nil, false
	}
	var sigs []*ecdsa.Signature
	for tokenizer.Next() {
		data := tokenizer.Data()
		if len(data) == 0 {
			return nil, false
		}
		sig, err := ecdsa.ParseDERSignature(data)
		if err != nil {
			sig, err = ecdsa.ParseDERSignature(data[:len(data)-1])
		}
		if err != nil {
			return nil, false
		}
		sigs = append(sigs, sig)
	}
	if tokenizer.Err() != nil {
		return nil, false
	}
	return sigs, true
}
