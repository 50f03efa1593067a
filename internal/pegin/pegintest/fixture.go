// Package pegintest builds peg-in deposits and proofs for tests.
package pegintest

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/pegforge/internal/address"
	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/fedpeg"
	"github.com/goodnatureofminers/pegforge/internal/merkle"
	"github.com/goodnatureofminers/pegforge/internal/parent/bitcoin"
)

var (
	PolicyAsset       = chainhash.Hash{0x01, 0x02, 0x03}
	PeggedAsset       = chainhash.Hash{0x0b, 0x7c}
	ParentPeggedAsset = chainhash.Hash{0x5e}
)

// Key returns a deterministic private key.
func Key(seed byte) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	return priv
}

// Multisig returns a bare m-of-n CHECKMULTISIG script.
func Multisig(t testing.TB, required int, keys ...*btcec.PrivateKey) []byte {
	t.Helper()
	b := txscript.NewScriptBuilder().AddInt64(int64(required))
	for _, k := range keys {
		b.AddData(k.PubKey().SerializeCompressed())
	}
	out, err := b.AddInt64(int64(len(keys))).AddOp(txscript.OP_CHECKMULTISIG).Script()
	require.NoError(t, err)
	return out
}

// ClaimScript returns a P2WPKH claim script for the key with seed.
func ClaimScript(seed byte) []byte {
	hash := btcutil.Hash160(Key(seed).PubKey().SerializeCompressed())
	return append([]byte{txscript.OP_0, txscript.OP_DATA_20}, hash...)
}

// Fixture is a parent-chain deposit together with everything needed to claim it.
type Fixture struct {
	Params         *chain.Params
	Snapshot       *chain.Snapshot
	Fedpeg         fedpeg.Config
	ClaimScript    []byte
	TxID           chainhash.Hash
	TxData         []byte
	// StrippedTxData is TxData without witness, as carried in the witness.
	StrippedTxData []byte
	ProofData      []byte
	BlockHash      chainhash.Hash
	OutputIndex    uint32
	Value          int64
}

// Bitcoin builds a deposit of value on a proof-of-work parent chain.
func Bitcoin(t testing.TB, value int64) *Fixture {
	t.Helper()

	cfg := fedpeg.NewLegacyConfig(Multisig(t, 2, Key(1), Key(2)))
	claim := ClaimScript(9)
	dest, err := cfg.Destination(claim)
	require.NoError(t, err)

	deposit := wire.NewMsgTx(2)
	deposit.AddTxIn(wire.NewTxIn(&wire.OutPoint{Hash: chainhash.Hash{0x77}, Index: 3}, nil, [][]byte{{0x30, 0x01}, {0x02}}))
	deposit.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))
	deposit.AddTxOut(wire.NewTxOut(value, dest))

	filler := wire.NewMsgTx(1)
	filler.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: wire.MaxPrevOutIndex}, []byte{0x01, 0x65}, nil))
	filler.AddTxOut(wire.NewTxOut(5_000_000_000, []byte{txscript.OP_TRUE}))

	msg := MineMerkleBlock(t, []*wire.MsgTx{filler, deposit}, 1)
	var txData, stripped bytes.Buffer
	require.NoError(t, deposit.Serialize(&txData))
	require.NoError(t, deposit.SerializeNoWitness(&stripped))

	params := &chain.Params{
		Network:           address.ElementsRegtest,
		PolicyAsset:       PolicyAsset,
		PeggedAsset:       PeggedAsset,
		ParentGenesisHash: *chaincfg.RegressionNetParams.GenesisHash,
		ParentHasPow:      true,
		ParentPowLimit:    chaincfg.RegressionNetParams.PowLimit,
		PeginMinDepth:     10,
	}
	return &Fixture{
		Params:         params,
		Snapshot:       &chain.Snapshot{Params: params, Tip: 100, Fedpegs: []fedpeg.Config{cfg}},
		Fedpeg:         cfg,
		ClaimScript:    claim,
		TxID:           deposit.TxHash(),
		TxData:         txData.Bytes(),
		StrippedTxData: stripped.Bytes(),
		ProofData:      bitcoin.NewProof(msg).Bytes(),
		BlockHash:      msg.Header.BlockHash(),
		OutputIndex:    1,
		Value:          value,
	}
}

// MineMerkleBlock builds a regtest merkle block over txs matching only txs[match].
func MineMerkleBlock(t testing.TB, txs []*wire.MsgTx, match int) *wire.MsgMerkleBlock {
	t.Helper()

	txids := make([]chainhash.Hash, len(txs))
	flags := make([]bool, len(txs))
	for i, tx := range txs {
		txids[i] = tx.TxHash()
	}
	flags[match] = true
	tree := merkle.New(txids, flags)

	header := wire.BlockHeader{
		Version:    0x20000000,
		PrevBlock:  *chaincfg.RegressionNetParams.GenesisHash,
		MerkleRoot: merkle.Root(txids),
		Bits:       chaincfg.RegressionNetParams.PowLimitBits,
	}
	target := blockchain.CompactToBig(header.Bits)
	for {
		hash := header.BlockHash()
		if blockchain.HashToBig(&hash).Cmp(target) <= 0 {
			break
		}
		header.Nonce++
	}

	msg := &wire.MsgMerkleBlock{Header: header, Transactions: tree.Transactions, Flags: tree.Flags}
	for i := range tree.Hashes {
		require.NoError(t, msg.AddTxHash(&tree.Hashes[i]))
	}
	return msg
}

// Signed builds a deposit of value on a parent chain with signed blocks.
func Signed(t testing.TB, value int64) *Fixture {
	t.Helper()

	cfg := fedpeg.NewSegwitConfig(Multisig(t, 1, Key(3)))
	claim := ClaimScript(9)
	dest, err := cfg.Destination(claim)
	require.NoError(t, err)

	deposit := elements.NewTx()
	deposit.AddTxIn(elements.NewTxIn(wire.OutPoint{Hash: chainhash.Hash{0x66}}, elements.SequenceFinal))
	deposit.AddTxOut(elements.NewTxOut(ParentPeggedAsset, value, dest))
	deposit.AddTxOut(elements.NewTxOut(ParentPeggedAsset, 200, nil))

	challenge := Multisig(t, 1, Key(4))
	txids := []chainhash.Hash{deposit.TxHash()}
	block := &elements.MerkleBlock{
		Header: elements.BlockHeader{
			Version:    0x20000000,
			MerkleRoot: merkle.Root(txids),
			Timestamp:  1_700_000_000,
			Height:     55,
			Challenge:  challenge,
		},
		Tree: *merkle.New(txids, []bool{true}),
	}
	hash := block.Header.BlockHash()
	sig := ecdsa.Sign(Key(4), hash[:]).Serialize()
	solution, err := txscript.NewScriptBuilder().AddOp(txscript.OP_0).AddData(sig).Script()
	require.NoError(t, err)
	block.Header.Solution = solution

	params := &chain.Params{
		Network:           address.ElementsRegtest,
		PolicyAsset:       PolicyAsset,
		PeggedAsset:       PeggedAsset,
		ParentGenesisHash: chainhash.Hash{0x99},
		ParentChallenge:   challenge,
		ParentPeggedAsset: ParentPeggedAsset,
		PeginMinDepth:     2,
	}
	return &Fixture{
		Params:         params,
		Snapshot:       &chain.Snapshot{Params: params, Tip: 20, Fedpegs: []fedpeg.Config{cfg}},
		Fedpeg:         cfg,
		ClaimScript:    claim,
		TxID:           deposit.TxHash(),
		TxData:         deposit.Bytes(),
		StrippedTxData: deposit.Bytes(),
		ProofData:      block.Bytes(),
		BlockHash:      block.Header.BlockHash(),
		OutputIndex:    0,
		Value:          value,
	}
}

// Stack returns the peg-in witness stack claiming the fixture's deposit.
func (f *Fixture) Stack() [][]byte {
	value := make([]byte, 8)
	binary.LittleEndian.PutUint64(value, uint64(f.Value))
	return [][]byte{
		value,
		append([]byte(nil), f.Params.PeggedAsset[:]...),
		append([]byte(nil), f.Params.ParentGenesisHash[:]...),
		append([]byte(nil), f.ClaimScript...),
		append([]byte(nil), f.StrippedTxData...),
		append([]byte(nil), f.ProofData...),
	}
}
