package elements

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	witnessFlag = 0x01

	maxVectorSize = 1 << 17
	maxScriptSize = 4_000_000
)

// ErrTrailingData is returned when a strict decode leaves bytes unread.
var ErrTrailingData = errors.New("trailing data after transaction")

// ErrOutPointIndex is returned when an outpoint index overlaps the input
// flag bits.
var ErrOutPointIndex = errors.New("outpoint index overlaps input flag bits")

// Serialize writes tx in wire format, witness included when present.
func (tx *Tx) Serialize(w io.Writer) error {
	return tx.serialize(w, tx.HasWitness())
}

// SerializeNoWitness writes tx without witness data.
func (tx *Tx) SerializeNoWitness(w io.Writer) error {
	return tx.serialize(w, false)
}

func (tx *Tx) serialize(w io.Writer, withWitness bool) error {
	if err := writeUint32(w, uint32(tx.Version)); err != nil {
		return err
	}
	flags := byte(0)
	if withWitness {
		flags = witnessFlag
	}
	if _, err := w.Write([]byte{flags}); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, 0, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, in := range tx.TxIn {
		if err := writeTxIn(w, in); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, 0, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, out := range tx.TxOut {
		if err := writeTxOut(w, out); err != nil {
			return err
		}
	}

	if err := writeUint32(w, tx.LockTime); err != nil {
		return err
	}
	if !withWitness {
		return nil
	}

	for _, in := range tx.TxIn {
		if err := wire.WriteVarBytes(w, 0, in.Witness.IssuanceRangeProof); err != nil {
			return err
		}
		if err := wire.WriteVarBytes(w, 0, in.Witness.InflationRangeProof); err != nil {
			return err
		}
		if err := writeStack(w, in.Witness.ScriptWitness); err != nil {
			return err
		}
		if err := writeStack(w, in.Witness.PeginWitness); err != nil {
			return err
		}
	}
	for _, out := range tx.TxOut {
		if err := wire.WriteVarBytes(w, 0, out.Witness.SurjectionProof); err != nil {
			return err
		}
		if err := wire.WriteVarBytes(w, 0, out.Witness.RangeProof); err != nil {
			return err
		}
	}
	return nil
}

func isNullOutPoint(op wire.OutPoint) bool {
	return op.Index == wire.MaxPrevOutIndex && op.Hash == (chainhash.Hash{})
}

func writeTxIn(w io.Writer, in *TxIn) error {
	if _, err := w.Write(in.PreviousOutPoint.Hash[:]); err != nil {
		return err
	}
	index := in.PreviousOutPoint.Index
	if !isNullOutPoint(in.PreviousOutPoint) {
		if index&^OutPointIndexMask != 0 {
			return ErrOutPointIndex
		}
		if in.Issuance != nil {
			index |= OutPointIssuanceFlag
		}
		if in.IsPegin {
			index |= OutPointPeginFlag
		}
	}
	if err := writeUint32(w, index); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, 0, in.SignatureScript); err != nil {
		return err
	}
	if err := writeUint32(w, in.Sequence); err != nil {
		return err
	}
	if in.Issuance == nil || isNullOutPoint(in.PreviousOutPoint) {
		return nil
	}
	if _, err := w.Write(in.Issuance.BlindingNonce[:]); err != nil {
		return err
	}
	if _, err := w.Write(in.Issuance.Entropy[:]); err != nil {
		return err
	}
	if err := writeCommitment(w, in.Issuance.Amount.Commitment); err != nil {
		return err
	}
	return writeCommitment(w, in.Issuance.InflationKeys.Commitment)
}

func writeTxOut(w io.Writer, out *TxOut) error {
	if err := writeCommitment(w, out.Asset.Commitment); err != nil {
		return err
	}
	if err := writeCommitment(w, out.Value.Commitment); err != nil {
		return err
	}
	if err := writeCommitment(w, out.Nonce.Commitment); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, out.PkScript)
}

func writeStack(w io.Writer, stack [][]byte) error {
	if err := wire.WriteVarInt(w, 0, uint64(len(stack))); err != nil {
		return err
	}
	for _, item := range stack {
		if err := wire.WriteVarBytes(w, 0, item); err != nil {
			return err
		}
	}
	return nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Deserialize reads a transaction in wire format.
func (tx *Tx) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	tx.Version = int32(version)

	var flags [1]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return err
	}
	if flags[0]&^witnessFlag != 0 {
		return fmt.Errorf("unknown transaction optional data 0x%02x", flags[0])
	}

	inputs, err := readCount(r, "inputs")
	if err != nil {
		return err
	}
	tx.TxIn = make([]*TxIn, 0, inputs)
	for i := uint64(0); i < inputs; i++ {
		in, err := readTxIn(r)
		if err != nil {
			return fmt.Errorf("read input %d: %w", i, err)
		}
		tx.TxIn = append(tx.TxIn, in)
	}

	outputs, err := readCount(r, "outputs")
	if err != nil {
		return err
	}
	tx.TxOut = make([]*TxOut, 0, outputs)
	for i := uint64(0); i < outputs; i++ {
		out, err := readTxOut(r)
		if err != nil {
			return fmt.Errorf("read output %d: %w", i, err)
		}
		tx.TxOut = append(tx.TxOut, out)
	}

	if tx.LockTime, err = readUint32(r); err != nil {
		return err
	}
	if flags[0]&witnessFlag == 0 {
		return nil
	}

	for i, in := range tx.TxIn {
		if in.Witness.IssuanceRangeProof, err = readBytes(r, "issuance range proof"); err != nil {
			return fmt.Errorf("read input witness %d: %w", i, err)
		}
		if in.Witness.InflationRangeProof, err = readBytes(r, "inflation range proof"); err != nil {
			return fmt.Errorf("read input witness %d: %w", i, err)
		}
		if in.Witness.ScriptWitness, err = readStack(r); err != nil {
			return fmt.Errorf("read input witness %d: %w", i, err)
		}
		if in.Witness.PeginWitness, err = readStack(r); err != nil {
			return fmt.Errorf("read input witness %d: %w", i, err)
		}
	}
	for i, out := range tx.TxOut {
		if out.Witness.SurjectionProof, err = readBytes(r, "surjection proof"); err != nil {
			return fmt.Errorf("read output witness %d: %w", i, err)
		}
		if out.Witness.RangeProof, err = readBytes(r, "range proof"); err != nil {
			return fmt.Errorf("read output witness %d: %w", i, err)
		}
	}
	if !tx.HasWitness() {
		return errors.New("superfluous witness record")
	}
	return nil
}

// DeserializeStrict decodes b and fails if any bytes are left over.
func DeserializeStrict(b []byte) (*Tx, error) {
	r := bytes.NewReader(b)
	tx := &Tx{}
	if err := tx.Deserialize(r); err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrTrailingData
	}
	return tx, nil
}

func readTxIn(r io.Reader) (*TxIn, error) {
	in := &TxIn{}
	if _, err := io.ReadFull(r, in.PreviousOutPoint.Hash[:]); err != nil {
		return nil, err
	}
	index, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	hasIssuance := false
	in.PreviousOutPoint.Index = index
	if !isNullOutPoint(in.PreviousOutPoint) {
		hasIssuance = index&OutPointIssuanceFlag != 0
		in.IsPegin = index&OutPointPeginFlag != 0
		in.PreviousOutPoint.Index = index & OutPointIndexMask
	}
	if in.SignatureScript, err = readBytes(r, "signature script"); err != nil {
		return nil, err
	}
	if in.Sequence, err = readUint32(r); err != nil {
		return nil, err
	}
	if !hasIssuance {
		return in, nil
	}

	issuance := &AssetIssuance{}
	if _, err := io.ReadFull(r, issuance.BlindingNonce[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, issuance.Entropy[:]); err != nil {
		return nil, err
	}
	if issuance.Amount.Commitment, err = readCommitment(r, "issuance amount", valueSizes); err != nil {
		return nil, err
	}
	if issuance.InflationKeys.Commitment, err = readCommitment(r, "inflation keys", valueSizes); err != nil {
		return nil, err
	}
	in.Issuance = issuance
	return in, nil
}

func readTxOut(r io.Reader) (*TxOut, error) {
	out := &TxOut{}
	var err error
	if out.Asset.Commitment, err = readCommitment(r, "asset", assetSizes); err != nil {
		return nil, err
	}
	if out.Value.Commitment, err = readCommitment(r, "value", valueSizes); err != nil {
		return nil, err
	}
	if out.Nonce.Commitment, err = readCommitment(r, "nonce", nonceSizes); err != nil {
		return nil, err
	}
	if out.PkScript, err = readBytes(r, "script"); err != nil {
		return nil, err
	}
	return out, nil
}

func readCount(r io.Reader, field string) (uint64, error) {
	n, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return 0, err
	}
	if n > maxVectorSize {
		return 0, fmt.Errorf("too many %s: %d", field, n)
	}
	return n, nil
}

func readBytes(r io.Reader, field string) ([]byte, error) {
	b, err := wire.ReadVarBytes(r, 0, maxScriptSize, field)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

func readStack(r io.Reader) ([][]byte, error) {
	n, err := readCount(r, "witness items")
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	stack := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		item, err := wire.ReadVarBytes(r, 0, maxScriptSize, "witness item")
		if err != nil {
			return nil, err
		}
		stack = append(stack, item)
	}
	return stack, nil
}
