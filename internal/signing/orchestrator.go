// Package signing reconciles caller supplied previous outputs into a coin
// view and signs transactions, re-validating peg-in inputs first.
package signing

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

const (
	MsgInvalidPegIn  = "Peg-in input has invalid proof."
	MsgMissingAmount = "Missing amount"
	WarningImmature  = "Possibly immature peg-in input(s) detected, signed anyways."
)

// PegInStatus is the outcome of re-validating one input.
type PegInStatus int

const (
	// NotPegIn marks an ordinary input.
	NotPegIn PegInStatus = iota
	PegInValid
	// PegInImmature is a peg-in valid in every respect but its depth.
	PegInImmature
	PegInInvalid
)

func (s PegInStatus) String() string {
	switch s {
	case NotPegIn:
		return "not_pegin"
	case PegInValid:
		return "valid"
	case PegInImmature:
		return "immature"
	case PegInInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("PegInStatus(%d)", int(s))
	}
}

// InputError is the JSON form of a failing input.
type InputError struct {
	TxID      string   `json:"txid"`
	Vout      uint32   `json:"vout"`
	Witness   []string `json:"witness"`
	ScriptSig string   `json:"scriptSig"`
	Sequence  uint32   `json:"sequence"`
	Error     string   `json:"error"`
}

// Result is the outcome of a signing call.
type Result struct {
	Hex      string       `json:"hex"`
	Complete bool         `json:"complete"`
	Errors   []InputError `json:"errors,omitempty"`
	Warning  string       `json:"warning,omitempty"`
}

// Orchestrator validates peg-in inputs and delegates signing to a Signer.
type Orchestrator struct {
	verifier PegInVerifier
	signer   Signer
}

func NewOrchestrator(verifier PegInVerifier, signer Signer) *Orchestrator {
	return &Orchestrator{verifier: verifier, signer: signer}
}

// CheckPegIn re-validates input idx of tx. The returned error carries the
// verifier message for invalid peg-ins.
func (o *Orchestrator) CheckPegIn(ctx context.Context, tx *elements.Tx, idx int, snap *chain.Snapshot) (PegInStatus, error) {
	in := tx.TxIn[idx]
	if !in.IsPegin {
		return NotPegIn, nil
	}
	if err := o.verifier.Verify(ctx, in.Witness.PeginWitness, snap, in.PreviousOutPoint, false); err != nil {
		return PegInInvalid, err
	}
	err := o.verifier.Verify(ctx, in.Witness.PeginWitness, snap, in.PreviousOutPoint, true)
	switch {
	case err == nil:
		return PegInValid, nil
	case errors.Is(err, pegin.ErrNeedsConfirmations):
		return PegInImmature, err
	default:
		return PegInInvalid, rpcerr.Newf(rpcerr.Internal, "peg-in input %d failed strict validation after passing lenient validation: %v", idx, err)
	}
}

// ValidatePegIns checks every peg-in input of tx, recording invalid ones in
// inputErrors. It reports whether any peg-in is valid but immature.
func (o *Orchestrator) ValidatePegIns(ctx context.Context, tx *elements.Tx, snap *chain.Snapshot, inputErrors map[int]string) (bool, error) {
	immature := false
	for i := range tx.TxIn {
		status, err := o.CheckPegIn(ctx, tx, i, snap)
		switch status {
		case PegInInvalid:
			if errors.Is(err, rpcerr.ErrInternal) {
				return false, err
			}
			inputErrors[i] = MsgInvalidPegIn
		case PegInImmature:
			immature = true
		}
	}
	return immature, nil
}

// Sign validates the peg-in inputs of tx, signs it in place and builds the
// result. A signer error of MsgMissingAmount fails the whole call.
func (o *Orchestrator) Sign(
	ctx context.Context,
	tx *elements.Tx,
	keys *script.KeyStore,
	coins Coins,
	hashType txscript.SigHashType,
	snap *chain.Snapshot,
) (*Result, error) {
	inputErrors := make(map[int]string)
	immature, err := o.ValidatePegIns(ctx, tx, snap, inputErrors)
	if err != nil {
		return nil, err
	}

	complete, signErrors, err := o.signer.Sign(ctx, tx, keys, coins, hashType)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	for i, msg := range signErrors {
		if _, ok := inputErrors[i]; !ok {
			inputErrors[i] = msg
		}
	}

	return buildResult(tx, complete && len(inputErrors) == 0, coins, inputErrors, immature)
}

func buildResult(tx *elements.Tx, complete bool, coins Coins, inputErrors map[int]string, immature bool) (*Result, error) {
	indexes := make([]int, 0, len(inputErrors))
	for i := range inputErrors {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	result := &Result{
		Hex:      hex.EncodeToString(tx.Bytes()),
		Complete: complete,
	}
	for _, i := range indexes {
		if i < 0 || i >= len(tx.TxIn) {
			return nil, rpcerr.Newf(rpcerr.Internal, "signing error reported for unknown input %d", i)
		}
		in := tx.TxIn[i]
		msg := inputErrors[i]
		if msg == MsgMissingAmount {
			what := in.PreviousOutPoint.String()
			if coin, ok := coins[in.PreviousOutPoint]; ok {
				what = coin.Out.String()
			}
			return nil, rpcerr.New(rpcerr.Type, "Missing amount for "+what)
		}
		result.Errors = append(result.Errors, inputErrorJSON(in, msg))
	}
	if immature {
		result.Warning = WarningImmature
	}
	return result, nil
}

func inputErrorJSON(in *elements.TxIn, msg string) InputError {
	witness := make([]string, 0, len(in.Witness.ScriptWitness))
	for _, item := range in.Witness.ScriptWitness {
		witness = append(witness, hex.EncodeToString(item))
	}
	return InputError{
		TxID:      in.PreviousOutPoint.Hash.String(),
		Vout:      in.PreviousOutPoint.Index,
		Witness:   witness,
		ScriptSig: hex.EncodeToString(in.SignatureScript),
		Sequence:  in.Sequence,
		Error:     msg,
	}
}
