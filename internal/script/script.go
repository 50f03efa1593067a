// Package script holds the script helpers used by peg-in matching and prevout
// reconciliation.
package script

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// WitnessProgram extracts the version and program of a witness program script.
func WitnessProgram(script []byte) (int, []byte, bool) {
	if !txscript.IsWitnessProgram(script) {
		return 0, nil, false
	}
	version, program, err := txscript.ExtractWitnessProgramInfo(script)
	if err != nil {
		return 0, nil, false
	}
	return version, program, true
}

// PayToWitnessScriptHash returns the version 0 witness script hash output for script.
func PayToWitnessScriptHash(script []byte) []byte {
	hash := sha256.Sum256(script)
	out, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(hash[:]).
		Script()
	return out
}

// PayToScriptHash returns the script hash output for script.
func PayToScriptHash(script []byte) []byte {
	out, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(script)).
		AddOp(txscript.OP_EQUAL).
		Script()
	return out
}

func IsPayToScriptHash(script []byte) bool {
	return txscript.IsPayToScriptHash(script)
}

func IsPayToWitnessScriptHash(script []byte) bool {
	return txscript.IsPayToWitnessScriptHash(script)
}

// NullData builds an OP_RETURN script followed by one push per payload.
// Payloads are pushed verbatim: a single byte such as 0x01 stays a data push
// and is never turned into a small-integer opcode.
func NullData(payloads ...[]byte) ([]byte, error) {
	out := []byte{txscript.OP_RETURN}
	for _, p := range payloads {
		out = appendPush(out, p)
	}
	if len(out) > txscript.MaxScriptSize {
		return nil, fmt.Errorf("null data script is %d bytes, limit %d", len(out), txscript.MaxScriptSize)
	}
	return out, nil
}

func appendPush(script, data []byte) []byte {
	n := len(data)
	switch {
	case n < txscript.OP_PUSHDATA1:
		script = append(script, byte(n))
	case n <= 0xff:
		script = append(script, txscript.OP_PUSHDATA1, byte(n))
	case n <= 0xffff:
		script = append(script, txscript.OP_PUSHDATA2)
		script = binary.LittleEndian.AppendUint16(script, uint16(n))
	default:
		script = append(script, txscript.OP_PUSHDATA4)
		script = binary.LittleEndian.AppendUint32(script, uint32(n))
	}
	return append(script, data...)
}

// Disasm renders script as space separated opcodes. Unparseable tails are
// rendered as "[error]".
func Disasm(script []byte) string {
	out, _ := txscript.DisasmString(script)
	return out
}

// Equal reports whether two scripts are byte-identical.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
