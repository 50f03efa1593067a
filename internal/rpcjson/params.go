package rpcjson

import (
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/shopspring/decimal"
)

const (
	// Coin is the number of base units in one whole coin.
	Coin = 100_000_000
	// MaxMoney is the largest amount accepted by the money parser.
	MaxMoney = 21_000_000 * Coin
)

var (
	maxFixedPoint = decimal.New(1, 18)
	maxMoney      = decimal.NewFromInt(MaxMoney)
)

// IsHex reports whether s is a non-empty, even-length hex string.
func IsHex(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ParseHex decodes s as hex, naming the field in the error.
func ParseHex(s, name string) ([]byte, error) {
	if !IsHex(s) {
		return nil, rpcerr.Newf(rpcerr.InvalidParameter, "%s must be hexadecimal string (not '%s')", name, s)
	}
	b, _ := hex.DecodeString(s)
	return b, nil
}

// ParseHexV decodes a JSON string value as hex.
func ParseHexV(raw json.RawMessage, name string) ([]byte, error) {
	s, err := String(raw)
	if err != nil {
		return nil, err
	}
	return ParseHex(s, name)
}

// ParseHashV decodes a JSON string value as a 64 character byte-reversed hash.
func ParseHashV(raw json.RawMessage, name string) (chainhash.Hash, error) {
	s, err := String(raw)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return ParseHash(s, name)
}

// ParseHash decodes a 64 character byte-reversed hash.
func ParseHash(s, name string) (chainhash.Hash, error) {
	if len(s) != 2*chainhash.HashSize {
		return chainhash.Hash{}, rpcerr.Newf(rpcerr.InvalidParameter, "%s must be of length %d (not %d, for '%s')", name, 2*chainhash.HashSize, len(s), s)
	}
	if !IsHex(s) {
		return chainhash.Hash{}, rpcerr.Newf(rpcerr.InvalidParameter, "%s must be hexadecimal string (not '%s')", name, s)
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, rpcerr.Newf(rpcerr.InvalidParameter, "%s must be hexadecimal string (not '%s')", name, s)
	}
	return *h, nil
}

// AmountFromValue parses a JSON number or string in the canonical money format
// (at most eight decimals) into base units.
func AmountFromValue(raw json.RawMessage) (int64, error) {
	kind := KindOf(raw)
	if kind != KindNumber && kind != KindString {
		return 0, rpcerr.New(rpcerr.Type, "Amount is not a number or string")
	}

	d, err := decimal.NewFromString(ValStr(raw))
	if err != nil {
		return 0, rpcerr.New(rpcerr.Type, "Invalid amount")
	}
	units := d.Shift(8)
	if !units.IsInteger() || units.Abs().GreaterThanOrEqual(maxFixedPoint) {
		return 0, rpcerr.New(rpcerr.Type, "Invalid amount")
	}
	if units.IsNegative() || units.GreaterThan(maxMoney) {
		return 0, rpcerr.New(rpcerr.Type, "Amount out of range")
	}
	return units.IntPart(), nil
}

// ValueFromAmount renders base units in the canonical money format.
func ValueFromAmount(amount int64) json.RawMessage {
	return json.RawMessage(decimal.New(amount, -8).StringFixed(8))
}
