package elements

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Commitment prefixes of the confidential fields.
const (
	prefixNull     = 0x00
	prefixExplicit = 0x01

	prefixValueCommitmentEven = 0x08
	prefixValueCommitmentOdd  = 0x09
	prefixAssetCommitmentEven = 0x0a
	prefixAssetCommitmentOdd  = 0x0b
	prefixNonceCommitmentEven = 0x02
	prefixNonceCommitmentOdd  = 0x03
)

// ConfidentialAsset is an output asset tag: null, explicit or blinded.
type ConfidentialAsset struct {
	Commitment []byte
}

// ExplicitAsset returns the explicit tag of asset id.
func ExplicitAsset(id chainhash.Hash) ConfidentialAsset {
	c := make([]byte, 1+chainhash.HashSize)
	c[0] = prefixExplicit
	copy(c[1:], id[:])
	return ConfidentialAsset{Commitment: c}
}

func (a ConfidentialAsset) IsNull() bool {
	return len(a.Commitment) == 0
}

func (a ConfidentialAsset) IsExplicit() bool {
	return len(a.Commitment) == 1+chainhash.HashSize && a.Commitment[0] == prefixExplicit
}

// Explicit returns the asset id when the tag is explicit.
func (a ConfidentialAsset) Explicit() (chainhash.Hash, bool) {
	if !a.IsExplicit() {
		return chainhash.Hash{}, false
	}
	var id chainhash.Hash
	copy(id[:], a.Commitment[1:])
	return id, true
}

func (a ConfidentialAsset) String() string {
	if id, ok := a.Explicit(); ok {
		return id.String()
	}
	if a.IsNull() {
		return "NULL"
	}
	return "CONFIDENTIAL"
}

// ConfidentialValue is an output amount: null, explicit or blinded.
type ConfidentialValue struct {
	Commitment []byte
}

// ExplicitValue returns the explicit encoding of amount.
func ExplicitValue(amount int64) ConfidentialValue {
	c := make([]byte, 9)
	c[0] = prefixExplicit
	binary.BigEndian.PutUint64(c[1:], uint64(amount))
	return ConfidentialValue{Commitment: c}
}

func (v ConfidentialValue) IsNull() bool {
	return len(v.Commitment) == 0
}

func (v ConfidentialValue) IsExplicit() bool {
	return len(v.Commitment) == 9 && v.Commitment[0] == prefixExplicit
}

// Explicit returns the amount when the value is explicit.
func (v ConfidentialValue) Explicit() (int64, bool) {
	if !v.IsExplicit() {
		return 0, false
	}
	return int64(binary.BigEndian.Uint64(v.Commitment[1:])), true
}

func (v ConfidentialValue) String() string {
	if amount, ok := v.Explicit(); ok {
		return fmt.Sprintf("%d.%08d", amount/100_000_000, amount%100_000_000)
	}
	if v.IsNull() {
		return "NULL"
	}
	return "CONFIDENTIAL"
}

// ConfidentialNonce is the ECDH nonce commitment of an output. Unblinded
// outputs may carry a compressed public key here.
type ConfidentialNonce struct {
	Commitment []byte
}

func (n ConfidentialNonce) IsNull() bool {
	return len(n.Commitment) == 0
}

func (n ConfidentialNonce) String() string {
	if n.IsNull() {
		return "NULL"
	}
	return hex.EncodeToString(n.Commitment)
}

func writeCommitment(w io.Writer, c []byte) error {
	if len(c) == 0 {
		_, err := w.Write([]byte{prefixNull})
		return err
	}
	_, err := w.Write(c)
	return err
}

func readCommitment(r io.Reader, field string, sizes map[byte]int) ([]byte, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	if prefix[0] == prefixNull {
		return nil, nil
	}
	size, ok := sizes[prefix[0]]
	if !ok {
		return nil, fmt.Errorf("invalid %s prefix 0x%02x", field, prefix[0])
	}
	c := make([]byte, 1+size)
	c[0] = prefix[0]
	if _, err := io.ReadFull(r, c[1:]); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	assetSizes = map[byte]int{
		prefixExplicit:            32,
		prefixAssetCommitmentEven: 32,
		prefixAssetCommitmentOdd:  32,
	}
	valueSizes = map[byte]int{
		prefixExplicit:            8,
		prefixValueCommitmentEven: 32,
		prefixValueCommitmentOdd:  32,
	}
	nonceSizes = map[byte]int{
		prefixExplicit:            32,
		prefixNonceCommitmentEven: 32,
		prefixNonceCommitmentOdd:  32,
	}
)
