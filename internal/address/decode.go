package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/txscript"
)

const confidentialPayloadLen = 1 + btcec.PubKeyBytesLenCompressed + 20

var (
	ErrInvalidAddress     = errors.New("invalid address")
	ErrBlech32Unsupported = errors.New("confidential segwit addresses are not supported")
)

// Destination is a decoded output destination.
type Destination struct {
	Script []byte
	// BlindingKey is the compressed blinding public key of a confidential
	// address, nil otherwise.
	BlindingKey []byte
}

// IsBlinded reports whether the destination carries a blinding key.
func (d *Destination) IsBlinded() bool {
	return len(d.BlindingKey) != 0
}

// Key identifies the destination for duplicate detection. Blinded and
// unblinded forms of the same address share a key.
func (d *Destination) Key() string {
	return hex.EncodeToString(d.Script)
}

// Decode parses addr for the network.
func (n *Network) Decode(addr string) (*Destination, error) {
	if err := register(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.ToLower(addr), n.Blech32HRP+"1") {
		return nil, ErrBlech32Unsupported
	}

	if payload, version, err := base58.CheckDecode(addr); err == nil && version == n.BlindedPrefix {
		return n.decodeConfidential(payload)
	}

	decoded, err := btcutil.DecodeAddress(addr, n.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if _, ok := decoded.(*btcutil.AddressPubKey); ok {
		return nil, fmt.Errorf("%w: bare public keys are not addresses", ErrInvalidAddress)
	}
	if !decoded.IsForNet(n.Params) {
		return nil, fmt.Errorf("%w: not a %s address", ErrInvalidAddress, n.Name)
	}
	pkScript, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return &Destination{Script: pkScript}, nil
}

func (n *Network) decodeConfidential(payload []byte) (*Destination, error) {
	if len(payload) != confidentialPayloadLen {
		return nil, fmt.Errorf("%w: confidential payload is %d bytes", ErrInvalidAddress, len(payload))
	}
	inner := payload[0]
	key := payload[1 : 1+btcec.PubKeyBytesLenCompressed]
	hash := payload[1+btcec.PubKeyBytesLenCompressed:]

	if _, err := btcec.ParsePubKey(key); err != nil {
		return nil, fmt.Errorf("%w: blinding key: %v", ErrInvalidAddress, err)
	}

	var (
		decoded btcutil.Address
		err     error
	)
	switch inner {
	case n.Params.PubKeyHashAddrID:
		decoded, err = btcutil.NewAddressPubKeyHash(hash, n.Params)
	case n.Params.ScriptHashAddrID:
		decoded, err = btcutil.NewAddressScriptHashFromHash(hash, n.Params)
	default:
		return nil, fmt.Errorf("%w: unknown confidential inner prefix %d", ErrInvalidAddress, inner)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	pkScript, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	blindingKey := make([]byte, len(key))
	copy(blindingKey, key)
	return &Destination{Script: pkScript, BlindingKey: blindingKey}, nil
}

// EncodeConfidential builds the confidential base58 form of a P2PKH or P2SH address.
func (n *Network) EncodeConfidential(addr btcutil.Address, blindingKey []byte) (string, error) {
	if len(blindingKey) != btcec.PubKeyBytesLenCompressed {
		return "", fmt.Errorf("blinding key must be %d bytes", btcec.PubKeyBytesLenCompressed)
	}
	var inner byte
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		inner = n.Params.PubKeyHashAddrID
	case *btcutil.AddressScriptHash:
		inner = n.Params.ScriptHashAddrID
	default:
		return "", fmt.Errorf("unsupported confidential address type %T", addr)
	}
	payload := make([]byte, 0, confidentialPayloadLen)
	payload = append(payload, inner)
	payload = append(payload, blindingKey...)
	payload = append(payload, addr.ScriptAddress()...)
	return base58.CheckEncode(payload, n.BlindedPrefix), nil
}
