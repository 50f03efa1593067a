package script

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
)

var ErrInvalidTweak = errors.New("contract tweak is not a valid scalar")

// CalculateContract commits claimScript into a federation script: every 33 byte
// public key pushed before the first OP_ELSE is replaced by
// P + HMAC-SHA256(P, claimScript)·G.
func CalculateContract(fedpegScript, claimScript []byte) ([]byte, error) {
	contract := make([]byte, len(fedpegScript))
	copy(contract, fedpegScript)

	tokenizer := txscript.MakeScriptTokenizer(0, fedpegScript)
	for tokenizer.Next() {
		if tokenizer.Opcode() == txscript.OP_ELSE {
			break
		}
		data := tokenizer.Data()
		if len(data) != btcec.PubKeyBytesLenCompressed || tokenizer.Opcode() >= txscript.OP_PUSHDATA4 {
			continue
		}

		tweaked, err := tweakPubKey(data, claimScript)
		if err != nil {
			return nil, fmt.Errorf("tweak key at offset %d: %w", tokenizer.ByteIndex(), err)
		}
		end := int(tokenizer.ByteIndex())
		copy(contract[end-len(tweaked):end], tweaked)
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("parse federation script: %w", err)
	}
	return contract, nil
}

func tweakPubKey(key, claimScript []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(key)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(claimScript)

	var tweak btcec.ModNScalar
	if overflow := tweak.SetByteSlice(mac.Sum(nil)); overflow {
		return nil, ErrInvalidTweak
	}

	var point, tweakPoint, sum btcec.JacobianPoint
	pub.AsJacobian(&point)
	btcec.ScalarBaseMultNonConst(&tweak, &tweakPoint)
	btcec.AddNonConst(&point, &tweakPoint, &sum)
	sum.ToAffine()
	if sum.X.IsZero() && sum.Y.IsZero() {
		return nil, ErrInvalidTweak
	}
	return btcec.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed(), nil
}
