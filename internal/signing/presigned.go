package signing

import (
	"context"

	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

// Messages reported by Presigned.
const (
	MsgInputNotFound = "Input not found or already spent"
	MsgNotSigned     = "Input is not signed and no signing backend is attached"
)

// Presigned is a keyless Signer. It signs nothing and reports an input as
// complete when it already carries a scriptSig or script witness.
type Presigned struct{}

func (Presigned) Sign(_ context.Context, tx *elements.Tx, _ *script.KeyStore, coins Coins, _ txscript.SigHashType) (bool, map[int]string, error) {
	inputErrors := make(map[int]string)
	for i, in := range tx.TxIn {
		coin, ok := coins[in.PreviousOutPoint]
		if !in.IsPegin && (!ok || coin.Spent) {
			inputErrors[i] = MsgInputNotFound
			continue
		}
		hasWitness := len(in.Witness.ScriptWitness) != 0
		if hasWitness && ok {
			if amount, explicit := coin.Out.Value.Explicit(); explicit && amount == rpcjson.MaxMoney {
				inputErrors[i] = MsgMissingAmount
				continue
			}
		}
		if len(in.SignatureScript) == 0 && !hasWitness {
			inputErrors[i] = MsgNotSigned
		}
	}
	return len(inputErrors) == 0, inputErrors, nil
}
