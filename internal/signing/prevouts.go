package signing

import (
	"encoding/json"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

// ParsePrevouts records the caller supplied previous outputs in coins and,
// when keys is set, registers the redeem and witness scripts of P2SH and
// P2WSH outputs with it.
func ParsePrevouts(raw json.RawMessage, keys *script.KeyStore, coins Coins) error {
	if rpcjson.IsNull(raw) {
		return nil
	}
	prevouts, err := rpcjson.ParseArray(raw)
	if err != nil {
		return err
	}
	for _, p := range prevouts {
		if err := parsePrevout(p, keys, coins); err != nil {
			return err
		}
	}
	return nil
}

func parsePrevout(raw json.RawMessage, keys *script.KeyStore, coins Coins) error {
	if rpcjson.KindOf(raw) != rpcjson.KindObject {
		return rpcerr.New(rpcerr.Malformed, `expected object with {"txid'","vout","scriptPubKey"}`)
	}
	o, err := rpcjson.ParseObject(raw)
	if err != nil {
		return err
	}
	if err := rpcjson.CheckTypes(o, false,
		rpcjson.FieldType{Key: "txid", Kind: rpcjson.KindString},
		rpcjson.FieldType{Key: "vout", Kind: rpcjson.KindNumber},
		rpcjson.FieldType{Key: "scriptPubKey", Kind: rpcjson.KindString},
	); err != nil {
		return err
	}

	txid, err := rpcjson.ParseHashV(o.Get("txid"), "txid")
	if err != nil {
		return err
	}
	n, err := rpcjson.Int32(o.Get("vout"))
	if err != nil {
		return err
	}
	if n < 0 {
		return rpcerr.New(rpcerr.Malformed, "vout cannot be negative")
	}
	if uint32(n) > elements.OutPointIndexMask {
		return rpcerr.New(rpcerr.InvalidParameter, "vout out of range")
	}
	outpoint := wire.OutPoint{Hash: txid, Index: uint32(n)}

	pkScript, err := rpcjson.ParseHexV(o.Get("scriptPubKey"), "scriptPubKey")
	if err != nil {
		return err
	}

	if coin, ok := coins[outpoint]; ok && !coin.Spent && !script.Equal(coin.Out.PkScript, pkScript) {
		return rpcerr.New(rpcerr.InvalidParameter, "Previous output scriptPubKey mismatch:\n"+
			script.Disasm(coin.Out.PkScript)+"\nvs:\n"+script.Disasm(pkScript))
	}

	out := &elements.TxOut{
		Value:    elements.ExplicitValue(rpcjson.MaxMoney),
		PkScript: pkScript,
	}
	switch {
	case o.Has("amount"):
		amount, err := rpcjson.AmountFromValue(o.Get("amount"))
		if err != nil {
			return err
		}
		out.Value = elements.ExplicitValue(amount)
	case o.Has("amountcommitment"):
		commitment, err := rpcjson.ParseHexV(o.Get("amountcommitment"), "amountcommitment")
		if err != nil {
			return err
		}
		out.Value = elements.ConfidentialValue{Commitment: commitment}
	}
	coins[outpoint] = &Coin{Out: out, Height: SyntheticHeight}

	isP2SH := script.IsPayToScriptHash(pkScript)
	isP2WSH := script.IsPayToWitnessScriptHash(pkScript)
	if keys == nil || !(isP2SH || isP2WSH) {
		return nil
	}
	return addScripts(o, pkScript, isP2SH, keys)
}

// addScripts registers the redeem or witness script of a script hash output
// and checks it can produce pkScript. A P2SH output whose script came in the
// witnessScript field, and a P2WSH output whose script came in redeemScript,
// are both accepted.
func addScripts(o rpcjson.Object, pkScript []byte, isP2SH bool, keys *script.KeyStore) error {
	if err := rpcjson.CheckTypes(o, true,
		rpcjson.FieldType{Key: "redeemScript", Kind: rpcjson.KindString},
		rpcjson.FieldType{Key: "witnessScript", Kind: rpcjson.KindString},
	); err != nil {
		return err
	}
	rs := o.Get("redeemScript")
	ws := o.Get("witnessScript")
	if rpcjson.IsNull(rs) && rpcjson.IsNull(ws) {
		return rpcerr.New(rpcerr.InvalidParameter, "Missing redeemScript/witnessScript")
	}

	var (
		redeem []byte
		err    error
	)
	if !rpcjson.IsNull(ws) {
		redeem, err = rpcjson.ParseHexV(ws, "witnessScript")
	} else {
		redeem, err = rpcjson.ParseHexV(rs, "redeemScript")
	}
	if err != nil {
		return err
	}
	keys.AddScript(redeem)
	witnessOut := script.PayToWitnessScriptHash(redeem)
	keys.AddScript(witnessOut)

	if !rpcjson.IsNull(ws) && !rpcjson.IsNull(rs) && rpcjson.ValStr(ws) != rpcjson.ValStr(rs) {
		rsScript, err := rpcjson.ParseHexV(rs, "redeemScript")
		if err != nil {
			return err
		}
		if !script.Equal(rsScript, witnessOut) {
			return rpcerr.New(rpcerr.InvalidParameter, "redeemScript does not correspond to witnessScript")
		}
	}

	if isP2SH {
		if script.Equal(pkScript, script.PayToScriptHash(redeem)) || script.Equal(pkScript, script.PayToScriptHash(witnessOut)) {
			return nil
		}
		return rpcerr.New(rpcerr.InvalidParameter, "redeemScript/witnessScript does not match scriptPubKey")
	}
	if !script.Equal(pkScript, witnessOut) {
		return rpcerr.New(rpcerr.InvalidParameter, "redeemScript/witnessScript does not match scriptPubKey")
	}
	return nil
}
