package signing

import (
	"encoding/json"

	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
)

var sigHashTypes = map[string]txscript.SigHashType{
	"ALL":                 txscript.SigHashAll,
	"ALL|ANYONECANPAY":    txscript.SigHashAll | txscript.SigHashAnyOneCanPay,
	"NONE":                txscript.SigHashNone,
	"NONE|ANYONECANPAY":   txscript.SigHashNone | txscript.SigHashAnyOneCanPay,
	"SINGLE":              txscript.SigHashSingle,
	"SINGLE|ANYONECANPAY": txscript.SigHashSingle | txscript.SigHashAnyOneCanPay,
}

// ParseSigHash parses a sighash name. Null selects ALL.
func ParseSigHash(raw json.RawMessage) (txscript.SigHashType, error) {
	if rpcjson.IsNull(raw) {
		return txscript.SigHashAll, nil
	}
	name, err := rpcjson.String(raw)
	if err != nil {
		return 0, err
	}
	hashType, ok := sigHashTypes[name]
	if !ok {
		return 0, rpcerr.New(rpcerr.InvalidParameter, name+" is not a valid sighash parameter.")
	}
	return hashType, nil
}
