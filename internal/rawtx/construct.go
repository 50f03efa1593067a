// Package rawtx builds unsigned sidechain transactions from the declarative
// input and output descriptions of createrawtransaction-style calls.
package rawtx

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

// Output keys with a meaning other than a destination address.
const (
	KeyData  = "data"
	KeyVData = "vdata"
	KeyFee   = "fee"
	KeyBurn  = "burn"
)

// Request is the raw JSON of one construction call.
type Request struct {
	Inputs      json.RawMessage
	Outputs     json.RawMessage
	LockTime    json.RawMessage
	Replaceable bool
	// Assets maps output names to the asset they pay, hex encoded.
	Assets json.RawMessage
}

// Options selects the optional behaviours of the calling RPC.
type Options struct {
	AllowPegIn bool
	// CollectOutputPubKeys returns blinding keys in Construction.OutputPubKeys
	// instead of storing them in the output nonce.
	CollectOutputPubKeys bool
}

// InputClaim is a peg-in written at Index.
type InputClaim struct {
	Index int
	Claim *pegin.Claim
}

// Construction is the result of Construct.
type Construction struct {
	Tx *elements.Tx
	// OutputPubKeys holds one entry per output when collection was requested.
	// A nil entry is the neutral key.
	OutputPubKeys [][]byte
	Claims        []InputClaim
}

// Constructor assembles transactions, delegating peg-in inputs to a PegInBuilder.
type Constructor struct {
	engine PegInBuilder
}

func NewConstructor(engine PegInBuilder) *Constructor {
	return &Constructor{engine: engine}
}

// Construct builds the transaction described by req against snap.
func (c *Constructor) Construct(ctx context.Context, req Request, snap *chain.Snapshot, opts Options) (*Construction, error) {
	if rpcjson.IsNull(req.Outputs) {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, output argument must be non-null")
	}

	var inputs []json.RawMessage
	if !rpcjson.IsNull(req.Inputs) {
		var err error
		if inputs, err = rpcjson.ParseArray(req.Inputs); err != nil {
			return nil, err
		}
	}

	outputs, err := parseOutputs(req.Outputs)
	if err != nil {
		return nil, err
	}

	tx := elements.NewTx()
	if !rpcjson.IsNull(req.LockTime) {
		lockTime, err := rpcjson.Int64(req.LockTime)
		if err != nil {
			return nil, err
		}
		if lockTime < 0 || lockTime > math.MaxUint32 {
			return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, locktime out of range")
		}
		tx.LockTime = uint32(lockTime)
	}

	var assets rpcjson.Object
	if !rpcjson.IsNull(req.Assets) {
		if assets, err = rpcjson.ParseObject(req.Assets); err != nil {
			return nil, err
		}
	}

	result := &Construction{Tx: tx}
	for idx, raw := range inputs {
		claim, err := c.addInput(ctx, tx, idx, raw, req.Replaceable, snap, opts.AllowPegIn)
		if err != nil {
			return nil, err
		}
		if claim != nil {
			result.Claims = append(result.Claims, InputClaim{Index: idx, Claim: claim})
		}
	}

	if err := addOutputs(result, outputs, assets, snap.Params, opts.CollectOutputPubKeys); err != nil {
		return nil, err
	}

	if req.Replaceable && len(tx.TxIn) > 0 && !tx.SignalsOptInRBF() {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter combination: Sequence number(s) contradict replaceable option")
	}
	return result, nil
}

func defaultSequence(replaceable bool, lockTime uint32) uint32 {
	switch {
	case replaceable:
		return elements.MaxBIP125RBFSequence
	case lockTime != 0:
		return elements.SequenceFinal - 1
	default:
		return elements.SequenceFinal
	}
}

func (c *Constructor) addInput(
	ctx context.Context,
	tx *elements.Tx,
	idx int,
	raw json.RawMessage,
	replaceable bool,
	snap *chain.Snapshot,
	allowPegIn bool,
) (*pegin.Claim, error) {
	o, err := rpcjson.ParseObject(raw)
	if err != nil {
		return nil, err
	}

	txid, err := rpcjson.ParseHashV(o.Get("txid"), "txid")
	if err != nil {
		return nil, err
	}

	vout := o.Get("vout")
	if rpcjson.KindOf(vout) != rpcjson.KindNumber {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, missing vout key")
	}
	n, err := rpcjson.Int32(vout)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, vout cannot be negative")
	}
	if uint32(n) > elements.OutPointIndexMask {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, vout out of range")
	}

	sequence := defaultSequence(replaceable, tx.LockTime)
	if seq := o.Get("sequence"); rpcjson.KindOf(seq) == rpcjson.KindNumber {
		v, err := rpcjson.Int64(seq)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > int64(elements.SequenceFinal) {
			return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, sequence number is out of range")
		}
		sequence = uint32(v)
	}

	tx.AddTxIn(elements.NewTxIn(wire.OutPoint{Hash: txid, Index: uint32(n)}, sequence))

	return c.addPegIn(ctx, tx, idx, o, snap, allowPegIn)
}

func (c *Constructor) addPegIn(ctx context.Context, tx *elements.Tx, idx int, o rpcjson.Object, snap *chain.Snapshot, allowPegIn bool) (*pegin.Claim, error) {
	peginTx := o.Get("pegin_bitcoin_tx")
	peginProof := o.Get("pegin_txout_proof")
	peginScript := o.Get("pegin_claim_script")

	complete := !rpcjson.IsNull(peginTx) && !rpcjson.IsNull(peginProof) && !rpcjson.IsNull(peginScript)
	if !complete || !allowPegIn {
		switch {
		case rpcjson.IsNull(peginTx) && rpcjson.IsNull(peginProof) && rpcjson.IsNull(peginScript):
			return nil, nil
		case allowPegIn:
			return nil, rpcerr.New(rpcerr.InvalidParameter, "Some but not all pegin_ arguments provided")
		default:
			return nil, rpcerr.New(rpcerr.InvalidParameter, "pegin_ arguments provided but this command does not support peg-ins")
		}
	}

	claimHex, err := rpcjson.String(peginScript)
	if err != nil {
		return nil, err
	}
	if !rpcjson.IsHex(claimHex) {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Given claim_script is not hex.")
	}
	claimScript, _ := hex.DecodeString(claimHex)

	txHex, err := rpcjson.String(peginTx)
	if err != nil {
		return nil, err
	}
	proofHex, err := rpcjson.String(peginProof)
	if err != nil {
		return nil, err
	}

	claim, err := c.engine.CreatePegInInput(ctx, tx, idx, [][]byte{claimScript}, parseHexPrefix(txHex), parseHexPrefix(proofHex), snap)
	if err != nil {
		return nil, err
	}
	if !c.engine.CheckHeader(claim.Proof) {
		return nil, rpcerr.New(rpcerr.InvalidProof, "Invalid tx out proof")
	}
	return claim, nil
}

// parseHexPrefix decodes the leading hex digits of s, stopping at the first
// character that is not part of a hex byte. Truncated input then fails to
// deserialize with the matching "malformed" message.
func parseHexPrefix(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}

// parseOutputs accepts a flat object or an array of single-key objects.
func parseOutputs(raw json.RawMessage) (rpcjson.Object, error) {
	if rpcjson.KindOf(raw) == rpcjson.KindObject {
		return rpcjson.ParseObject(raw)
	}

	items, err := rpcjson.ParseArray(raw)
	if err != nil {
		return nil, err
	}
	var flat rpcjson.Object
	for _, item := range items {
		if rpcjson.KindOf(item) != rpcjson.KindObject {
			return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, key-value pair not an object as expected")
		}
		pair, err := rpcjson.ParseObject(item)
		if err != nil {
			return nil, err
		}
		if len(pair) != 1 {
			return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, key-value pair must contain exactly one key")
		}
		flat = append(flat, pair[0])
	}
	return flat, nil
}

func addOutputs(result *Construction, outputs, assets rpcjson.Object, params *chain.Params, collect bool) error {
	tx := result.Tx
	appendOut := func(out *elements.TxOut, pubKey []byte) {
		tx.AddTxOut(out)
		if collect {
			result.OutputPubKeys = append(result.OutputPubKeys, pubKey)
		}
	}

	var (
		fee          *elements.TxOut
		hasData      bool
		destinations = make(map[string]struct{})
	)
	for _, field := range outputs {
		name := field.Key

		asset := params.PolicyAsset
		if v := assets.Get(name); !rpcjson.IsNull(v) {
			var err error
			if asset, err = rpcjson.ParseHashV(v, name); err != nil {
				return err
			}
		}

		switch name {
		case KeyData:
			if hasData {
				return rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, duplicate key: data")
			}
			hasData = true
			data, err := rpcjson.ParseHex(rpcjson.ValStr(field.Value), "Data")
			if err != nil {
				return err
			}
			pkScript, err := script.NullData(data)
			if err != nil {
				return rpcerr.New(rpcerr.InvalidParameter, err.Error())
			}
			appendOut(elements.NewTxOut(asset, 0, pkScript), nil)

		case KeyVData:
			items, err := rpcjson.ParseArray(field.Value)
			if err != nil {
				return err
			}
			pushes := make([][]byte, 0, len(items))
			for _, item := range items {
				s, err := rpcjson.String(item)
				if err != nil {
					return err
				}
				data, err := rpcjson.ParseHex(s, "Data")
				if err != nil {
					return err
				}
				pushes = append(pushes, data)
			}
			pkScript, err := script.NullData(pushes...)
			if err != nil {
				return rpcerr.New(rpcerr.InvalidParameter, err.Error())
			}
			appendOut(elements.NewTxOut(asset, 0, pkScript), nil)

		case KeyFee:
			amount, err := rpcjson.AmountFromValue(field.Value)
			if err != nil {
				return err
			}
			fee = elements.NewTxOut(asset, amount, nil)

		case KeyBurn:
			amount, err := rpcjson.AmountFromValue(field.Value)
			if err != nil {
				return err
			}
			pkScript, _ := script.NullData()
			appendOut(elements.NewTxOut(asset, amount, pkScript), nil)

		default:
			dest, err := params.Network.Decode(name)
			if err != nil {
				return rpcerr.New(rpcerr.InvalidAddress, "Invalid Bitcoin address: "+name)
			}
			if _, dup := destinations[dest.Key()]; dup {
				return rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, duplicated address: "+name)
			}
			destinations[dest.Key()] = struct{}{}

			amount, err := rpcjson.AmountFromValue(field.Value)
			if err != nil {
				return err
			}
			out := elements.NewTxOut(asset, amount, dest.Script)
			if dest.IsBlinded() && !collect {
				out.Nonce = elements.ConfidentialNonce{Commitment: dest.BlindingKey}
			}
			appendOut(out, dest.BlindingKey)
		}
	}

	if fee != nil {
		if amount, _ := fee.Value.Explicit(); amount > 0 {
			appendOut(fee, nil)
		}
	}
	return nil
}
