package pegin

import (
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
)

// WitnessStackSize is the number of items in a peg-in witness.
const WitnessStackSize = 6

// Messages reported by peg-in witness validation.
var (
	ErrStackSize          = errors.New("Not enough stack items.")
	ErrValueEncoding      = errors.New("Could not deserialize value.")
	ErrValueRange         = errors.New("Value was not in valid value range.")
	ErrAssetSize          = errors.New("Asset type was not 32 bytes.")
	ErrGenesisSize        = errors.New("Genesis blockhash was not 32 bytes.")
	ErrMerkleBlock        = errors.New("Could not extract block and tx from merkleblock.")
	ErrParentHeader       = errors.New("Parent proof of work is invalid or insufficient.")
	ErrPeginTx            = errors.New("Peg-in tx is invalid.")
	ErrProofMismatch      = errors.New("Merkle proof and transaction don't match.")
	ErrGenesisMismatch    = errors.New("Parent genesis blockhash is wrong.")
	ErrAssetMismatch      = errors.New("Asset type is wrong.")
	ErrNeedsConfirmations = errors.New("Needs more confirmations.")
)

// Witness is the decoded peg-in witness stack.
type Witness struct {
	Value       int64
	Asset       chainhash.Hash
	GenesisHash chainhash.Hash
	ClaimScript []byte
	// TxData is the parent transaction serialized without witness.
	TxData []byte
	// ProofData is the serialized merkle block.
	ProofData []byte
}

// Stack encodes the witness as stack items.
func (w *Witness) Stack() [][]byte {
	value := make([]byte, 8)
	binary.LittleEndian.PutUint64(value, uint64(w.Value))
	return [][]byte{
		value,
		cloneBytes(w.Asset[:]),
		cloneBytes(w.GenesisHash[:]),
		cloneBytes(w.ClaimScript),
		cloneBytes(w.TxData),
		cloneBytes(w.ProofData),
	}
}

// ParseWitness decodes a peg-in witness stack, checking its shape and value
// range but none of its proofs.
func ParseWitness(stack [][]byte) (*Witness, error) {
	if len(stack) != WitnessStackSize {
		return nil, ErrStackSize
	}
	if len(stack[0]) != 8 {
		return nil, ErrValueEncoding
	}
	value := int64(binary.LittleEndian.Uint64(stack[0]))
	if value < 0 || value > rpcjson.MaxMoney {
		return nil, ErrValueRange
	}
	if len(stack[1]) != chainhash.HashSize {
		return nil, ErrAssetSize
	}
	if len(stack[2]) != chainhash.HashSize {
		return nil, ErrGenesisSize
	}

	w := &Witness{
		Value:       value,
		ClaimScript: cloneBytes(stack[3]),
		TxData:      cloneBytes(stack[4]),
		ProofData:   cloneBytes(stack[5]),
	}
	copy(w.Asset[:], stack[1])
	copy(w.GenesisHash[:], stack[2])
	return w, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
