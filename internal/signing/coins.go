package signing

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/elements"
)

// SyntheticHeight marks coins built from caller supplied prevout data.
const SyntheticHeight = 1

// Coin is the previous output an input spends.
type Coin struct {
	Out    *elements.TxOut
	Height int32
	Spent  bool
}

// Coins indexes coins by outpoint. A Coins value belongs to one call.
type Coins map[wire.OutPoint]*Coin
