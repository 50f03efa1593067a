package signing

import (
	"context"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/script"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// PegInVerifier re-validates the peg-in witness of an input.
	PegInVerifier interface {
		Verify(ctx context.Context, stack [][]byte, snap *chain.Snapshot, prevout wire.OutPoint, checkDepth bool) error
	}
	// Signer fills in input signatures. It reports whether every input is
	// fully signed and the message of each input it could not sign.
	Signer interface {
		Sign(ctx context.Context, tx *elements.Tx, keys *script.KeyStore, coins Coins, hashType txscript.SigHashType) (bool, map[int]string, error)
	}
)
