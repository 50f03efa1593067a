package service

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/model"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
	"github.com/goodnatureofminers/pegforge/internal/script"
	"github.com/goodnatureofminers/pegforge/internal/signing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	SnapshotSource interface {
		Snapshot(ctx context.Context) (*chain.Snapshot, error)
	}
	Constructor interface {
		Construct(ctx context.Context, req rawtx.Request, snap *chain.Snapshot, opts rawtx.Options) (*rawtx.Construction, error)
	}
	Orchestrator interface {
		CheckPegIn(ctx context.Context, tx *elements.Tx, idx int, snap *chain.Snapshot) (signing.PegInStatus, error)
		Sign(
			ctx context.Context,
			tx *elements.Tx,
			keys *script.KeyStore,
			coins signing.Coins,
			hashType txscript.SigHashType,
			snap *chain.Snapshot,
		) (*signing.Result, error)
	}
	// ClaimRepository is the persistent side of the claim journal.
	ClaimRepository interface {
		InsertPegInClaims(ctx context.Context, claims []model.PegInClaim) error
		PegInClaimsByParentTx(ctx context.Context, network, parentTxID string) ([]model.PegInClaim, error)
	}
	Journal interface {
		Record(ctx context.Context, claims ...model.PegInClaim) error
	}
	ClaimReader interface {
		PegInClaimsByParentTx(ctx context.Context, network, parentTxID string) ([]model.PegInClaim, error)
	}
	Metrics interface {
		ObserveCall(method string, err error, started time.Time)
		ObservePegInCheck(status string)
		ObserveClaims(claims int, err error)
	}
)
