package chain

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TipSource reports the current sidechain tip height.
	TipSource interface {
		BestHeight(ctx context.Context) (int64, error)
	}
	BlockCounter interface {
		GetBlockCount() (int64, error)
	}
)
