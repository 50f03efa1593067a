package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/pegforge/internal/fedpeg"
)

// Snapshot is the chain state one call works against. It is taken once at the
// start of the call and never refreshed.
type Snapshot struct {
	Params *Params
	// Tip is the sidechain height at the time of the snapshot.
	Tip int64
	// Fedpegs are the federation configurations valid for the next block,
	// oldest first.
	Fedpegs []fedpeg.Config
}

var ErrNoFedpegs = errors.New("no federation configuration is active")

// SnapshotSource builds snapshots from live tip information.
type SnapshotSource struct {
	params   *Params
	tips     TipSource
	resolver fedpeg.Resolver
}

func NewSnapshotSource(params *Params, tips TipSource, resolver fedpeg.Resolver) *SnapshotSource {
	return &SnapshotSource{
		params:   params,
		tips:     tips,
		resolver: resolver,
	}
}

// Snapshot reads the tip and resolves the federation scripts in next-block mode.
func (s *SnapshotSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	tip, err := s.tips.BestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tip height: %w", err)
	}
	fedpegs := s.resolver.Configurations(tip, true)
	if len(fedpegs) == 0 {
		return nil, fmt.Errorf("%w at height %d", ErrNoFedpegs, tip+1)
	}
	return &Snapshot{
		Params:  s.params,
		Tip:     tip,
		Fedpegs: fedpegs,
	}, nil
}

// RPCTipSource reads the tip from a sidechain node.
type RPCTipSource struct {
	client BlockCounter
}

func NewRPCTipSource(client BlockCounter) *RPCTipSource {
	return &RPCTipSource{client: client}
}

func (s *RPCTipSource) BestHeight(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.client.GetBlockCount()
}

// StaticTip is a TipSource pinned to one height, for offline use.
type StaticTip int64

func (s StaticTip) BestHeight(context.Context) (int64, error) {
	return int64(s), nil
}
