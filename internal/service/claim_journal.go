package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/model"
	"github.com/goodnatureofminers/pegforge/pkg/batcher"
)

// ClaimJournal buffers peg-in claims and writes them to the repository in
// batches. It is an audit trail; nothing in the engine reads it back.
type ClaimJournal struct {
	batcher *batcher.Batcher[model.PegInClaim]
}

func NewClaimJournal(repo ClaimRepository, logger *zap.Logger, cfg batcher.Config) *ClaimJournal {
	return &ClaimJournal{
		batcher: batcher.New[model.PegInClaim](
			logger.Named("claimBatcher"),
			func(ctx context.Context, claims []model.PegInClaim) error {
				if err := repo.InsertPegInClaims(ctx, claims); err != nil {
					return err
				}
				logger.Debug("journaled pegin claims", zap.Int("claims", len(claims)))
				return nil
			},
			cfg,
		),
	}
}

func (j *ClaimJournal) Start(ctx context.Context) {
	j.batcher.Start(ctx)
}

// Stop flushes queued claims and waits for the writer to exit.
func (j *ClaimJournal) Stop() {
	j.batcher.Stop()
}

func (j *ClaimJournal) Record(ctx context.Context, claims ...model.PegInClaim) error {
	return j.batcher.Add(ctx, claims...)
}
