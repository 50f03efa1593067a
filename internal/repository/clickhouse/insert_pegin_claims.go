package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegforge/internal/model"
)

const insertPegInClaimsQuery = `
INSERT INTO pegin_claims (
	id,
	network,
	sidechain_txid,
	input_index,
	parent_txid,
	parent_vout,
	parent_block,
	value,
	claim_script,
	sidechain_tip,
	created_at
) VALUES`

// InsertPegInClaims stores claim rows in ClickHouse.
func (r *Repository) InsertPegInClaims(ctx context.Context, claims []model.PegInClaim) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_pegin_claims", err, start)
	}()

	if len(claims) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertPegInClaimsQuery)
	if err != nil {
		return fmt.Errorf("prepare pegin claims batch: %w", err)
	}

	for _, c := range claims {
		if err = batch.Append(
			c.ID,
			c.Network,
			c.SidechainTxID,
			c.InputIndex,
			c.ParentTxID,
			c.ParentVout,
			c.ParentBlock,
			c.Value,
			c.ClaimScript,
			c.SidechainTip,
			c.CreatedAt,
		); err != nil {
			return fmt.Errorf("append pegin claim %s: %w", c.ID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert pegin claims: %w", err)
	}
	return nil
}
