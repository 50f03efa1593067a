package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegforge/internal/model"
)

const pegInClaimsByParentTxQuery = `
SELECT
	id,
	sidechain_txid,
	input_index,
	parent_vout,
	parent_block,
	value,
	claim_script,
	sidechain_tip,
	created_at
FROM pegin_claims FINAL
WHERE network = ? AND parent_txid = CAST(? AS FixedString(64))
ORDER BY created_at ASC, parent_vout ASC`

// PegInClaimsByParentTx returns the journaled claims on outputs of one
// parent transaction, oldest first.
func (r *Repository) PegInClaimsByParentTx(ctx context.Context, network, parentTxID string) (claims []model.PegInClaim, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("pegin_claims_by_parent_tx", err, start)
	}()

	rows, err := r.conn.Query(ctx, pegInClaimsByParentTxQuery, network, parentTxID)
	if err != nil {
		return nil, fmt.Errorf("query pegin claims: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		claim := model.PegInClaim{
			Network:    network,
			ParentTxID: parentTxID,
		}
		if err = rows.Scan(
			&claim.ID,
			&claim.SidechainTxID,
			&claim.InputIndex,
			&claim.ParentVout,
			&claim.ParentBlock,
			&claim.Value,
			&claim.ClaimScript,
			&claim.SidechainTip,
			&claim.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pegin claim: %w", err)
		}
		claims = append(claims, claim)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pegin claims: %w", err)
	}
	return claims, nil
}
