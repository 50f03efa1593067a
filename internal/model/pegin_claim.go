// Package model holds the records the peg service persists.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PegInClaim is one peg-in input written into a constructed sidechain
// transaction, as recorded in the claim journal.
type PegInClaim struct {
	ID      uuid.UUID
	Network string
	// SidechainTxID is the id of the unsigned transaction carrying the claim.
	// Signing does not change it.
	SidechainTxID string
	InputIndex    uint32
	ParentTxID    string
	ParentVout    uint32
	ParentBlock   string
	Value         uint64
	ClaimScript   string
	SidechainTip  uint64
	CreatedAt     time.Time
}
