// Package transport serves the peg service over JSON-RPC on HTTP.
package transport

import (
	"context"
	"encoding/json"

	"github.com/goodnatureofminers/pegforge/internal/model"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
	"github.com/goodnatureofminers/pegforge/internal/service"
	"github.com/goodnatureofminers/pegforge/internal/signing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PegService interface {
		CreateRawTransaction(ctx context.Context, req rawtx.Request) (string, error)
		SignRawTransactionWithPrevouts(ctx context.Context, txHex string, prevouts, sigHash json.RawMessage) (*signing.Result, error)
		VerifyPegIns(ctx context.Context, txHex string) ([]service.PegInCheck, error)
		DecodePegInWitness(ctx context.Context, txHex string, index int) (*service.PegInWitness, error)
		PegInClaims(ctx context.Context, parentTxID string) ([]model.PegInClaim, error)
	}
)
