package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/elements"
	"github.com/goodnatureofminers/pegforge/internal/model"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
	"github.com/goodnatureofminers/pegforge/internal/script"
	"github.com/goodnatureofminers/pegforge/internal/signing"
	"github.com/goodnatureofminers/pegforge/pkg/safe"
	"github.com/goodnatureofminers/pegforge/pkg/workerpool"
)

const defaultWorkerCount = 8

// Method names, shared with the JSON-RPC surface and the call metrics.
const (
	MethodCreateRawTransaction           = "createrawtransaction"
	MethodSignRawTransactionWithPrevouts = "signrawtransactionwithprevouts"
	MethodVerifyPegIns                   = "verifypegins"
	MethodDecodePegInWitness             = "decodepeginwitness"
	MethodListPegInClaims                = "listpeginclaims"
)

var ErrJournalDisabled = rpcerr.New(rpcerr.Internal, "Peg-in claim journal is not enabled")

// PegInCheck is the verification outcome of one peg-in input.
type PegInCheck struct {
	Index   int    `json:"index"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PegInWitness is the decoded form of a peg-in witness.
type PegInWitness struct {
	Value       json.RawMessage `json:"value"`
	Asset       string          `json:"asset"`
	GenesisHash string          `json:"genesis_hash"`
	ClaimScript string          `json:"claim_script"`
	ParentTxID  string          `json:"parent_txid"`
	ParentTx    string          `json:"parent_tx"`
	TxOutProof  string          `json:"txoutproof"`
}

// PegService exposes the peg engine operations. Every call works against
// one chain snapshot taken at its start.
type PegService struct {
	snapshots    SnapshotSource
	constructor  Constructor
	orchestrator Orchestrator
	journal      Journal
	claims       ClaimReader
	metrics      Metrics
	logger       *zap.Logger
	network      string

	workerCount int
	now         func() time.Time
	newID       func() uuid.UUID
}

type Option func(*PegService)

// WithClaimJournal records constructed peg-in claims in journal and serves
// listpeginclaims from claims.
func WithClaimJournal(journal Journal, claims ClaimReader) Option {
	return func(s *PegService) {
		s.journal = journal
		s.claims = claims
	}
}

// WithWorkerCount bounds the concurrent peg-in checks of one verifypegins call.
func WithWorkerCount(n int) Option {
	return func(s *PegService) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

func NewPegService(
	snapshots SnapshotSource,
	constructor Constructor,
	orchestrator Orchestrator,
	metrics Metrics,
	network string,
	logger *zap.Logger,
	opts ...Option,
) *PegService {
	s := &PegService{
		snapshots:    snapshots,
		constructor:  constructor,
		orchestrator: orchestrator,
		metrics:      metrics,
		logger:       logger,
		network:      network,
		workerCount:  defaultWorkerCount,
		now:          time.Now,
		newID:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRawTransaction builds an unsigned transaction and returns its hex.
// Peg-in claims of the transaction are handed to the journal, if any.
func (s *PegService) CreateRawTransaction(ctx context.Context, req rawtx.Request) (txHex string, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCall(MethodCreateRawTransaction, err, started)
	}()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	construction, err := s.constructor.Construct(ctx, req, snap, rawtx.Options{AllowPegIn: true})
	if err != nil {
		return "", err
	}

	s.journalClaims(ctx, construction, snap)
	return hex.EncodeToString(construction.Tx.Bytes()), nil
}

// SignRawTransactionWithPrevouts re-validates the peg-in inputs of a raw
// transaction and signs it with the scripts found in prevouts.
func (s *PegService) SignRawTransactionWithPrevouts(
	ctx context.Context,
	txHex string,
	prevouts json.RawMessage,
	sigHash json.RawMessage,
) (result *signing.Result, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCall(MethodSignRawTransactionWithPrevouts, err, started)
	}()

	tx, err := decodeTx(txHex)
	if err != nil {
		return nil, err
	}
	hashType, err := signing.ParseSigHash(sigHash)
	if err != nil {
		return nil, err
	}

	keys := script.NewKeyStore()
	coins := signing.Coins{}
	if err := signing.ParsePrevouts(prevouts, keys, coins); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.orchestrator.Sign(ctx, tx, keys, coins, hashType, snap)
}

// VerifyPegIns checks every peg-in input of a raw transaction, in input
// order. Ordinary inputs are skipped.
func (s *PegService) VerifyPegIns(ctx context.Context, txHex string) (checks []PegInCheck, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCall(MethodVerifyPegIns, err, started)
	}()

	tx, err := decodeTx(txHex)
	if err != nil {
		return nil, err
	}
	var indexes []int
	for i, in := range tx.TxIn {
		if in.IsPegin {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return []PegInCheck{}, nil
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return workerpool.Map(ctx, s.workerCount, indexes, func(ctx context.Context, idx int) (PegInCheck, error) {
		status, err := s.orchestrator.CheckPegIn(ctx, tx, idx, snap)
		if status == signing.PegInInvalid && errors.Is(err, rpcerr.ErrInternal) {
			return PegInCheck{}, err
		}
		s.metrics.ObservePegInCheck(status.String())

		check := PegInCheck{Index: idx, Status: status.String()}
		if err != nil {
			check.Message = err.Error()
		}
		return check, nil
	})
}

// DecodePegInWitness decodes the peg-in witness of input index of a raw
// transaction without validating it.
func (s *PegService) DecodePegInWitness(ctx context.Context, txHex string, index int) (decoded *PegInWitness, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCall(MethodDecodePegInWitness, err, started)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, err := decodeTx(txHex)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(tx.TxIn) {
		return nil, rpcerr.New(rpcerr.InvalidParameter, "Invalid parameter, input index out of range")
	}
	in := tx.TxIn[index]
	if !in.IsPegin {
		return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Input %d is not a peg-in", index)
	}

	w, err := pegin.ParseWitness(in.Witness.PeginWitness)
	if err != nil {
		return nil, rpcerr.New(rpcerr.InvalidProof, err.Error())
	}
	return &PegInWitness{
		Value:       rpcjson.ValueFromAmount(w.Value),
		Asset:       w.Asset.String(),
		GenesisHash: w.GenesisHash.String(),
		ClaimScript: hex.EncodeToString(w.ClaimScript),
		ParentTxID:  chainhash.DoubleHashH(w.TxData).String(),
		ParentTx:    hex.EncodeToString(w.TxData),
		TxOutProof:  hex.EncodeToString(w.ProofData),
	}, nil
}

// PegInClaims lists the journaled claims on outputs of a parent transaction.
func (s *PegService) PegInClaims(ctx context.Context, parentTxID string) (claims []model.PegInClaim, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCall(MethodListPegInClaims, err, started)
	}()

	if s.claims == nil {
		return nil, ErrJournalDisabled
	}
	hash, err := rpcjson.ParseHash(parentTxID, "parent_txid")
	if err != nil {
		return nil, err
	}
	claims, err = s.claims.PegInClaimsByParentTx(ctx, s.network, hash.String())
	if err != nil {
		return nil, rpcerr.Newf(rpcerr.Internal, "read peg-in claims: %v", err)
	}
	if claims == nil {
		claims = []model.PegInClaim{}
	}
	return claims, nil
}

func (s *PegService) snapshot(ctx context.Context) (*chain.Snapshot, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		s.logger.Error("chain snapshot failed", zap.Error(err))
		return nil, rpcerr.Newf(rpcerr.Internal, "chain state unavailable: %v", err)
	}
	return snap, nil
}

func (s *PegService) journalClaims(ctx context.Context, construction *rawtx.Construction, snap *chain.Snapshot) {
	if s.journal == nil || len(construction.Claims) == 0 {
		return
	}
	records, err := s.claimRecords(construction, snap)
	if err == nil {
		err = s.journal.Record(ctx, records...)
	}
	s.metrics.ObserveClaims(len(construction.Claims), err)
	if err != nil {
		s.logger.Warn("pegin claims not journaled", zap.Int("claims", len(construction.Claims)), zap.Error(err))
		return
	}
	s.logger.Info("pegin claims queued", zap.Int("claims", len(records)), zap.Int64("tip", snap.Tip))
}

func (s *PegService) claimRecords(construction *rawtx.Construction, snap *chain.Snapshot) ([]model.PegInClaim, error) {
	tip, err := safe.Uint64(snap.Tip)
	if err != nil {
		return nil, fmt.Errorf("sidechain tip: %w", err)
	}
	txid := construction.Tx.TxHash().String()
	createdAt := s.now().UTC()

	records := make([]model.PegInClaim, 0, len(construction.Claims))
	for _, ic := range construction.Claims {
		index, err := safe.Uint32(ic.Index)
		if err != nil {
			return nil, fmt.Errorf("input index: %w", err)
		}
		value, err := safe.Uint64(ic.Claim.Value)
		if err != nil {
			return nil, fmt.Errorf("claim value: %w", err)
		}
		records = append(records, model.PegInClaim{
			ID:            s.newID(),
			Network:       s.network,
			SidechainTxID: txid,
			InputIndex:    index,
			ParentTxID:    ic.Claim.ParentTx.TxHash().String(),
			ParentVout:    ic.Claim.OutputIndex,
			ParentBlock:   ic.Claim.Proof.BlockHash().String(),
			Value:         value,
			ClaimScript:   hex.EncodeToString(ic.Claim.ClaimScript),
			SidechainTip:  tip,
			CreatedAt:     createdAt,
		})
	}
	return records, nil
}

func decodeTx(txHex string) (*elements.Tx, error) {
	b, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, rpcerr.New(rpcerr.Malformed, "TX decode failed")
	}
	tx, err := elements.DeserializeStrict(b)
	if err != nil {
		return nil, rpcerr.New(rpcerr.Malformed, "TX decode failed")
	}
	return tx, nil
}
