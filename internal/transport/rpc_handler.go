package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/model"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
	"github.com/goodnatureofminers/pegforge/internal/rpcjson"
	"github.com/goodnatureofminers/pegforge/internal/service"
)

const (
	maxRequestBytes = 16 << 20
	requestIDHeader = "X-Request-Id"
)

type request struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type response struct {
	Result any               `json:"result"`
	Error  *btcjson.RPCError `json:"error"`
	ID     json.RawMessage   `json:"id"`
}

type rpcMethod struct {
	// args names the positional parameters, used to map named ones.
	args     []string
	required int
	call     func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error)
}

var rpcMethods = map[string]rpcMethod{
	service.MethodCreateRawTransaction: {
		args:     []string{"inputs", "outputs", "locktime", "replaceable", "output_assets"},
		required: 2,
		call: func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error) {
			replaceable := false
			if !rpcjson.IsNull(arg(args, 3)) {
				var err error
				if replaceable, err = rpcjson.Bool(arg(args, 3)); err != nil {
					return nil, err
				}
			}
			return svc.CreateRawTransaction(ctx, rawtx.Request{
				Inputs:      arg(args, 0),
				Outputs:     arg(args, 1),
				LockTime:    arg(args, 2),
				Replaceable: replaceable,
				Assets:      arg(args, 4),
			})
		},
	},
	service.MethodSignRawTransactionWithPrevouts: {
		args:     []string{"hexstring", "prevtxs", "sighashtype"},
		required: 1,
		call: func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error) {
			txHex, err := rpcjson.String(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return svc.SignRawTransactionWithPrevouts(ctx, txHex, arg(args, 1), arg(args, 2))
		},
	},
	service.MethodVerifyPegIns: {
		args:     []string{"hexstring"},
		required: 1,
		call: func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error) {
			txHex, err := rpcjson.String(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return svc.VerifyPegIns(ctx, txHex)
		},
	},
	service.MethodDecodePegInWitness: {
		args:     []string{"hexstring", "input_index"},
		required: 2,
		call: func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error) {
			txHex, err := rpcjson.String(arg(args, 0))
			if err != nil {
				return nil, err
			}
			index, err := rpcjson.Int32(arg(args, 1))
			if err != nil {
				return nil, err
			}
			return svc.DecodePegInWitness(ctx, txHex, int(index))
		},
	},
	service.MethodListPegInClaims: {
		args:     []string{"parent_txid"},
		required: 1,
		call: func(ctx context.Context, svc PegService, args []json.RawMessage) (any, error) {
			parentTxID, err := rpcjson.String(arg(args, 0))
			if err != nil {
				return nil, err
			}
			claims, err := svc.PegInClaims(ctx, parentTxID)
			if err != nil {
				return nil, err
			}
			return claimsJSON(claims), nil
		},
	},
}

// RPCHandler dispatches JSON-RPC 1.0 requests to the peg service.
type RPCHandler struct {
	svc    PegService
	logger *zap.Logger
}

func NewRPCHandler(svc PegService, logger *zap.Logger) *RPCHandler {
	return &RPCHandler{svc: svc, logger: logger}
}

// Router mounts the RPC endpoint on POST / and a liveness probe on GET /health.
func (h *RPCHandler) Router() http.Handler {
	mux := httprouter.New()
	mux.POST("/", h.serveRPC)
	mux.GET("/health", h.health)
	mux.PanicHandler = h.recoverPanic
	return mux
}

func (h *RPCHandler) recoverPanic(w http.ResponseWriter, r *http.Request, v any) {
	h.logger.Error("rpc handler panic",
		zap.String("path", r.URL.Path),
		zap.Any("panic", v),
		zap.Stack("stack"),
	)
	writeJSON(w, http.StatusInternalServerError, response{Error: btcjson.ErrRPCInternal}, h.logger)
}

func (h *RPCHandler) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

func (h *RPCHandler) serveRPC(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := uuid.NewString()
	w.Header().Set(requestIDHeader, requestID)
	logger := h.logger.With(zap.String("request_id", requestID))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: btcjson.ErrRPCParse}, logger)
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: btcjson.ErrRPCParse}, logger)
			return
		}
		replies := make([]response, 0, len(batch))
		for _, raw := range batch {
			reply, _ := h.handle(r.Context(), raw, logger)
			replies = append(replies, reply)
		}
		writeJSON(w, http.StatusOK, replies, logger)
		return
	}

	reply, status := h.handle(r.Context(), trimmed, logger)
	writeJSON(w, status, reply, logger)
}

// handle runs one request and returns its reply with the HTTP status used
// when it is sent on its own.
func (h *RPCHandler) handle(ctx context.Context, raw json.RawMessage, logger *zap.Logger) (response, int) {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return response{Error: btcjson.ErrRPCParse}, http.StatusBadRequest
	}
	if req.Method == "" {
		return response{ID: req.ID, Error: btcjson.ErrRPCInvalidRequest}, http.StatusBadRequest
	}
	method, ok := rpcMethods[req.Method]
	if !ok {
		return response{ID: req.ID, Error: btcjson.ErrRPCMethodNotFound}, http.StatusNotFound
	}

	started := time.Now()
	result, err := h.call(ctx, req.Method, method, req.Params)
	if err != nil {
		rpcErr := rpcerr.ToRPC(err)
		if _, ok := rpcerr.CategoryOf(err); !ok || errors.Is(err, rpcerr.ErrInternal) {
			logger.Error("rpc call failed", zap.String("method", req.Method), zap.Error(err))
		} else {
			logger.Debug("rpc call rejected", zap.String("method", req.Method), zap.Int("code", int(rpcErr.Code)), zap.Error(err))
		}
		return response{ID: req.ID, Error: rpcErr}, http.StatusInternalServerError
	}
	logger.Debug("rpc call", zap.String("method", req.Method), zap.Duration("took", time.Since(started)))
	return response{ID: req.ID, Result: result}, http.StatusOK
}

func (h *RPCHandler) call(ctx context.Context, name string, method rpcMethod, params json.RawMessage) (any, error) {
	args, err := positional(name, method, params)
	if err != nil {
		return nil, err
	}
	for i := 0; i < method.required; i++ {
		if arg(args, i) == nil {
			return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Missing required parameter %s for %s", method.args[i], name)
		}
	}
	return method.call(ctx, h.svc, args)
}

// positional maps params onto the method's argument list. Absent arguments
// are nil, explicit JSON nulls are kept.
func positional(name string, method rpcMethod, params json.RawMessage) ([]json.RawMessage, error) {
	switch rpcjson.KindOf(params) {
	case rpcjson.KindNull:
		return nil, nil
	case rpcjson.KindArray:
		args, err := rpcjson.ParseArray(params)
		if err != nil {
			return nil, err
		}
		if len(args) > len(method.args) {
			return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Too many parameters for %s: got %d, accepts %d", name, len(args), len(method.args))
		}
		return args, nil
	case rpcjson.KindObject:
		named, err := rpcjson.ParseObject(params)
		if err != nil {
			return nil, err
		}
		args := make([]json.RawMessage, len(method.args))
		for _, field := range named {
			idx := indexOf(method.args, field.Key)
			if idx < 0 {
				return nil, rpcerr.Newf(rpcerr.InvalidParameter, "Unknown named parameter %s", field.Key)
			}
			args[idx] = field.Value
		}
		return args, nil
	default:
		return nil, rpcerr.New(rpcerr.Type, "Params must be an array or object")
	}
}

func arg(args []json.RawMessage, i int) json.RawMessage {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

type claimJSON struct {
	ID            string          `json:"id"`
	Network       string          `json:"network"`
	SidechainTxID string          `json:"sidechain_txid"`
	InputIndex    uint32          `json:"input_index"`
	ParentTxID    string          `json:"parent_txid"`
	ParentVout    uint32          `json:"parent_vout"`
	ParentBlock   string          `json:"parent_block"`
	Value         json.RawMessage `json:"value"`
	ClaimScript   string          `json:"claim_script"`
	SidechainTip  uint64          `json:"sidechain_tip"`
	CreatedAt     string          `json:"created_at"`
}

func claimsJSON(claims []model.PegInClaim) []claimJSON {
	out := make([]claimJSON, 0, len(claims))
	for _, c := range claims {
		out = append(out, claimJSON{
			ID:            c.ID.String(),
			Network:       c.Network,
			SidechainTxID: c.SidechainTxID,
			InputIndex:    c.InputIndex,
			ParentTxID:    c.ParentTxID,
			ParentVout:    c.ParentVout,
			ParentBlock:   c.ParentBlock,
			Value:         rpcjson.ValueFromAmount(int64(c.Value)), //nolint:gosec // bounded by MaxMoney
			ClaimScript:   c.ClaimScript,
			SidechainTip:  c.SidechainTip,
			CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}
