package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/app"
	"github.com/goodnatureofminers/pegforge/internal/clock"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
)

type globalOptions struct {
	ChainParams string `long:"chain-params" env:"PEGFORGE_CHAIN_PARAMS" description:"chain parameters file" default:"configs/elementsregtest.yaml"`
	TipHeight   int64  `long:"tip-height" env:"PEGFORGE_TIP_HEIGHT" description:"sidechain tip height used without a sidechain node"`

	SidechainRPCURL      string `long:"sidechain-rpc-url" env:"PEGFORGE_SIDECHAIN_RPC_URL" description:"sidechain node rpc url"`
	SidechainRPCUser     string `long:"sidechain-rpc-user" env:"PEGFORGE_SIDECHAIN_RPC_USER" description:"sidechain node rpc user"`
	SidechainRPCPassword string `long:"sidechain-rpc-password" env:"PEGFORGE_SIDECHAIN_RPC_PASSWORD" description:"sidechain node rpc password"`

	ValidatePegIn     bool   `long:"validate-pegin" env:"PEGFORGE_VALIDATE_PEGIN" description:"check peg-in depth against the parent node"`
	ParentRPCURL      string `long:"parent-rpc-url" env:"PEGFORGE_PARENT_RPC_URL" description:"parent node rpc url"`
	ParentRPCUser     string `long:"parent-rpc-user" env:"PEGFORGE_PARENT_RPC_USER" description:"parent node rpc user"`
	ParentRPCPassword string `long:"parent-rpc-password" env:"PEGFORGE_PARENT_RPC_PASSWORD" description:"parent node rpc password"`

	Debug bool `long:"debug" description:"debug logging"`
}

var (
	global globalOptions
	ctx    context.Context
)

func (o globalOptions) open() (*app.App, *zap.Logger, error) {
	logger := zap.NewNop()
	if o.Debug {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	a, err := app.New(ctx, app.Config{
		ChainParams:   o.ChainParams,
		TipHeight:     o.TipHeight,
		Sidechain:     app.NodeConfig{URL: o.SidechainRPCURL, User: o.SidechainRPCUser, Password: o.SidechainRPCPassword},
		ValidatePegIn: o.ValidatePegIn,
		Parent:        app.NodeConfig{URL: o.ParentRPCURL, User: o.ParentRPCUser, Password: o.ParentRPCPassword},
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

type createCommand struct {
	Inputs      string `long:"inputs" description:"inputs json array" default:"[]"`
	Outputs     string `long:"outputs" description:"outputs json object or array" required:"true"`
	LockTime    int64  `long:"locktime" description:"transaction lock time"`
	Replaceable bool   `long:"replaceable" description:"signal opt-in replace-by-fee"`
	Assets      string `long:"output-assets" description:"json object of output assets"`
}

func (c *createCommand) Execute([]string) error {
	a, _, err := global.open()
	if err != nil {
		return err
	}
	defer a.Close()

	req := rawtx.Request{
		Inputs:      json.RawMessage(c.Inputs),
		Outputs:     json.RawMessage(c.Outputs),
		LockTime:    json.RawMessage(fmt.Sprint(c.LockTime)),
		Replaceable: c.Replaceable,
	}
	if c.Assets != "" {
		req.Assets = json.RawMessage(c.Assets)
	}
	txHex, err := a.Service.CreateRawTransaction(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(txHex)
	return nil
}

type verifyCommand struct {
	Args struct {
		Hex string `positional-arg-name:"hexstring" description:"raw transaction hex"`
	} `positional-args:"true" required:"true"`
}

func (c *verifyCommand) Execute([]string) error {
	a, _, err := global.open()
	if err != nil {
		return err
	}
	defer a.Close()

	checks, err := a.Service.VerifyPegIns(ctx, c.Args.Hex)
	if err != nil {
		return err
	}
	return printJSON(checks)
}

type awaitMaturityCommand struct {
	BlockHash string        `long:"block-hash" description:"parent block holding the peg-in transaction" required:"true"`
	MinDepth  int64         `long:"min-depth" description:"confirmations to wait for, defaults to the chain's peg-in depth"`
	Interval  time.Duration `long:"interval" description:"poll interval" default:"30s"`
}

func (c *awaitMaturityCommand) Execute([]string) error {
	hash, err := chainhash.NewHashFromStr(c.BlockHash)
	if err != nil {
		return fmt.Errorf("parse block hash: %w", err)
	}
	a, logger, err := global.open()
	if err != nil {
		return err
	}
	defer a.Close()
	if a.Parent == nil {
		return app.ErrParentNodeRequired
	}

	minDepth := c.MinDepth
	if minDepth <= 0 {
		minDepth = a.Params.PeginMinDepth
	}
	depth := pegin.NewRPCDepthChecker(a.Parent)
	err = clock.Poll(ctx, c.Interval, func(ctx context.Context) (bool, error) {
		ok, err := depth.Confirmed(ctx, *hash, minDepth)
		if err != nil {
			logger.Warn("depth check failed", zap.Error(err))
			return false, nil
		}
		return ok, nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s has %d confirmations\n", hash, minDepth)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	var stop context.CancelFunc
	ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := flags.NewParser(&global, flags.Default)
	commands := []struct {
		name, short string
		data        any
	}{
		{"create", "build an unsigned transaction", &createCommand{}},
		{"verify", "check the peg-in inputs of a transaction", &verifyCommand{}},
		{"await-maturity", "wait until a parent block is deep enough to claim from", &awaitMaturityCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.short, c.data); err != nil {
			panic(err)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		stop()
		os.Exit(1)
	}
}
