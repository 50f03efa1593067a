// Package app wires the peg service of the binaries from their configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	btcrpcclient "github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/chain"
	"github.com/goodnatureofminers/pegforge/internal/metrics"
	"github.com/goodnatureofminers/pegforge/internal/pegin"
	"github.com/goodnatureofminers/pegforge/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/pegforge/internal/rawtx"
	"github.com/goodnatureofminers/pegforge/internal/repository/clickhouse"
	"github.com/goodnatureofminers/pegforge/internal/service"
	"github.com/goodnatureofminers/pegforge/internal/signing"
	"github.com/goodnatureofminers/pegforge/pkg/batcher"
)

var ErrParentNodeRequired = errors.New("peg-in validation needs a parent node rpc url")

// NodeConfig addresses a node RPC endpoint.
type NodeConfig struct {
	URL      string
	User     string
	Password string
}

type Config struct {
	ChainParams string
	// TipHeight pins the sidechain tip when no sidechain node is configured.
	TipHeight int64
	Sidechain NodeConfig
	// ValidatePegIn checks peg-in depth against the parent node.
	ValidatePegIn bool
	Parent        NodeConfig
	ClickhouseDSN string
	WorkerCount   int
	Journal       batcher.Config
}

// App holds the wired service and the resources it owns.
type App struct {
	Service *service.PegService
	Params  *chain.Params
	// Parent is the observed parent node client, nil without a parent URL.
	Parent  *rpcclient.ObservedClient
	closers []func()
}

// New loads the chain parameters and builds the service. The claim journal
// runs until Close.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	params, schedule, err := chain.LoadFile(cfg.ChainParams)
	if err != nil {
		return nil, err
	}
	a.Params = params
	network := params.Network.Name

	var tips chain.TipSource = chain.StaticTip(cfg.TipHeight)
	if cfg.Sidechain.URL != "" {
		client, err := a.dial(cfg.Sidechain, "sidechain", network)
		if err != nil {
			return nil, fmt.Errorf("init sidechain rpc client: %w", err)
		}
		tips = chain.NewRPCTipSource(client)
	}

	if cfg.Parent.URL != "" {
		if a.Parent, err = a.dial(cfg.Parent, "parent", network); err != nil {
			return nil, fmt.Errorf("init parent rpc client: %w", err)
		}
	}
	var depth pegin.DepthChecker = pegin.AlwaysConfirmed{}
	if cfg.ValidatePegIn {
		if a.Parent == nil {
			return nil, ErrParentNodeRequired
		}
		depth = pegin.NewRPCDepthChecker(a.Parent)
	}

	engine := pegin.NewEngineForParams(params, depth)
	opts := []service.Option{service.WithWorkerCount(cfg.WorkerCount)}

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository(network))
		if err != nil {
			return nil, fmt.Errorf("init repository: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close clickhouse repository", zap.Error(err))
			}
		})

		journal := service.NewClaimJournal(repo, logger.Named("claimJournal"), cfg.Journal)
		journal.Start(ctx)
		a.closers = append(a.closers, journal.Stop)
		opts = append(opts, service.WithClaimJournal(journal, repo))
	}

	a.Service = service.NewPegService(
		chain.NewSnapshotSource(params, tips, schedule),
		rawtx.NewConstructor(engine),
		signing.NewOrchestrator(engine, signing.Presigned{}),
		metrics.NewPegService(network),
		network,
		logger.Named("pegService"),
		opts...,
	)
	logger.Info("peg service ready",
		zap.String("network", network),
		zap.Bool("validate_pegin", cfg.ValidatePegIn),
		zap.Bool("journal", cfg.ClickhouseDSN != ""),
	)
	return a, nil
}

func (a *App) dial(node NodeConfig, name, network string) (*rpcclient.ObservedClient, error) {
	client, err := rpcclient.Dial(node.URL, node.User, node.Password)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { shutdown(client) })
	return rpcclient.NewObservedClient(client, metrics.NewRPCClient(name, network)), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func shutdown(client *btcrpcclient.Client) {
	client.Shutdown()
	client.WaitForShutdown()
}
