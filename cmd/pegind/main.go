package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/pegforge/internal/app"
	"github.com/goodnatureofminers/pegforge/internal/logging"
	"github.com/goodnatureofminers/pegforge/internal/transport"
	"github.com/goodnatureofminers/pegforge/pkg/batcher"
)

var config struct {
	Addr        string `long:"addr" env:"PEGFORGE_ADDR" description:"json-rpc listen addr" default:":7041"`
	MetricsAddr string `long:"metrics-addr" env:"PEGFORGE_METRICS_ADDR" description:"metrics listen addr" default:":9100"`
	ChainParams string `long:"chain-params" env:"PEGFORGE_CHAIN_PARAMS" description:"chain parameters file" default:"configs/elementsregtest.yaml"`
	TipHeight   int64  `long:"tip-height" env:"PEGFORGE_TIP_HEIGHT" description:"sidechain tip height used without a sidechain node"`

	SidechainRPCURL      string `long:"sidechain-rpc-url" env:"PEGFORGE_SIDECHAIN_RPC_URL" description:"sidechain node rpc url"`
	SidechainRPCUser     string `long:"sidechain-rpc-user" env:"PEGFORGE_SIDECHAIN_RPC_USER" description:"sidechain node rpc user"`
	SidechainRPCPassword string `long:"sidechain-rpc-password" env:"PEGFORGE_SIDECHAIN_RPC_PASSWORD" description:"sidechain node rpc password"`

	ValidatePegIn     bool   `long:"validate-pegin" env:"PEGFORGE_VALIDATE_PEGIN" description:"check peg-in depth against the parent node"`
	ParentRPCURL      string `long:"parent-rpc-url" env:"PEGFORGE_PARENT_RPC_URL" description:"parent node rpc url"`
	ParentRPCUser     string `long:"parent-rpc-user" env:"PEGFORGE_PARENT_RPC_USER" description:"parent node rpc user"`
	ParentRPCPassword string `long:"parent-rpc-password" env:"PEGFORGE_PARENT_RPC_PASSWORD" description:"parent node rpc password"`

	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"PEGFORGE_CLICKHOUSE_DSN" description:"clickhouse dsn, enables the claim journal"`
	JournalFlushSize     int           `long:"journal-flush-size" env:"PEGFORGE_JOURNAL_FLUSH_SIZE" description:"claims per journal flush" default:"500"`
	JournalFlushInterval time.Duration `long:"journal-flush-interval" env:"PEGFORGE_JOURNAL_FLUSH_INTERVAL" description:"max time between journal flushes" default:"5s"`
	WorkerCount          int           `long:"worker-count" env:"PEGFORGE_WORKER_COUNT" description:"concurrent peg-in checks per call" default:"8"`

	LogFile       string `long:"log-file" env:"PEGFORGE_LOG_FILE" description:"also write json logs to this file"`
	LogMaxSizeMB  int    `long:"log-max-size" env:"PEGFORGE_LOG_MAX_SIZE" description:"log file size in MB before rotation" default:"100"`
	LogMaxBackups int    `long:"log-max-backups" env:"PEGFORGE_LOG_MAX_BACKUPS" description:"rotated log files to keep" default:"5"`
	LogMaxAgeDays int    `long:"log-max-age" env:"PEGFORGE_LOG_MAX_AGE" description:"days to keep rotated log files" default:"28"`
	Debug         bool   `long:"debug" env:"PEGFORGE_DEBUG" description:"debug logging"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("can't load .env: " + err.Error())
	}
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		panic("can't parse arguments: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := logging.New(logging.FileConfig{
		Path:       config.LogFile,
		MaxSizeMB:  config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
		MaxAgeDays: config.LogMaxAgeDays,
	}, config.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	journal := batcher.DefaultConfig()
	journal.FlushSize = config.JournalFlushSize
	journal.FlushInterval = config.JournalFlushInterval

	a, err := app.New(ctx, app.Config{
		ChainParams: config.ChainParams,
		TipHeight:   config.TipHeight,
		Sidechain: app.NodeConfig{
			URL:      config.SidechainRPCURL,
			User:     config.SidechainRPCUser,
			Password: config.SidechainRPCPassword,
		},
		ValidatePegIn: config.ValidatePegIn,
		Parent: app.NodeConfig{
			URL:      config.ParentRPCURL,
			User:     config.ParentRPCUser,
			Password: config.ParentRPCPassword,
		},
		ClickhouseDSN: config.ClickhouseDSN,
		WorkerCount:   config.WorkerCount,
		Journal:       journal,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to init peg service", zap.Error(err))
	}
	defer a.Close()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := newServer(config.MetricsAddr, metricsMux)
	go func() {
		logger.Info("Starting metrics server", zap.String("addr", config.MetricsAddr))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve metrics", zap.Error(err))
		}
	}()

	handler := transport.NewRPCHandler(a.Service, logger.Named("rpc"))
	s := newServer(config.Addr, cors.Default().Handler(handler.Router()))
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}
