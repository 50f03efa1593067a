// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once Stop has been called.
var ErrStopped = errors.New("batcher stopped")

// Config bounds a Batcher. Zero fields take the DefaultConfig value.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	// FlushRate caps the number of flushes per second.
	FlushRate int
}

func DefaultConfig() Config {
	return Config{
		FlushSize:     500,
		FlushInterval: 2 * time.Second,
		FlushRate:     10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FlushSize <= 0 {
		c.FlushSize = def.FlushSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = def.FlushInterval
	}
	if c.FlushRate <= 0 {
		c.FlushRate = def.FlushRate
	}
	return c
}

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	cfg           Config
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, cfg Config) *Batcher[T] {
	cfg = cfg.withDefaults()
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, cfg.FlushSize*2),
		cfg:           cfg,
		rl:            ratelimit.New(cfg.FlushRate),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is queued and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues items for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, items ...T) error {
	for _, item := range items {
		select {
		case <-b.stop:
			return ErrStopped
		default:
		}

		select {
		case <-b.stop:
			return ErrStopped
		case <-ctx.Done():
			return ctx.Err()
		case b.itemsCh <- item:
		}
	}
	return nil
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		if err := b.flushCallback(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	// The final flush outlives the loop context so queued items still reach
	// the sink during shutdown.
	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.cfg.FlushSize {
					flush(context.WithoutCancel(ctx))
				}
			default:
				flush(context.WithoutCancel(ctx))
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
