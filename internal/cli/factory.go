package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// NewStore builds the run store selected by cfg.Store.Backend.
func NewStore(cfg *config.Config) (ports.RunStore, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil
	case config.StoreFile:
		return file.New(cfg.Store.Path), nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// createEngine initializes a Turing engine with standard CLI conventions.
// A nil store leaves runs unrecorded.
func createEngine(cfg *config.Config, store ports.RunStore, logger *slog.Logger, hooks ...domain.LifecycleHooks) *turing.Engine {
	opts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithStepLimit(cfg.Run.StepLimit),
	}
	if store != nil {
		opts = append(opts, turing.WithStore(store))
	}

	merged := createDebugHooks(logger)
	for _, h := range hooks {
		merged = merged.Merge(h)
	}
	opts = append(opts, turing.WithLifecycleHooks(merged))

	return turing.New(opts...)
}

// createServerEngine is createEngine for network surfaces. Requests always run
// bounded: an unbounded limit falls back to turing.DefaultStepLimit.
func createServerEngine(cfg *config.Config, store ports.RunStore, logger *slog.Logger, hooks ...domain.LifecycleHooks) *turing.Engine {
	bounded := *cfg
	if bounded.Run.StepLimit <= 0 {
		logger.Warn("Unbounded step limit is not allowed when serving, using default", "step_limit", turing.DefaultStepLimit)
		bounded.Run.StepLimit = turing.DefaultStepLimit
	}
	return createEngine(&bounded, store, logger, hooks...)
}

// createDebugHooks logs every engine event at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Grew {
				logger.DebugContext(ctx, "Tape Grew", "step", e.Step, "tape_len", e.TapeLen)
			}
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			if e.Limited {
				logger.WarnContext(ctx, "Step Limit Reached", "machine", e.Machine, "steps", e.Steps)
			}
		},
	}
}

// closeStore releases stores that hold connections.
func closeStore(store ports.RunStore, logger *slog.Logger) {
	if c, ok := store.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close run store", "err", err)
		}
	}
}
