package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"polymer/internal/app"
	"polymer/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ExitOK        = 0
	ExitInput     = 1
	ExitUsage     = 2
	ExitInvariant = 3
)

type Runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	strategy app.Strategy
	extra    []app.Option
}

func New(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	s, err := app.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		strategy: s,
	}, nil
}

// Run reads one polymer from in, reduces it and writes the result to out.
// Nothing is written to out when any step fails.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := r.logger.With(zap.String("run_id", uuid.NewString()))

	p, err := app.ReadPolymer(in, r.cfg.MaxLineLength)
	if err != nil {
		log.Error("failed to read input", zap.Error(err))
		return err
	}
	log.Info("input read", zap.Int("chars", len(p)))

	if err := ctx.Err(); err != nil {
		return err
	}

	opts := append([]app.Option(nil), r.extra...)
	if r.cfg.Verbose {
		opts = append(opts, app.WithTracer(func(s app.Step) {
			log.Debug("reaction",
				zap.Int("step", s.N),
				zap.Int("at", s.At),
				zap.String("pair", s.Pair),
				zap.Int("len", s.Len),
			)
		}))
	}

	res, err := r.strategy.Reduce(p, opts...)
	if err != nil {
		log.Error("reduction aborted", zap.Error(err))
		return err
	}

	if _, err := fmt.Fprintln(out, res.Polymer.String()); err != nil {
		log.Error("failed to write output", zap.Error(err))
		return fmt.Errorf("write output: %w", err)
	}
	log.Info("reduction complete",
		zap.Int("chars", res.OutputLen),
		zap.Int("reactions", res.Reactions),
		zap.String("strategy", string(res.Strategy)),
	)
	return nil
}

// ExitCode maps a Run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, app.ErrInvariantViolation):
		return ExitInvariant
	case errors.Is(err, app.ErrInvalidInput):
		return ExitUsage
	default:
		return ExitInput
	}
}
