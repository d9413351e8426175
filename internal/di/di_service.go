package di

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"io"
	"net"
	"net/http"
	"os"
	"polymer/internal/config"
	"polymer/internal/logger"
	"polymer/internal/runner"
	"polymer/internal/web"
	"strconv"
	"sync"
)

type Streams struct {
	In  io.Reader
	Out io.Writer
}

func NewReduceApp(cfg *config.Config, streams Streams, extra ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg, streams),
		fx.Provide(
			logger.ProvideLogger,
			runner.New,
		),
		fx.WithLogger(logger.FxLogger),
		fx.Invoke(
			logger.SyncOnStop,
			RunOnce,
		),
		fx.Options(extra...),
	)
}

func NewServeApp(cfg *config.Config, extra ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			logger.ProvideLogger,
			web.NewReduceHandler,
			NewBoundAddr,
		),
		fx.WithLogger(logger.FxLogger),
		fx.Invoke(
			logger.SyncOnStop,
			StartHttpServer,
		),
		fx.Options(extra...),
	)
}

// RunOnce runs a single reduction once the app has started and then shuts
// the app down with the matching exit code.
func RunOnce(lc fx.Lifecycle, sd fx.Shutdowner, r *runner.Runner, s Streams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// чтение stdin может длиться дольше StartTimeout, поэтому в горутине
			go func() {
				defer close(done)
				err := r.Run(ctx, s.In, s.Out)
				_ = sd.Shutdown(fx.ExitCode(runner.ExitCode(err)))
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// BoundAddr is the address the server actually listens on. With
// http_port 0 the port is only known after Listen.
type BoundAddr struct {
	mu   sync.Mutex
	addr *net.TCPAddr
}

func NewBoundAddr() *BoundAddr {
	return &BoundAddr{}
}

func (b *BoundAddr) set(a net.Addr) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addr, _ = a.(*net.TCPAddr)
}

// Port returns 0 until the server has started.
func (b *BoundAddr) Port() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.addr == nil {
		return 0
	}
	return b.addr.Port
}

func StartHttpServer(lc fx.Lifecycle, h *web.ReduceHandler, cfg *config.Config, log *zap.Logger, bound *BoundAddr) {
	router := chi.NewRouter()
	web.RegisterRoutes(router, h)

	server := &http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(cfg.HttpPort)),
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", server.Addr, err)
			}
			bound.set(ln.Addr())
			log.Info("server started", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("serve error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}

// Execute starts the app, waits for a shutdown signal and stops it.
// The returned value is the process exit code.
func Execute(ctx context.Context, a *fx.App) int {
	startCtx, cancel := context.WithTimeout(ctx, a.StartTimeout())
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		return runner.ExitCode(err)
	}

	sig := <-a.Wait()

	stopCtx, cancel := context.WithTimeout(ctx, a.StopTimeout())
	defer cancel()
	if err := a.Stop(stopCtx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to stop:", err)
		if sig.ExitCode == 0 {
			return runner.ExitInput
		}
	}
	return sig.ExitCode
}
