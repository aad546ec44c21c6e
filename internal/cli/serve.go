package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides server.addr from the config file." placeholder:"HOST:PORT"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	addr := ctx.Config.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	timeout, err := time.ParseDuration(ctx.Config.Server.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
	}

	handler, err := server.NewHandler(server.Options{Manager: ctx.Manager(), Logger: logger.Logger})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("API listening", "addr", ln.Addr().String(), "storage", ctx.Store.Name())
	fmt.Printf("stridex API listening on http://%s\n", ln.Addr())
	return serve(sigCtx, ln, handler, timeout)
}

// serve runs the HTTP server on ln until ctx is done, then drains it within timeout
func serve(ctx context.Context, ln net.Listener, handler http.Handler, timeout time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API", "timeout", timeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
