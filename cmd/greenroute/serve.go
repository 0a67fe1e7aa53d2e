package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/greenroute/api"
	"github.com/katalvlaran/greenroute/observability"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing API over HTTP",
		Long: `Serve the routing API over HTTP until interrupted. SIGHUP reloads both
tables; a failed reload keeps the network that is already loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), cmd)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")

	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	metrics := observability.NewMetrics(true)
	svc, err := a.service(ctx, metrics)
	if err != nil {
		return err
	}

	sc := a.cfg.Server
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", sc.Addr, err)
	}
	server := &http.Server{
		Handler:      api.NewServer(svc, a.logger, metrics).Handler(),
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		ErrorLog:     zap.NewStdLog(a.logger.Named("http")),
	}

	serverErrs := make(chan error, 1)
	go func() {
		defer close(serverErrs)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- err
		}
	}()
	a.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
	fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", ln.Addr())

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case err := <-serverErrs:
			if err == nil {
				return nil
			}
			return fmt.Errorf("http server: %w", err)
		case <-hup:
			if err := svc.Reload(ctx); err != nil {
				a.logger.Error("reload failed; keeping current network", zap.Error(err))
			}
		case <-ctx.Done():
			a.logger.Info("shutting down", zap.Duration("timeout", sc.ShutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				_ = server.Close()
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
			return nil
		}
	}
}
