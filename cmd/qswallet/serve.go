package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexZinkM/qsafe-wallet/internal/api"
	"github.com/AlexZinkM/qsafe-wallet/internal/handler"
	"github.com/AlexZinkM/qsafe-wallet/internal/mnemonic"
	"github.com/AlexZinkM/qsafe-wallet/internal/session"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Runs the wallet HTTP API",
		RunE:  serveFunc,
	}
}

func serveFunc(c *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s := session.New(a.store,
		session.WithLogger(a.log),
		session.WithMetrics(a.metrics),
		session.WithEngine(mnemonic.NewEngine(a.cfg.StrictMnemonic)),
		session.WithNetwork(a.cfg.NetworkID()),
		session.WithMinPasswordScore(a.cfg.MinPasswordScore),
	)
	walletHandler, err := handler.NewWalletHandler(s, a.log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           api.SetupRouter(walletHandler, a.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-c.Context().Done():
	}

	a.log.Info("shutting down")
	s.LockWallet()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
