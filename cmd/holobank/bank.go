// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/command/handlers"
	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/logging"
	"github.com/holomush/holobank/internal/observability"
	"github.com/holomush/holobank/internal/session"
)

// runBank runs one interactive session on the command's standard streams
// with injectable dependencies. If deps is nil, default implementations are used.
func runBank(ctx context.Context, cmd *cobra.Command, deps *BankDeps) error {
	if deps == nil {
		deps = &BankDeps{}
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string) ObservabilityServer {
			return observability.NewServer(addr)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.Setup("holobank", version, cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ledgerMetrics *ledger.Metrics
		obsServer     ObservabilityServer
	)
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr)
		ledgerMetrics = ledger.NewMetrics(obsServer.Registry())
		command.RegisterMetrics(obsServer.Registry())

		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer shutdownCancel()
			if err := obsServer.Stop(shutdownCtx); err != nil {
				logger.Warn("error stopping observability server", "error", err)
			}
		}()
	}

	hasher, err := ledger.NewArgon2idHasherWithParams(cfg.Argon2Params())
	if err != nil {
		return fmt.Errorf("invalid hashing parameters: %w", err)
	}

	term := session.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), session.WithTerminalLogger(logger))

	accounts, err := ledger.NewRegistry(term,
		ledger.WithPolicy(cfg.Policy()),
		ledger.WithHasher(hasher),
		ledger.WithLogger(logger.With("component", "ledger")),
		ledger.WithMetrics(ledgerMetrics),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	menu := command.NewRegistry()
	handlers.RegisterAll(menu)
	dispatcher, err := command.NewDispatcher(menu, command.WithLogger(logger.With("component", "dispatcher")))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	services, err := command.NewServices(accounts)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	opts := []session.Option{
		session.WithMaxFailures(cfg.Session.MaxFailures),
		session.WithLogger(logger.With("component", "session")),
	}
	if obsServer != nil {
		opts = append(opts, session.WithMetrics(obsServer.Metrics()))
	}
	sess, err := session.New(term, dispatcher, services, opts...)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	logger.Info("session ready", "session_id", sess.ID().String())
	return sess.Run(ctx)
}

// monitorServerErrors cancels ctx when a background server fails.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			// Channel closed, server stopped gracefully
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
