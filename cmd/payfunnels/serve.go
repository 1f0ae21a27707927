package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payfunnels/internal/core/reconcile"
	httpx "payfunnels/internal/http"
	"payfunnels/internal/node"
	"payfunnels/internal/webhook"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trigger endpoint and keep the webhook subscription active",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		manager, closeStore, err := newManager(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		sink, closeSink, err := openSink(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSink()

		node.LogDescription()

		// Activation: make sure the remote subscription points at us
		event, err := webhook.ParseEvent(cfg.Webhook.Event)
		if err != nil {
			return err
		}
		activated := false
		if cfg.Webhook.BaseURL != "" {
			if err := manager.Activate(ctx, cfg.WebhookURL(webhook.Path), event); err != nil {
				return fmt.Errorf("activate webhook: %w", err)
			}
			activated = true
		} else {
			log.Warn().Msg("WEBHOOK_BASE_URL not set; serving without a remote subscription")
		}

		// The watchdog owns the manager until it stops
		workerDone := make(chan struct{})
		if activated && cfg.Webhook.ReconcileSec > 0 {
			w := reconcile.NewWorker(manager, cfg.WebhookURL(webhook.Path), event, time.Duration(cfg.Webhook.ReconcileSec)*time.Second)
			go func() {
				w.Run(ctx)
				close(workerDone)
			}()
		} else {
			close(workerDone)
		}

		srv := &http.Server{
			Addr: ":" + cfg.App.Port,
			Handler: httpx.NewRouter(httpx.RouterDependencies{
				Sink:          sink,
				Subscriptions: manager,
				NodeID:        cfg.App.NodeID,
				AdminToken:    cfg.App.AdminToken,
			}),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Payfunnels trigger listening on :%s", cfg.App.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// Graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-errCh:
			log.Error().Err(err).Msg("server failed")
		}

		ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
		cancel()
		<-workerDone

		// Deactivation
		if activated {
			if err := manager.Delete(ctx2); err != nil {
				log.Error().Err(err).Msg("webhook subscription kept after failed delete")
			}
		}
		log.Info().Msg("server stopped")
		return nil
	},
}
