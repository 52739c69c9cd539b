package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/devwallet"
	"github.com/AlexZinkM/docuchain-wallet/internal/api"
	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/config"
	"github.com/AlexZinkM/docuchain-wallet/internal/handler"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wallet session daemon and its control API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()

		log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		backend, err := client.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
		if err != nil {
			return err
		}

		provider, selector, closeProvider, err := openProvider(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeProvider()

		s := session.New(session.Options{
			Backend:  backend,
			Provider: provider,
			Chain:    cfg.Chain(),
			Renderer: session.LogRenderer{Logger: log.Named("render")},
			Logger:   log,
		})

		if provider != nil {
			go func() {
				if err := s.Run(ctx); err != nil {
					log.Error("provider events stopped", zap.Error(err))
				}
			}()
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: api.SetupRouter(s, selector, log.Named("http")),
		}

		onServeExit := make(chan error, 1)
		go func() {
			log.Info("control API listening",
				zap.String("addr", srv.Addr),
				zap.String("backend", cfg.BackendURL),
				zap.String("provider", cfg.Provider),
			)
			onServeExit <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			log.Info("exit by signal")
		case err := <-onServeExit:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("control API failed: %w", err)
			}
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// openProvider builds the configured wallet provider.
// PROVIDER=none yields a nil provider: the session then runs read-only.
func openProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (client.Provider, handler.AccountSelector, func(), error) {
	switch cfg.Provider {
	case config.ProviderKeyfile:
		// The password is read once at startup and unlocks every configured key file.
		if err := config.PromptForPassword(); err != nil {
			return nil, nil, nil, err
		}
		p := devwallet.NewProvider(cfg.KeyFiles, devwallet.DefaultChainID, func(string) ([]byte, error) {
			return config.GetPasswordBytes()
		}, log.Named("devwallet"))
		return p, p, p.Close, nil

	case config.ProviderRPC:
		p, err := client.DialProvider(ctx, cfg.ProviderURL, log.Named("provider"))
		if err != nil {
			return nil, nil, nil, err
		}
		return p, nil, p.Close, nil

	default:
		log.Warn("no wallet provider configured, blockchain actions are unavailable")
		return nil, nil, func() {}, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
