package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/newsdesk-lab/copydesk/pkg/cli/config"
	httpctrl "github.com/newsdesk-lab/copydesk/pkg/controller/http"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/logging"
	"github.com/newsdesk-lab/copydesk/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var sentryDSN string
	var sentryEnv string
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("COPYDESK_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error tracking (disabled when empty)",
			Category:    "Monitoring",
			Sources:     cli.EnvVars("COPYDESK_SENTRY_DSN"),
			Destination: &sentryDSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "production",
			Category:    "Monitoring",
			Sources:     cli.EnvVars("COPYDESK_SENTRY_ENV"),
			Destination: &sentryEnv,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			// Build the workflow engine from the policy file, if any
			engine, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure workflow policy")
			}

			uc := usecase.New(repo, usecase.WithEngine(engine))

			var handler http.Handler = httpctrl.New(uc)

			if sentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:         sentryDSN,
					Environment: sentryEnv,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)

				handler = sentryhttp.New(sentryhttp.Options{
					Repanic: true,
				}).Handle(handler)
				logging.Default().Info("Sentry error tracking enabled", "environment", sentryEnv)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return g.Wait()
		},
	}
}
