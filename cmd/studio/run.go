package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	backendtcell "github.com/odvcencio/furry-motion/backend/tcell"
	"github.com/odvcencio/furry-motion/metrics"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(flags, true)
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			recorder := metrics.NewRecorder()
			coach := e.coach(ctx)
			coach.SetObserver(recorder)
			e.logger.Info("assistant ready", zap.String("backend", coach.Describe()))

			be, err := backendtcell.New()
			if err != nil {
				return err
			}
			page := site.NewPage(site.Config{
				Content:  site.DefaultContent(),
				Theme:    site.DefaultTheme(),
				Comments: e.store,
				Coach:    coach,
				Pencil:   e.cfg.Spring(),
				Logger:   e.logger,
			})
			app := runtime.NewApp(runtime.AppConfig{
				Backend:        be,
				Root:           page,
				TickRate:       e.cfg.TickRate(),
				RenderObserver: recorder,
				Logger:         e.logger,
			})

			eg, egCtx := errgroup.WithContext(ctx)
			appCtx, quit := context.WithCancel(egCtx)
			defer quit()
			eg.Go(func() error {
				// Leaving the app stops the metrics server too.
				defer quit()
				if err := app.Run(appCtx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
			if addr := e.cfg.MetricsAddr; addr != "" {
				eg.Go(func() error {
					return metrics.Serve(appCtx, addr, recorder, e.logger)
				})
			}
			return eg.Wait()
		},
	}
}
