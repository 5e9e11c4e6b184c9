package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/crosspostfields/service"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the crosspost hook server",
	Long:  `Runs the hook server the crosspost pipeline sends post and term payloads to`,
	Run: func(cmd *cobra.Command, args []string) {
		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		app, err := newApp(gCtx)
		if err != nil {
			log.Fatal(err)
		}
		defer app.Close()

		metrics := service.NewMetrics()
		hookServer := service.NewHookServer(app.cfg.Hooks.Port, app.extension, metrics)
		healthchecker := service.NewHealthchecker(app.cfg.Hooks.HealthcheckPort, metrics)

		g.Go(func() error {
			log.Infof("listening for hooks on %s", hookServer.Server.Addr)
			if err := hookServer.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		// For deployed instances, provide a basic healthcheck endpoint to show it's online
		g.Go(func() error {
			if err := healthchecker.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		// ...and shut both servers down when the process needs to terminate
		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting hook server")
			return hookServer.Server.Shutdown(context.Background())
		})
		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting healthchecker")
			return healthchecker.Server.Shutdown(context.Background())
		})

		err = g.Wait()
		if err != nil {
			log.Errorf("caught error: %v", err)
		}
	},
}
