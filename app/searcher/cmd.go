package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/goroutine"
	"github.com/x-xyz/oev-searcher/base/log"
)

const (
	defaultConfigPath = "infra/configs/searcher/config.yaml"
	shutdownTimeout   = 10 * time.Second
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		once       bool
	)
	cmd := &cobra.Command{
		Use:          "searcher",
		Short:        "Bid on OEV auction windows and execute awarded updates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(viper.GetViper(), cmd.Flags()); err != nil {
				return err
			}
			return run(viper.GetViper(), configPath, once)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "config file")
	cmd.Flags().BoolVar(&once, "once", false, "run a single bid cycle and exit")
	cmd.Flags().String("log-level", "", "overrides log.level")
	return cmd
}

// bindFlags lets explicitly set flags take precedence over the config file
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if f := fs.Lookup("log-level"); f != nil && f.Changed {
		return v.BindPFlag("log.level", f)
	}
	return nil
}

func run(v *viper.Viper, configPath string, once bool) error {
	c := ctx.Background()
	cfg, err := loadConfig(v, configPath)
	if err != nil {
		c.WithField("err", err).Error("loadConfig failed")
		return err
	}
	log.SetLevel(cfg.LogLevel)
	defer log.Sync()

	c, cancel := ctx.WithCancel(c)
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)
	watchSignals(c, cancel, quit)

	s, err := build(c, cfg)
	if err != nil {
		c.WithField("err", err).Error("build failed")
		return err
	}
	defer s.close(c)

	if err := s.orchestrator.Reconcile(c); err != nil {
		c.WithField("err", err).Error("Reconcile failed")
		return err
	}

	if s.echo != nil {
		serve(c, s.echo, s.address)
		defer shutdown(c, s.echo)
	}

	if once {
		rec, err := s.orchestrator.Run(c, s.request)
		if rec != nil {
			c.WithFields(log.Fields{
				"bidId":  rec.Id.Hex(),
				"status": rec.Status,
			}).Info("cycle finished")
		}
		return err
	}

	c.WithField("kind", cfg.Bid.Kind).Info("searcher started")
	return s.orchestrator.Serve(c, s.request)
}

// watchSignals cancels c on the first signal from quit
func watchSignals(c ctx.Ctx, cancel func(), quit <-chan os.Signal) {
	goroutine.RecoverableGo(func() {
		select {
		case sig := <-quit:
			c.WithField("signal", sig).Info("received signal")
			cancel()
		case <-c.Done():
		}
	}, goroutine.WithLogger(c.Logger))
}

func serve(c ctx.Ctx, e *echo.Echo, address string) {
	goroutine.RecoverableGo(func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			c.WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithLogger(c.Logger))
}

func shutdown(c ctx.Ctx, e *echo.Echo) {
	sc, cancel := ctx.WithTimeout(ctx.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sc); err != nil {
		c.WithField("err", err).Error("shutting down the server")
	} else {
		c.Info("shutdown server successfully")
	}
}
