package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kverlaine/pitwall/internal/config"
	"github.com/kverlaine/pitwall/internal/notify"
	"github.com/kverlaine/pitwall/internal/notify/discord"
	"github.com/kverlaine/pitwall/internal/notify/slack"
	"github.com/kverlaine/pitwall/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Pitwall API server",
		Long: `Launches the local JSON API the web pages render from. When notify is
configured, a weekly activity digest is posted on its cron schedule while
the server runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Notify.Platform != "" {
		notifier, err := newNotifier(cfg)
		if err != nil {
			return err
		}
		defer notifier.Close()

		go func() {
			err := notify.RunDigests(ctx, notify.SchedulerOpts{
				DB:       gormDB,
				Notifier: notifier,
				Owner:    cfg.Owner,
				Channel:  cfg.Notify.Channel,
				CronExpr: cfg.Notify.DigestCron,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("digest scheduler stopped: %v", err)
			}
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Weekly digest scheduled (%s via %s)\n",
			cfg.Notify.DigestCron, cfg.Notify.Platform)
	}

	return web.Start(ctx, web.StartOpts{
		DB:    gormDB,
		Owner: cfg.Owner,
		Port:  port,
		Out:   cmd.OutOrStdout(),
	})
}

// newNotifier builds the platform notifier selected in config.
func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Notify.Platform {
	case "slack":
		return slack.New(cfg.Notify.Token)
	case "discord":
		return discord.New(cfg.Notify.Token)
	default:
		return nil, fmt.Errorf("unknown notify platform %q", cfg.Notify.Platform)
	}
}
