package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/averill/parley/internal/config"
	"github.com/averill/parley/internal/notify"
	"github.com/averill/parley/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the negotiation API server",
		Long:  "Launches the HTTP API and SSE orchestration stream, with optional history persistence and chat notifications.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Parley config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = listenPort(cfg.Listen)
	}

	conn, err := connectFromConfig(cfg)
	if err != nil {
		return err
	}

	backend, err := backendFromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	var notifier *notify.Notifier
	adapter, err := adapterFromConfig(cfg)
	if err != nil {
		return err
	}
	if adapter != nil {
		if err := adapter.Connect(ctx); err != nil {
			return fmt.Errorf("connect %s: %w", cfg.Notify.Platform, err)
		}
		defer adapter.Close()
		notifier = notify.NewNotifier(adapter)
		fmt.Fprintf(out, "Notifications to %s channel %s\n", cfg.Notify.Platform, cfg.Notify.Channel)

		if cfg.Notify.Digest != "" {
			if !notify.ValidCron(cfg.Notify.Digest) {
				return fmt.Errorf("invalid digest schedule %q", cfg.Notify.Digest)
			}
			go notify.NewScheduler(conn, adapter, cfg.Notify.Digest).Run(ctx)
			fmt.Fprintf(out, "Digest schedule: %s\n", cfg.Notify.Digest)
		}
	}

	return server.Start(ctx, server.StartOpts{
		DB:       conn,
		Port:     port,
		Backend:  backend,
		Pacer:    pacerFromConfig(cfg),
		Notifier: notifier,
		Out:      out,
	})
}

// adapterFromConfig builds the configured chat adapter, or nil when
// notifications are disabled.
func adapterFromConfig(cfg *config.Config) (notify.Adapter, error) {
	switch cfg.Notify.Platform {
	case "":
		return nil, nil
	case "slack":
		adapter, err := notify.NewSlack(notify.SlackOpts{BotToken: cfg.Notify.Token, ChannelID: cfg.Notify.Channel})
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "discord":
		adapter, err := notify.NewDiscord(notify.DiscordOpts{BotToken: cfg.Notify.Token, ChannelID: cfg.Notify.Channel})
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
	return nil, fmt.Errorf("unknown notify platform %q", cfg.Notify.Platform)
}

// listenPort extracts the port from a listen address like ":8080".
func listenPort(listen string) int {
	idx := strings.LastIndex(listen, ":")
	if idx < 0 {
		return 8080
	}
	port, err := strconv.Atoi(listen[idx+1:])
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}
