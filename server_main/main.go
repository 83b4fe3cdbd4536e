// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/SoftbearStudios/fractal/server"
	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/SoftbearStudios/fractal/terrain/pyramid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"
)

type options struct {
	configPath     string
	port           int
	maxConnections int
	logLevel       string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "fractal",
		Short:         "Serve procedurally generated terrain tiles over websockets",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "yaml terrain config (defaults when empty)")
	cmd.Flags().IntVar(&opts.port, "port", 8192, "http service port")
	cmd.Flags().IntVar(&opts.maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

// newLogger writes text logs to stderr at the named level.
func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

func loadConfig(path string) (terrain.Config, error) {
	if path == "" {
		return terrain.DefaultConfig(), nil
	}
	return terrain.LoadConfig(path)
}

func run(opts options) error {
	if opts.maxConnections < 1 {
		return fmt.Errorf("invalid argument max-connections: %d", opts.maxConnections)
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}

	config, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	p := pyramid.New(config, pyramid.WithLogger(logger))
	s := server.New(p, logger)

	http.HandleFunc("/", s.ServeIndex)
	http.HandleFunc("/ws", s.ServeSocket)
	http.Handle("/metrics", promhttp.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", opts.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, opts.maxConnections)

	logger.Info("fractal server started", "port", opts.port, "tileSize", config.TileSize, "seed", config.Seed)

	return http.Serve(l, nil)
}
