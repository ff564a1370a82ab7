// Command espn-mcp serves ESPN fantasy baseball leagues as MCP tools.
//
// Usage:
//
//	espn-mcp serve                      # stdio, for desktop MCP clients
//	espn-mcp serve --transport http     # streamable HTTP on HTTP_ADDR
//	espn-mcp serve --demo               # seeded in-memory league, no ESPN calls
//	espn-mcp tools
//	espn-mcp version
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/app"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/config"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "espn-mcp",
		Short:         "MCP tool server for ESPN fantasy baseball",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(toolsCmd())
	root.AddCommand(versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	var (
		transport string
		demo      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				if cfg, err = cfg.WithTransport(transport); err != nil {
					return err
				}
			}

			// stdout carries protocol frames on stdio.
			var out io.Writer = os.Stdout
			if cfg.Transport == config.TransportStdio {
				out = os.Stderr
			}
			logger := logging.New(logging.Options{
				Level:   cfg.LogLevel,
				Output:  out,
				Service: cfg.ServiceName,
				Version: cfg.ServiceVersion,
			})
			logging.SetDefault(logger)
			defer func() { _ = logger.Sync() }()

			a, err := app.New(cfg, logger, app.Options{Demo: demo})
			if err != nil {
				return fmt.Errorf("build app: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("espn-mcp starting", "transport", cfg.Transport, "demo", demo, "env", cfg.AppEnv)
			if err := a.Run(ctx); err != nil {
				logger.Error("espn-mcp stopped with error", "error", err)
				return err
			}
			logger.Info("espn-mcp stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "MCP transport: stdio or http (overrides MCP_TRANSPORT)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Serve the seeded in-memory demo league")
	return cmd
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalogue as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, logging.NewNop(), app.Options{Demo: true})
			if err != nil {
				return err
			}
			body, err := sonic.ConfigStd.MarshalIndent(map[string]any{"tools": a.MCP().Catalogue()}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode catalogue: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "espn-mcp", version)
		},
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.ServiceVersion == "dev" {
		cfg.ServiceVersion = version
	}
	return cfg, nil
}

