package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-vault/backend/config"
	"github.com/pageza/recipe-vault/backend/internal/api"
	"github.com/pageza/recipe-vault/backend/internal/logger"
)

var version = "dev"

// app holds what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfgFile string
	logOut  io.Writer
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	root := &cobra.Command{
		Use:   "recipevault",
		Short: "Recipe collection and shopping list server",
		Long: `recipevault stores a recipe collection and turns selected recipes into
consolidated shopping lists, served over a JSON HTTP API.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config.yaml if present)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (json, text)")

	root.AddCommand(serveCmd(a))
	root.AddCommand(seedCmd(a))
	root.AddCommand(versionCmd())
	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	l, err := logger.SetupDefault(a.logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.cfg = cfg
	a.logger = l
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recipevault %s\n", version)
		},
	}
}

func main() {
	api.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stderr).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
