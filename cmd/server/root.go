package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/VinicciusWirz/social-postify/internal/config"
	"github.com/VinicciusWirz/social-postify/internal/server"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	envFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "server",
		Short: "Social Postify - schedule posts on media outlets",
		Long: `Social Postify is a REST API for media outlets, posts and the
publications that schedule a post on a media at a given date.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(os.Stdout)
			slog.SetDefault(a.logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file loaded before parsing the environment")
	root.AddCommand(newMigrateCmd(a))

	return root
}

func (a *app) serve(cmd *cobra.Command) error {
	store, err := openStore(cmd.Context(), a.cfg, true)
	if err != nil {
		a.logger.Error("failed to open store", slog.String("error", err.Error()))
		return err
	}

	// Start closes the store on the way out.
	if err := server.New(a.cfg, a.logger, store).Start(); err != nil {
		a.logger.Error("server error", slog.String("error", err.Error()))
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
