package cmd

import (
	"fmt"
	"os"

	"hoteldesk/internal/app"
	"hoteldesk/internal/config"
	"hoteldesk/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	Container *app.Container
	BaseURL   string
)

var RootCmd = &cobra.Command{
	Use:           "hoteldesk",
	Short:         "Terminal client for the hotel management backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if BaseURL != "" {
			cfg.BackendURL = BaseURL
		}

		// The terminal belongs to the dashboard, so logs go to a file.
		logger, err := logging.New(config.IsDev(), cfg.LogPath)
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}

		Container, err = app.New(cfg, logger.Named("cli"))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if Container == nil {
			return
		}
		_ = Container.Logger.Sync()
		if err := Container.Close(); err != nil {
			Container.Logger.Warn("closing client database", zap.Error(err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDashboard()
	},
}

func Execute() {
	RootCmd.PersistentFlags().StringVar(&BaseURL, "url", "", "URL of the hotel backend (overrides config)")

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
