package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"roomstack/config"
	"roomstack/helper"
	"roomstack/infras/otel"
	"roomstack/infras/postgres"
	roomRepository "roomstack/internal/domains/room/repository"
	"roomstack/shared/logger"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the roomstack database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)
	},
}

func migration(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return helper.Runner(config.Get(), action)
		},
	}
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample rooms into an empty development database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()

		db := postgres.New(cfg)
		defer db.Close()

		_, err := helper.Seed(cmd.Context(), cfg, roomRepository.New(db, otel.New(cfg)))

		return err
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(
		migration(helper.ActionUp, "Apply all pending migrations"),
		migration(helper.ActionDown, "Roll back the latest migration"),
		migration(helper.ActionStepUp, "Apply the next pending migration"),
		migration(helper.ActionDrop, "Roll back every migration"),
		seedCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("migrate command failed")
		os.Exit(1)
	}
}
