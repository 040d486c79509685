package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/tsgen"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Introspect the schema source and save it to the snapshot cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger(cmd)
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Error().Err(err).Msg("load config")
			return err
		}
		if err := tsgen.Snapshot(cmd.Context(), cfg); err != nil {
			log.Error().Err(err).Msg("snapshot")
			return err
		}
		log.Info().Str("snapshot", cfg.Snapshot).Msg("saved")
		return nil
	},
}

func init() {
	addSourceFlags(snapshotCmd)
	rootCmd.AddCommand(snapshotCmd)
}
