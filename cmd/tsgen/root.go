package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/tsgen"
)

var rootCmd = &cobra.Command{
	Use:           "tsgen",
	Short:         "Generate TypeScript types, Zod schemas and Kysely interfaces from a database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", tsgen.DefaultConfigFile, "project configuration file")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

// newLogger builds the CLI logger; the compiler core itself stays
// log-free.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// loadConfig reads the project file and applies flag overrides shared
// by the generate and snapshot commands.
func loadConfig(cmd *cobra.Command) (*tsgen.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := tsgen.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.URL = url
	}
	if schema, _ := cmd.Flags().GetString("schema"); schema != "" {
		cfg.SchemaFile = schema
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Out = out
	}
	if snapshot, _ := cmd.Flags().GetString("snapshot"); snapshot != "" {
		cfg.Snapshot = snapshot
	}
	return cfg, nil
}

// addSourceFlags registers the flags that override the project file's
// schema source settings.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "database connection string")
	cmd.Flags().String("schema", "", "schema definition file")
	cmd.Flags().String("out", "", "output directory")
	cmd.Flags().String("snapshot", "", "snapshot cache path")
}
