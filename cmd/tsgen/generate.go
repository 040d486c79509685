package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/tsgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript files from the configured schema source",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger(cmd)
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Error().Err(err).Msg("load config")
			return err
		}
		ctx := cmd.Context()
		if err := tsgen.Generate(ctx, cfg); err != nil {
			log.Error().Err(err).Msg("generate")
			return err
		}
		log.Info().Str("dialect", cfg.Dialect).Str("out", cfg.Out).Msg("generated")

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return watchSchema(ctx, cfg, log)
		}
		return nil
	},
}

func init() {
	addSourceFlags(generateCmd)
	generateCmd.Flags().Bool("watch", false, "regenerate when the schema file changes")
	rootCmd.AddCommand(generateCmd)
}

// watchSchema blocks, regenerating whenever the schema file is written.
// Only file-backed sources can be watched.
func watchSchema(ctx context.Context, cfg *tsgen.Config, log zerolog.Logger) error {
	if cfg.SchemaFile == "" {
		return tsgen.ErrNoSource
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(cfg.SchemaFile)); err != nil {
		return err
	}
	log.Info().Str("schema", cfg.SchemaFile).Msg("watching")

	target := filepath.Clean(cfg.SchemaFile)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := tsgen.Generate(ctx, cfg); err != nil {
				log.Error().Err(err).Msg("regenerate")
				continue
			}
			log.Info().Str("out", cfg.Out).Msg("regenerated")
		}
	}
}
