// Package tsgen generates TypeScript artifacts (Zod schemas, type
// aliases, Kysely storage interfaces) from a relational schema. The
// schema comes from live database introspection, a schema definition
// file, or a previously saved snapshot; every column is normalized
// into a uniform descriptor and compiled into per-role type
// expressions by the engine in compiler/gen.
package tsgen

import (
	"context"

	"github.com/syssam/tsgen/compiler/gen"
	"github.com/syssam/tsgen/compiler/introspect"
	"github.com/syssam/tsgen/compiler/load"
	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

// Extract normalizes the configured schema source into a snapshot:
// the prisma dialect parses the schema file, SQL dialects introspect
// the live database.
func Extract(ctx context.Context, cfg *Config) (*schema.Snapshot, error) {
	if cfg.Dialect == dialect.Prisma {
		if cfg.SchemaFile == "" {
			return nil, ErrNoSource
		}
		return load.ParseFile(cfg.SchemaFile)
	}
	if cfg.URL == "" {
		return nil, ErrNoSource
	}
	a, err := introspect.Open(cfg.Dialect, cfg.URL, cfg.Namespace)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return introspect.Inspect(ctx, a)
}

// resolveSnapshot produces the snapshot for a generation run: from the
// live source when one is configured, from the snapshot cache
// otherwise.
func resolveSnapshot(ctx context.Context, cfg *Config) (*schema.Snapshot, error) {
	if cfg.URL != "" || cfg.SchemaFile != "" {
		return Extract(ctx, cfg)
	}
	if cfg.Snapshot != "" {
		return introspect.ReadSnapshot(cfg.Snapshot)
	}
	return nil, ErrNoSource
}

// Generate runs one full generation pass: extract (or read the
// snapshot), resolve, render and write the configured targets.
func Generate(ctx context.Context, cfg *Config) error {
	snap, err := resolveSnapshot(ctx, cfg)
	if err != nil {
		return err
	}
	g, err := gen.NewConfig(cfg.genOptions()...)
	if err != nil {
		return err
	}
	return g.Generate(ctx, snap)
}

// Snapshot extracts the configured source and saves it to the snapshot
// cache, so later runs can generate without the source available.
func Snapshot(ctx context.Context, cfg *Config) error {
	if cfg.Snapshot == "" {
		return ErrNoSnapshot
	}
	snap, err := Extract(ctx, cfg)
	if err != nil {
		return err
	}
	return introspect.WriteSnapshot(cfg.Snapshot, snap)
}
