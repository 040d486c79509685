package gen

import (
	"maps"

	"github.com/syssam/tsgen/dialect"
)

// Option configures code generation.
type Option func(*Config) error

// WithDialect sets the source dialect of the snapshot.
// Supported dialects: "mysql", "postgres", "sqlite", "prisma".
func WithDialect(name string) Option {
	return func(c *Config) error {
		if !dialect.Valid(name) {
			return NewConfigError("Dialect", name, "unsupported dialect; use mysql, postgres, sqlite, or prisma")
		}
		c.Dialect = name
		return nil
	}
}

// WithTargets sets the output representations to emit.
func WithTargets(targets ...Target) Option {
	return func(c *Config) error {
		if len(targets) == 0 {
			return NewConfigError("Targets", nil, "at least one target is required")
		}
		c.Targets = targets
		return nil
	}
}

// WithOverrides merges raw-type overrides into the configuration.
// An override replaces the category base expression for every column
// whose raw type matches the key exactly; nullability and optionality
// suffixes still apply.
func WithOverrides(overrides map[string]string) Option {
	return func(c *Config) error {
		if c.Overrides == nil {
			c.Overrides = make(map[string]string, len(overrides))
		}
		maps.Copy(c.Overrides, overrides)
		return nil
	}
}

// WithDirectives toggles embedded comment directives.
func WithDirectives(enabled bool) Option {
	return func(c *Config) error {
		c.Directives = enabled
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithOutDir sets the output directory.
func WithOutDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("OutDir", nil, "output directory cannot be empty")
		}
		c.OutDir = dir
		return nil
	}
}

// WithWorkers bounds the parallel file writer.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}
