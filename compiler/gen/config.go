package gen

import (
	"runtime"

	"github.com/syssam/tsgen/dialect"
)

// Target is one output representation. Exactly three implementations
// exist: Zod, TypeAlias and Kysely, each carrying only its own option
// fields. The engine dispatches over the concrete type.
type Target interface {
	// Name is the target tag used in configuration and file naming.
	Name() string

	target()
}

// Zod emits validator schemas plus inferred type exports.
type Zod struct {
	// DateAsUnion renders dates as a number/string/date union piped
	// through coercion instead of a plain coercing date validator.
	DateAsUnion bool
	// BoolAsUnion renders booleans as a coercing boolean/number/string
	// union. Useful for drivers that surface tinyint(1) as 0/1.
	BoolAsUnion bool
	// Trim appends .trim() to string validators.
	Trim bool
	// RequiredString appends .min(1) to string validators on required
	// columns without a default.
	RequiredString bool
}

// Name implements Target.
func (Zod) Name() string { return "zod" }

func (Zod) target() {}

// EnumStyle controls how type-alias and storage targets spell enum
// columns.
type EnumStyle string

// Enum emission styles.
const (
	// EnumInline spells the string-literal union at every use site.
	EnumInline EnumStyle = "inline"
	// EnumNamed emits one exported type alias per declared enum and
	// references it by name. Inline enums with no declaration still
	// render as literal unions.
	EnumNamed EnumStyle = "named"
)

// TypeAlias emits plain TypeScript type aliases.
type TypeAlias struct {
	// Enums selects the enum emission style, EnumInline by default.
	Enums EnumStyle
}

// Name implements Target.
func (TypeAlias) Name() string { return "typescript" }

func (TypeAlias) target() {}

// Kysely emits storage interfaces plus the consolidated database
// interface mapping table keys to the per-entity interfaces.
type Kysely struct {
	// DatabaseName names the consolidated interface, "DB" by default.
	DatabaseName string
	// Enums selects the enum emission style, EnumNamed by default.
	Enums EnumStyle
}

// Name implements Target.
func (Kysely) Name() string { return "kysely" }

func (Kysely) target() {}

// Config holds the generation settings for one run. Build it with
// NewConfig and the With* options.
type Config struct {
	// Dialect is the source dialect of the snapshot being rendered. It
	// selects the classification table and unsigned-type detection.
	Dialect string
	// Targets lists the representations to emit, one file per target.
	Targets []Target
	// Overrides maps raw column types to replacement base expressions.
	// Unlike directives, an override replaces the base type only;
	// nullability and optionality still apply on top.
	Overrides map[string]string
	// Directives controls whether embedded comment directives
	// (@zod, @ts, @kysely) are honored.
	Directives bool
	// Header is prepended to every generated file.
	Header string
	// OutDir is the destination directory for generated files.
	OutDir string
	// Workers bounds the parallel file writer.
	Workers int
}

// DefaultHeader is the header written when none is configured.
const DefaultHeader = "// Code generated by tsgen. DO NOT EDIT."

// NewConfig returns a Config with the given options applied over the
// defaults: all three targets, directives on, header set.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Dialect:    dialect.MySQL,
		Targets:    []Target{Zod{}, TypeAlias{}, Kysely{}},
		Directives: true,
		Header:     DefaultHeader,
		OutDir:     ".",
		Workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
