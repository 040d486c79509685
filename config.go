package tsgen

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/tsgen/compiler/gen"
	"github.com/syssam/tsgen/dialect"
)

// DefaultConfigFile is the project configuration file name.
const DefaultConfigFile = "tsgen.yaml"

// Config is the project configuration, usually loaded from tsgen.yaml.
type Config struct {
	// Dialect is the schema source kind: mysql, postgres, sqlite or
	// prisma.
	Dialect string `yaml:"dialect"`
	// URL is the database connection string for SQL dialects.
	URL string `yaml:"url"`
	// SchemaFile is the schema definition file for the prisma dialect.
	SchemaFile string `yaml:"schema"`
	// Namespace selects the database (MySQL) or schema search path
	// (Postgres).
	Namespace string `yaml:"namespace"`
	// Snapshot is the path of the snapshot cache. When set and no live
	// source is configured, generation reads the snapshot instead of
	// connecting.
	Snapshot string `yaml:"snapshot"`
	// Out is the output directory for generated files.
	Out string `yaml:"out"`
	// Header overrides the generated-file header comment.
	Header string `yaml:"header"`
	// Directives toggles embedded comment directives. Enabled when
	// omitted.
	Directives *bool `yaml:"directives"`
	// Overrides maps raw column types to replacement base expressions.
	Overrides map[string]string `yaml:"overrides"`
	// Targets selects and configures the output representations. All
	// three are emitted with defaults when the section is omitted.
	Targets TargetsConfig `yaml:"targets"`
}

// TargetsConfig holds one optional section per output representation;
// a present section enables its target.
type TargetsConfig struct {
	Zod        *ZodConfig        `yaml:"zod"`
	TypeScript *TypeScriptConfig `yaml:"typescript"`
	Kysely     *KyselyConfig     `yaml:"kysely"`
}

// ZodConfig configures the validator-schema target.
type ZodConfig struct {
	DateAsUnion    bool `yaml:"date_as_union"`
	BoolAsUnion    bool `yaml:"bool_as_union"`
	Trim           bool `yaml:"trim"`
	RequiredString bool `yaml:"required_string"`
}

// TypeScriptConfig configures the type-alias target.
type TypeScriptConfig struct {
	Enums string `yaml:"enums"`
}

// KyselyConfig configures the storage-interface target.
type KyselyConfig struct {
	DatabaseName string `yaml:"database_name"`
	Enums        string `yaml:"enums"`
}

// LoadConfig reads and validates a project configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigFileError(path, "", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, NewConfigFileError(path, "", err)
	}
	if err := c.Validate(); err != nil {
		return nil, NewConfigFileError(path, err.Error(), nil)
	}
	return &c, nil
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.Dialect == "" {
		c.Dialect = dialect.MySQL
	}
	if !dialect.Valid(c.Dialect) {
		return gen.NewConfigError("Dialect", c.Dialect, "unsupported dialect")
	}
	if c.Out == "" {
		c.Out = "generated"
	}
	return nil
}

// targets builds the target list from the configuration, defaulting to
// all three representations.
func (c *Config) targets() []gen.Target {
	var targets []gen.Target
	if z := c.Targets.Zod; z != nil {
		targets = append(targets, gen.Zod{
			DateAsUnion:    z.DateAsUnion,
			BoolAsUnion:    z.BoolAsUnion,
			Trim:           z.Trim,
			RequiredString: z.RequiredString,
		})
	}
	if t := c.Targets.TypeScript; t != nil {
		targets = append(targets, gen.TypeAlias{Enums: gen.EnumStyle(t.Enums)})
	}
	if k := c.Targets.Kysely; k != nil {
		targets = append(targets, gen.Kysely{
			DatabaseName: k.DatabaseName,
			Enums:        gen.EnumStyle(k.Enums),
		})
	}
	if len(targets) == 0 {
		targets = []gen.Target{gen.Zod{}, gen.TypeAlias{}, gen.Kysely{}}
	}
	return targets
}

// genOptions translates the project configuration into generator
// options.
func (c *Config) genOptions() []gen.Option {
	opts := []gen.Option{
		gen.WithDialect(c.Dialect),
		gen.WithTargets(c.targets()...),
		gen.WithOutDir(c.Out),
	}
	if c.Directives != nil {
		opts = append(opts, gen.WithDirectives(*c.Directives))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if len(c.Overrides) > 0 {
		opts = append(opts, gen.WithOverrides(c.Overrides))
	}
	return opts
}
