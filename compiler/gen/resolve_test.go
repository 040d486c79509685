package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	c, err := NewConfig(opts...)
	require.NoError(t, err)
	return c
}

func strptr(s string) *string { return &s }

func TestResolveCategoryBases(t *testing.T) {
	c := testConfig(t, WithDialect(dialect.Postgres))

	tests := []struct {
		name    string
		col     schema.Column
		target  Target
		want    string
	}{
		{"date zod", schema.Column{Name: "created_at", RawType: "timestamptz"}, Zod{}, "z.coerce.date()"},
		{"date ts", schema.Column{Name: "created_at", RawType: "timestamptz"}, TypeAlias{}, "Date"},
		{"string", schema.Column{Name: "email", RawType: "text"}, Zod{}, "z.string()"},
		{"number", schema.Column{Name: "age", RawType: "integer"}, TypeAlias{}, "number"},
		{"boolean", schema.Column{Name: "active", RawType: "boolean"}, Zod{}, "z.boolean()"},
		{"bigint zod", schema.Column{Name: "id", RawType: "bigint"}, Zod{}, "z.string()"},
		{"bigint ts", schema.Column{Name: "id", RawType: "bigint"}, TypeAlias{}, "string"},
		{"decimal zod", schema.Column{Name: "total", RawType: "numeric"}, Zod{}, "z.string()"},
		{"json zod", schema.Column{Name: "meta", RawType: "jsonb"}, Zod{}, "z.record(z.string(), z.unknown())"},
		{"json ts", schema.Column{Name: "meta", RawType: "jsonb"}, TypeAlias{}, "unknown"},
		// User-defined enum types carry no static token; the resolved
		// value list drives classification.
		{"named enum zod", schema.Column{Name: "role", RawType: "user_role", EnumValues: []string{"admin", "member"}}, Zod{}, "z.enum(['admin', 'member'])"},
		{"named enum ts", schema.Column{Name: "role", RawType: "user_role", EnumValues: []string{"admin", "member"}}, TypeAlias{}, "'admin' | 'member'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Resolve(tt.col, RoleFull, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Expr)
		})
	}
}

func TestResolveZodOptions(t *testing.T) {
	c := testConfig(t)

	t.Run("trim and required string", func(t *testing.T) {
		col := schema.Column{Name: "name", RawType: "varchar(80)"}
		res, err := c.Resolve(col, RoleFull, Zod{Trim: true, RequiredString: true})
		require.NoError(t, err)
		assert.Equal(t, "z.string().trim().min(1)", res.Expr)
	})
	t.Run("required string skipped on default", func(t *testing.T) {
		col := schema.Column{Name: "name", RawType: "varchar(80)", Default: strptr("anon")}
		res, err := c.Resolve(col, RoleFull, Zod{RequiredString: true})
		require.NoError(t, err)
		assert.Equal(t, "z.string().default('anon')", res.Expr)
	})
	t.Run("date union", func(t *testing.T) {
		col := schema.Column{Name: "created_at", RawType: "datetime"}
		res, err := c.Resolve(col, RoleFull, Zod{DateAsUnion: true})
		require.NoError(t, err)
		assert.Equal(t, "z.union([z.number(), z.string(), z.date()]).pipe(z.coerce.date())", res.Expr)
	})
	t.Run("bool union", func(t *testing.T) {
		col := schema.Column{Name: "active", RawType: "boolean"}
		res, err := c.Resolve(col, RoleFull, Zod{BoolAsUnion: true})
		require.NoError(t, err)
		assert.Equal(t, "z.union([z.boolean(), z.number(), z.string()]).pipe(z.coerce.boolean())", res.Expr)
	})
	t.Run("unsigned number", func(t *testing.T) {
		col := schema.Column{Name: "count", RawType: "int(10) unsigned"}
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.number().nonnegative()", res.Expr)
	})
}

func TestResolveNullabilityAndOptionality(t *testing.T) {
	c := testConfig(t)

	// Auto-generated nullable column: selectable reflects nullability
	// only, insertable carries both markers.
	col := schema.Column{Name: "note", RawType: "text", Nullable: true, AutoGenerated: true}

	t.Run("zod", func(t *testing.T) {
		sel, err := c.Resolve(col, RoleSelectable, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string().nullable()", sel.Expr)
		assert.False(t, sel.Optional)

		ins, err := c.Resolve(col, RoleInsertable, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string().nullable().optional()", ins.Expr)
		assert.True(t, ins.Optional)
	})
	t.Run("typescript", func(t *testing.T) {
		sel, err := c.Resolve(col, RoleSelectable, TypeAlias{})
		require.NoError(t, err)
		assert.Equal(t, "string | null", sel.Expr)
		assert.False(t, sel.Optional)

		ins, err := c.Resolve(col, RoleInsertable, TypeAlias{})
		require.NoError(t, err)
		assert.True(t, ins.Optional)
	})
	t.Run("updateable always optional", func(t *testing.T) {
		plain := schema.Column{Name: "email", RawType: "text"}
		res, err := c.Resolve(plain, RoleUpdateable, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string().optional()", res.Expr)
	})
	t.Run("full never optional", func(t *testing.T) {
		withDefault := schema.Column{Name: "status", RawType: "text", Default: strptr("new")}
		res, err := c.Resolve(withDefault, RoleFull, Zod{})
		require.NoError(t, err)
		assert.False(t, res.Optional)
	})
}

func TestResolveSuffixOrder(t *testing.T) {
	c := testConfig(t)

	// Order is fixed: base, nullable, optional, default.
	col := schema.Column{Name: "status", RawType: "varchar(20)", Nullable: true, Default: strptr("new")}
	res, err := c.Resolve(col, RoleUpdateable, Zod{})
	require.NoError(t, err)
	assert.Equal(t, "z.string().nullable().optional().default('new')", res.Expr)
}

func TestResolveMySQLEnumScenario(t *testing.T) {
	c := testConfig(t)

	col := schema.Column{
		Name:       "state",
		RawType:    "enum('a','b')",
		Default:    strptr("a"),
		EnumValues: []string{"a", "b"},
	}
	res, err := c.Resolve(col, RoleFull, Zod{})
	require.NoError(t, err)
	assert.Equal(t, "z.enum(['a', 'b']).default('a')", res.Expr)
}

func TestResolveDefaultQuoting(t *testing.T) {
	c := testConfig(t)

	t.Run("numeric stays bare", func(t *testing.T) {
		col := schema.Column{Name: "age", RawType: "int", Default: strptr("0")}
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.number().default(0)", res.Expr)
	})
	t.Run("override keeps numeric default bare", func(t *testing.T) {
		col := schema.Column{Name: "active", RawType: "tinyint(1)", Default: strptr("1")}
		c := testConfig(t, WithOverrides(map[string]string{"tinyint(1)": "z.boolean()"}))
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		// Raw-type override replaces the base only; the default still
		// applies, quoted per the column's category.
		assert.Equal(t, "z.boolean().default(1)", res.Expr)
	})
	t.Run("auto generated default dropped", func(t *testing.T) {
		col := schema.Column{Name: "created_at", RawType: "timestamp", AutoGenerated: true}
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.coerce.date()", res.Expr)
	})
}

func TestResolveDirectivePrecedence(t *testing.T) {
	c := testConfig(t)

	col := schema.Column{
		Name:    "payload",
		RawType: "text",
		Comment: "@zod(z.string().uuid()) @ts(Array<{ id: string }>)",
	}

	t.Run("zod uses zod payload only", func(t *testing.T) {
		res, err := c.Resolve(col, RoleUpdateable, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string().uuid()", res.Expr)
		assert.True(t, res.Override)
		// Verbatim: no optionality augmentation on top.
		assert.NotContains(t, res.Expr, ".optional()")
	})
	t.Run("kysely falls back to ts", func(t *testing.T) {
		res, err := c.Resolve(col, RoleFull, Kysely{})
		require.NoError(t, err)
		assert.Equal(t, "Array<{ id: string }>", res.Expr)
		assert.True(t, res.Override)
	})
	t.Run("kysely prefers its own directive", func(t *testing.T) {
		own := col
		own.Comment += " @kysely(ColumnType<string, never, never>)"
		res, err := c.Resolve(own, RoleFull, Kysely{})
		require.NoError(t, err)
		assert.Equal(t, "ColumnType<string, never, never>", res.Expr)
	})
	t.Run("disabled directives fall through", func(t *testing.T) {
		c := testConfig(t, WithDirectives(false))
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string()", res.Expr)
		assert.False(t, res.Override)
	})
}

func TestResolveOverrideMap(t *testing.T) {
	c := testConfig(t, WithDialect(dialect.Postgres), WithOverrides(map[string]string{
		"uuid": "z.string().uuid()",
	}))

	col := schema.Column{Name: "id", RawType: "uuid", Nullable: true}
	res, err := c.Resolve(col, RoleUpdateable, Zod{})
	require.NoError(t, err)
	// Unlike a directive, the override is a base type: suffixes apply.
	assert.Equal(t, "z.string().uuid().nullable().optional()", res.Expr)
	assert.False(t, res.Override)
}

func TestResolveUnknownType(t *testing.T) {
	c := testConfig(t)
	col := schema.Column{Name: "shape", RawType: "geometry"}

	t.Run("zod fails hard", func(t *testing.T) {
		_, err := c.Resolve(col, RoleFull, Zod{})
		require.Error(t, err)
		assert.True(t, IsUnsupportedType(err))
		var ut *UnsupportedTypeError
		require.ErrorAs(t, err, &ut)
		assert.Equal(t, "geometry", ut.RawType)
		assert.Equal(t, "shape", ut.Column)
	})
	t.Run("other targets degrade to any", func(t *testing.T) {
		res, err := c.Resolve(col, RoleFull, TypeAlias{})
		require.NoError(t, err)
		assert.Equal(t, "any", res.Expr)

		res, err = c.Resolve(col, RoleFull, Kysely{})
		require.NoError(t, err)
		assert.Equal(t, "any", res.Expr)
	})
	t.Run("override rescues zod", func(t *testing.T) {
		c := testConfig(t, WithOverrides(map[string]string{"geometry": "z.string()"}))
		res, err := c.Resolve(col, RoleFull, Zod{})
		require.NoError(t, err)
		assert.Equal(t, "z.string()", res.Expr)
	})
}

func TestResolveMissingEnumValues(t *testing.T) {
	c := testConfig(t)
	col := schema.Column{Name: "state", RawType: "enum('a')"}
	col.EnumValues = nil

	res, err := c.Resolve(col, RoleFull, Zod{})
	require.NoError(t, err)
	assert.Equal(t, "z.string()", res.Expr)

	res, err = c.Resolve(col, RoleFull, TypeAlias{})
	require.NoError(t, err)
	assert.Equal(t, "string", res.Expr)
}

func TestResolvePurity(t *testing.T) {
	c := testConfig(t)
	col := schema.Column{Name: "status", RawType: "varchar(20)", Nullable: true, Default: strptr("new")}

	for _, target := range []Target{Zod{}, TypeAlias{}, Kysely{}} {
		for _, role := range []Role{RoleFull, RoleInsertable, RoleUpdateable, RoleSelectable} {
			a, err := c.Resolve(col, role, target)
			require.NoError(t, err)
			b, err := c.Resolve(col, role, target)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	}
}

func TestRoleOptionality(t *testing.T) {
	auto := schema.Column{Name: "id", AutoGenerated: true}
	def := schema.Column{Name: "status", Default: strptr("new")}
	plain := schema.Column{Name: "email"}

	assert.False(t, RoleFull.Optional(auto))
	assert.False(t, RoleSelectable.Optional(auto))
	assert.True(t, RoleInsertable.Optional(auto))
	assert.True(t, RoleInsertable.Optional(def))
	assert.False(t, RoleInsertable.Optional(plain))
	assert.True(t, RoleUpdateable.Optional(plain))
}
