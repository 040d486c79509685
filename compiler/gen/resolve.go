package gen

import (
	"strings"

	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
	"github.com/syssam/tsgen/schema/directive"
)

// Resolution is the outcome of resolving one column under one role for
// one target: the rendered expression plus the facts that shaped it.
type Resolution struct {
	// Expr is the rendered type expression. For the Zod target it
	// carries the nullability/optionality/default suffixes; for the
	// other targets optionality is a property modifier applied by the
	// renderer and only nullability is part of the expression.
	Expr string
	// Nullable mirrors the column's nullability.
	Nullable bool
	// Optional is the role's optionality verdict for this column.
	Optional bool
	// Override reports a verbatim directive override. Overridden
	// expressions receive no suffixes and no generated-marker wrapping.
	Override bool
	// Generated reports that the database can supply the value itself,
	// through an auto-generated or literal default.
	Generated bool
}

// Resolve computes the type expression for one column under the given
// role and target. Resolution is a pure function of its inputs; the
// precedence is directive override, then raw-type override, then
// category-based generation.
func (c *Config) Resolve(col schema.Column, role Role, target Target) (Resolution, error) {
	return c.resolve(col, role, target, nil)
}

func (c *Config) resolve(col schema.Column, role Role, target Target, st *renderState) (Resolution, error) {
	res := Resolution{
		Nullable:  col.Nullable,
		Optional:  role.Optional(col),
		Generated: col.Generated(),
	}
	if c.Directives {
		if expr, ok := directiveFor(col.Comment, target); ok {
			res.Expr = expr
			res.Override = true
			return res, nil
		}
	}
	base, haveBase := c.Overrides[col.RawType]
	var err error
	switch tgt := target.(type) {
	case Zod:
		res.Expr, err = c.zodExpr(col, role, tgt, base, haveBase)
	case TypeAlias:
		res.Expr = c.tsExpr(col, tgt, base, haveBase, st)
	case Kysely:
		res.Expr = c.kyselyExpr(col, tgt, base, haveBase, st)
	default:
		err = NewConfigError("Targets", target, "unknown target")
	}
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

// category classifies a column. Enum types without a static table
// token (Postgres user-defined enums, schema-file enum references) are
// recognized by their resolved value list instead.
func (c *Config) category(col schema.Column) dialect.Category {
	if cat := dialect.Classify(col.RawType, c.Dialect); cat != dialect.Unknown {
		return cat
	}
	if len(col.EnumValues) > 0 {
		return dialect.Enum
	}
	return dialect.Unknown
}

// directiveFor extracts the directive override matching the target.
// The @ts payload doubles as a fallback for the Kysely target when no
// @kysely directive is present.
func directiveFor(comment string, target Target) (string, bool) {
	switch target.(type) {
	case Zod:
		return directive.Zod(comment)
	case TypeAlias:
		return directive.TS(comment)
	case Kysely:
		if expr, ok := directive.Kysely(comment); ok {
			return expr, true
		}
		return directive.TS(comment)
	}
	return "", false
}

// literalUnion renders enum values as a string-literal union.
func literalUnion(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = quote(v)
	}
	return strings.Join(parts, " | ")
}

// quote renders a single-quoted TypeScript string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
