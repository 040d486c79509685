package gen

import (
	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

// tsExpr renders the plain type-alias expression for one column.
// Unknown categories fall back to any instead of failing.
func (c *Config) tsExpr(col schema.Column, tgt TypeAlias, base string, haveBase bool, st *renderState) string {
	if !haveBase {
		switch c.category(col) {
		case dialect.Date:
			base = "Date"
		case dialect.String:
			base = "string"
		case dialect.Number:
			base = "number"
		case dialect.Boolean:
			base = "boolean"
		case dialect.BigInt, dialect.Decimal:
			base = "string"
		case dialect.Enum:
			base = enumExpr(col.EnumValues, tgt.Enums, st)
		case dialect.JSON:
			base = "unknown"
		default:
			base = "any"
		}
	}
	if col.Nullable {
		base += " | null"
	}
	return base
}

// enumExpr spells an enum column per the configured emission style:
// a reference to the declared enum's type alias when one exists and the
// style asks for names, a string-literal union otherwise. Zero resolved
// values degrade to string.
func enumExpr(values []string, style EnumStyle, st *renderState) string {
	if len(values) == 0 {
		return "string"
	}
	if style == EnumNamed {
		if name, ok := st.enumName(values); ok {
			return name
		}
	}
	return literalUnion(values)
}
