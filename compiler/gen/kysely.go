package gen

import (
	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

// Marker type names emitted in the storage-interface prelude.
const (
	markerGenerated = "Generated"
	markerInt8      = "Int8"
	markerNumeric   = "Numeric"
	markerJSON      = "Json"
)

// kyselyExpr renders the storage-interface expression for one column.
// 64-bit integers, decimals and json columns map to dedicated marker
// types declared in the file prelude; unknown categories fall back to
// any.
func (c *Config) kyselyExpr(col schema.Column, tgt Kysely, base string, haveBase bool, st *renderState) string {
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
		case dialect.BigInt:
			st.mark(markerInt8)
			base = markerInt8
		case dialect.Decimal:
			st.mark(markerNumeric)
			base = markerNumeric
		case dialect.Enum:
			base = enumExpr(col.EnumValues, tgt.enumStyle(), st)
		case dialect.JSON:
			st.mark(markerJSON)
			base = markerJSON
		default:
			base = "any"
		}
	}
	if col.Nullable {
		base += " | null"
	}
	return base
}

// enumStyle returns the configured style, EnumNamed by default.
func (t Kysely) enumStyle() EnumStyle {
	if t.Enums == "" {
		return EnumNamed
	}
	return t.Enums
}

// databaseName returns the consolidated interface name, DB by default.
func (t Kysely) databaseName() string {
	if t.DatabaseName == "" {
		return "DB"
	}
	return t.DatabaseName
}

// generatedWrap wraps the full-record expression of a column the
// database can populate itself. Directive overrides are taken verbatim
// and never wrapped.
func generatedWrap(expr string, res Resolution, st *renderState) string {
	if !res.Generated || res.Override {
		return expr
	}
	st.mark(markerGenerated)
	return markerGenerated + "<" + expr + ">"
}
