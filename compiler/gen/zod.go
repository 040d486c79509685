package gen

import (
	"strings"

	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

// zodExpr renders the fidelity-validator expression for one column.
// This is the only path that fails on an unknown category; the other
// targets fall back to any.
func (c *Config) zodExpr(col schema.Column, role Role, tgt Zod, base string, haveBase bool) (string, error) {
	cat := c.category(col)
	if !haveBase {
		switch cat {
		case dialect.Date:
			if tgt.DateAsUnion {
				base = "z.union([z.number(), z.string(), z.date()]).pipe(z.coerce.date())"
			} else {
				base = "z.coerce.date()"
			}
		case dialect.String:
			base = "z.string()"
			if tgt.Trim {
				base += ".trim()"
			}
			if tgt.RequiredString && !col.Nullable && !col.Generated() {
				base += ".min(1)"
			}
		case dialect.Number:
			base = "z.number()"
			if dialect.Unsigned(col.RawType) {
				base += ".nonnegative()"
			}
		case dialect.Boolean:
			if tgt.BoolAsUnion {
				base = "z.union([z.boolean(), z.number(), z.string()]).pipe(z.coerce.boolean())"
			} else {
				base = "z.boolean()"
			}
		case dialect.BigInt, dialect.Decimal:
			// Emitted as strings to stay precision-safe.
			base = "z.string()"
		case dialect.Enum:
			if len(col.EnumValues) == 0 {
				// Missing enum values degrade to a plain string rather
				// than an empty enum construct.
				base = "z.string()"
			} else {
				base = zodEnum(col.EnumValues)
			}
		case dialect.JSON:
			base = "z.record(z.string(), z.unknown())"
		default:
			return "", NewUnsupportedTypeError(col.Name, col.RawType)
		}
	}
	// Suffix order is fixed: base, nullable, optional, default.
	var b strings.Builder
	b.WriteString(base)
	if col.Nullable {
		b.WriteString(".nullable()")
	}
	if role.Optional(col) {
		b.WriteString(".optional()")
	}
	if col.HasDefault() && !col.AutoGenerated {
		b.WriteString(".default(")
		b.WriteString(zodDefault(cat, *col.Default))
		b.WriteString(")")
	}
	return b.String(), nil
}

// zodEnum renders the enumerated-value validator.
func zodEnum(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = quote(v)
	}
	return "z.enum([" + strings.Join(parts, ", ") + "])"
}

// zodDefault renders a default literal with category-appropriate
// quoting: numbers and booleans stay bare, everything else quotes.
func zodDefault(cat dialect.Category, lit string) string {
	switch cat {
	case dialect.Number:
		return lit
	case dialect.Boolean:
		switch strings.ToLower(lit) {
		case "1", "true", "t":
			return "true"
		case "0", "false", "f":
			return "false"
		}
		return quote(lit)
	default:
		return quote(lit)
	}
}
