package gen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/tsgen/schema"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, a := range []string{"ID", "UUID", "URL", "API", "DB", "SQL", "JSON", "HTTP"} {
		r.AddAcronym(a)
	}
	return r
}

// pascal converts a snake/kebab name to PascalCase.
func pascal(s string) string {
	return rules.Camelize(strings.ReplaceAll(s, "-", "_"))
}

// camel converts a snake/kebab name to camelCase.
func camel(s string) string {
	return rules.CamelizeDownFirst(strings.ReplaceAll(s, "-", "_"))
}

// entityType derives the exported type base name for an entity from its
// declared name: plural table names singularize, model names pass
// through ("users" and "User" both become "User").
func entityType(t schema.Table) string {
	return pascal(rules.Singularize(t.Name))
}

// propName renders a property key, quoting names that are not plain
// TypeScript identifiers.
func propName(name string) string {
	for i, r := range name {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			i > 0 && r >= '0' && r <= '9':
		default:
			return "'" + strings.ReplaceAll(name, "'", "\\'") + "'"
		}
	}
	if name == "" {
		return "''"
	}
	return name
}
