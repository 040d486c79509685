// Package directive extracts embedded override expressions and exclusion
// markers from schema comments. Overrides are written as @zod(...),
// @ts(...) or @kysely(...) and may contain arbitrarily nested generics,
// object literals and function calls; extraction therefore runs a small
// balanced-delimiter scan rather than a regular expression.
package directive

import "strings"

// Directive prefixes and markers recognized in comments.
const (
	zodPrefix    = "@zod("
	tsPrefix     = "@ts("
	kyselyPrefix = "@kysely("

	ignoreMarker      = "@ignore"
	tableIgnoreMarker = "@@ignore"
)

// Extract scans comment for the first occurrence of prefix and returns
// the expression enclosed by its delimiters. The scan starts with a
// nesting depth of 1 just past the prefix, increments on any of "({<["
// and decrements on any of ")}>]"; the expression ends where depth first
// returns to zero. A comment whose delimiters never balance yields
// ("", false): malformed directives are treated as absent, not as errors.
func Extract(comment, prefix string) (string, bool) {
	i := strings.Index(comment, prefix)
	if i < 0 {
		return "", false
	}
	start := i + len(prefix)
	depth := 1
	for j := start; j < len(comment); j++ {
		switch comment[j] {
		case '(', '{', '<', '[':
			depth++
		case ')', '}', '>', ']':
			depth--
			if depth == 0 {
				return comment[start:j], true
			}
		}
	}
	return "", false
}

// Zod returns the @zod(...) override expression, if present.
func Zod(comment string) (string, bool) { return Extract(comment, zodPrefix) }

// TS returns the @ts(...) override expression, if present.
func TS(comment string) (string, bool) { return Extract(comment, tsPrefix) }

// Kysely returns the @kysely(...) override expression, if present.
func Kysely(comment string) (string, bool) { return Extract(comment, kyselyPrefix) }

// HasIgnore reports whether the comment carries a field-level @ignore
// marker. Note that @ignore is a substring of @@ignore, so this also
// matches entity-level markers; callers distinguishing the two must
// consult HasTableIgnore first.
func HasIgnore(comment string) bool {
	return strings.Contains(comment, ignoreMarker)
}

// HasTableIgnore reports whether the comment carries an entity-level
// @@ignore marker. It matches only the doubled form.
func HasTableIgnore(comment string) bool {
	return strings.Contains(comment, tableIgnoreMarker)
}
