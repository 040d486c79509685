// Package load parses a schema-definition file into the uniform schema
// model. The format is the Prisma schema language: model, view, enum,
// generator and datasource blocks, with field attributes (@id, @default,
// @updatedAt, @map, @ignore, @relation) and block attributes (@@ignore,
// @@map). Generator and datasource blocks are recognized and skipped;
// only the declaration blocks contribute to the snapshot.
package load

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
	"github.com/syssam/tsgen/schema/directive"
)

// ErrParse indicates a malformed schema file.
var ErrParse = errors.New("tsgen: schema parse error")

// ParseError reports a malformed schema file with the offending line.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("tsgen: schema parse error on line %d: %s", e.Line, e.Message)
}

// Is reports whether the target matches the sentinel error for ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// ParseFile reads and parses the schema file at path.
func ParseFile(path string) (*schema.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return Parse(string(data))
}

// Parse parses the schema source into a snapshot. Models and views
// become tables, enums become shared declarations. Entities carrying
// @@ignore yield no descriptors at all and are absent from the result.
func Parse(src string) (*schema.Snapshot, error) {
	blocks, err := splitBlocks(src)
	if err != nil {
		return nil, err
	}

	// First pass: enum declarations, so field types can be resolved
	// against them, and model names, so relation fields can be skipped.
	enums := schema.NewEnumSet()
	aliases := make(map[string]map[string]string)
	entity := make(map[string]bool)
	for _, b := range blocks {
		switch b.kind {
		case "enum":
			if e, alias, ok := parseEnum(b); ok {
				enums.Add(e)
				aliases[e.Name] = alias
			}
		case "model", "view":
			entity[b.name] = true
		}
	}

	snap := &schema.Snapshot{Dialect: dialect.Prisma, Enums: enums.All()}
	for _, b := range blocks {
		if b.kind != "model" && b.kind != "view" {
			continue
		}
		t, ok, err := parseEntity(b, enums, aliases, entity)
		if err != nil {
			return nil, err
		}
		if ok {
			snap.Tables = append(snap.Tables, t)
		}
	}
	return snap, nil
}

// block is one top-level declaration with its body lines.
type block struct {
	kind  string // model, view, enum, generator, datasource
	name  string
	line  int // line number of the header, 1-based
	lines []bodyLine
}

type bodyLine struct {
	text string
	num  int
}

func splitBlocks(src string) ([]block, error) {
	var (
		blocks []block
		cur    *block
	)
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		switch {
		case cur == nil:
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 3 || fields[2] != "{" {
				return nil, &ParseError{Line: num, Message: fmt.Sprintf("expected block declaration, got %q", line)}
			}
			switch fields[0] {
			case "model", "view", "enum", "generator", "datasource":
			default:
				return nil, &ParseError{Line: num, Message: fmt.Sprintf("unknown block kind %q", fields[0])}
			}
			cur = &block{kind: fields[0], name: fields[1], line: num}
		case line == "}":
			blocks = append(blocks, *cur)
			cur = nil
		default:
			cur.lines = append(cur.lines, bodyLine{text: line, num: num})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan schema: %w", err)
	}
	if cur != nil {
		return nil, &ParseError{Line: cur.line, Message: fmt.Sprintf("unterminated %s block %q", cur.kind, cur.name)}
	}
	return blocks, nil
}

// parseEnum builds the filtered, aliased declaration for an enum block,
// along with the declared-identifier to emitted-value mapping used to
// resolve enum defaults. Returns ok=false when the whole enum carries
// @@ignore; such enums are omitted from the declaration set entirely.
func parseEnum(b block) (schema.Enum, map[string]string, bool) {
	e := schema.Enum{Name: b.name}
	alias := make(map[string]string)
	for _, l := range b.lines {
		line := l.text
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "@@ignore") {
			return schema.Enum{}, nil, false
		}
		if strings.HasPrefix(line, "@@") {
			continue
		}
		name, attrs, _ := splitField(line)
		if name == "" || hasAttr(attrs, "@ignore") {
			continue
		}
		value := name
		if m, ok := directive.Extract(attrs, "@map("); ok {
			value = unquote(m)
		}
		alias[name] = value
		e.Values = append(e.Values, value)
	}
	return e, alias, true
}

// parseEntity builds the descriptor list for a model or view block.
// Returns ok=false for entities carrying @@ignore.
func parseEntity(b block, enums *schema.EnumSet, aliases map[string]map[string]string, entity map[string]bool) (schema.Table, bool, error) {
	t := schema.Table{Name: b.name, View: b.kind == "view"}
	var doc []string // accumulated /// lines preceding the next field
	for _, l := range b.lines {
		line := l.text
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "///"):
			doc = append(doc, strings.TrimSpace(strings.TrimPrefix(line, "///")))
			continue
		case strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "@@ignore"):
			return schema.Table{}, false, nil
		case strings.HasPrefix(line, "@@map("):
			if m, ok := directive.Extract(line, "@@map("); ok {
				t.Mapped = unquote(m)
			}
			continue
		case strings.HasPrefix(line, "@@"):
			// Other block attributes (@@id, @@unique, @@index) carry no
			// type information.
			continue
		}

		name, rest, comment := splitField(line)
		if name == "" || rest == "" {
			return schema.Table{}, false, &ParseError{Line: l.num, Message: fmt.Sprintf("malformed field line %q", line)}
		}
		comment = strings.Join(append(doc, comment), " ")
		doc = nil

		typ, attrs, _ := strings.Cut(rest, " ")
		col, keep := buildColumn(name, typ, attrs, comment, enums, aliases, entity)
		if keep {
			t.Columns = append(t.Columns, col)
		}
	}
	return t, true, nil
}

// buildColumn turns one field declaration into a descriptor. Relation
// fields, array fields and @ignore fields report keep=false.
func buildColumn(name, typ, attrs, comment string, enums *schema.EnumSet, aliases map[string]map[string]string, entity map[string]bool) (schema.Column, bool) {
	if strings.HasSuffix(typ, "[]") {
		return schema.Column{}, false
	}
	nullable := strings.HasSuffix(typ, "?")
	typ = strings.TrimSuffix(typ, "?")

	// A field whose type is another declared entity is relation-only,
	// as is any field carrying @relation.
	if entity[typ] || strings.Contains(attrs, "@relation") {
		return schema.Column{}, false
	}
	if hasAttr(attrs, "@ignore") || directive.HasIgnore(comment) && !directive.HasTableIgnore(comment) {
		return schema.Column{}, false
	}

	col := schema.Column{
		Name:     name,
		RawType:  typ,
		Nullable: nullable,
		Comment:  comment,
	}
	if e, ok := enums.Lookup(typ); ok {
		col.EnumValues = e.Values
	}
	if hasAttr(attrs, "@updatedAt") {
		col.AutoGenerated = true
	}
	if def, ok := directive.Extract(attrs, "@default("); ok {
		applyDefault(&col, def, aliases[typ])
	}
	return col, true
}

// generatedDefaults are the @default(...) function calls whose value is
// produced by the database or client at insert time.
var generatedDefaults = map[string]bool{
	"now":           true,
	"autoincrement": true,
	"uuid":          true,
	"cuid":          true,
	"dbgenerated":   true,
}

func applyDefault(col *schema.Column, def string, alias map[string]string) {
	def = strings.TrimSpace(def)
	if fn, _, ok := strings.Cut(def, "("); ok && generatedDefaults[fn] {
		col.AutoGenerated = true
		return
	}
	lit := unquote(def)
	// An enum default names the declared identifier; the emitted value
	// list may have been aliased by @map, so the default follows suit.
	if v, ok := alias[lit]; ok {
		lit = v
	}
	col.Default = &lit
}

// splitField splits a body line into its first token, the remainder and
// a trailing /// comment.
func splitField(line string) (name, rest, comment string) {
	if i := strings.Index(line, "///"); i >= 0 {
		comment = strings.TrimSpace(line[i+3:])
		line = strings.TrimSpace(line[:i])
	}
	name, rest, _ = strings.Cut(line, " ")
	return name, strings.TrimSpace(rest), comment
}

// hasAttr reports whether attrs contains the attribute as a whole token
// (so @ignore does not match inside @ignoreCase, and @updatedAt matches
// at end of line).
func hasAttr(attrs, attr string) bool {
	for _, f := range strings.Fields(attrs) {
		if f == attr {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
