package gen

import (
	"errors"
	"sort"
	"strings"

	"github.com/syssam/tsgen/schema"
)

// File is one rendered output file, relative to the output directory.
type File struct {
	Name string
	Body string
}

// renderState is the per-target bookkeeping threaded through entity
// rendering: the declared enums of the run, which of them the rendered
// expressions referenced, and which marker types the prelude must
// declare. It replaces what would otherwise be module-level globals.
type renderState struct {
	enums     *schema.EnumSet
	byValues  map[string]string
	usedEnums map[string]bool
	markers   map[string]bool
}

func newRenderState(snap *schema.Snapshot) *renderState {
	st := &renderState{
		enums:     snap.EnumSet(),
		byValues:  make(map[string]string),
		usedEnums: make(map[string]bool),
		markers:   make(map[string]bool),
	}
	for _, e := range snap.Enums {
		st.byValues[enumKey(e.Values)] = e.Name
	}
	return st
}

// enumKey joins a value list into a lookup key. The separator cannot
// appear in enum labels.
func enumKey(values []string) string {
	return strings.Join(values, "\x1f")
}

// enumName resolves a column's value list back to its declared enum
// type alias. Inline enums with no declaration miss and render as
// literal unions.
func (st *renderState) enumName(values []string) (string, bool) {
	if st == nil {
		return "", false
	}
	name, ok := st.byValues[enumKey(values)]
	if !ok {
		return "", false
	}
	st.usedEnums[name] = true
	return pascal(name), true
}

// mark records a marker type for the file prelude.
func (st *renderState) mark(name string) {
	if st != nil {
		st.markers[name] = true
	}
}

// Render produces one file per configured target from the snapshot.
// The whole batch fails only when the Zod path hits an unsupported
// type; the other targets degrade silently.
func (c *Config) Render(snap *schema.Snapshot) ([]File, error) {
	files := make([]File, 0, len(c.Targets))
	for _, tgt := range c.Targets {
		f, err := c.renderTarget(snap, tgt)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

var targetFiles = map[string]string{
	"zod":        "schemas.ts",
	"typescript": "types.ts",
	"kysely":     "db.ts",
}

func (c *Config) renderTarget(snap *schema.Snapshot, tgt Target) (File, error) {
	st := newRenderState(snap)
	blocks := make([]string, 0, len(snap.Tables))
	for _, t := range snap.Tables {
		block, err := c.renderEntity(t, tgt, st)
		if err != nil {
			var ut *UnsupportedTypeError
			if errors.As(err, &ut) {
				ut.Table = t.Name
			}
			return File{}, &RenderError{Entity: t.Name, Target: tgt.Name(), Cause: err}
		}
		blocks = append(blocks, block)
	}

	var sections []string
	if c.Header != "" {
		sections = append(sections, c.Header)
	}
	if p := prelude(tgt, st); p != "" {
		sections = append(sections, p)
	}
	if decls := st.enumDecls(); decls != "" {
		sections = append(sections, decls)
	}
	sections = append(sections, blocks...)
	if k, ok := tgt.(Kysely); ok {
		sections = append(sections, databaseInterface(snap, k))
	}
	return File{
		Name: targetFiles[tgt.Name()],
		Body: strings.Join(sections, "\n\n") + "\n",
	}, nil
}

// renderEntity renders every applicable role declaration for one
// entity. Views receive the full and selectable declarations only.
func (c *Config) renderEntity(t schema.Table, tgt Target, st *renderState) (string, error) {
	name := entityType(t)
	decls := make([]string, 0, 4)
	for _, role := range Roles(t) {
		lines := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			res, err := c.resolve(col, role, tgt, st)
			if err != nil {
				return "", err
			}
			lines = append(lines, fieldLine(col, role, res, tgt, st))
		}
		decls = append(decls, envelope(tgt, name, role, lines))
	}
	return strings.Join(decls, "\n\n"), nil
}

// fieldLine renders one `name: expression` member. The Zod target
// carries optionality inside the expression; the others use the `?`
// property modifier.
func fieldLine(col schema.Column, role Role, res Resolution, tgt Target, st *renderState) string {
	switch tgt.(type) {
	case Zod:
		return "  " + propName(col.Name) + ": " + res.Expr + ","
	case Kysely:
		expr := res.Expr
		if role == RoleFull {
			expr = generatedWrap(expr, res, st)
		}
		return "  " + propName(col.Name) + opt(res.Optional) + ": " + expr + ";"
	default:
		return "  " + propName(col.Name) + opt(res.Optional) + ": " + res.Expr + ";"
	}
}

func opt(optional bool) string {
	if optional {
		return "?"
	}
	return ""
}

// envelope wraps member lines in the role's named declaration for the
// target.
func envelope(tgt Target, name string, role Role, lines []string) string {
	body := strings.Join(lines, "\n")
	switch tgt.(type) {
	case Zod:
		c, t := zodNames(name, role)
		return "export const " + c + " = z.object({\n" + body + "\n});\n\n" +
			"export type " + t + " = z.infer<typeof " + c + ">;"
	case Kysely:
		return "export interface " + kyselyName(name, role) + " {\n" + body + "\n}"
	default:
		return "export type " + aliasName(name, role) + " = {\n" + body + "\n};"
	}
}

// zodNames returns the schema constant and inferred type names for a
// role.
func zodNames(name string, role Role) (constName, typeName string) {
	c := camel(name)
	switch role {
	case RoleInsertable:
		return c + "InsertSchema", "New" + name
	case RoleUpdateable:
		return c + "UpdateSchema", name + "Update"
	case RoleSelectable:
		return c + "SelectSchema", name + "Row"
	default:
		return c + "Schema", name
	}
}

func aliasName(name string, role Role) string {
	switch role {
	case RoleInsertable:
		return "New" + name
	case RoleUpdateable:
		return name + "Update"
	case RoleSelectable:
		return name + "Row"
	default:
		return name
	}
}

func kyselyName(name string, role Role) string {
	switch role {
	case RoleInsertable:
		return "New" + name
	case RoleUpdateable:
		return name + "Update"
	case RoleSelectable:
		return name + "Row"
	default:
		return name + "Table"
	}
}

// enumDecls emits one exported type alias per referenced declared enum,
// in declaration order.
func (st *renderState) enumDecls() string {
	var decls []string
	for _, e := range st.enums.All() {
		if !st.usedEnums[e.Name] {
			continue
		}
		decls = append(decls, "export type "+pascal(e.Name)+" = "+literalUnion(e.Values)+";")
	}
	return strings.Join(decls, "\n\n")
}

// databaseInterface emits the consolidated interface after every
// entity has rendered, mapping table keys to the full-record interface
// names, sorted lexicographically by key.
func databaseInterface(snap *schema.Snapshot, tgt Kysely) string {
	tables := make([]schema.Table, len(snap.Tables))
	copy(tables, snap.Tables)
	sort.Slice(tables, func(i, j int) bool { return tables[i].Key() < tables[j].Key() })

	lines := make([]string, 0, len(tables))
	for _, t := range tables {
		lines = append(lines, "  "+propName(t.Key())+": "+entityType(t)+"Table;")
	}
	return "export interface " + tgt.databaseName() + " {\n" + strings.Join(lines, "\n") + "\n}"
}

// prelude returns the import and marker-type block for the target.
func prelude(tgt Target, st *renderState) string {
	switch tgt.(type) {
	case Zod:
		return "import { z } from 'zod';"
	case Kysely:
		return kyselyPrelude(st)
	default:
		return ""
	}
}

func kyselyPrelude(st *renderState) string {
	var blocks []string
	if st.markers[markerGenerated] || st.markers[markerInt8] || st.markers[markerNumeric] || st.markers[markerJSON] {
		blocks = append(blocks, "import type { ColumnType } from 'kysely';")
	}
	if st.markers[markerGenerated] {
		blocks = append(blocks, "export type Generated<T> = T extends ColumnType<infer S, infer I, infer U>\n"+
			"  ? ColumnType<S, I | undefined, U>\n"+
			"  : ColumnType<T, T | undefined, T>;")
	}
	if st.markers[markerInt8] {
		blocks = append(blocks, "export type Int8 = ColumnType<string, string | number | bigint, string | number | bigint>;")
	}
	if st.markers[markerNumeric] {
		blocks = append(blocks, "export type Numeric = ColumnType<string, number | string, number | string>;")
	}
	if st.markers[markerJSON] {
		blocks = append(blocks, "export type Json = ColumnType<JsonValue, string, string>;\n\n"+
			"export type JsonValue = JsonArray | JsonObject | JsonPrimitive;\n\n"+
			"export type JsonArray = JsonValue[];\n\n"+
			"export type JsonObject = { [key: string]: JsonValue | undefined };\n\n"+
			"export type JsonPrimitive = boolean | number | string | null;")
	}
	return strings.Join(blocks, "\n\n")
}
