// Package schema defines the uniform schema model produced by the
// normalizer adapters (live introspection and schema-file loading) and
// consumed by the type-resolution engine. Every column reaching the
// engine is a Column built by an adapter; nothing downstream constructs
// descriptors ad hoc.
package schema

// Column is the uniform per-field descriptor.
type Column struct {
	// Name is the column name as stored in the database.
	Name string `msgpack:"name"`
	// RawType is the dialect-native type expression, e.g. "int unsigned",
	// "enum('a','b')", "timestamptz" or "DateTime".
	RawType string `msgpack:"raw_type"`
	// Nullable reports whether the column accepts NULL.
	Nullable bool `msgpack:"nullable"`
	// Default holds the literal default value, if any. Function-call and
	// otherwise database-generated defaults are reported through
	// AutoGenerated and leave Default nil.
	Default *string `msgpack:"default"`
	// AutoGenerated reports whether the database produces the value
	// itself (auto-increment, identity, now(), uuid() and friends).
	AutoGenerated bool `msgpack:"auto_generated"`
	// EnumValues holds the resolved, already-filtered value list for
	// enum-typed columns. Nil for non-enum columns.
	EnumValues []string `msgpack:"enum_values"`
	// Comment is the free-text column comment. Embedded directives such
	// as @zod(...) are extracted from it by the engine.
	Comment string `msgpack:"comment"`
}

// HasDefault reports whether the column carries a literal default.
func (c Column) HasDefault() bool { return c.Default != nil }

// Generated reports whether the database can produce the column value
// on insert, either through a generated default or a literal one.
func (c Column) Generated() bool { return c.AutoGenerated || c.Default != nil }

// Table is one entity: a database table, view, or schema-file model.
type Table struct {
	// Name is the declared entity name.
	Name string `msgpack:"name"`
	// Mapped is the storage name when it differs from Name
	// (@@map in schema files). Empty otherwise.
	Mapped string `msgpack:"mapped"`
	// View marks read-only entities. Views never receive insertable or
	// updateable declarations.
	View bool `msgpack:"view"`
	// Columns are the entity's descriptors, in declaration order.
	Columns []Column `msgpack:"columns"`
}

// Key returns the storage key of the table: the mapped name when
// present, the declared name otherwise.
func (t Table) Key() string {
	if t.Mapped != "" {
		return t.Mapped
	}
	return t.Name
}

// Enum is a named, ordered list of permitted values. Values excluded by
// @ignore and aliased by @map are already applied by the normalizer.
type Enum struct {
	Name   string   `msgpack:"name"`
	Values []string `msgpack:"values"`
}

// EnumSet accumulates the enum declarations of one generation run.
// It preserves insertion order and is threaded explicitly through the
// normalizer and renderer rather than living in a package global.
type EnumSet struct {
	names []string
	decls map[string]Enum
}

// NewEnumSet returns an empty EnumSet.
func NewEnumSet() *EnumSet {
	return &EnumSet{decls: make(map[string]Enum)}
}

// Add registers an enum declaration, replacing any previous declaration
// with the same name.
func (s *EnumSet) Add(e Enum) {
	if _, ok := s.decls[e.Name]; !ok {
		s.names = append(s.names, e.Name)
	}
	s.decls[e.Name] = e
}

// Lookup returns the declaration for name.
func (s *EnumSet) Lookup(name string) (Enum, bool) {
	e, ok := s.decls[name]
	return e, ok
}

// Names returns the declared enum names in insertion order.
func (s *EnumSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of declarations in the set.
func (s *EnumSet) Len() int { return len(s.names) }

// All returns the declarations in insertion order.
func (s *EnumSet) All() []Enum {
	out := make([]Enum, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.decls[n])
	}
	return out
}

// Snapshot is the complete normalized output of one extraction pass:
// every surviving entity plus the shared enum declarations. It is the
// unit persisted by the snapshot cache and consumed by the generator.
type Snapshot struct {
	// Dialect is the source dialect the snapshot was extracted from.
	Dialect string  `msgpack:"dialect"`
	Tables  []Table `msgpack:"tables"`
	// Enums holds the shared enum declarations. May be empty for
	// dialects without named enum types.
	Enums []Enum `msgpack:"enums"`
}

// EnumSet rebuilds the accumulator from the persisted declarations.
func (s *Snapshot) EnumSet() *EnumSet {
	set := NewEnumSet()
	for _, e := range s.Enums {
		set.Add(e)
	}
	return set
}
