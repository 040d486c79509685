// Package introspect normalizes live SQL databases into the uniform
// schema model. One adapter exists per dialect; each issues the
// dialect's introspection queries and maps result rows into column
// descriptors. Ignore directives embedded in table and column comments
// are applied here, so ignored entities and fields are invisible to the
// rest of the pipeline.
package introspect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/tsgen/schema"
	"github.com/syssam/tsgen/schema/directive"
)

// ErrUnknownDialect is returned when no adapter exists for a dialect.
var ErrUnknownDialect = errors.New("tsgen: unknown dialect")

// TableRef identifies one table or view, with its comment when the
// dialect stores one.
type TableRef struct {
	Name    string
	View    bool
	Comment string
}

// Adapter normalizes one database dialect.
type Adapter interface {
	// Dialect returns the dialect name the adapter introspects.
	Dialect() string
	// Tables lists the tables and views visible to the adapter.
	Tables(ctx context.Context) ([]TableRef, error)
	// Columns returns the normalized descriptors for one table, in
	// ordinal position order. Field-level ignore filtering is left to
	// the caller; enum values are resolved where the dialect allows it.
	Columns(ctx context.Context, table string) ([]schema.Column, error)
	// EnumValues resolves the permitted values for an enum column.
	// Dialects without enum types return (nil, nil).
	EnumValues(ctx context.Context, table, column string) ([]string, error)
	// Close releases the underlying connection.
	Close() error
}

// Inspect drives the adapter across every visible table and assembles
// the normalized snapshot. Tables whose comment carries @@ignore yield
// zero descriptors and are absent from the result; columns whose
// comment carries @ignore are dropped. Named enum types encountered
// along the way are collected into the snapshot's declaration list.
func Inspect(ctx context.Context, a Adapter) (*schema.Snapshot, error) {
	refs, err := a.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	snap := &schema.Snapshot{Dialect: a.Dialect()}
	enums := schema.NewEnumSet()
	for _, ref := range refs {
		if directive.HasTableIgnore(ref.Comment) {
			continue
		}
		cols, err := a.Columns(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", ref.Name, err)
		}
		t := schema.Table{Name: ref.Name, View: ref.View}
		for _, c := range cols {
			if directive.HasIgnore(c.Comment) {
				continue
			}
			// Named enum types (Postgres user-defined enums) surface as
			// shared declarations; inline enum('a','b') columns do not.
			if len(c.EnumValues) > 0 && !inlineEnum(c.RawType) {
				enums.Add(schema.Enum{Name: c.RawType, Values: c.EnumValues})
			}
			t.Columns = append(t.Columns, c)
		}
		snap.Tables = append(snap.Tables, t)
	}
	snap.Enums = enums.All()
	return snap, nil
}

func inlineEnum(rawType string) bool {
	return strings.HasPrefix(rawType, "enum(")
}
