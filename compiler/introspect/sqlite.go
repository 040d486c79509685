package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/syssam/tsgen/dialect"
	"github.com/syssam/tsgen/schema"
)

// SQLite introspects a SQLite database over sqlite_master and
// PRAGMA table_info. SQLite has no column comments, so no embedded
// directives apply to this dialect.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite returns a SQLite adapter over the given connection.
func NewSQLite(db *sqlx.DB) *SQLite {
	return &SQLite{db: db}
}

// Dialect implements Adapter.
func (s *SQLite) Dialect() string { return dialect.SQLite }

// Close implements Adapter.
func (s *SQLite) Close() error { return s.db.Close() }

// Tables lists tables and views, skipping the sqlite_ internals.
func (s *SQLite) Tables(ctx context.Context) ([]TableRef, error) {
	const q = `
		SELECT name, type FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sqlite_master: %w", err)
	}
	defer rows.Close()

	var refs []TableRef
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		refs = append(refs, TableRef{Name: name, View: typ == "view"})
	}
	return refs, rows.Err()
}

// Columns maps PRAGMA table_info rows into descriptors. An INTEGER
// PRIMARY KEY column is the rowid alias and is auto-generated.
func (s *SQLite) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("pragma table_info(%s): %w", table, err)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			def              sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &def, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info row: %w", err)
		}
		auto := pk > 0 && strings.EqualFold(typ, "integer")
		col := schema.Column{
			Name:          name,
			RawType:       typ,
			Nullable:      notNull == 0 && pk == 0,
			AutoGenerated: auto,
		}
		if def.Valid && !auto && !sqliteGenerated(def.String) {
			v := sqliteDefaultLiteral(def.String)
			col.Default = &v
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// EnumValues implements Adapter. SQLite has no enum types.
func (s *SQLite) EnumValues(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func sqliteGenerated(def string) bool {
	d := strings.ToUpper(strings.TrimSpace(def))
	return d == "CURRENT_TIMESTAMP" || d == "CURRENT_DATE" || d == "CURRENT_TIME"
}

// sqliteDefaultLiteral strips the quoting stored in the schema:
// 'draft' becomes draft, 0 stays 0.
func sqliteDefaultLiteral(def string) string {
	def = strings.TrimSpace(def)
	if len(def) >= 2 && def[0] == '\'' && def[len(def)-1] == '\'' {
		def = strings.ReplaceAll(def[1:len(def)-1], "''", "'")
	}
	return def
}

// quoteIdent quotes a SQLite identifier for interpolation into PRAGMA
// statements, which take no bound parameters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
