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

// MySQL introspects a MySQL/MariaDB database over information_schema.
type MySQL struct {
	db *sqlx.DB
	// Schema is the database to introspect. Empty means the connection's
	// current database.
	Schema string
}

// NewMySQL returns a MySQL adapter over the given connection.
func NewMySQL(db *sqlx.DB, dbname string) *MySQL {
	return &MySQL{db: db, Schema: dbname}
}

// Dialect implements Adapter.
func (m *MySQL) Dialect() string { return dialect.MySQL }

// Close implements Adapter.
func (m *MySQL) Close() error { return m.db.Close() }

// Tables lists base tables and views with their comments.
func (m *MySQL) Tables(ctx context.Context) ([]TableRef, error) {
	const q = `
		SELECT table_name, table_type, table_comment
		FROM information_schema.tables
		WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE())
		  AND table_type IN ('BASE TABLE', 'VIEW')
		ORDER BY table_name`

	rows, err := m.db.QueryContext(ctx, q, m.Schema)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var refs []TableRef
	for rows.Next() {
		var name, typ string
		var comment sql.NullString
		if err := rows.Scan(&name, &typ, &comment); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		refs = append(refs, TableRef{
			Name:    name,
			View:    typ == "VIEW",
			Comment: comment.String,
		})
	}
	return refs, rows.Err()
}

// Columns maps information_schema.columns rows into descriptors.
// column_type is used as the raw type so enum('a','b') value lists and
// the unsigned marker survive normalization.
func (m *MySQL) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	const q = `
		SELECT column_name, column_type, is_nullable, column_default, extra, column_comment
		FROM information_schema.columns
		WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE())
		  AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := m.db.QueryContext(ctx, q, m.Schema, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			name, columnType, nullable string
			def                        sql.NullString
			extra, comment             sql.NullString
		)
		if err := rows.Scan(&name, &columnType, &nullable, &def, &extra, &comment); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		col := schema.Column{
			Name:          name,
			RawType:       columnType,
			Nullable:      nullable == "YES",
			AutoGenerated: mysqlGenerated(extra.String, def.String),
			Comment:       comment.String,
		}
		if def.Valid && !col.AutoGenerated {
			v := def.String
			col.Default = &v
		}
		if strings.HasPrefix(columnType, "enum(") {
			col.EnumValues = parseEnumType(columnType)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// EnumValues re-reads the column_type of the column and parses its
// inline value list.
func (m *MySQL) EnumValues(ctx context.Context, table, column string) ([]string, error) {
	const q = `
		SELECT column_type
		FROM information_schema.columns
		WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE())
		  AND table_name = ? AND column_name = ?`

	var columnType string
	if err := m.db.GetContext(ctx, &columnType, q, m.Schema, table, column); err != nil {
		return nil, fmt.Errorf("query column type of %s.%s: %w", table, column, err)
	}
	return parseEnumType(columnType), nil
}

// mysqlGenerated reports whether the extra marker or the default
// expression means the database produces the value itself.
func mysqlGenerated(extra, def string) bool {
	extra = strings.ToLower(extra)
	switch {
	case strings.Contains(extra, "auto_increment"),
		strings.Contains(extra, "default_generated"),
		strings.Contains(extra, "generated"):
		return true
	}
	return strings.HasPrefix(strings.ToUpper(def), "CURRENT_TIMESTAMP")
}

// parseEnumType extracts the quoted values out of enum('a','b') or
// set('a','b'). Values may contain '' as an escaped quote.
func parseEnumType(columnType string) []string {
	open := strings.IndexByte(columnType, '(')
	end := strings.LastIndexByte(columnType, ')')
	if open < 0 || end <= open {
		return nil
	}
	var (
		values []string
		cur    strings.Builder
		in     bool
	)
	body := columnType[open+1 : end]
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\'' && !in:
			in = true
		case c == '\'' && in:
			if i+1 < len(body) && body[i+1] == '\'' {
				cur.WriteByte('\'')
				i++
				continue
			}
			in = false
			values = append(values, cur.String())
			cur.Reset()
		case in:
			cur.WriteByte(c)
		}
	}
	return values
}
