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

// Postgres introspects a PostgreSQL database. Column metadata comes
// from information_schema; comments and enum values need the catalog
// tables (col_description, pg_type/pg_enum).
type Postgres struct {
	db *sqlx.DB
	// Schema is the namespace to introspect, "public" by default.
	Schema string
}

// NewPostgres returns a Postgres adapter over the given connection.
func NewPostgres(db *sqlx.DB, searchPath string) *Postgres {
	if searchPath == "" {
		searchPath = "public"
	}
	return &Postgres{db: db, Schema: searchPath}
}

// Dialect implements Adapter.
func (p *Postgres) Dialect() string { return dialect.Postgres }

// Close implements Adapter.
func (p *Postgres) Close() error { return p.db.Close() }

// Tables lists ordinary tables, views and materialized views with
// their comments.
func (p *Postgres) Tables(ctx context.Context) ([]TableRef, error) {
	const q = `
		SELECT c.relname, c.relkind, COALESCE(obj_description(c.oid, 'pg_class'), '')
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind IN ('r', 'p', 'v', 'm')
		ORDER BY c.relname`

	rows, err := p.db.QueryContext(ctx, q, p.Schema)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var refs []TableRef
	for rows.Next() {
		var name, kind, comment string
		if err := rows.Scan(&name, &kind, &comment); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		refs = append(refs, TableRef{
			Name:    name,
			View:    kind == "v" || kind == "m",
			Comment: comment,
		})
	}
	return refs, rows.Err()
}

// Columns maps information_schema.columns rows into descriptors.
// User-defined types resolve their raw type to the udt name, and enum
// values are looked up against the pg_enum catalog in a second pass.
func (p *Postgres) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	const q = `
		SELECT c.column_name,
		       c.data_type,
		       c.udt_name,
		       c.is_nullable,
		       c.column_default,
		       c.is_identity,
		       COALESCE(col_description(pc.oid, c.ordinal_position), '')
		FROM information_schema.columns c
		JOIN pg_catalog.pg_class pc ON pc.relname = c.table_name
		JOIN pg_catalog.pg_namespace pn ON pn.oid = pc.relnamespace AND pn.nspname = c.table_schema
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position`

	rows, err := p.db.QueryContext(ctx, q, p.Schema, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []schema.Column
	var userDefined []int
	for rows.Next() {
		var (
			name, dataType, udt, nullable, identity, comment string
			def                                              sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &udt, &nullable, &def, &identity, &comment); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		col := schema.Column{
			Name:          name,
			RawType:       dataType,
			Nullable:      nullable == "YES",
			AutoGenerated: identity == "YES" || pgGenerated(def.String),
			Comment:       comment,
		}
		if strings.EqualFold(dataType, "USER-DEFINED") || strings.EqualFold(dataType, "ARRAY") {
			col.RawType = udt
		}
		if def.Valid && !col.AutoGenerated {
			v := pgDefaultLiteral(def.String)
			col.Default = &v
		}
		if strings.EqualFold(dataType, "USER-DEFINED") {
			userDefined = append(userDefined, len(cols))
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Secondary lookup: resolve enum values for user-defined types,
	// joined on the column's underlying type name. Non-enum UDTs simply
	// resolve to an empty list and stay unknown.
	for _, i := range userDefined {
		values, err := p.enumValuesByType(ctx, cols[i].RawType)
		if err != nil {
			return nil, err
		}
		if len(values) > 0 {
			cols[i].EnumValues = values
		}
	}
	return cols, nil
}

// EnumValues resolves the enum labels for the column's underlying type.
func (p *Postgres) EnumValues(ctx context.Context, table, column string) ([]string, error) {
	const q = `
		SELECT udt_name FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2 AND column_name = $3`

	var udt string
	if err := p.db.GetContext(ctx, &udt, q, p.Schema, table, column); err != nil {
		return nil, fmt.Errorf("query udt of %s.%s: %w", table, column, err)
	}
	return p.enumValuesByType(ctx, udt)
}

func (p *Postgres) enumValuesByType(ctx context.Context, typeName string) ([]string, error) {
	const q = `
		SELECT e.enumlabel
		FROM pg_catalog.pg_type t
		JOIN pg_catalog.pg_enum e ON e.enumtypid = t.oid
		JOIN pg_catalog.pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1 AND t.typname = $2
		ORDER BY e.enumsortorder`

	var values []string
	if err := p.db.SelectContext(ctx, &values, q, p.Schema, typeName); err != nil {
		return nil, fmt.Errorf("query enum values of %s: %w", typeName, err)
	}
	return values, nil
}

// pgGenerated reports whether the default expression is produced by the
// database (sequences, uuid/time functions).
func pgGenerated(def string) bool {
	d := strings.ToLower(def)
	switch {
	case strings.HasPrefix(d, "nextval("),
		strings.HasPrefix(d, "now()"),
		strings.HasPrefix(d, "current_timestamp"),
		strings.HasPrefix(d, "gen_random_uuid("),
		strings.HasPrefix(d, "uuid_generate"):
		return true
	}
	return false
}

// pgDefaultLiteral strips the cast suffix and quoting Postgres adds to
// literal defaults: 'draft'::text becomes draft, 42 stays 42.
func pgDefaultLiteral(def string) string {
	if i := strings.Index(def, "::"); i >= 0 {
		def = def[:i]
	}
	def = strings.TrimSpace(def)
	if len(def) >= 2 && def[0] == '\'' && def[len(def)-1] == '\'' {
		def = strings.ReplaceAll(def[1:len(def)-1], "''", "'")
	}
	return def
}
