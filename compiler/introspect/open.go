package introspect

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	// Database drivers for the supported SQL dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/tsgen/dialect"
)

// driverNames maps dialects to their registered database/sql drivers.
var driverNames = map[string]string{
	dialect.MySQL:    "mysql",
	dialect.Postgres: "postgres",
	dialect.SQLite:   "sqlite",
}

// Open connects to url and returns the adapter for the given dialect.
// namespace selects the database (MySQL) or schema search path
// (Postgres); it is ignored for SQLite. The caller owns the adapter and
// must Close it.
func Open(dialectName, url, namespace string) (Adapter, error) {
	driver, ok := driverNames[dialectName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialectName)
	}
	db, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialectName, err)
	}
	switch dialectName {
	case dialect.MySQL:
		return NewMySQL(db, namespace), nil
	case dialect.Postgres:
		return NewPostgres(db, namespace), nil
	default:
		return NewSQLite(db), nil
	}
}
