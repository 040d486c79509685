package dialect

// Dialect constants for the supported schema sources.
const (
	// MySQL is a live MySQL/MariaDB database.
	MySQL = "mysql"
	// Postgres is a live PostgreSQL database.
	Postgres = "postgres"
	// SQLite is a live SQLite database.
	SQLite = "sqlite"
	// Prisma is a static schema-definition file.
	Prisma = "prisma"
)

// All lists every supported dialect name.
func All() []string {
	return []string{MySQL, Postgres, SQLite, Prisma}
}

// Valid reports whether name is a supported dialect.
func Valid(name string) bool {
	switch name {
	case MySQL, Postgres, SQLite, Prisma:
		return true
	}
	return false
}

// SQL reports whether the dialect is a live SQL source. SQL dialects
// lower-case raw type tokens before classification; Prisma preserves
// case because its scalar names are case-sensitive.
func SQL(name string) bool {
	return name == MySQL || name == Postgres || name == SQLite
}
