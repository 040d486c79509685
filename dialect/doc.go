// Package dialect names the schema sources tsgen can normalize and owns
// the per-dialect type classification tables.
//
// # Supported Dialects
//
//   - MySQL: MySQL/MariaDB, introspected over information_schema
//   - Postgres: PostgreSQL, introspected over information_schema and
//     the pg_catalog enum tables
//   - SQLite: SQLite, introspected over sqlite_master and PRAGMA
//   - Prisma: a static schema-definition file, parsed by compiler/load
//
// # Classification
//
// Classify maps a raw column type to one of a fixed set of semantic
// categories (date, string, number, boolean, bigint, decimal, enum,
// json, unknown). Classification is total: an unrecognized raw type maps
// to Unknown rather than failing. JSON detection runs by substring
// containment before any table lookup, so json and jsonb win even for
// dialects that co-list them elsewhere.
package dialect
