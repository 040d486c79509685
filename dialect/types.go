package dialect

import (
	"strings"

	atlasmysql "ariga.io/atlas/sql/mysql"
	atlaspg "ariga.io/atlas/sql/postgres"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds SQL type tokens for table lookup.
var lower = cases.Lower(language.Und)

// Category is the semantic bucket a raw column type classifies into.
// Exactly one category applies per column.
type Category uint8

// Categories, in no particular order. Unknown is the zero value so an
// absent table entry classifies safely.
const (
	Unknown Category = iota
	Date
	String
	Number
	Boolean
	BigInt
	Decimal
	Enum
	JSON
)

var categoryNames = [...]string{
	Unknown: "unknown",
	Date:    "date",
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	BigInt:  "bigint",
	Decimal: "decimal",
	Enum:    "enum",
	JSON:    "json",
}

// String returns the category name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// categoryTable lists the raw type tokens per category for one dialect.
// The lists are disjoint by construction; the index builder assumes it.
type categoryTable map[Category][]string

func (t categoryTable) index() map[string]Category {
	m := make(map[string]Category)
	for c, tokens := range t {
		for _, tok := range tokens {
			m[tok] = c
		}
	}
	return m
}

// Table keys are normalized tokens: the raw type up to the first "(" or
// space, lower-cased for SQL dialects. MySQL and Postgres entries reuse
// the atlas type-name constants where they are single tokens; multi-word
// names (e.g. "double precision", "time with time zone") normalize to
// their first word and are listed literally.
var (
	mysqlTypes = categoryTable{
		Date: {
			atlasmysql.TypeDate, atlasmysql.TypeDateTime,
			atlasmysql.TypeTimestamp, atlasmysql.TypeTime,
		},
		String: {
			atlasmysql.TypeChar, atlasmysql.TypeVarchar,
			atlasmysql.TypeText, atlasmysql.TypeTinyText,
			atlasmysql.TypeMediumText, atlasmysql.TypeLongText,
			atlasmysql.TypeBinary, atlasmysql.TypeVarBinary,
			atlasmysql.TypeBlob, atlasmysql.TypeTinyBlob,
			atlasmysql.TypeMediumBlob, atlasmysql.TypeLongBlob,
			atlasmysql.TypeSet,
		},
		Number: {
			atlasmysql.TypeTinyInt, atlasmysql.TypeSmallInt,
			atlasmysql.TypeMediumInt, atlasmysql.TypeInt,
			atlasmysql.TypeFloat, atlasmysql.TypeDouble,
			atlasmysql.TypeReal, atlasmysql.TypeYear,
		},
		Boolean: {
			atlasmysql.TypeBool, atlasmysql.TypeBoolean, atlasmysql.TypeBit,
		},
		BigInt:  {atlasmysql.TypeBigInt},
		Decimal: {atlasmysql.TypeDecimal, atlasmysql.TypeNumeric},
		Enum:    {atlasmysql.TypeEnum},
		JSON:    {atlasmysql.TypeJSON},
	}

	postgresTypes = categoryTable{
		Date: {
			atlaspg.TypeDate, atlaspg.TypeTime, atlaspg.TypeTimeTZ,
			atlaspg.TypeTimestamp, atlaspg.TypeTimestampTZ,
		},
		String: {
			atlaspg.TypeCharacter, atlaspg.TypeChar, atlaspg.TypeVarChar,
			atlaspg.TypeText, atlaspg.TypeUUID, atlaspg.TypeBytea,
			atlaspg.TypeInet, atlaspg.TypeCIDR, atlaspg.TypeMACAddr,
			atlaspg.TypeXML, atlaspg.TypeInterval, atlaspg.TypeMoney,
			"citext",
		},
		Number: {
			atlaspg.TypeSmallInt, atlaspg.TypeInteger, atlaspg.TypeInt,
			atlaspg.TypeInt2, atlaspg.TypeInt4, atlaspg.TypeReal,
			atlaspg.TypeFloat4, atlaspg.TypeFloat8, "double",
			atlaspg.TypeSerial, atlaspg.TypeSmallSerial,
		},
		Boolean: {atlaspg.TypeBoolean, atlaspg.TypeBool},
		BigInt:  {atlaspg.TypeBigInt, atlaspg.TypeInt8, atlaspg.TypeBigSerial},
		Decimal: {atlaspg.TypeNumeric, atlaspg.TypeDecimal},
		// Postgres enums are user-defined types; they carry no static
		// token and are resolved through the pg_enum catalog instead.
		Enum: nil,
		JSON: {atlaspg.TypeJSON, atlaspg.TypeJSONB},
	}

	// SQLite column types are freeform affinity tokens; atlas models
	// them by affinity class rather than by name, so the common spellings
	// are listed literally.
	sqliteTypes = categoryTable{
		Date:   {"date", "datetime", "timestamp"},
		String: {"text", "clob", "char", "nchar", "varchar", "nvarchar", "character", "blob"},
		Number: {
			"int", "integer", "tinyint", "smallint", "mediumint",
			"real", "double", "float",
		},
		Boolean: {"boolean", "bool"},
		BigInt:  {"bigint", "int8", "unsigned"},
		Decimal: {"numeric", "decimal"},
	}

	// Prisma scalar names, case-preserved.
	prismaTypes = categoryTable{
		Date:    {"DateTime"},
		String:  {"String", "Bytes"},
		Number:  {"Int", "Float"},
		Boolean: {"Boolean"},
		BigInt:  {"BigInt"},
		Decimal: {"Decimal"},
		JSON:    {"Json"},
	}

	tables = map[string]map[string]Category{
		MySQL:    mysqlTypes.index(),
		Postgres: postgresTypes.index(),
		SQLite:   sqliteTypes.index(),
		Prisma:   prismaTypes.index(),
	}
)

// Token normalizes a raw type for table lookup: everything up to the
// first "(" or space, lower-cased for SQL dialects.
func Token(rawType, dialect string) string {
	tok := rawType
	if i := strings.IndexAny(tok, "( "); i >= 0 {
		tok = tok[:i]
	}
	if SQL(dialect) {
		tok = lower.String(tok)
	}
	return tok
}

// Classify maps a raw column type to its semantic category for the
// given dialect. The json containment check runs first and wins over
// any table entry; an unrecognized token maps to Unknown.
func Classify(rawType, dialect string) Category {
	if strings.Contains(strings.ToLower(rawType), "json") {
		return JSON
	}
	t, ok := tables[dialect]
	if !ok {
		return Unknown
	}
	if c, ok := t[Token(rawType, dialect)]; ok {
		return c
	}
	return Unknown
}

// Unsigned reports whether the raw type declares an unsigned numeric
// column (MySQL spelling).
func Unsigned(rawType string) bool {
	return strings.Contains(strings.ToLower(rawType), "unsigned")
}
