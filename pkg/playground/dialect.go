// Package playground defines the shareable session model for querypad:
// the canonical SharedState payload, its validated StoreItem projection,
// and the provider contract used to persist and resolve shares.
package playground

// Dialect identifies a SQL dialect supported by the playground.
type Dialect string

// Supported dialects. The set is closed: a share referencing anything
// else falls back to the default during validation.
const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
	DialectMSSQL    Dialect = "mssql"
)

// Dialects returns all supported dialects in display order.
func Dialects() []Dialect {
	return []Dialect{DialectPostgres, DialectMySQL, DialectSQLite, DialectMSSQL}
}

// IsValid reports whether d is a member of the supported dialect set.
func (d Dialect) IsValid() bool {
	switch d {
	case DialectPostgres, DialectMySQL, DialectSQLite, DialectMSSQL:
		return true
	}
	return false
}
