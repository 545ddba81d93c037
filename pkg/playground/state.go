package playground

// SharedState is the canonical shape of a shareable editing session.
// It is the logical payload every provider persists, regardless of the
// wire format that backend uses.
type SharedState struct {
	// KyselyVersion identifies which release of the query-builder
	// library the session targets.
	KyselyVersion string `json:"kyselyVersion"`

	// Dialect selects the SQL dialect the query compiles against.
	Dialect Dialect `json:"dialect"`

	// TS holds the user-authored source text verbatim. Any Unicode
	// content is preserved byte-for-byte.
	TS string `json:"ts"`
}

// StoreItem is the fully validated, UI-ready projection of a loaded
// session, including the editor layout flag. It is only ever produced by
// NormalizeItem; raw provider output is never applied to UI state directly.
type StoreItem struct {
	Dialect       Dialect `json:"dialect"`
	KyselyVersion string  `json:"kyselyVersion"`
	SchemaTS      string  `json:"schema"`
	QueryTS       string  `json:"ts"`
	ShowSchema    bool    `json:"showSchema"`
}

// Default field values for sessions that carry no usable state.
const (
	DefaultKyselyVersion = "0.27.2"
	DefaultDialect       = DialectPostgres
)

const defaultQueryTS = `const result = await db
  .selectFrom("person")
  .selectAll()
  .execute()
`

const defaultSchemaTS = `interface Database {
  person: PersonTable
}

interface PersonTable {
  id: Generated<number>
  first_name: string
  last_name: string | null
}
`

// DefaultSharedState returns the fallback session state. Callers get a
// fresh value each time, so the default template is never mutated.
func DefaultSharedState() SharedState {
	return SharedState{
		KyselyVersion: DefaultKyselyVersion,
		Dialect:       DefaultDialect,
		TS:            defaultQueryTS,
	}
}

// DefaultStoreItem returns the fallback UI projection.
func DefaultStoreItem() StoreItem {
	return StoreItem{
		Dialect:       DefaultDialect,
		KyselyVersion: DefaultKyselyVersion,
		SchemaTS:      defaultSchemaTS,
		QueryTS:       defaultQueryTS,
		ShowSchema:    true,
	}
}
