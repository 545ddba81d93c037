package playground

import "context"

// ProviderID identifies a share storage backend. The set is closed: every
// id maps to exactly one provider instance for the lifetime of the process.
type ProviderID string

// Registered provider ids.
const (
	// ProviderURL embeds the whole session in the share value itself.
	ProviderURL ProviderID = "url"
	// ProviderDocument stores the session as a document in the share database.
	ProviderDocument ProviderID = "document"
	// ProviderFile stores the session as a JSON file under the shares directory.
	ProviderFile ProviderID = "file"
)

// ProviderIDs returns all provider ids in registration order.
func ProviderIDs() []ProviderID {
	return []ProviderID{ProviderURL, ProviderDocument, ProviderFile}
}

// IsKnown reports whether id is a member of the declared provider set.
func (id ProviderID) IsKnown() bool {
	switch id {
	case ProviderURL, ProviderDocument, ProviderFile:
		return true
	}
	return false
}

// StoreProvider is a pluggable persistence backend for shared sessions.
// The value returned by Save is opaque: only the provider that produced it
// can interpret it, callers just pass it through. Load returns the raw
// decoded document without any validation; callers must normalize it
// before touching UI state.
type StoreProvider interface {
	ID() ProviderID
	Save(ctx context.Context, state SharedState) (string, error)
	Load(ctx context.Context, value string) (map[string]any, error)
}

// ShareItem pairs a provider id with that provider's opaque share value.
// The value is meaningless without its id.
type ShareItem struct {
	Provider ProviderID
	Value    string
}
