package playground

// NormalizeState converts an arbitrary decoded value into a well-formed
// SharedState. It is total: malformed input is never an error, each
// recognized field independently falls back to its default when the input
// is missing, mistyped, or outside the supported set. Unknown keys are
// ignored. An input with no usable fields yields exactly the default state.
func NormalizeState(raw any) SharedState {
	def := DefaultSharedState()

	m, ok := raw.(map[string]any)
	if !ok {
		return def
	}

	return SharedState{
		KyselyVersion: stringField(m, "kyselyVersion", def.KyselyVersion),
		Dialect:       dialectField(m, "dialect", def.Dialect),
		TS:            stringField(m, "ts", def.TS),
	}
}

// NormalizeItem converts a raw loaded document into a UI-ready StoreItem
// under the same total, field-by-field contract as NormalizeState.
func NormalizeItem(raw any) StoreItem {
	def := DefaultStoreItem()

	m, ok := raw.(map[string]any)
	if !ok {
		return def
	}

	return StoreItem{
		Dialect:       dialectField(m, "dialect", def.Dialect),
		KyselyVersion: stringField(m, "kyselyVersion", def.KyselyVersion),
		SchemaTS:      stringField(m, "schema", def.SchemaTS),
		QueryTS:       stringField(m, "ts", def.QueryTS),
		ShowSchema:    boolField(m, "showSchema", def.ShowSchema),
	}
}

// stringField returns m[key] if it is a string, otherwise fallback.
// Content is passed through verbatim: no trimming or re-encoding.
func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}

// boolField returns m[key] if it is a bool, otherwise fallback.
func boolField(m map[string]any, key string, fallback bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

// dialectField returns m[key] if it names a supported dialect, otherwise fallback.
func dialectField(m map[string]any, key string, fallback Dialect) Dialect {
	if v, ok := m[key].(string); ok {
		if d := Dialect(v); d.IsValid() {
			return d
		}
	}
	return fallback
}
