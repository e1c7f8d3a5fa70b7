package sitesearch

// SanitizedField is a field whose value is safe to insert as markup:
// either escaped raw text or a snippet sanitized by the search API.
type SanitizedField struct {
	Name  string
	Value string
}

// ExtractField returns the render-safe value of a field.
//
// A non-empty snippet is returned verbatim because its highlighting markup
// is intentional. Otherwise the raw value is escaped element by element
// and joined with ", ". The bool result is false when the field is not
// Wrapped or has neither representation; callers must then omit the field.
func ExtractField(r RawResult, field string) (string, bool) {
	w, ok := r[field].(Wrapped)
	if !ok {
		return "", false
	}
	if snippet := w.Snippet.Join(); snippet != "" {
		return snippet, true
	}
	if w.Raw != nil {
		return w.Raw.escaped(), true
	}
	return "", false
}

// ExtractAllFields returns the render-safe value of every Wrapped field.
// Opaque values are always discarded so unexpected response fields can
// never be rendered as markup.
func ExtractAllFields(r RawResult) map[string]SanitizedField {
	fields := make(map[string]SanitizedField, len(r))
	for name, v := range r {
		if _, ok := v.(Wrapped); !ok {
			continue
		}
		value, ok := ExtractField(r, name)
		if !ok {
			continue
		}
		fields[name] = SanitizedField{Name: name, Value: value}
	}
	return fields
}
