package sitesearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldValue is a single field of a raw search result. It is either
// Wrapped, carrying raw and/or snippet representations produced by the
// search API, or Opaque, carrying any other value the API returned.
// Only Wrapped values are eligible for extraction.
type FieldValue interface {
	fieldValue()
}

// Wrapped is a field value carrying a raw representation, a snippet
// representation, or both. A nil Text means the representation is absent.
type Wrapped struct {
	// Raw is the unprocessed value from the search index. It is untrusted
	// and must be escaped before it is used as markup.
	Raw Text

	// Snippet is a pre-highlighted fragment sanitized by the search API.
	Snippet Text
}

// Opaque is any field value that is not Wrapped, such as response
// metadata. It is kept only so callers can inspect it; it is never
// extracted or rendered.
type Opaque struct {
	Value json.RawMessage
}

func (Wrapped) fieldValue() {}
func (Opaque) fieldValue()  {}

// Text is one representation of a field: a single string for scalar
// values or several strings for array values. Non-string scalars hold
// their JSON literal.
type Text []string

// Join returns the elements joined with ", ".
func (t Text) Join() string {
	return strings.Join(t, ", ")
}

// escaped escapes every element before joining so separators are never escaped.
func (t Text) escaped() string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = Escape(s)
	}
	return strings.Join(parts, ", ")
}

// RawResult is one result record as received from the search API.
type RawResult map[string]FieldValue

// Raw returns the raw representation of a wrapped field.
// The bool result is false if the field is missing, opaque, or has no raw value.
func (r RawResult) Raw(field string) (Text, bool) {
	w, ok := r[field].(Wrapped)
	if !ok || w.Raw == nil {
		return nil, false
	}
	return w.Raw, true
}

// UnmarshalJSON decodes a result record. Objects with a "raw" or
// "snippet" member become Wrapped; every other value becomes Opaque.
func (r *RawResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := make(RawResult, len(fields))
	for name, msg := range fields {
		v, err := decodeFieldValue(msg)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = v
	}
	*r = out
	return nil
}

func decodeFieldValue(msg json.RawMessage) (FieldValue, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil || obj == nil {
		return Opaque{Value: msg}, nil
	}

	raw, hasRaw := obj["raw"]
	snippet, hasSnippet := obj["snippet"]
	if !hasRaw && !hasSnippet {
		return Opaque{Value: msg}, nil
	}

	var w Wrapped
	var err error
	if hasRaw {
		if w.Raw, err = DecodeText(raw); err != nil {
			return nil, fmt.Errorf("raw: %w", err)
		}
	}
	if hasSnippet {
		if w.Snippet, err = DecodeText(snippet); err != nil {
			return nil, fmt.Errorf("snippet: %w", err)
		}
	}
	return w, nil
}

// DecodeText decodes a JSON value into a Text. Strings and other scalars
// become a single element, arrays become one element per non-null item,
// and null becomes a nil (absent) Text.
func DecodeText(msg json.RawMessage) (Text, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch v := v.(type) {
	case nil:
		return nil, nil
	case []any:
		t := make(Text, 0, len(v))
		for _, elem := range v {
			if elem == nil {
				continue
			}
			t = append(t, scalarString(elem))
		}
		return t, nil
	default:
		return Text{scalarString(v)}, nil
	}
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
