package sitesearch_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
)

func TestExtractField(t *testing.T) {
	t.Parallel()

	t.Run("prefers snippet verbatim", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"title": sitesearch.Wrapped{
				Raw:     sitesearch.Text{"Install <APM>"},
				Snippet: sitesearch.Text{"Install <em>APM</em>"},
			},
		}

		v, ok := sitesearch.ExtractField(r, "title")

		assert.True(t, ok)
		assert.Equal(t, "Install <em>APM</em>", v)
	})

	t.Run("falls back to escaped raw value", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"title": sitesearch.Wrapped{Raw: sitesearch.Text{"<script>alert(1)</script>"}},
		}

		v, ok := sitesearch.ExtractField(r, "title")

		assert.True(t, ok)
		assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", v)
	})

	t.Run("falls back to raw when snippet is empty", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"title": sitesearch.Wrapped{Raw: sitesearch.Text{"A & B"}, Snippet: sitesearch.Text{""}},
		}

		v, ok := sitesearch.ExtractField(r, "title")

		assert.True(t, ok)
		assert.Equal(t, "A &amp; B", v)
	})

	t.Run("escapes raw array elements before joining", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"tags": sitesearch.Wrapped{Raw: sitesearch.Text{"a&b", "<c>"}},
		}

		v, ok := sitesearch.ExtractField(r, "tags")

		assert.True(t, ok)
		assert.Equal(t, "a&amp;b, &lt;c&gt;", v)
	})

	t.Run("joins snippet arrays", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"body": sitesearch.Wrapped{Snippet: sitesearch.Text{"<em>one</em>", "two"}},
		}

		v, ok := sitesearch.ExtractField(r, "body")

		assert.True(t, ok)
		assert.Equal(t, "<em>one</em>, two", v)
	})

	t.Run("keeps empty raw string as present", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{"body": sitesearch.Wrapped{Raw: sitesearch.Text{""}}}

		v, ok := sitesearch.ExtractField(r, "body")

		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("omits wrapped field with neither representation", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{"body": sitesearch.Wrapped{}}

		_, ok := sitesearch.ExtractField(r, "body")

		assert.False(t, ok)
	})

	t.Run("omits opaque field", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{"_meta": sitesearch.Opaque{Value: json.RawMessage(`"<b>1939191</b>"`)}}

		_, ok := sitesearch.ExtractField(r, "_meta")

		assert.False(t, ok)
	})

	t.Run("omits missing field", func(t *testing.T) {
		t.Parallel()

		_, ok := sitesearch.ExtractField(sitesearch.RawResult{}, "title")

		assert.False(t, ok)
	})
}

func TestExtractAllFields(t *testing.T) {
	t.Parallel()

	t.Run("discards opaque values", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"title":  sitesearch.Wrapped{Raw: sitesearch.Text{"Hi"}},
			"_meta":  sitesearch.Opaque{Value: json.RawMessage(`"1939191"`)},
			"_score": sitesearch.Opaque{Value: json.RawMessage(`1.5`)},
		}

		fields := sitesearch.ExtractAllFields(r)

		assert.Equal(t, map[string]sitesearch.SanitizedField{
			"title": {Name: "title", Value: "Hi"},
		}, fields)
	})

	t.Run("drops wrapped fields with nothing to extract", func(t *testing.T) {
		t.Parallel()

		r := sitesearch.RawResult{
			"title": sitesearch.Wrapped{Snippet: sitesearch.Text{"<em>Hi</em>"}},
			"body":  sitesearch.Wrapped{},
		}

		fields := sitesearch.ExtractAllFields(r)

		assert.Len(t, fields, 1)
		assert.Equal(t, "<em>Hi</em>", fields["title"].Value)
	})

	t.Run("decoded response never exposes metadata", func(t *testing.T) {
		t.Parallel()

		var r sitesearch.RawResult
		err := json.Unmarshal([]byte(`{
			"title": {"raw": "Hi <b>"},
			"_metaField": "<img src=x onerror=alert(1)>",
			"nested": {"other": "<script>"}
		}`), &r)
		assert.NoError(t, err)

		fields := sitesearch.ExtractAllFields(r)

		assert.Equal(t, map[string]sitesearch.SanitizedField{
			"title": {Name: "title", Value: "Hi &lt;b&gt;"},
		}, fields)
	})
}
