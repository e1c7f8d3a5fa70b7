package sitesearch_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeURL(t *testing.T) {
	t.Parallel()

	origin, err := url.Parse("https://example.com")
	require.NoError(t, err)

	t.Run("rejects javascript scheme", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitesearch.SanitizeURL("javascript:alert(1)", origin))
	})

	t.Run("resolves relative path against origin", func(t *testing.T) {
		t.Parallel()

		u := sitesearch.SanitizeURL("/path", origin)

		require.NotNil(t, u)
		assert.Equal(t, "https://example.com/path", u.String())
	})

	t.Run("keeps absolute https URL on another host", func(t *testing.T) {
		t.Parallel()

		u := sitesearch.SanitizeURL("https://docs.newrelic.com/x", origin)

		require.NotNil(t, u)
		assert.Equal(t, "https://docs.newrelic.com/x", u.String())
	})

	t.Run("accepts upper case http scheme", func(t *testing.T) {
		t.Parallel()

		u := sitesearch.SanitizeURL("HTTP://example.org/a", origin)

		require.NotNil(t, u)
		assert.Equal(t, "http", u.Scheme)
	})

	t.Run("rejects disallowed schemes", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{
			"data:text/html,<script>alert(1)</script>",
			"vbscript:msgbox",
			"ftp://example.com/file",
			"mailto:someone@example.com",
		} {
			assert.Nil(t, sitesearch.SanitizeURL(raw, origin), raw)
		}
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitesearch.SanitizeURL("", origin))
		assert.Nil(t, sitesearch.SanitizeURL("   ", origin))
		assert.Nil(t, sitesearch.SanitizeURL("http://[::1", origin))
	})

	t.Run("rejects relative input without origin", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, sitesearch.SanitizeURL("/path", nil))
	})
}
