package toml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		config, err := toml.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)

		assert.Equal(t, toml.DefaultConfig(), config)
	})

	t.Run("overrides only the keys present", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
origin = "https://example.com"
per_page = 20
debounce = "250ms"
rate_limit = 2.5

[fields]
body = "content"
`)

		config, err := toml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com", config.Origin)
		assert.Equal(t, 20, config.PerPage)
		assert.Equal(t, 250*time.Millisecond, config.Debounce.Duration)
		assert.InDelta(t, 2.5, config.RateLimit, 0.0001)
		assert.Equal(t, "content", config.Fields.Body)
		assert.Equal(t, "title", config.Fields.Title)
		assert.Equal(t, toml.DefaultEngineKey, config.EngineKey)
		assert.Len(t, config.Filters, 2)
	})

	t.Run("filters in the file replace the defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[[filters]]
field = "type"
values = ["docs"]
match = "all"
`)

		config, err := toml.LoadConfig(path)
		require.NoError(t, err)

		require.Len(t, config.Filters, 1)
		assert.Equal(t, toml.FilterConfig{Field: "type", Values: []string{"docs"}, Match: "all"}, config.Filters[0])
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		t.Parallel()

		_, err := toml.LoadConfig(writeConfig(t, `per_page = [`))
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"relative origin":  `origin = "/docs"`,
			"zero per page":    `per_page = 0`,
			"empty engine key": `engine_key = ""`,
			"bad match type": `
[[filters]]
field = "type"
values = ["docs"]
match = "some"
`,
		}
		for name, content := range tests {
			_, err := toml.LoadConfig(writeConfig(t, content))
			assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err), name)
		}
	})
}

func TestConfig_Save(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	config := toml.DefaultConfig()
	config.PerPage = 25
	config.Debounce.Duration = time.Second

	require.NoError(t, config.Save(path))

	loaded, err := toml.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestConfig_Query(t *testing.T) {
	t.Parallel()

	q := toml.DefaultConfig().Query()

	assert.Empty(t, q.Term)
	assert.Equal(t, 10, q.PerPage)
	assert.Equal(t, map[string]sitesearch.FieldSpec{
		"title": {Snippet: &sitesearch.SnippetSpec{Size: 100, Fallback: true}},
		"body":  {Snippet: &sitesearch.SnippetSpec{Size: 400, Fallback: true}},
		"url":   {Raw: true},
	}, q.ResultFields)
	assert.Equal(t, []sitesearch.Filter{
		{Field: "document_type", Values: []string{"!views_page_menu"}, Match: sitesearch.MatchAny},
		{Field: "type", Values: []string{"docs", "developer", "opensource"}, Match: sitesearch.MatchAny},
	}, q.Filters)
}
