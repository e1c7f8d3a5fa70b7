package history_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/sitesearch/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(t *testing.T, rawURL string) *history.Stack {
	t.Helper()
	s, err := history.New(rawURL)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("starts with one entry", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/search?q=apm")

		assert.Equal(t, 1, s.Len())
		assert.Equal(t, "apm", s.Query().Get("q"))
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := history.New("http://[::1")

		require.Error(t, err)
	})
}

func TestStack_UpdateQuery(t *testing.T) {
	t.Parallel()

	t.Run("pushes entry and preserves unrelated keys", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/search?lang=en")

		s.UpdateQuery(func(q url.Values) { q.Set("q", "kafka") })

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, "kafka", s.Query().Get("q"))
		assert.Equal(t, "en", s.Query().Get("lang"))
		assert.Equal(t, "/search", s.URL().Path)
	})

	t.Run("records nothing when parameters are unchanged", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/search?q=kafka")

		s.UpdateQuery(func(q url.Values) { q.Set("q", "kafka") })

		assert.Equal(t, 1, s.Len())
	})

	t.Run("does not notify subscribers", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/search")
		notified := false
		s.Subscribe(func(url.Values) { notified = true })

		s.UpdateQuery(func(q url.Values) { q.Set("q", "x") })

		assert.False(t, notified)
	})

	t.Run("discards forward entries", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/search")
		s.UpdateQuery(func(q url.Values) { q.Set("q", "a") })
		s.UpdateQuery(func(q url.Values) { q.Set("q", "b") })
		require.True(t, s.Back())

		s.UpdateQuery(func(q url.Values) { q.Set("q", "c") })

		assert.Equal(t, 3, s.Len())
		assert.False(t, s.Forward())
		assert.Equal(t, "c", s.Query().Get("q"))
	})
}

func TestStack_BackForward(t *testing.T) {
	t.Parallel()

	s := newStack(t, "https://docs.newrelic.com/search")
	s.UpdateQuery(func(q url.Values) { q.Set("q", "a") })
	s.UpdateQuery(func(q url.Values) { q.Set("q", "ab") })

	var seen []string
	s.Subscribe(func(q url.Values) { seen = append(seen, q.Get("q")) })

	require.True(t, s.Back())
	require.True(t, s.Back())
	assert.False(t, s.Back(), "no entry before the first")
	require.True(t, s.Forward())

	assert.Equal(t, []string{"a", "", "a"}, seen)
	assert.Equal(t, "a", s.Query().Get("q"))
}

func TestStack_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative link and notifies", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/docs/apm")
		var got url.Values
		s.Subscribe(func(q url.Values) { got = q })

		require.NoError(t, s.Navigate("/search?q=alerts"))

		assert.Equal(t, "https://docs.newrelic.com/search?q=alerts", s.URL().String())
		assert.Equal(t, "alerts", got.Get("q"))
	})

	t.Run("rejects malformed link", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/")

		require.Error(t, s.Navigate("http://[::1"))
		assert.Equal(t, 1, s.Len())
	})
}

func TestStack_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("cancel stops notifications", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/")
		calls := 0
		cancel := s.Subscribe(func(url.Values) { calls++ })

		require.NoError(t, s.Navigate("/a"))
		cancel()
		require.NoError(t, s.Navigate("/b"))

		assert.Equal(t, 1, calls)
	})

	t.Run("subscribers receive independent copies", func(t *testing.T) {
		t.Parallel()

		s := newStack(t, "https://docs.newrelic.com/")
		s.Subscribe(func(q url.Values) { q.Set("q", "mutated") })

		require.NoError(t, s.Navigate("/search?q=original"))

		assert.Equal(t, "original", s.Query().Get("q"))
	})
}
