// Package toml loads sitesearch configuration from TOML files.
package toml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/search"
	"github.com/fwojciec/sitesearch/swiftype"
	"github.com/pelletier/go-toml/v2"
)

// DefaultEngineKey is the public key of the documentation search engine.
const DefaultEngineKey = "Ad9HfGjDw4GRkcmJjUut"

// DefaultOrigin is the site result links are resolved against.
const DefaultOrigin = "https://docs.newrelic.com"

// DefaultPerPage is the number of results requested per page.
const DefaultPerPage = 10

// Config is the sitesearch configuration file.
type Config struct {
	Origin       string                 `toml:"origin"`
	Endpoint     string                 `toml:"endpoint"`
	EngineKey    string                 `toml:"engine_key"`
	DocumentType string                 `toml:"document_type"`
	PerPage      int                    `toml:"per_page"`
	Debounce     Duration               `toml:"debounce"`
	Timeout      Duration               `toml:"timeout"`
	RateLimit    float64                `toml:"rate_limit"`
	Database     string                 `toml:"database"`
	Fields       sitesearch.Fields      `toml:"fields"`
	ResultFields map[string]FieldConfig `toml:"result_fields"`
	Filters      []FilterConfig         `toml:"filters"`
}

// FieldConfig selects the representations requested for one result field.
// A zero SnippetSize requests no snippet.
type FieldConfig struct {
	SnippetSize int  `toml:"snippet_size,omitempty"`
	Fallback    bool `toml:"fallback,omitempty"`
	Raw         bool `toml:"raw,omitempty"`
}

// FilterConfig restricts results by field value.
type FilterConfig struct {
	Field  string   `toml:"field"`
	Values []string `toml:"values"`
	Match  string   `toml:"match"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// DefaultConfig returns the configuration of the public documentation
// search widget.
func DefaultConfig() *Config {
	return &Config{
		Origin:       DefaultOrigin,
		Endpoint:     swiftype.DefaultEndpoint,
		EngineKey:    DefaultEngineKey,
		DocumentType: swiftype.DefaultDocumentType,
		PerPage:      DefaultPerPage,
		Debounce:     Duration{search.DefaultDebounce},
		Timeout:      Duration{swiftype.DefaultTimeout},
		Fields:       sitesearch.DefaultFields,
		ResultFields: map[string]FieldConfig{
			"title": {SnippetSize: 100, Fallback: true},
			"body":  {SnippetSize: 400, Fallback: true},
			"url":   {Raw: true},
		},
		Filters: []FilterConfig{
			{Field: "type", Values: []string{"docs", "developer", "opensource"}, Match: string(sitesearch.MatchAny)},
			{Field: "document_type", Values: []string{"!views_page_menu"}, Match: string(sitesearch.MatchAny)},
		},
	}
}

// LoadConfig reads the configuration at path. A missing file yields the
// defaults, and keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Tables present in the file replace the defaults wholesale.
	var present map[string]any
	if err := toml.Unmarshal(data, &present); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid config %s: %v", path, err)
	}
	if _, ok := present["result_fields"]; ok {
		config.ResultFields = nil
	}
	if _, ok := present["filters"]; ok {
		config.Filters = nil
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid config %s: %v", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate returns an error if the configuration cannot drive a search.
func (c *Config) Validate() error {
	if c.EngineKey == "" {
		return sitesearch.Errorf(sitesearch.EINVALID, "engine_key required")
	}
	if c.PerPage < 1 {
		return sitesearch.Errorf(sitesearch.EINVALID, "per_page must be at least 1")
	}
	if c.Debounce.Duration < 0 {
		return sitesearch.Errorf(sitesearch.EINVALID, "debounce must not be negative")
	}
	if _, err := sitesearch.NewSanitizer(c.Origin, c.Fields); err != nil {
		return err
	}
	q := c.Query()
	q.Term, q.Page = "validate", 1
	return q.Validate()
}

// Query returns the query template sent with every search: result fields,
// filters and page size. Term and Page are left empty.
func (c *Config) Query() sitesearch.Query {
	q := sitesearch.Query{PerPage: c.PerPage}

	if len(c.ResultFields) > 0 {
		q.ResultFields = make(map[string]sitesearch.FieldSpec, len(c.ResultFields))
		for name, fc := range c.ResultFields {
			spec := sitesearch.FieldSpec{Raw: fc.Raw}
			if fc.SnippetSize > 0 {
				spec.Snippet = &sitesearch.SnippetSpec{Size: fc.SnippetSize, Fallback: fc.Fallback}
			}
			q.ResultFields[name] = spec
		}
	}

	for _, fc := range c.Filters {
		q.Filters = append(q.Filters, sitesearch.Filter{
			Field:  fc.Field,
			Values: append([]string(nil), fc.Values...),
			Match:  sitesearch.MatchType(fc.Match),
		})
	}
	sort.SliceStable(q.Filters, func(i, j int) bool {
		return q.Filters[i].Field < q.Filters[j].Field
	})

	return q
}

// ConnectorOptions returns the Swiftype options the configuration sets.
func (c *Config) ConnectorOptions() []swiftype.Option {
	opts := []swiftype.Option{
		swiftype.WithRateLimit(c.RateLimit),
	}
	if c.Endpoint != "" {
		opts = append(opts, swiftype.WithEndpoint(c.Endpoint))
	}
	if c.DocumentType != "" {
		opts = append(opts, swiftype.WithDocumentType(c.DocumentType))
	}
	if c.Timeout.Duration > 0 {
		opts = append(opts, swiftype.WithTimeout(c.Timeout.Duration))
	}
	return opts
}
