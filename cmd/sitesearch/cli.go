package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/search"
	"github.com/fwojciec/sitesearch/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Config      *toml.Config
	ConfigPath  string
	Connector   sitesearch.Connector
	QueryLog    sitesearch.QueryLog
	Sanitizer   *sitesearch.Sanitizer
	Converter   sitesearch.Converter
	Highlighter sitesearch.Highlighter
}

// NewSession returns a search session wired to the configured services.
// opts are applied after the configured ones.
func (d *Dependencies) NewSession(opts ...search.Option) *search.Session {
	base := []search.Option{
		search.WithDebounce(d.Config.Debounce.Duration),
		search.WithLogger(d.Logger),
		search.WithQueryLog(d.QueryLog),
		search.WithQueryTemplate(d.Config.Query()),
	}
	return search.NewSession(d.Connector, d.Sanitizer, append(base, opts...)...)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file path" env:"SITESEARCH_CONFIG" type:"path"`
	DB      string `name:"db" help:"Query log database path" env:"SITESEARCH_DB" type:"path"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Search    SearchCmd `cmd:"" help:"Search the documentation"`
	Shell     ShellCmd  `cmd:"" help:"Search interactively, one term per line"`
	Recent    RecentCmd `cmd:"" help:"List recent searches"`
	ConfigCmd ConfigCmd `cmd:"" name:"config" help:"Show the effective configuration"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term  string `arg:"" help:"Search term"`
	Page  int    `short:"p" default:"1" help:"Result page"`
	Plain bool   `help:"Print plain text instead of Markdown"`
}

// ShellCmd is the "shell" subcommand.
type ShellCmd struct {
	Plain bool `help:"Print plain text instead of Markdown"`
}

// RecentCmd is the "recent" subcommand.
type RecentCmd struct {
	Limit int    `short:"n" default:"10" help:"Maximum number of searches to list"`
	Term  string `help:"Only list searches for this term"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Init bool `help:"Write the defaults to the config file if it does not exist"`
}
