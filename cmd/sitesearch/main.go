package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/fwojciec/sitesearch/htmltomarkdown"
	sslog "github.com/fwojciec/sitesearch/slog"
	"github.com/fwojciec/sitesearch/sqlite"
	"github.com/fwojciec/sitesearch/swiftype"
	"github.com/fwojciec/sitesearch/toml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config and database paths. Set before calling Run(). The --config and
	// --db flags override them, and the config file's database setting
	// overrides DBPath.
	ConfigPath string
	DBPath     string

	// Input for the interactive shell.
	Stdin io.Reader

	// Loaded from ConfigPath when nil.
	Config *toml.Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. Built from Config when nil.
	Connector sitesearch.Connector
	QueryLog  sitesearch.QueryLog
	Converter sitesearch.Converter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultPath("config.toml"),
		DBPath:     defaultPath("sitesearch.db"),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesearch"),
		kong.Description("Search the documentation site from the terminal."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	deps.ConfigPath = m.ConfigPath

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Config == nil {
		m.Config, err = toml.LoadConfig(m.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITESEARCH_CONFIG to use a different config file\n")
			return fmt.Errorf("failed to load config %q: %w", m.ConfigPath, err)
		}
	}
	deps.Config = m.Config
	if cli.DB == "" && m.Config.Database != "" {
		m.DBPath = m.Config.Database
	}

	if kongCtx.Command() == "config" {
		return kongCtx.Run(deps)
	}

	if m.QueryLog == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITESEARCH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		m.QueryLog = sqlite.NewQueryLogService(m.DB)
	}
	deps.QueryLog = sslog.NewLoggingQueryLog(m.QueryLog, deps.Logger)

	if m.Connector == nil {
		m.Connector = swiftype.NewConnector(m.Config.EngineKey, m.Config.ConnectorOptions()...)
	}
	deps.Connector = sslog.NewLoggingConnector(m.Connector, deps.Logger)

	deps.Sanitizer, err = sitesearch.NewSanitizer(m.Config.Origin, m.Config.Fields)
	if err != nil {
		return err
	}
	if m.Converter == nil {
		m.Converter = htmltomarkdown.NewConverter()
	}
	deps.Converter = m.Converter
	deps.Highlighter = goquery.NewHighlighter()

	return kongCtx.Run(deps)
}

// defaultPath returns name inside ~/.sitesearch.
func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".sitesearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}
