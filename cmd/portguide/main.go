package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/limitlesscruises/portguide/internal/config"
	"github.com/limitlesscruises/portguide/internal/store"
	"github.com/limitlesscruises/portguide/internal/store/backend"
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
	// Config selects the store and the site name. Set before calling Run().
	Config config.Config

	// Store overrides the configured backend when set.
	Store store.Store

	closeStore func()
}

// NewMain returns a new instance of Main with configuration read from the
// environment.
func NewMain() *Main {
	return &Main{Config: config.Load()}
}

// Close releases the store opened by Run.
func (m *Main) Close() {
	if m.closeStore != nil {
		m.closeStore()
		m.closeStore = nil
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		SiteName: m.Config.SiteName,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("portguide"),
		kong.Description("Parse and import cruise port guide Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'portguide --help' to see available commands")
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

	// parse works on files alone; the other commands need storage.
	if cmd != "parse" {
		if m.Store == nil {
			st, closeStore, err := backend.Open(ctx, m.Config)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: set STORE_DRIVER and DATABASE_URL (or POSTGREST_URL) to choose a store")
				return fmt.Errorf("failed to open %s store: %w", m.Config.StoreDriver, err)
			}
			m.Store, m.closeStore = st, closeStore
			defer m.Close()
		}
		deps.Store = m.Store
	}

	return kongCtx.Run(deps)
}
