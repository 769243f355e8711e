package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limitlesscruises/portguide/internal/parser"
	"github.com/limitlesscruises/portguide/internal/portguide"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	g, err := parseFile(c.File, deps.SiteName)
	if err != nil {
		return err
	}

	if c.Validate {
		if err := portguide.Validate(g); err != nil {
			fmt.Fprintf(deps.Stderr, "%s: %s\n", c.File, err)
			return err
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	if !c.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(g)
}

func parseFile(path, siteName string) (*portguide.PortGuide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parser.Parse(string(data), parser.Options{SiteName: siteName}), nil
}
