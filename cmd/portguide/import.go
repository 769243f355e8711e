package main

import (
	"fmt"

	"github.com/limitlesscruises/portguide/internal/portguide"
)

// Run executes the import command. Every file is attempted; the command
// fails if any of them could not be stored.
func (c *ImportCmd) Run(deps *Dependencies) error {
	var failed int
	for _, path := range c.Files {
		if err := importFile(deps, path); err != nil {
			fmt.Fprintf(deps.Stderr, "%s: %s\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(c.Files))
	}
	return nil
}

func importFile(deps *Dependencies, path string) error {
	g, err := parseFile(path, deps.SiteName)
	if err != nil {
		return err
	}
	if err := portguide.Validate(g); err != nil {
		return err
	}
	if !portguide.CanonicalSlug(g.Slug) {
		fmt.Fprintf(deps.Stderr, "%s: warning: slug %q is not lowercase-hyphenated\n", path, g.Slug)
	}

	res, err := deps.Store.Upsert(deps.Ctx, g)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", res.Action(), res.Port.Slug, res.Port.ID)
	return nil
}
