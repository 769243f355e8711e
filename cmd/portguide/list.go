package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	ports, err := deps.Store.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if len(ports) == 0 {
		fmt.Fprintln(deps.Stdout, "No ports found. Use 'portguide import' to add one.")
		return nil
	}

	for _, p := range ports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s/%s\n", p.Slug, p.Status, p.Name, p.Region, p.Country)
	}
	return nil
}
