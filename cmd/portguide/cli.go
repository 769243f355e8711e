package main

import (
	"context"
	"io"

	"github.com/limitlesscruises/portguide/internal/store"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Store    store.Store
	SiteName string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse  ParseCmd  `cmd:"" help:"Parse a port guide and print the record as JSON"`
	Import ImportCmd `cmd:"" help:"Parse, validate and store port guides"`
	List   ListCmd   `cmd:"" help:"List stored ports"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File     string `arg:"" type:"existingfile" help:"Markdown file"`
	Validate bool   `short:"v" help:"Fail when the record would be rejected on upload"`
	Compact  bool   `short:"c" help:"Print JSON on a single line"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Files []string `arg:"" help:"Markdown files"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}
