package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/snapsearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *snapsearch.Config
	Searcher  snapsearch.Searcher
	Converter snapsearch.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Base    string `help:"Snapshot base: a directory, a file:// or http(s):// root, or a host document inside it" env:"SNAPSEARCH_BASE"`
	Config  string `short:"c" help:"Region catalogue YAML file" env:"SNAPSEARCH_CONFIG" type:"path"`
	Browser bool   `help:"Render pages in headless Chrome (http(s) bases only)"`
	Verbose bool   `short:"v" help:"Log every fetch and region to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search all regions for a term"`
	Serve   ServeCmd   `cmd:"" help:"Serve the search page over HTTP"`
	Regions RegionsCmd `cmd:"" help:"List the configured regions in search order"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string  `arg:"" optional:"" help:"Search term"`
	MaxPages int     `name:"max-pages" help:"Page ceiling per region (default from config)"`
	Format   string  `short:"f" enum:"text,markdown,html" default:"text" help:"Output format (text, markdown, html)"`
	Out      string  `short:"o" help:"Write output to this file instead of stdout" type:"path"`
	Rate     float64 `help:"Maximum requests per second per region (0 = unlimited)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct {
	YAML bool `name:"yaml" help:"Print the catalogue as YAML"`
}
