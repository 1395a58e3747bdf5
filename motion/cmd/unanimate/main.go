package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/viant/unanimate/motion/service"
)

// Options defines CLI flags for unanimate.
type Options struct {
	DryRun       bool   `short:"n" long:"dry-run" description:"Print the edits as a diff without writing the file"`
	DiffBytes    int    `long:"diff-bytes" description:"Maximum diff size in bytes for dry runs (default 8192)"`
	HTTPAddr     string `short:"a" long:"addr" description:"Serve the stripAnimations MCP tools on this HTTP address instead of processing a file"`
	BaseURL      string `long:"base-url" description:"Restrict MCP tool calls to files under this directory or storage URL"`
	UseData      bool   `long:"use-data" description:"Return MCP tool results as structured content instead of text"`
	Oauth2Config string `short:"o" long:"oauth2config" description:"Path to JSON OAuth2 configuration file (scy EncodedResource)"`
	UseIdToken   bool   `short:"i" long:"use-id-token" description:"Use ID token (instead of access token) for identity scoping"`
	Args         struct {
		File string `positional-arg-name:"file" description:"JSX/TSX file to clean in place (path or storage URL)"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "unanimate"
	parser.Usage = "[OPTIONS] <file>"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		printUsage(stderr, parser)
		return 1
	}

	if opts.HTTPAddr != "" {
		if err := serve(ctx, &opts); err != nil {
			fmt.Fprintf(stderr, "✗ %v\n", err)
			return 1
		}
		return 0
	}

	file := opts.Args.File
	if strings.TrimSpace(file) == "" || len(rest) > 0 {
		printUsage(stderr, parser)
		return 1
	}
	svc := service.NewService(&service.Config{DiffBytes: opts.DiffBytes})
	out, err := svc.Strip(ctx, &service.StripInput{URL: location(file), DryRun: opts.DryRun})
	if err != nil {
		fmt.Fprintf(stderr, "✗ Error processing %s: %v\n", file, err)
		return 1
	}
	if opts.DryRun {
		fmt.Fprintf(stdout, "%s: %d edit(s)\n", file, out.Edits)
		fmt.Fprint(stdout, out.Diff)
		return 0
	}
	fmt.Fprintf(stdout, "✓ Cleaned: %s\n", file)
	return 0
}

func printUsage(w io.Writer, parser *flags.Parser) {
	fmt.Fprintf(w, "Usage: %s %s\n", parser.Name, parser.Usage)
}

// location turns a local path into an absolute one; storage URLs pass through.
func location(file string) string {
	if strings.Contains(file, "://") {
		return file
	}
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return file
}
