package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treepick/treepick"
	"github.com/treepick/treepick/document"
	"github.com/treepick/treepick/extractor"
	"github.com/treepick/treepick/internal/fileutil"
	"github.com/treepick/treepick/internal/mcpserver"
	"github.com/treepick/treepick/pathexpr"
	"github.com/treepick/treepick/tperrors"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		if len(os.Args) > 2 && os.Args[2] == "--full" {
			fmt.Println(treepick.BuildInfo())
		} else {
			fmt.Printf("treepick v%s\n", treepick.Version())
		}
	case "help", "-h", "--help":
		printUsage()
	case "extract":
		if err := handleExtract(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := handleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Unknown command: %s (did you mean %q?)\n\n", command, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		}
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or an empty string when nothing is close enough.
func suggestCommand(input string) string {
	commands := []string{"extract", "check", "mcp", "version", "help"}
	best := ""
	bestDist := 3
	for _, cmd := range commands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// stringSliceFlag collects repeated flag values.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// extractFlags contains flags for the extract command
type extractFlags struct {
	paths    stringSliceFlag
	format   string
	output   string
	maxDepth int
}

func setupExtractFlags() (*flag.FlagSet, *extractFlags) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	flags := &extractFlags{}

	fs.Var(&flags.paths, "p", "path expression to extract (repeatable)")
	fs.StringVar(&flags.format, "format", "json", "output format: json or yaml")
	fs.StringVar(&flags.output, "o", "", "write output to file instead of stdout")
	fs.IntVar(&flags.maxDepth, "max-depth", 0, "recursion bound for evaluation (0 = default)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: treepick extract [flags] <file|url|->\n\n")
		_, _ = fmt.Fprintf(output, "Extract a structure-preserving subtree from a JSON or YAML document.\n")
		_, _ = fmt.Fprintf(output, "Use '-' to read the document from stdin.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  treepick extract -p '$.user.name' config.yaml\n")
		_, _ = fmt.Fprintf(output, "  treepick extract -p '$.items[*].id' -p '$..status' -format yaml api.json\n")
		_, _ = fmt.Fprintf(output, "  cat doc.json | treepick extract -p '$..name' -\n")
	}

	return fs, flags
}

func handleExtract(args []string) error {
	fs, flags := setupExtractFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("extract command requires exactly one file path, URL, or '-'")
	}
	if len(flags.paths) == 0 {
		fs.Usage()
		return fmt.Errorf("at least one -p path expression is required")
	}
	if flags.format != "json" && flags.format != "yaml" {
		return fmt.Errorf("invalid format '%s'. Valid formats: json, yaml", flags.format)
	}

	docPath := fs.Arg(0)
	var doc *document.Document
	var err error
	if docPath == "-" {
		doc, err = document.NewLoader().LoadReader(os.Stdin)
	} else {
		doc, err = document.Load(docPath)
	}
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	x := extractor.New()
	x.MaxDepth = flags.maxDepth
	tree, err := x.Extract(doc.Data, flags.paths)
	if err != nil {
		return err
	}

	var rendered []byte
	if flags.format == "json" {
		rendered, err = json.MarshalIndent(tree, "", "  ")
		rendered = append(rendered, '\n')
	} else {
		var plain any
		plain, err = tree.Interface()
		if err == nil {
			rendered, err = yaml.Marshal(plain)
		}
	}
	if err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, rendered, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Wrote %s output to %s\n", flags.format, flags.output)
		return nil
	}
	fmt.Print(string(rendered))
	return nil
}

func handleCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("check command requires at least one path expression")
	}

	var failed bool
	for _, expr := range args {
		p, err := pathexpr.Parse(expr)
		if err != nil {
			failed = true
			var pathErr *tperrors.MalformedPathError
			if errors.As(err, &pathErr) {
				fmt.Printf("%s: INVALID at offset %d: %s\n", expr, pathErr.Offset, pathErr.Message)
			} else {
				fmt.Printf("%s: INVALID: %v\n", expr, err)
			}
			continue
		}
		fmt.Printf("%s: OK (%d segments)\n", expr, len(p.Segments()))
	}
	if failed {
		return fmt.Errorf("one or more path expressions are malformed")
	}
	return nil
}

func printUsage() {
	fmt.Println(`treepick - structure-preserving extraction from JSON and YAML

Usage:
  treepick <command> [options]

Commands:
  extract     Extract a subtree from a document using path expressions
  check       Check path expressions against the grammar
  mcp         Run as an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  treepick extract -p '$.user.name' config.yaml
  treepick extract -p '$.items[*].id' -p '$..status' https://example.com/api.json
  treepick check '$.items[1:3]' '$..name'
  treepick mcp

Run 'treepick <command> --help' for more information on a command.`)
}
