// Copyright © 2025 The phpls authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/diagnostic"
	"github.com/phpindex/phpls/parser"
)

var indexShowRefs bool

// indexCmd scans a directory tree and prints the resulting symbol
// index. It exists for debugging the indexer and for quick greps over
// a project's definitions.
var indexCmd = &cobra.Command{
	Use:   "index DIR",
	Short: "Index a directory of PHP sources and list its symbols",
	Long: `Index every .php file under DIR and print the fully qualified name
and kind of each definition found. Parse errors are rendered as
annotated source snippets on stderr; they do not abort indexing.

Examples:
  phpls index src/                 List definitions under src/
  phpls index --refs src/          Also list referenced names per file`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runIndex(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func runIndex(root string) error {
	project := analysis.NewProject(parser.New(), nil)
	n, err := project.IndexWorkspace(context.Background(), root)
	if err != nil {
		return fmt.Errorf("index %s: %w", root, err)
	}

	for _, fqn := range project.Graph().DefinitionsByPrefix("") {
		if def, ok := project.Graph().Definition(fqn); ok {
			fmt.Printf("%-9s %s\n", def.Kind, fqn)
		}
	}

	renderer := &diagnostic.Renderer{Color: colorMode()}
	for _, doc := range project.Documents() {
		if len(doc.Diags) > 0 {
			path := strings.TrimPrefix(doc.URI, "file://")
			_ = renderer.RenderAll(os.Stderr, diagnostic.FromParse(path, doc.Diags))
		}
		if indexShowRefs {
			printRefs(doc)
		}
	}

	fmt.Fprintf(os.Stderr, "indexed %d documents\n", n)
	return nil
}

func printRefs(doc *analysis.Document) {
	refs := doc.References()
	if len(refs) == 0 {
		return
	}
	fmt.Printf("%s:\n", strings.TrimPrefix(doc.URI, "file://"))
	for _, fqn := range refs {
		fmt.Printf("  -> %s\n", fqn)
	}
}

// colorMode maps the persistent --color flag to a renderer mode.
func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().BoolVar(&indexShowRefs, "refs", false,
		"Also print the names each document references.")
}
