// Copyright © 2025 The phpls authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/parser"
)

// queryCmd is an interactive console over the symbol index, useful
// for poking at resolution behavior without an editor attached.
var queryCmd = &cobra.Command{
	Use:   "query DIR",
	Short: "Explore an indexed directory interactively",
	Long: `Index every .php file under DIR, then accept queries on a prompt:

  def FQN      Show the definition registered under FQN
  refs FQN     List the documents referencing FQN
  ls PREFIX    List indexed FQNs with the given prefix
  quit         Exit

FQNs use the canonical forms, e.g. \App\Service or \App\Service::run().`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runQuery(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func runQuery(root string) error {
	project := analysis.NewProject(parser.New(), nil)
	n, err := project.IndexWorkspace(context.Background(), root)
	if err != nil {
		return fmt.Errorf("index %s: %w", root, err)
	}
	fmt.Printf("indexed %d documents\n", n)

	rl, err := readline.New("phpls> ")
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}
		if quit := execQuery(project, strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

// execQuery runs one console command. Returns true to exit.
func execQuery(project *analysis.Project, line string) bool {
	if line == "" {
		return false
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "def":
		def, ok := project.Graph().Definition(arg)
		if !ok {
			fmt.Println("not defined")
			return false
		}
		fmt.Printf("%s %s\n  %s:%d\n", def.Kind, def.FQN,
			strings.TrimPrefix(def.URI, "file://"), def.Span.StartLine)
		if def.DeclaredType != nil {
			fmt.Printf("  type: %s\n", def.DeclaredType)
		}
	case "refs":
		docs := project.ReferencesTo(arg)
		if len(docs) == 0 {
			fmt.Println("no referrers")
			return false
		}
		for _, doc := range docs {
			fmt.Printf("  %s\n", strings.TrimPrefix(doc.URI, "file://"))
		}
	case "ls":
		fqns := project.Graph().DefinitionsByPrefix(arg)
		if len(fqns) == 0 {
			fmt.Println("no matches")
			return false
		}
		for _, fqn := range fqns {
			fmt.Printf("  %s\n", fqn)
		}
	default:
		fmt.Println("commands: def FQN | refs FQN | ls PREFIX | quit")
	}
	return false
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
