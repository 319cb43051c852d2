// Copyright © 2025 The phpls authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/phpindex/phpls/lsp"
)

// LSPCommand creates the "lsp" cobra command.
func LSPCommand() *cobra.Command {
	var (
		stdio     bool
		port      int
		verbosity int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the PHP Language Server Protocol server",
		Long: `Start an LSP server for PHP source files.

The language server provides real-time diagnostics, hover, go-to-
definition, find references, document symbols, and completion.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  phpls lsp                          Start with stdio transport
  phpls lsp --stdio                  Same as above (explicit)
  phpls lsp --port 7998              Start with TCP on port 7998`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			commonlog.Configure(verbosity, nil)

			srv := lsp.New()

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("phpls listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().IntVar(&verbosity, "verbose", 0,
		"Log verbosity (0 = quiet)")

	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
