// Copyright © 2025 The phpls authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phpls",
	Short: "phpls — PHP language server",
	Long: `phpls is a language server for PHP implemented in Go. It indexes
every top-level definition in a workspace under a fully qualified name,
tracks which documents reference which names, and answers the semantic
queries editors need: go-to-definition, find references, hover, and
expression type inference.

Getting started:
  phpls lsp                    Start the language server on stdio
  phpls lsp --port 7998        Start the language server on TCP
  phpls index src/             Index a directory and list its symbols
  phpls query src/             Explore an index interactively

The index is rebuilt from source on every start; nothing is persisted.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.phpls.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".phpls" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".phpls")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
