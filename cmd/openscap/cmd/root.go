// Package cmd provides the CLI commands for openscap.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berise/openscap/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "openscap",
	Short: "openscap - XCCDF-shaped policy evaluation engine",
	Long: `openscap evaluates a benchmark/profile pair against a host context and
reports a verdict per selected, applicable rule, plus aggregate scores.

Since parsing real XCCDF/OVAL content is out of this engine's scope, this
CLI evaluates a fixture benchmark built in-memory (internal/adapter/outbound/memory)
so the check-dispatch, applicability, and scoring machinery has something
real to drive.

Configuration is loaded from openscap.yaml in the current directory,
$HOME/.openscap/, or /etc/openscap/. Environment variables with the
OPENSCAP_ prefix override config values, e.g. OPENSCAP_CONTENT_PROFILE_ID.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./openscap.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
