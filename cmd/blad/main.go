package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// formatVersion adds 'v' prefix if version starts with a digit
func formatVersion(ver string) string {
	if len(ver) > 0 && unicode.IsDigit(rune(ver[0])) {
		return "v" + ver
	}
	return ver
}

// newRootCmd builds the command tree. Every call returns fresh commands with
// their own flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blad",
		Short: "Bluetooth Low Energy advertising data tool",
		Long: `Bluetooth Low Energy (BLE) advertising data tool that provides:

- Decode raw advertising and scan response payloads
- Check an advertising description against the payload budget
- Encode an advertising description into payload bytes
- Estimate distance from RSSI
- Summarize sightings from captured scan results

Useful when designing what a peripheral advertises and when reading sniffer or scanner logs.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", formatVersion(version), commit, date),
	}

	// Silence Cobra's "Error:" prefix - main() prints clean errors
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newSizeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDistanceCmd())
	rootCmd.AddCommand(newSightingsCmd())

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	// Add -v as a short flag for --version
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Ctrl+C is a normal exit, not an error - exit silently
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", FormatUserError(err))
		os.Exit(1)
	}
}
