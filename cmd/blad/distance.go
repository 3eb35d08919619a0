package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/distance"
)

func newDistanceCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "distance -- RSSI...",
		Short: "Estimate distance from RSSI",
		Long: `Estimate how far away a device is from the RSSI (in dBm) of its
advertisements, using a path-loss model calibrated for -60 dBm at one meter.

An RSSI of 0 means the signal strength is unknown. Separate negative values
from the flags with --.`,
		Example: `  blad distance -- -60 -72 -90`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistance(cmd, args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")

	return cmd
}

type distanceEstimate struct {
	RSSI     int     `json:"rssi"`
	Distance float64 `json:"distance"`
}

func runDistance(cmd *cobra.Command, args []string, formatFlag string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, formatFlag)
	if err != nil {
		return err
	}

	estimates := make([]distanceEstimate, len(args))
	for i, a := range args {
		rssi, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return fmt.Errorf("invalid RSSI '%s': must be an integer in dBm", a)
		}
		estimates[i] = distanceEstimate{RSSI: rssi, Distance: distance.Estimate(rssi)}
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(estimates)
	default:
		return displayDistanceTable(cmd.OutOrStdout(), estimates)
	}
}

func displayDistanceTable(base io.Writer, estimates []distanceEstimate) error {
	w := tabwriter.NewWriter(base, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RSSI\tDISTANCE")
	for _, e := range estimates {
		fmt.Fprintf(w, "%d dBm\t%s\n", e.RSSI, formatDistance(e.Distance))
	}
	return w.Flush()
}

func formatDistance(d float64) string {
	if !distance.IsKnown(d) {
		return "unknown"
	}
	return fmt.Sprintf("%.2f m", d)
}
