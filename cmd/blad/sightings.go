package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/bledb"
	"github.com/srg/blad/internal/bleuuid"
	"github.com/srg/blad/internal/groutine"
	"github.com/srg/blad/internal/sighting"
)

type sightingsOptions struct {
	format    string
	services  []string
	allowList []string
	blockList []string
	names     bool
	follow    bool
}

func newSightingsCmd() *cobra.Command {
	opts := &sightingsOptions{}
	cmd := &cobra.Command{
		Use:   "sightings [FILE]",
		Short: "Summarize devices seen in a scan capture",
		Long: `Read a scan capture and show the latest sighting of every device.

Each line of the capture holds an address, an RSSI in dBm and the raw payload
as hex, separated by whitespace. Advertisements and scan responses from one
address are merged. The capture is read from FILE, or from standard input when
no FILE is given.

With --follow, every new or updated device is printed as soon as it is read,
which suits a capture that is still being written.`,
		Example: `  blad sightings capture.txt --services 180d
  cat capture.txt | blad sightings --format json
  tail -f capture.txt | blad sightings --follow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSightings(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table, json)")
	cmd.Flags().StringSliceVarP(&opts.services, "services", "s", nil, "Only show devices advertising one of these service UUIDs")
	cmd.Flags().StringSliceVar(&opts.allowList, "allow", nil, "Only show devices with these addresses")
	cmd.Flags().StringSliceVar(&opts.blockList, "block", nil, "Hide devices with these addresses")
	cmd.Flags().BoolVar(&opts.names, "names", false, "Show names of well-known services")
	cmd.Flags().BoolVar(&opts.follow, "follow", false, "Print devices as they are seen")

	return cmd
}

func runSightings(cmd *cobra.Command, args []string, opts *sightingsOptions) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, opts.format)
	if err != nil {
		return err
	}

	filter := &sighting.Filter{AllowList: opts.allowList, BlockList: opts.blockList}
	if len(opts.services) > 0 {
		uuids, err := bleuuid.ValidateUUID(opts.services...)
		if err != nil {
			return fmt.Errorf("invalid service UUID: %w", err)
		}
		filter.ServiceUUIDs = uuids
	}

	in := cmd.InOrStdin()
	if len(args) == 0 && !isPiped(in) {
		return fmt.Errorf("%w: no capture given", ErrInvalidInput)
	}
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open capture: %w", err)
		}
		defer f.Close()
		in = f
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	tracker := sighting.NewTracker(filter, logger)
	printed := make(chan struct{})
	if opts.follow {
		groutine.Go(cmd.Context(), "sightings-follow", func(ctx context.Context) {
			defer close(printed)
			for e := range tracker.Events() {
				printEvent(cmd.OutOrStdout(), e)
			}
		})
	} else {
		close(printed)
	}

	err = eachLine(in, func(line inputLine) error {
		addr, rssi, raw, err := parseCaptureLine(line.text)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidInput, line.number, err)
		}
		tracker.ObservePayload(addr, rssi, raw)
		return nil
	})
	tracker.Close()
	<-printed
	if err != nil {
		return err
	}

	stats := tracker.EventStats()
	logger.WithFields(logrus.Fields{
		"device_count": tracker.Len(),
		"events":       stats.Written,
		"dropped":      stats.Dropped,
	}).Info("Capture processed")

	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(tracker.Snapshot())
	default:
		return displaySightingsTable(cmd.OutOrStdout(), tracker.Snapshot(), opts.names)
	}
}

// parseCaptureLine splits "ADDRESS RSSI HEX..." into its parts. The payload may
// itself contain spaces.
func parseCaptureLine(line string) (string, int, []byte, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", 0, nil, fmt.Errorf("want ADDRESS RSSI PAYLOAD, got %q", line)
	}
	rssi, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, nil, fmt.Errorf("invalid RSSI %q", fields[1])
	}
	raw, err := adv.ParseHexPayload(strings.Join(fields[2:], ""))
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return fields[0], rssi, raw, nil
}

func printEvent(w io.Writer, e sighting.Event) {
	name := e.Sighting.Name
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(w, "[%s] %s %s %d dBm %s\n", e.Type, e.Sighting.Address, name, e.Sighting.RSSI, formatDistance(e.Sighting.Distance))
}

func displaySightingsTable(base io.Writer, sightings []*sighting.Sighting, names bool) error {
	if len(sightings) == 0 {
		_, err := fmt.Fprintln(base, "No devices discovered")
		return err
	}

	w := tabwriter.NewWriter(base, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tRSSI\tDISTANCE\tSERVICES")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, s := range sightings {
		name := s.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d dBm\t%s\t%s\n",
			truncate(name, 20), s.Address, s.RSSI, formatDistance(s.Distance),
			truncate(compactServices(s.Services, names), 30))
	}

	return w.Flush()
}

// compactServices lists services for the sightings table, where 128-bit UUIDs
// are cut down to their first digits.
func compactServices(services []bleuuid.UUID, names bool) string {
	if len(services) == 0 {
		return "-"
	}
	labels := make([]string, len(services))
	for i, u := range services {
		labels[i] = bleuuid.ShortenUUID(u)
		if names {
			if name, ok := bledb.LookupService(u); ok {
				labels[i] += " (" + name + ")"
			}
		}
	}
	return strings.Join(labels, ",")
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
