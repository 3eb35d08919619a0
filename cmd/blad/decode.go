package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/bledb"
	"github.com/srg/blad/internal/bleuuid"
)

type decodeOptions struct {
	format  string
	workers int
	names   bool
}

func newDecodeCmd() *cobra.Command {
	opts := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode [HEX...]",
		Short: "Decode advertising payloads",
		Long: `Decode raw advertising or scan response payloads given as hex.

Payloads are taken from the arguments, or one per line from standard input
when it is not a terminal. Service UUID lists and the local name are shown;
other fields are skipped. Truncated payloads decode as far as they can.`,
		Example: `  blad decode 02010603030d18040948524d
  hcidump --raw | grep -o '02 01 .*' | blad decode --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table, json)")
	cmd.Flags().IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of payloads decoded in parallel")
	cmd.Flags().BoolVar(&opts.names, "names", false, "Show names of well-known services")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string, opts *decodeOptions) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, opts.format)
	if err != nil {
		return err
	}

	inputs := make([]inputLine, 0, len(args))
	for i, a := range args {
		inputs = append(inputs, inputLine{number: i + 1, text: a})
	}
	if len(inputs) == 0 && isPiped(cmd.InOrStdin()) {
		if inputs, err = readLines(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no payloads given", ErrInvalidPayload)
	}

	payloads := make([][]byte, len(inputs))
	for i, in := range inputs {
		b, err := adv.ParseHexPayload(in.text)
		if err != nil {
			return fmt.Errorf("%w: #%d %q: %v", ErrInvalidPayload, in.number, in.text, err)
		}
		payloads[i] = b
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := adv.NewCache(adv.DefaultCacheCapacity, logger)
	results, err := cache.DecodeAll(ctx, payloads, opts.workers)
	if err != nil {
		return err
	}

	stats := cache.Stats()
	logger.WithFields(logrus.Fields{
		"payloads": len(payloads),
		"unique":   stats.Entries,
		"hits":     stats.Hits,
	}).Debug("Decoded payloads")

	switch format {
	case "json":
		return displayDecodedJSON(cmd.OutOrStdout(), payloads, results)
	default:
		return displayDecodedTable(cmd.OutOrStdout(), payloads, results, opts.names)
	}
}

type decodedPayload struct {
	Payload string `json:"payload"`
	*adv.AdvertisedData
}

func displayDecodedJSON(w io.Writer, payloads [][]byte, results []*adv.AdvertisedData) error {
	out := make([]decodedPayload, len(results))
	for i, r := range results {
		out[i] = decodedPayload{Payload: hex.EncodeToString(payloads[i]), AdvertisedData: r}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func displayDecodedTable(base io.Writer, payloads [][]byte, results []*adv.AdvertisedData, names bool) error {
	w := tabwriter.NewWriter(base, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSERVICES\tPAYLOAD")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, r := range results {
		payload := hex.EncodeToString(payloads[i])
		if len(payload) > 24 {
			payload = payload[:21] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, displayName(r.Name), displayServices(r.ServiceUUIDs, names), payload)
	}

	return w.Flush()
}

func displayName(n adv.NameField) string {
	switch n.Status {
	case adv.NamePresent:
		return n.Value
	case adv.NameMalformed:
		return fmt.Sprintf("<malformed %x>", n.Raw)
	default:
		return "-"
	}
}

func displayServices(services []bleuuid.UUID, names bool) string {
	if len(services) == 0 {
		return "-"
	}
	uuids := make([]string, len(services))
	for i, u := range services {
		if names {
			uuids[i] = bledb.ServiceLabel(u)
		} else {
			uuids[i] = u.Short()
		}
	}
	return strings.Join(uuids, ",")
}
