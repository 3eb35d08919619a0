package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/bledb"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type sizeOptions struct {
	payloadOptions
	strict bool
	names  bool
}

func newSizeCmd() *cobra.Command {
	opts := &sizeOptions{}
	cmd := &cobra.Command{
		Use:   "size -f DESCRIPTION",
		Short: "Show how many bytes an advertising payload takes",
		Long: `Compute the size of the advertising payload an advertising description
produces, field by field, and compare it with the payload budget.

UUIDs of one width share a single field. Service data and manufacturer data
take one field per entry.`,
		Example: `  blad size -f heart-rate.yaml
  blad size -f beacon.yaml --name "Kitchen" --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSize(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when the payload is over budget")
	cmd.Flags().BoolVar(&opts.names, "names", false, "Show names of well-known services and companies")

	return cmd
}

type sizeReport struct {
	Fields *orderedmap.OrderedMap[string, int] `json:"fields"`
	Total  int                                 `json:"total"`
	Limit  int                                 `json:"limit"`
	Fits   bool                                `json:"fits"`
}

func runSize(cmd *cobra.Command, opts *sizeOptions) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, opts.format)
	if err != nil {
		return err
	}
	opts.resolve(cmd, cfg)

	desc, err := loadDescription(opts.file)
	if err != nil {
		return err
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	report := sizeReport{
		Fields: adv.Breakdown(desc, opts.includeFlags, opts.deviceName),
		Total:  adv.TotalBytes(desc, opts.includeFlags, opts.deviceName),
		Limit:  opts.limit,
	}
	report.Fits = report.Total <= report.Limit
	logger.WithField("file", opts.file).WithField("total", report.Total).Debug("Sized advertising description")

	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	default:
		var labels map[string]string
		if opts.names {
			labels = fieldLabels(desc)
		}
		if err := displaySizeTable(cmd.OutOrStdout(), report, labels); err != nil {
			return err
		}
	}

	if opts.strict {
		return adv.CheckBudget(desc, opts.includeFlags, opts.deviceName, opts.limit)
	}
	return nil
}

// fieldLabels names the service and manufacturer data fields of d that refer
// to a well-known service or company.
func fieldLabels(d *adv.Description) map[string]string {
	labels := make(map[string]string)
	for u := range d.ServiceData {
		if name, ok := bledb.LookupService(u); ok {
			labels[adv.ServiceDataField(u)] = fmt.Sprintf("%s (%s)", adv.ServiceDataField(u), name)
		}
	}
	for id := range d.ManufacturerData {
		if name, ok := bledb.LookupCompany(id); ok {
			labels[adv.ManufacturerDataField(id)] = fmt.Sprintf("%s (%s)", adv.ManufacturerDataField(id), name)
		}
	}
	return labels
}

func displaySizeTable(base io.Writer, report sizeReport, labels map[string]string) error {
	w := tabwriter.NewWriter(base, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tBYTES")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for pair := report.Fields.Oldest(); pair != nil; pair = pair.Next() {
		label := pair.Key
		if l, ok := labels[label]; ok {
			label = l
		}
		fmt.Fprintf(w, "%s\t%d\n", label, pair.Value)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "total\t%d\n", report.Total)
	if err := w.Flush(); err != nil {
		return err
	}

	verdict := color.New(color.FgGreen)
	text := fmt.Sprintf("fits: %d of %d bytes, %d spare", report.Total, report.Limit, report.Limit-report.Total)
	if !report.Fits {
		verdict = color.New(color.FgRed, color.Bold)
		text = fmt.Sprintf("over budget: %d of %d bytes, %d too many", report.Total, report.Limit, report.Total-report.Limit)
	}
	_, err := verdict.Fprintln(base, text)
	return err
}
