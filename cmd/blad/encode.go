package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/adv"
)

func newEncodeCmd() *cobra.Command {
	opts := &payloadOptions{}
	cmd := &cobra.Command{
		Use:   "encode -f DESCRIPTION",
		Short: "Encode an advertising description into payload bytes",
		Long: `Encode an advertising description into the payload bytes a peripheral
would transmit, printed as hex. Fields appear in the order size lists them.
Fails when the payload does not fit the budget.`,
		Example: `  blad encode -f heart-rate.yaml
  blad encode -f beacon.yaml --flags=false --limit 62`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts)
		},
	}

	opts.register(cmd)

	return cmd
}

type encodedPayload struct {
	Payload string `json:"payload"`
	Length  int    `json:"length"`
}

func runEncode(cmd *cobra.Command, opts *payloadOptions) error {
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

	if err := adv.CheckBudget(desc, opts.includeFlags, opts.deviceName, opts.limit); err != nil {
		return err
	}
	payload, err := adv.Encode(desc, opts.includeFlags, opts.deviceName)
	if err != nil {
		return err
	}
	logger.WithField("length", len(payload)).Debug("Encoded advertising description")

	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(encodedPayload{Payload: hex.EncodeToString(payload), Length: len(payload)})
	default:
		_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(payload))
		return err
	}
}
