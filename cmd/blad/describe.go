package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/pkg/config"
)

// payloadOptions are the flags shared by commands that work on an advertising
// description file.
type payloadOptions struct {
	file         string
	includeFlags bool
	deviceName   string
	limit        int
	format       string
}

func (o *payloadOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Advertising description (YAML or JSON)")
	cmd.Flags().BoolVar(&o.includeFlags, "flags", true, "Account for the flags field the platform adds")
	cmd.Flags().StringVar(&o.deviceName, "name", "", "Device name used when the description asks for one but has none")
	cmd.Flags().IntVar(&o.limit, "limit", adv.MaxLegacyPayload, "Payload budget in bytes")
	cmd.Flags().StringVar(&o.format, "format", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("file")
}

// resolve fills in options the user left unset from cfg.
func (o *payloadOptions) resolve(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("flags") {
		o.includeFlags = cfg.IncludeFlags
	}
	if !cmd.Flags().Changed("name") {
		o.deviceName = cfg.DeviceName
	}
	if !cmd.Flags().Changed("limit") {
		o.limit = cfg.PayloadLimit
	}
}

func loadDescription(path string) (*adv.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read advertising description: %w", err)
	}
	return adv.ParseDescription(data)
}
