package adv

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/srg/blad/internal/bleuuid"
	"gopkg.in/yaml.v3"
)

// Description is the symbolic form of an outgoing advertising payload.
// Sizing and encoding never modify it.
type Description struct {
	ServiceUUIDs      []bleuuid.UUID
	ServiceData       map[bleuuid.UUID][]byte
	ManufacturerData  map[uint16][]byte
	IncludeTxPower    bool
	TxPowerLevel      int8 // only used when encoding
	IncludeDeviceName bool
	DeviceName        string
}

// resolveName returns the name to advertise, if any. The description's own name
// takes precedence over the fallback (typically the adapter name).
func (d *Description) resolveName(fallback string) string {
	if !d.IncludeDeviceName {
		return ""
	}
	if d.DeviceName != "" {
		return d.DeviceName
	}
	return fallback
}

// uniqueServiceUUIDs groups the service UUIDs by width, dropping repeats while
// keeping first-seen order.
func (d *Description) uniqueServiceUUIDs() map[bleuuid.Width][]bleuuid.UUID {
	seen := make(map[bleuuid.UUID]struct{}, len(d.ServiceUUIDs))
	byWidth := make(map[bleuuid.Width][]bleuuid.UUID, 3)
	for _, u := range d.ServiceUUIDs {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		w := bleuuid.WidthOf(u)
		byWidth[w] = append(byWidth[w], u)
	}
	return byWidth
}

func (d *Description) sortedServiceDataKeys() []bleuuid.UUID {
	keys := make([]bleuuid.UUID, 0, len(d.ServiceData))
	for k := range d.ServiceData {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].MSB != keys[j].MSB {
			return keys[i].MSB < keys[j].MSB
		}
		return keys[i].LSB < keys[j].LSB
	})
	return keys
}

func (d *Description) sortedManufacturerIDs() []uint16 {
	ids := make([]uint16, 0, len(d.ManufacturerData))
	for id := range d.ManufacturerData {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// descriptionDoc is the YAML (and therefore JSON) document form of a Description.
// Binary values are hex strings; manufacturer ids accept decimal or 0x-prefixed hex.
type descriptionDoc struct {
	Services          []string          `yaml:"services"`
	ServiceData       map[string]string `yaml:"service_data"`
	ManufacturerData  map[string]string `yaml:"manufacturer_data"`
	IncludeTxPower    bool              `yaml:"include_tx_power"`
	TxPowerLevel      int8              `yaml:"tx_power_level"`
	IncludeDeviceName bool              `yaml:"include_device_name"`
	DeviceName        string            `yaml:"device_name"`
}

// ParseDescription reads a Description from a YAML or JSON document.
func ParseDescription(data []byte) (*Description, error) {
	var doc descriptionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse advertising description: %w", err)
	}

	d := &Description{
		IncludeTxPower:    doc.IncludeTxPower,
		TxPowerLevel:      doc.TxPowerLevel,
		IncludeDeviceName: doc.IncludeDeviceName,
		DeviceName:        doc.DeviceName,
	}

	if len(doc.Services) > 0 {
		uuids, err := bleuuid.ValidateUUID(doc.Services...)
		if err != nil {
			return nil, fmt.Errorf("services: %w", err)
		}
		d.ServiceUUIDs = uuids
	}

	if len(doc.ServiceData) > 0 {
		d.ServiceData = make(map[bleuuid.UUID][]byte, len(doc.ServiceData))
		for k, v := range doc.ServiceData {
			u, err := bleuuid.Parse(k)
			if err != nil {
				return nil, fmt.Errorf("service_data key: %w", err)
			}
			b, err := decodeHex(v)
			if err != nil {
				return nil, fmt.Errorf("service_data %s: %w", k, err)
			}
			d.ServiceData[u] = b
		}
	}

	if len(doc.ManufacturerData) > 0 {
		d.ManufacturerData = make(map[uint16][]byte, len(doc.ManufacturerData))
		for k, v := range doc.ManufacturerData {
			id, err := strconv.ParseUint(strings.TrimSpace(k), 0, 16)
			if err != nil {
				return nil, fmt.Errorf("manufacturer_data key %q: %w", k, err)
			}
			b, err := decodeHex(v)
			if err != nil {
				return nil, fmt.Errorf("manufacturer_data %s: %w", k, err)
			}
			d.ManufacturerData[uint16(id)] = b
		}
	}

	return d, nil
}

// decodeHex accepts hex with optional 0x prefix and space, colon or dash separators.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	return hex.DecodeString(s)
}

// ParseHexPayload decodes a hex string (as printed by scanners and sniffers)
// into raw payload bytes.
func ParseHexPayload(s string) ([]byte, error) {
	return decodeHex(s)
}
