package adv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/srg/blad/internal/bleuuid"
)

// ErrFieldTooLong is returned when a single AD structure cannot be described by
// its one byte length.
var ErrFieldTooLong = errors.New("advertising field too long")

// Packet is an advertising payload under construction.
type Packet []byte

// AppendField appends a [len][type][data] structure.
func (p Packet) AppendField(typ byte, b []byte) Packet {
	p = append(p, byte(len(b)+1), typ)
	return append(p, b...)
}

// AppendFlags appends the flags structure.
func (p Packet) AppendFlags(f byte) Packet {
	return p.AppendField(TypeFlags, []byte{f})
}

// AppendUUIDs appends one list structure holding every UUID in uu, which must
// all share the width w.
func (p Packet) AppendUUIDs(w bleuuid.Width, uu []bleuuid.UUID) Packet {
	var typ byte
	switch w {
	case bleuuid.Bits16:
		typ = TypeAllUUID16
	case bleuuid.Bits32:
		typ = TypeAllUUID32
	default:
		typ = TypeAllUUID128
	}
	b := make([]byte, 0, len(uu)*w.Bytes())
	for _, u := range uu {
		b = append(b, u.Compact()...)
	}
	return p.AppendField(typ, b)
}

// AppendServiceData appends a service data structure keyed by u.
func (p Packet) AppendServiceData(u bleuuid.UUID, data []byte) Packet {
	var typ byte
	switch u.Width() {
	case bleuuid.Bits16:
		typ = TypeServiceData16
	case bleuuid.Bits32:
		typ = TypeServiceData32
	default:
		typ = TypeServiceData128
	}
	return p.AppendField(typ, append(u.Compact(), data...))
}

// AppendManufacturerData appends a manufacturer data structure.
func (p Packet) AppendManufacturerData(id uint16, data []byte) Packet {
	b := make([]byte, ManufacturerIDBytes, ManufacturerIDBytes+len(data))
	binary.LittleEndian.PutUint16(b, id)
	return p.AppendField(TypeManufacturerData, append(b, data...))
}

// AppendTxPower appends a tx power level structure.
func (p Packet) AppendTxPower(dbm int8) Packet {
	return p.AppendField(TypeTxPower, []byte{byte(dbm)})
}

// AppendCompleteName appends a complete local name structure.
func (p Packet) AppendCompleteName(n string) Packet {
	return p.AppendField(TypeCompleteName, []byte(n))
}

// Encode produces the payload described by d with the same grouping and order
// Breakdown accounts for, so len(Encode(...)) always equals TotalBytes(...).
// Encode does not enforce a size budget; use CheckBudget for that.
func Encode(d *Description, includeFlags bool, fallbackName string) (Packet, error) {
	if d == nil {
		return Packet{}, nil
	}
	if err := validateFieldLengths(d, fallbackName); err != nil {
		return nil, err
	}

	p := make(Packet, 0, MaxLegacyPayload)
	if includeFlags {
		p = p.AppendFlags(FlagGeneralDiscoverable | FlagLEOnly)
	}

	byWidth := d.uniqueServiceUUIDs()
	for _, w := range []bleuuid.Width{bleuuid.Bits16, bleuuid.Bits32, bleuuid.Bits128} {
		if uu := byWidth[w]; len(uu) > 0 {
			p = p.AppendUUIDs(w, uu)
		}
	}

	for _, u := range d.sortedServiceDataKeys() {
		p = p.AppendServiceData(u, d.ServiceData[u])
	}

	for _, id := range d.sortedManufacturerIDs() {
		p = p.AppendManufacturerData(id, d.ManufacturerData[id])
	}

	if d.IncludeTxPower {
		p = p.AppendTxPower(d.TxPowerLevel)
	}

	if name := d.resolveName(fallbackName); name != "" {
		p = p.AppendCompleteName(name)
	}

	return p, nil
}

func validateFieldLengths(d *Description, fallbackName string) error {
	for pair := Breakdown(d, false, fallbackName).Oldest(); pair != nil; pair = pair.Next() {
		if content := pair.Value - FieldOverhead; content > maxFieldContent {
			return fmt.Errorf("%w: %s carries %d bytes, at most %d fit", ErrFieldTooLong, pair.Key, content, maxFieldContent)
		}
	}
	return nil
}
