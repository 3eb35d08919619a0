package adv

import (
	"errors"
	"fmt"

	"github.com/srg/blad/internal/bleuuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrPayloadTooLarge is matched by every *BudgetError.
var ErrPayloadTooLarge = errors.New("advertising payload too large")

// BudgetError reports a payload that does not fit the radio's limit.
type BudgetError struct {
	Size  int
	Limit int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit of %d", ErrPayloadTooLarge, e.Size, e.Limit)
}

// Is allows errors.Is(err, ErrPayloadTooLarge).
func (e *BudgetError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}

// Field labels used in a Breakdown.
const (
	FieldFlags   = "flags"
	FieldUUID16  = "uuid16"
	FieldUUID32  = "uuid32"
	FieldUUID128 = "uuid128"
	FieldTxPower = "tx_power"
	FieldName    = "local_name"
)

// ServiceDataField is the Breakdown label of one service data entry.
func ServiceDataField(u bleuuid.UUID) string {
	return "service_data:" + u.Short()
}

// ManufacturerDataField is the Breakdown label of one manufacturer data entry.
func ManufacturerDataField(id uint16) string {
	return fmt.Sprintf("manufacturer_data:0x%04x", id)
}

// Breakdown lists, in wire order, how many bytes each AD structure of the
// payload will take. Fields that are not emitted are not listed. A nil
// description yields an empty breakdown.
//
// UUIDs of the same width share a single structure. The flags structure is not
// part of the description; includeFlags accounts for the one the platform adds.
func Breakdown(d *Description, includeFlags bool, fallbackName string) *orderedmap.OrderedMap[string, int] {
	sizes := orderedmap.New[string, int]()
	if d == nil {
		return sizes
	}

	if includeFlags {
		sizes.Set(FieldFlags, FlagsFieldBytes)
	}

	byWidth := d.uniqueServiceUUIDs()
	for _, g := range []struct {
		label string
		width bleuuid.Width
	}{
		{FieldUUID16, bleuuid.Bits16},
		{FieldUUID32, bleuuid.Bits32},
		{FieldUUID128, bleuuid.Bits128},
	} {
		if n := len(byWidth[g.width]); n > 0 {
			sizes.Set(g.label, FieldOverhead+n*g.width.Bytes())
		}
	}

	for _, u := range d.sortedServiceDataKeys() {
		sizes.Set(ServiceDataField(u), FieldOverhead+len(u.Compact())+len(d.ServiceData[u]))
	}

	for _, id := range d.sortedManufacturerIDs() {
		sizes.Set(ManufacturerDataField(id), FieldOverhead+ManufacturerIDBytes+len(d.ManufacturerData[id]))
	}

	if d.IncludeTxPower {
		sizes.Set(FieldTxPower, FieldOverhead+TxPowerBytes)
	}

	if name := d.resolveName(fallbackName); name != "" {
		sizes.Set(FieldName, FieldOverhead+len(name))
	}

	return sizes
}

// TotalBytes computes how many bytes the payload described by d will occupy,
// without producing it. A nil description yields 0.
func TotalBytes(d *Description, includeFlags bool, fallbackName string) int {
	total := 0
	for pair := Breakdown(d, includeFlags, fallbackName).Oldest(); pair != nil; pair = pair.Next() {
		total += pair.Value
	}
	return total
}

// CheckBudget returns a *BudgetError when the payload described by d would be
// larger than limit bytes.
func CheckBudget(d *Description, includeFlags bool, fallbackName string, limit int) error {
	if size := TotalBytes(d, includeFlags, fallbackName); size > limit {
		return &BudgetError{Size: size, Limit: limit}
	}
	return nil
}
