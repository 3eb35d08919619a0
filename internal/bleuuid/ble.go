package bleuuid

import (
	"fmt"

	"github.com/go-ble/ble"
)

// FromBLE converts a go-ble UUID, which is stored little-endian in 2, 4 or 16
// bytes, into a UUID.
func FromBLE(u ble.UUID) (UUID, error) {
	if len(u) == 0 {
		return UUID{}, ErrInvalidUUID
	}
	parsed, err := FromCompact([]byte(u))
	if err != nil {
		return UUID{}, fmt.Errorf("go-ble uuid %x: %w", []byte(u), err)
	}
	return parsed, nil
}

// BLE returns the go-ble representation of u, using the compact width.
func (u UUID) BLE() ble.UUID {
	return ble.UUID(u.Compact())
}
