// Package bleuuid implements Bluetooth service UUIDs as a pair of 64-bit halves
// and their classification against the Bluetooth SIG base UUID.
//
// A UUID whose least-significant half matches the base UUID can be shortened on
// the air to a 16-bit or 32-bit identifier. Which form applies is decided
// structurally by masking the most-significant half, never by value ranges.
package bleuuid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidUUID is returned when an operation needs a UUID and none is supplied.
var ErrInvalidUUID = errors.New("invalid uuid: no value supplied")

// Width is the on-air width class of a service UUID.
type Width int

const (
	Bits16 Width = iota
	Bits32
	Bits128
)

// Bytes returns the number of bytes a UUID of this width occupies on the air.
func (w Width) Bytes() int {
	switch w {
	case Bits16:
		return 2
	case Bits32:
		return 4
	default:
		return 16
	}
}

func (w Width) String() string {
	switch w {
	case Bits16:
		return "16-bit"
	case Bits32:
		return "32-bit"
	default:
		return "128-bit"
	}
}

// UUID is a 128-bit UUID held as its most- and least-significant 64-bit halves.
type UUID struct {
	MSB uint64
	LSB uint64
}

// Base is the Bluetooth SIG base UUID 00000000-0000-1000-8000-00805F9B34FB.
var Base = UUID{MSB: 0x0000000000001000, LSB: 0x800000805F9B34FB}

const (
	// shortSlotMask clears the 16-bit identifier slot (bits 32..47) of the MSB.
	shortSlotMask uint64 = 0xFFFF0000FFFFFFFF
	lowWordMask   uint64 = 0x00000000FFFFFFFF
	baseLowWord   uint64 = 0x1000
)

// Is16Bit reports whether u is the base UUID with only the 16-bit slot substituted.
func Is16Bit(u UUID) bool {
	if u.LSB != Base.LSB {
		return false
	}
	return u.MSB&shortSlotMask == baseLowWord
}

// Is32Bit reports whether u is the base UUID with a 32-bit value substituted into
// the top of the MSB, and is not already a 16-bit UUID.
func Is32Bit(u UUID) bool {
	if u.LSB != Base.LSB {
		return false
	}
	if Is16Bit(u) {
		return false
	}
	return u.MSB&lowWordMask == baseLowWord
}

// WidthOf classifies u. Exactly one width applies to every UUID.
func WidthOf(u UUID) Width {
	switch {
	case Is16Bit(u):
		return Bits16
	case Is32Bit(u):
		return Bits32
	default:
		return Bits128
	}
}

// Width is shorthand for WidthOf(u).
func (u UUID) Width() Width {
	return WidthOf(u)
}

// ShortID returns the identifier held in the top 32 bits of the MSB. It is only
// meaningful for 16-bit and 32-bit UUIDs.
func (u UUID) ShortID() uint32 {
	return uint32(u.MSB >> 32)
}

// From16 expands a 16-bit identifier into a full UUID.
func From16(id uint16) UUID {
	return UUID{MSB: uint64(id)<<32 | Base.MSB, LSB: Base.LSB}
}

// From32 expands a 32-bit identifier into a full UUID.
func From32(id uint32) UUID {
	return UUID{MSB: uint64(id)<<32 | Base.MSB, LSB: Base.LSB}
}

// CompactBytes returns the minimal little-endian on-air encoding of u:
// 2 bytes for 16-bit UUIDs, 4 bytes for 32-bit ones and 16 bytes otherwise,
// with the 128-bit layout being LSB followed by MSB, each little-endian.
func CompactBytes(u *UUID) ([]byte, error) {
	if u == nil {
		return nil, ErrInvalidUUID
	}
	switch WidthOf(*u) {
	case Bits16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(u.ShortID()))
		return b, nil
	case Bits32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, u.ShortID())
		return b, nil
	default:
		b := make([]byte, 16)
		binary.LittleEndian.PutUint64(b[0:8], u.LSB)
		binary.LittleEndian.PutUint64(b[8:16], u.MSB)
		return b, nil
	}
}

// Compact is CompactBytes for a UUID value, which can never be absent.
func (u UUID) Compact() []byte {
	b, _ := CompactBytes(&u)
	return b
}

// FromCompact rebuilds a UUID from its 2, 4 or 16 byte little-endian encoding.
func FromCompact(b []byte) (UUID, error) {
	switch len(b) {
	case 2:
		return From16(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return From32(binary.LittleEndian.Uint32(b)), nil
	case 16:
		return UUID{
			MSB: binary.LittleEndian.Uint64(b[8:16]),
			LSB: binary.LittleEndian.Uint64(b[0:8]),
		}, nil
	default:
		return UUID{}, fmt.Errorf("compact uuid must be 2, 4 or 16 bytes, got %d", len(b))
	}
}

// Parse accepts a canonical UUID string (with or without dashes or braces), or a
// 4 or 8 hex digit short form, optionally prefixed with 0x.
func Parse(s string) (UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UUID{}, ErrInvalidUUID
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	switch len(trimmed) {
	case 4, 8:
		id, err := strconv.ParseUint(trimmed, 16, 32)
		if err != nil {
			return UUID{}, fmt.Errorf("invalid short uuid %q: %w", s, err)
		}
		if len(trimmed) == 4 {
			return From16(uint16(id)), nil
		}
		return From32(uint32(id)), nil
	}

	parsed, err := uuid.Parse(strings.Trim(s, "{}"))
	if err != nil {
		// google/uuid insists on the dashed layout for 36 chars; retry the compact form
		parsed, err = uuid.Parse(strings.ReplaceAll(strings.Trim(s, "{}"), "-", ""))
		if err != nil {
			return UUID{}, fmt.Errorf("invalid uuid %q: %w", s, err)
		}
	}
	return UUID{
		MSB: binary.BigEndian.Uint64(parsed[0:8]),
		LSB: binary.BigEndian.Uint64(parsed[8:16]),
	}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the lowercase canonical 36 character form.
func (u UUID) String() string {
	var raw uuid.UUID
	binary.BigEndian.PutUint64(raw[0:8], u.MSB)
	binary.BigEndian.PutUint64(raw[8:16], u.LSB)
	return raw.String()
}

// Short returns the shortest hex form: 4 or 8 digits for SIG-based UUIDs,
// the canonical form otherwise.
func (u UUID) Short() string {
	switch WidthOf(u) {
	case Bits16:
		return fmt.Sprintf("%04x", u.ShortID())
	case Bits32:
		return fmt.Sprintf("%08x", u.ShortID())
	default:
		return u.String()
	}
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting any form Parse does.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
