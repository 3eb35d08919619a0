package testutils

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/srg/blad/internal/bleuuid"
)

// PayloadBuilder builds raw advertising payloads for decoder tests.
// Structures are emitted in the order the With* calls are made, which makes it
// easy to place malformed or unknown structures at an exact position.
//
// Example:
//
//	payload := NewPayloadBuilder().
//	    WithFlags(0x06).
//	    WithServices16(0x180D, 0x180F).
//	    WithCompleteName("HRM").
//	    Build()
type PayloadBuilder struct {
	data []byte
}

// NewPayloadBuilder creates an empty PayloadBuilder.
func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{data: make([]byte, 0, 31)}
}

// WithField appends a well-formed [len][type][value] structure.
func (b *PayloadBuilder) WithField(typ byte, value []byte) *PayloadBuilder {
	b.data = append(b.data, byte(len(value)+1), typ)
	b.data = append(b.data, value...)
	return b
}

// WithDeclaredLength appends a structure whose length byte is declared rather
// than computed, for building truncated or overlong structures.
func (b *PayloadBuilder) WithDeclaredLength(length byte, typ byte, value []byte) *PayloadBuilder {
	b.data = append(b.data, length, typ)
	b.data = append(b.data, value...)
	return b
}

// WithRaw appends bytes verbatim.
func (b *PayloadBuilder) WithRaw(raw ...byte) *PayloadBuilder {
	b.data = append(b.data, raw...)
	return b
}

// WithPadding appends n zero bytes, as controllers do up to the payload length.
func (b *PayloadBuilder) WithPadding(n int) *PayloadBuilder {
	b.data = append(b.data, make([]byte, n)...)
	return b
}

// WithFlags appends a flags structure.
func (b *PayloadBuilder) WithFlags(flags byte) *PayloadBuilder {
	return b.WithField(0x01, []byte{flags})
}

// WithServices16 appends one complete list of 16-bit service UUIDs.
func (b *PayloadBuilder) WithServices16(ids ...uint16) *PayloadBuilder {
	value := make([]byte, 2*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint16(value[2*i:], id)
	}
	return b.WithField(0x03, value)
}

// WithIncompleteServices16 appends one incomplete list of 16-bit service UUIDs.
func (b *PayloadBuilder) WithIncompleteServices16(ids ...uint16) *PayloadBuilder {
	value := make([]byte, 2*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint16(value[2*i:], id)
	}
	return b.WithField(0x02, value)
}

// WithServices32 appends one complete list of 32-bit service UUIDs.
func (b *PayloadBuilder) WithServices32(ids ...uint32) *PayloadBuilder {
	value := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(value[4*i:], id)
	}
	return b.WithField(0x05, value)
}

// WithServices128 appends one complete list of 128-bit service UUIDs.
// Panics on an unparseable UUID as this is intended for test data setup.
func (b *PayloadBuilder) WithServices128(uuids ...string) *PayloadBuilder {
	value := make([]byte, 0, 16*len(uuids))
	for _, s := range uuids {
		u := bleuuid.MustParse(s)
		rec := make([]byte, 16)
		binary.LittleEndian.PutUint64(rec[0:8], u.LSB)
		binary.LittleEndian.PutUint64(rec[8:16], u.MSB)
		value = append(value, rec...)
	}
	return b.WithField(0x07, value)
}

// WithCompleteName appends a complete local name structure.
func (b *PayloadBuilder) WithCompleteName(name string) *PayloadBuilder {
	return b.WithField(0x09, []byte(name))
}

// WithShortName appends a shortened local name structure.
func (b *PayloadBuilder) WithShortName(name string) *PayloadBuilder {
	return b.WithField(0x08, []byte(name))
}

// WithTxPower appends a tx power level structure.
func (b *PayloadBuilder) WithTxPower(dbm int8) *PayloadBuilder {
	return b.WithField(0x0A, []byte{byte(dbm)})
}

// WithManufacturerData appends a manufacturer specific data structure.
func (b *PayloadBuilder) WithManufacturerData(companyID uint16, data []byte) *PayloadBuilder {
	value := make([]byte, 2, 2+len(data))
	binary.LittleEndian.PutUint16(value, companyID)
	return b.WithField(0xFF, append(value, data...))
}

// Build returns a copy of the payload built so far.
func (b *PayloadBuilder) Build() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// BuildHex returns the payload as a lowercase hex string.
func (b *PayloadBuilder) BuildHex() string {
	return hex.EncodeToString(b.data)
}
