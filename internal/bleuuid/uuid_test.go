package bleuuid

import (
	"testing"

	"github.com/go-ble/ble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthOf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Width
	}{
		{name: "heart rate service", input: "0000180d-0000-1000-8000-00805f9b34fb", expected: Bits16},
		{name: "base uuid itself", input: "00000000-0000-1000-8000-00805f9b34fb", expected: Bits16},
		{name: "max 16-bit", input: "0000ffff-0000-1000-8000-00805f9b34fb", expected: Bits16},
		{name: "32-bit identifier", input: "12345678-0000-1000-8000-00805f9b34fb", expected: Bits32},
		{name: "32-bit with only top byte set", input: "aa002902-0000-1000-8000-00805f9b34fb", expected: Bits32},
		{name: "base suffix, wrong time_mid", input: "0000180d-0001-1000-8000-00805f9b34fb", expected: Bits128},
		{name: "base suffix, wrong version field", input: "0000180d-0000-2000-8000-00805f9b34fb", expected: Bits128},
		{name: "custom vendor uuid", input: "6e400001-b5a3-f393-e0a9-e50e24dcca9e", expected: Bits128},
		{name: "wrong lsb", input: "0000180d-0000-1000-8000-00805f9b34fc", expected: Bits128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := MustParse(tt.input)
			assert.Equal(t, tt.expected, WidthOf(u))

			// Exactly one class holds
			n := 0
			if Is16Bit(u) {
				n++
			}
			if Is32Bit(u) {
				n++
			}
			if !Is16Bit(u) && !Is32Bit(u) {
				n++
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestBaseHalves(t *testing.T) {
	base := MustParse("00000000-0000-1000-8000-00805F9B34FB")
	assert.Equal(t, Base, base)
	assert.Equal(t, "00000000-0000-1000-8000-00805f9b34fb", Base.String())
}

func TestCompactBytes(t *testing.T) {
	t.Run("16-bit is two bytes little-endian", func(t *testing.T) {
		u := From16(0x180D)
		b, err := CompactBytes(&u)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x0D, 0x18}, b)
	})

	t.Run("32-bit is four bytes little-endian", func(t *testing.T) {
		u := MustParse("12345678-0000-1000-8000-00805f9b34fb")
		b, err := CompactBytes(&u)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, b)
	})

	t.Run("128-bit is lsb then msb, each little-endian", func(t *testing.T) {
		u := UUID{MSB: 0x0102030405060708, LSB: 0x1112131415161718}
		b, err := CompactBytes(&u)
		require.NoError(t, err)
		assert.Equal(t, []byte{
			0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11,
			0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		}, b)
	})

	t.Run("nil uuid fails", func(t *testing.T) {
		b, err := CompactBytes(nil)
		assert.ErrorIs(t, err, ErrInvalidUUID)
		assert.Nil(t, b)
	})
}

func TestCompactRoundTrip(t *testing.T) {
	inputs := []string{
		"0000180d-0000-1000-8000-00805f9b34fb",
		"0000fe9f-0000-1000-8000-00805f9b34fb",
		"12345678-0000-1000-8000-00805f9b34fb",
		"ffff0000-0000-1000-8000-00805f9b34fb",
		"6e400001-b5a3-f393-e0a9-e50e24dcca9e",
		"0000180d-0000-2000-8000-00805f9b34fb",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			u := MustParse(in)
			back, err := FromCompact(u.Compact())
			require.NoError(t, err)
			assert.Equal(t, u, back)
			assert.Equal(t, WidthOf(u), WidthOf(back))
			assert.Equal(t, u.ShortID(), back.ShortID())
			assert.Len(t, u.Compact(), WidthOf(u).Bytes())
		})
	}
}

func TestFromCompact_InvalidLength(t *testing.T) {
	_, err := FromCompact([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected UUID
		wantErr  bool
	}{
		{name: "16-bit short form", input: "180d", expected: From16(0x180d)},
		{name: "16-bit with 0x prefix", input: "0x180D", expected: From16(0x180d)},
		{name: "32-bit short form", input: "12345678", expected: From32(0x12345678)},
		{name: "canonical", input: "0000180d-0000-1000-8000-00805f9b34fb", expected: From16(0x180d)},
		{name: "no dashes", input: "0000180d00001000800000805f9b34fb", expected: From16(0x180d)},
		{name: "braces", input: "{0000180d-0000-1000-8000-00805f9b34fb}", expected: From16(0x180d)},
		{name: "odd dash layout", input: "0000-180d-0000-1000-8000-00805f9b34fb", expected: From16(0x180d)},
		{name: "empty", input: "", wantErr: true},
		{name: "bad short", input: "12g4", wantErr: true},
		{name: "garbage", input: "not-a-uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u)
		})
	}
}

func TestShort(t *testing.T) {
	assert.Equal(t, "180d", From16(0x180d).Short())
	assert.Equal(t, "12345678", From32(0x12345678).Short())
	assert.Equal(t, "6e400001-b5a3-f393-e0a9-e50e24dcca9e", MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e").Short())
}

func TestTextMarshalling(t *testing.T) {
	u := From16(0x2a37)
	text, err := u.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00002a37-0000-1000-8000-00805f9b34fb", string(text))

	var back UUID
	require.NoError(t, back.UnmarshalText([]byte("2a37")))
	assert.Equal(t, u, back)
	assert.Error(t, back.UnmarshalText([]byte("zz")))
}

func TestBLEConversion(t *testing.T) {
	t.Run("16-bit", func(t *testing.T) {
		u, err := FromBLE(ble.UUID16(0x180d))
		require.NoError(t, err)
		assert.Equal(t, From16(0x180d), u)
		assert.True(t, u.BLE().Equal(ble.UUID16(0x180d)))
	})

	t.Run("128-bit", func(t *testing.T) {
		bu := ble.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
		u, err := FromBLE(bu)
		require.NoError(t, err)
		assert.Equal(t, MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"), u)
		assert.True(t, u.BLE().Equal(bu))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := FromBLE(nil)
		assert.ErrorIs(t, err, ErrInvalidUUID)
	})
}
