package bleuuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortenUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    UUID
		expected string
	}{
		{name: "16-bit", input: From16(0x180D), expected: "180d"},
		{name: "32-bit", input: From32(0x12345678), expected: "12345678"},
		{name: "128-bit", input: MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"), expected: "6e400001..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShortenUUID(tt.input))
		})
	}
}

func TestValidateUUID(t *testing.T) {
	uuids, err := ValidateUUID("180d", "6E400001-B5A3-F393-E0A9-E50E24DCCA9E")
	require.NoError(t, err)
	assert.Equal(t, []UUID{From16(0x180D), MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e")}, uuids)

	_, err = ValidateUUID()
	assert.EqualError(t, err, "at least one UUID is required")

	_, err = ValidateUUID("180d", "")
	assert.EqualError(t, err, "UUID at index 1 cannot be empty")

	_, err = ValidateUUID("nope")
	assert.EqualError(t, err, "invalid UUID format at index 0: nope")
}
