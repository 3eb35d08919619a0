package bledb

import (
	"testing"

	"github.com/srg/blad/internal/bleuuid"
	"github.com/stretchr/testify/assert"
)

func TestLookupService(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		expected string
		found    bool
	}{
		{
			name:     "Heart Rate - short form",
			uuid:     "180d",
			expected: "Heart Rate",
			found:    true,
		},
		{
			name:     "Heart Rate - full Bluetooth SIG UUID with dashes",
			uuid:     "0000180d-0000-1000-8000-00805f9b34fb",
			expected: "Heart Rate",
			found:    true,
		},
		{
			name:     "Battery - 0x prefix",
			uuid:     "0x180F",
			expected: "Battery",
			found:    true,
		},
		{
			name:     "vendor 128-bit service",
			uuid:     "6E400001-B5A3-F393-E0A9-E50E24DCCA9E",
			expected: "Nordic UART",
			found:    true,
		},
		{
			name:     "16-bit id placed in a custom base",
			uuid:     "0000180d-b5a3-f393-e0a9-e50e24dcca9e",
			expected: "",
			found:    false,
		},
		{
			name: "unassigned 16-bit id",
			uuid: "ffff",
		},
		{
			name: "32-bit id sharing a 16-bit name slot",
			uuid: "0001180d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, found := LookupService(bleuuid.MustParse(tt.uuid))
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestLookupCompany(t *testing.T) {
	name, found := LookupCompany(0x004C)
	assert.True(t, found)
	assert.Equal(t, "Apple", name)

	_, found = LookupCompany(0xFFFF)
	assert.False(t, found)
}

func TestServiceLabel(t *testing.T) {
	assert.Equal(t, "180d (Heart Rate)", ServiceLabel(bleuuid.From16(0x180D)))
	assert.Equal(t, "ffff", ServiceLabel(bleuuid.From16(0xFFFF)))
	assert.Equal(t, "12345678", ServiceLabel(bleuuid.From32(0x12345678)))
}
