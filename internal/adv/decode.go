package adv

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/srg/blad/internal/bleuuid"
)

// NameStatus tells apart a missing local name from one that was present but
// could not be read as UTF-8.
type NameStatus int

const (
	NameAbsent NameStatus = iota
	NamePresent
	NameMalformed
)

func (s NameStatus) String() string {
	switch s {
	case NamePresent:
		return "present"
	case NameMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s NameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NameField is the outcome of decoding a local name structure.
type NameField struct {
	Value  string     `json:"value,omitempty"`
	Raw    []byte     `json:"raw,omitempty"` // set only when Status is NameMalformed
	Status NameStatus `json:"status"`
}

// AdvertisedData is what a received advertising payload carries that we care
// about. It is built once per decode and must be treated as read-only.
type AdvertisedData struct {
	ServiceUUIDs []bleuuid.UUID `json:"service_uuids"`
	Name         NameField      `json:"local_name"`
}

// LocalName returns the decoded name and whether a valid one was present.
func (d *AdvertisedData) LocalName() (string, bool) {
	if d == nil || d.Name.Status != NamePresent {
		return "", false
	}
	return d.Name.Value, true
}

// HasService reports whether u was advertised.
func (d *AdvertisedData) HasService(u bleuuid.UUID) bool {
	if d == nil {
		return false
	}
	for _, s := range d.ServiceUUIDs {
		if s == u {
			return true
		}
	}
	return false
}

// Decode parses a raw advertising or scan response payload.
//
// The payload is walked as [len][type][len-1 bytes] structures. Service UUID
// lists and local names are extracted; every other type is skipped. A zero
// length ends the walk, as does a structure that claims more bytes than remain,
// in which case everything decoded so far is returned. Decode never fails: a nil
// payload yields an empty result.
func Decode(payload []byte) *AdvertisedData {
	result := &AdvertisedData{ServiceUUIDs: []bleuuid.UUID{}}

	b := payload
	// A structure needs its length, its type and at least one value byte to be worth reading.
	for len(b) > 2 {
		length := int(b[0])
		if length == 0 {
			break
		}
		if 1+length > len(b) {
			break
		}
		typ, value := b[1], b[2:1+length]

		switch typ {
		case TypeSomeUUID16, TypeAllUUID16:
			result.ServiceUUIDs = appendUUIDs(result.ServiceUUIDs, value, 2)
		case TypeSomeUUID32, TypeAllUUID32:
			result.ServiceUUIDs = appendUUIDs(result.ServiceUUIDs, value, 4)
		case TypeSomeUUID128, TypeAllUUID128:
			result.ServiceUUIDs = appendUUIDs(result.ServiceUUIDs, value, 16)
		case TypeShortName, TypeCompleteName:
			// A malformed name never replaces a valid one seen earlier
			if name := decodeName(value); name.Status == NamePresent || result.Name.Status != NamePresent {
				result.Name = name
			}
		}

		b = b[1+length:]
	}

	return result
}

// appendUUIDs reads complete records of width w from d. A trailing partial
// record is ignored.
func appendUUIDs(u []bleuuid.UUID, d []byte, w int) []bleuuid.UUID {
	for len(d) >= w {
		switch w {
		case 2:
			u = append(u, bleuuid.From16(binary.LittleEndian.Uint16(d)))
		case 4:
			u = append(u, bleuuid.From32(binary.LittleEndian.Uint32(d)))
		default:
			u = append(u, bleuuid.UUID{
				LSB: binary.LittleEndian.Uint64(d[0:8]),
				MSB: binary.LittleEndian.Uint64(d[8:16]),
			})
		}
		d = d[w:]
	}
	return u
}

func decodeName(value []byte) NameField {
	if !utf8.Valid(value) {
		raw := make([]byte, len(value))
		copy(raw, value)
		return NameField{Raw: raw, Status: NameMalformed}
	}
	return NameField{Value: string(value), Status: NamePresent}
}
