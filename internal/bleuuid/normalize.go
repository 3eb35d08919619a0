package bleuuid

import "fmt"

// ShortenUUID returns a compact label for tight displays: the 4 or 8 digit
// short form of SIG-based UUIDs, and the first eight digits of any other UUID
// followed by "...".
func ShortenUUID(u UUID) string {
	if WidthOf(u) != Bits128 {
		return u.Short()
	}
	return u.String()[:8] + "..."
}

// ValidateUUID parses one or more UUID strings, failing on the first one that
// is empty or malformed.
func ValidateUUID(uuids ...string) ([]UUID, error) {
	if len(uuids) == 0 {
		return nil, fmt.Errorf("at least one UUID is required")
	}

	result := make([]UUID, 0, len(uuids))
	for i, s := range uuids {
		if s == "" {
			return nil, fmt.Errorf("UUID at index %d cannot be empty", i)
		}
		u, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID format at index %d: %s", i, s)
		}
		result = append(result, u)
	}
	return result, nil
}
