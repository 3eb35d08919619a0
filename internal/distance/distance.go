// Package distance estimates how far away an advertiser is from its RSSI using
// an empirical two-branch path-loss model.
package distance

import "math"

// Calibration constants of the path-loss model. They are empirical and must not
// be folded or simplified.
const (
	// ReferenceTxPower is the expected RSSI in dBm at one meter.
	ReferenceTxPower = -60.0

	NearFieldExponent   = 10.0
	FarFieldCoefficient = 0.89976
	FarFieldExponent    = 7.7095
	FarFieldIntercept   = 0.111
)

const (
	// RSSIUnknown is the RSSI sentinel reported when the radio has no reading.
	RSSIUnknown = 0
	// Unknown is returned for RSSIUnknown.
	Unknown = -1.0
)

// Estimate maps an RSSI in dBm to an estimated distance in meters.
// RSSIUnknown yields Unknown.
func Estimate(rssi int) float64 {
	if rssi == RSSIUnknown {
		return Unknown
	}
	ratio := float64(rssi) / ReferenceTxPower
	if ratio < 1.0 {
		return math.Pow(ratio, NearFieldExponent)
	}
	return FarFieldCoefficient*math.Pow(ratio, FarFieldExponent) + FarFieldIntercept
}

// IsKnown reports whether d is an actual estimate rather than the Unknown sentinel.
func IsKnown(d float64) bool {
	return d >= 0
}
