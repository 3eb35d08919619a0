// Package bledb names well-known service UUIDs and company identifiers.
// It covers the assigned numbers most often seen in advertisements, not the
// full Bluetooth SIG registry.
package bledb

import "github.com/srg/blad/internal/bleuuid"

var services = map[uint32]string{
	0x1800: "Generic Access",
	0x1801: "Generic Attribute",
	0x1802: "Immediate Alert",
	0x1803: "Link Loss",
	0x1804: "Tx Power",
	0x1805: "Current Time",
	0x1809: "Health Thermometer",
	0x180A: "Device Information",
	0x180D: "Heart Rate",
	0x180F: "Battery",
	0x1810: "Blood Pressure",
	0x1812: "Human Interface Device",
	0x1816: "Cycling Speed and Cadence",
	0x1818: "Cycling Power",
	0x1819: "Location and Navigation",
	0x181A: "Environmental Sensing",
	0x181C: "User Data",
	0x181D: "Weight Scale",
	0x1826: "Fitness Machine",
	0xFD6F: "Exposure Notification",
	0xFE59: "Nordic DFU",
	0xFE9F: "Google",
	0xFEAA: "Eddystone",
}

var vendorServices = map[bleuuid.UUID]string{
	bleuuid.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"): "Nordic UART",
}

var companies = map[uint16]string{
	0x0002: "Intel",
	0x0006: "Microsoft",
	0x000D: "Texas Instruments",
	0x000F: "Broadcom",
	0x004C: "Apple",
	0x0059: "Nordic Semiconductor",
	0x0075: "Samsung",
	0x0087: "Garmin",
	0x00E0: "Google",
	0x0157: "Huami",
	0x05A7: "Sonos",
}

// LookupService returns the name of a service UUID.
func LookupService(u bleuuid.UUID) (string, bool) {
	if name, ok := vendorServices[u]; ok {
		return name, true
	}
	if u.Width() == bleuuid.Bits128 {
		return "", false
	}
	name, ok := services[u.ShortID()]
	return name, ok
}

// LookupCompany returns the name of a company identifier as used in
// manufacturer specific data.
func LookupCompany(id uint16) (string, bool) {
	name, ok := companies[id]
	return name, ok
}

// ServiceLabel returns the short form of u followed by its name, when known.
func ServiceLabel(u bleuuid.UUID) string {
	if name, ok := LookupService(u); ok {
		return u.Short() + " (" + name + ")"
	}
	return u.Short()
}
