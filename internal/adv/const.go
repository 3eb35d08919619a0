package adv

// MaxLegacyPayload is the largest advertising or scan response payload a
// legacy (non-extended) advertiser can transmit.
const MaxLegacyPayload = 31

// Advertising data field types
const (
	TypeFlags            = 0x01 // Flags
	TypeSomeUUID16       = 0x02 // Incomplete List of 16-bit Service Class UUIDs
	TypeAllUUID16        = 0x03 // Complete List of 16-bit Service Class UUIDs
	TypeSomeUUID32       = 0x04 // Incomplete List of 32-bit Service Class UUIDs
	TypeAllUUID32        = 0x05 // Complete List of 32-bit Service Class UUIDs
	TypeSomeUUID128      = 0x06 // Incomplete List of 128-bit Service Class UUIDs
	TypeAllUUID128       = 0x07 // Complete List of 128-bit Service Class UUIDs
	TypeShortName        = 0x08 // Shortened Local Name
	TypeCompleteName     = 0x09 // Complete Local Name
	TypeTxPower          = 0x0A // Tx Power Level
	TypeServiceData16    = 0x16 // Service Data - 16-bit UUID
	TypeServiceData32    = 0x20 // Service Data - 32-bit UUID
	TypeServiceData128   = 0x21 // Service Data - 128-bit UUID
	TypeManufacturerData = 0xFF // Manufacturer Specific Data
)

// Advertising flags
const (
	FlagLimitedDiscoverable = 0x01 // LE Limited Discoverable Mode
	FlagGeneralDiscoverable = 0x02 // LE General Discoverable Mode
	FlagLEOnly              = 0x04 // BR/EDR Not Supported
)

// Sizes used when accounting for an outgoing payload.
const (
	// FieldOverhead is the length and type byte every AD structure carries.
	FieldOverhead = 2
	// FlagsFieldBytes is the whole flags structure the platform adds on its own.
	FlagsFieldBytes = 3
	// ManufacturerIDBytes is the company identifier prefixing manufacturer data.
	ManufacturerIDBytes = 2
	// TxPowerBytes is the single signed byte of a tx power level field.
	TxPowerBytes = 1
	// maxFieldContent is the most a single length byte can describe after the type byte.
	maxFieldContent = 0xFF - 1
)
