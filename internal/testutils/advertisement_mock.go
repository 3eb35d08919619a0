package testutils

import (
	"github.com/go-ble/ble"
	"github.com/stretchr/testify/mock"
)

// MockAddr is a testify mock of ble.Addr.
type MockAddr struct {
	mock.Mock
}

func (m *MockAddr) String() string {
	return m.Called().String(0)
}

// MockAdvertisement is a testify mock of ble.Advertisement.
type MockAdvertisement struct {
	mock.Mock
}

func (m *MockAdvertisement) LocalName() string {
	return m.Called().String(0)
}

func (m *MockAdvertisement) ManufacturerData() []byte {
	v, _ := m.Called().Get(0).([]byte)
	return v
}

func (m *MockAdvertisement) ServiceData() []ble.ServiceData {
	v, _ := m.Called().Get(0).([]ble.ServiceData)
	return v
}

func (m *MockAdvertisement) Services() []ble.UUID {
	v, _ := m.Called().Get(0).([]ble.UUID)
	return v
}

func (m *MockAdvertisement) OverflowService() []ble.UUID {
	v, _ := m.Called().Get(0).([]ble.UUID)
	return v
}

func (m *MockAdvertisement) TxPowerLevel() int {
	return m.Called().Int(0)
}

func (m *MockAdvertisement) Connectable() bool {
	return m.Called().Bool(0)
}

func (m *MockAdvertisement) SolicitedService() []ble.UUID {
	v, _ := m.Called().Get(0).([]ble.UUID)
	return v
}

func (m *MockAdvertisement) RSSI() int {
	return m.Called().Int(0)
}

func (m *MockAdvertisement) Addr() ble.Addr {
	v, _ := m.Called().Get(0).(ble.Addr)
	return v
}

// AdvertisementBuilder builds mocked go-ble advertisements. Only fields that
// were explicitly set get mock expectations, so an unexpected read fails the test.
type AdvertisementBuilder struct {
	name     *string
	address  *string
	rssi     *int
	services []string
	txPower  *int
}

// NewAdvertisementBuilder creates an AdvertisementBuilder with nothing set.
func NewAdvertisementBuilder() *AdvertisementBuilder {
	return &AdvertisementBuilder{}
}

// WithName sets the local name for the advertisement.
func (b *AdvertisementBuilder) WithName(name string) *AdvertisementBuilder {
	b.name = &name
	return b
}

// WithAddress sets the device address for the advertisement.
func (b *AdvertisementBuilder) WithAddress(addr string) *AdvertisementBuilder {
	b.address = &addr
	return b
}

// WithRSSI sets the signal strength for the advertisement.
func (b *AdvertisementBuilder) WithRSSI(rssi int) *AdvertisementBuilder {
	b.rssi = &rssi
	return b
}

// WithServices adds service UUIDs, in short ("180D") or full form.
func (b *AdvertisementBuilder) WithServices(uuids ...string) *AdvertisementBuilder {
	if b.services == nil {
		b.services = []string{}
	}
	b.services = append(b.services, uuids...)
	return b
}

// WithTxPower sets the transmission power level.
func (b *AdvertisementBuilder) WithTxPower(power int) *AdvertisementBuilder {
	b.txPower = &power
	return b
}

// Build creates the MockAdvertisement.
func (b *AdvertisementBuilder) Build() *MockAdvertisement {
	adv := &MockAdvertisement{}

	if b.address != nil {
		addr := &MockAddr{}
		addr.On("String").Return(*b.address)
		adv.On("Addr").Return(addr)
	}
	if b.name != nil {
		adv.On("LocalName").Return(*b.name)
	}
	if b.rssi != nil {
		adv.On("RSSI").Return(*b.rssi)
	}
	if b.services != nil {
		uuids := make([]ble.UUID, 0, len(b.services))
		for _, s := range b.services {
			uuids = append(uuids, ble.MustParse(s))
		}
		adv.On("Services").Return(uuids)
	}
	if b.txPower != nil {
		adv.On("TxPowerLevel").Return(*b.txPower)
	}

	return adv
}
