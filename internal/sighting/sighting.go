// Package sighting turns scan results into per-device records carrying an
// estimated distance.
package sighting

import (
	"errors"
	"fmt"

	"github.com/go-ble/ble"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/bleuuid"
	"github.com/srg/blad/internal/distance"
)

// Sighting is one observation of an advertising device.
type Sighting struct {
	Address  string         `json:"address"`
	Name     string         `json:"name,omitempty"`
	RSSI     int            `json:"rssi"`
	Distance float64        `json:"distance"` // meters, distance.Unknown when RSSI is unknown
	Services []bleuuid.UUID `json:"services"`
}

// DistanceKnown reports whether Distance holds an estimate.
func (s *Sighting) DistanceKnown() bool {
	return distance.IsKnown(s.Distance)
}

// FromAdvertisement builds a Sighting from a go-ble scan result.
func FromAdvertisement(a ble.Advertisement) (*Sighting, error) {
	if a == nil {
		return nil, errors.New("no advertisement")
	}

	services := make([]bleuuid.UUID, 0, len(a.Services()))
	for _, s := range a.Services() {
		u, err := bleuuid.FromBLE(s)
		if err != nil {
			return nil, fmt.Errorf("advertisement from %s: %w", a.Addr().String(), err)
		}
		services = append(services, u)
	}

	rssi := a.RSSI()
	return &Sighting{
		Address:  a.Addr().String(),
		Name:     a.LocalName(),
		RSSI:     rssi,
		Distance: distance.Estimate(rssi),
		Services: services,
	}, nil
}

// FromPayload builds a Sighting from a raw advertising payload received from addr.
func FromPayload(addr string, rssi int, raw []byte) *Sighting {
	return fromDecoded(addr, rssi, adv.Decode(raw))
}

func fromDecoded(addr string, rssi int, data *adv.AdvertisedData) *Sighting {
	name, _ := data.LocalName()
	return &Sighting{
		Address:  addr,
		Name:     name,
		RSSI:     rssi,
		Distance: distance.Estimate(rssi),
		Services: data.ServiceUUIDs,
	}
}
