package sighting

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cornelk/hashmap"
	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/bleuuid"
)

// EventType marks if a device was newly seen or updated
type EventType int

const (
	EventNew EventType = iota
	EventUpdated
)

func (e EventType) String() string {
	if e == EventNew {
		return "new"
	}
	return "updated"
}

// Filter restricts which devices a Tracker records. Addresses already tracked
// are not filtered again.
type Filter struct {
	AllowList    []string
	BlockList    []string
	ServiceUUIDs []bleuuid.UUID
}

// Tracker keeps the latest Sighting per device address and publishes an Event
// for every accepted observation. It is safe for concurrent use.
type Tracker struct {
	devices *hashmap.Map[string, *device]
	filter  Filter
	cache   *adv.Cache
	logger  *logrus.Logger

	events *eventRing
}

// device holds the latest sighting of one address. It is inserted into the
// map once and updated in place.
type device struct {
	mu     sync.Mutex
	latest atomic.Pointer[Sighting]
}

// NewTracker creates a Tracker. A nil filter records every device.
func NewTracker(filter *Filter, logger *logrus.Logger) *Tracker {
	if logger == nil {
		logger = logrus.New()
	}
	t := &Tracker{
		devices: hashmap.New[string, *device](),
		cache:   adv.NewCache(adv.DefaultCacheCapacity, logger),
		logger:  logger,
		events:  newEventRing(DefaultEventBuffer),
	}
	if filter != nil {
		t.filter = *filter
	}
	return t
}

// Observe records s. It returns false when the filter rejects the device.
//
// Advertisements and scan responses carry different fields, so a name or
// service list missing from s is taken from the previous sighting.
func (t *Tracker) Observe(s *Sighting) (EventType, bool) {
	d, existing := t.devices.Get(s.Address)
	if !existing {
		if !t.filter.allows(s) {
			return EventNew, false
		}
		fresh := &device{}
		fresh.latest.Store(s)
		var loaded bool
		if d, loaded = t.devices.GetOrInsert(s.Address, fresh); !loaded {
			t.logger.WithFields(logrus.Fields{
				"device":  s.Name,
				"address": s.Address,
				"rssi":    s.RSSI,
			}).Info("Discovered new device")
			t.events.publish(Event{Type: EventNew, Sighting: *s})
			return EventNew, true
		}
	}

	d.mu.Lock()
	prev := d.latest.Load()
	merged := *s
	if merged.Name == "" {
		merged.Name = prev.Name
	}
	if len(merged.Services) == 0 {
		merged.Services = prev.Services
	}
	d.latest.Store(&merged)
	d.mu.Unlock()

	t.events.publish(Event{Type: EventUpdated, Sighting: merged})
	return EventUpdated, true
}

// Events returns the channel events are published on. Events that are not
// consumed in time are dropped, oldest first. The channel is closed by Close.
func (t *Tracker) Events() <-chan Event {
	return t.events.ch
}

// EventStats returns how many events were published and dropped.
func (t *Tracker) EventStats() EventStats {
	return t.events.stats()
}

// Close stops event publishing and closes the Events channel. Observations
// made after Close still update the tracker. Close may be called more than once.
func (t *Tracker) Close() {
	t.events.close()
}

// ObservePayload decodes raw through the tracker's cache and records the result.
func (t *Tracker) ObservePayload(addr string, rssi int, raw []byte) (EventType, bool) {
	return t.Observe(fromDecoded(addr, rssi, t.cache.Decode(raw)))
}

// HandleAdvertisement is a ble.AdvHandler that records every scan result.
func (t *Tracker) HandleAdvertisement(a ble.Advertisement) {
	s, err := FromAdvertisement(a)
	if err != nil {
		t.logger.WithError(err).Warn("Skipping advertisement")
		return
	}
	t.Observe(s)
}

// Get returns the latest sighting of addr.
func (t *Tracker) Get(addr string) (*Sighting, bool) {
	d, ok := t.devices.Get(addr)
	if !ok {
		return nil, false
	}
	return d.latest.Load(), true
}

// Len returns the number of tracked devices.
func (t *Tracker) Len() int {
	return t.devices.Len()
}

// Snapshot returns the latest sightings ordered by address.
func (t *Tracker) Snapshot() []*Sighting {
	out := make([]*Sighting, 0, t.devices.Len())
	t.devices.Range(func(_ string, d *device) bool {
		out = append(out, d.latest.Load())
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

func (f *Filter) allows(s *Sighting) bool {
	for _, blocked := range f.BlockList {
		if s.Address == blocked {
			return false
		}
	}

	if len(f.AllowList) > 0 {
		allowed := false
		for _, a := range f.AllowList {
			if s.Address == a {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if len(f.ServiceUUIDs) > 0 {
		for _, required := range f.ServiceUUIDs {
			for _, u := range s.Services {
				if u == required {
					return true
				}
			}
		}
		return false
	}

	return true
}
