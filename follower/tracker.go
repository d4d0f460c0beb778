package follower

import (
	"sync"

	"github.com/ardnew/softcec/follower/hal"
)

// Tracker records, per logical address, the adapter timestamp of the last
// qualifying exchange with that address. All entries start at zero and are
// only ever overwritten for the address a qualifying event names.
//
// Addresses are a caller contract (0-15); they are masked to four bits so a
// violation cannot index outside the table.
type Tracker struct {
	mu sync.RWMutex
	ts [hal.NumLogAddrs]hal.Timestamp
}

// NewTracker returns a tracker with every address at zero.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordTransmit records a successful transmit to addr completed at ts.
func (t *Tracker) RecordTransmit(addr uint8, ts hal.Timestamp) {
	t.record(addr, ts)
}

// RecordReceive records a message (or reply) from addr received at ts.
func (t *Tracker) RecordReceive(addr uint8, ts hal.Timestamp) {
	t.record(addr, ts)
}

func (t *Tracker) record(addr uint8, ts hal.Timestamp) {
	t.mu.Lock()
	t.ts[addr&0x0f] = ts
	t.mu.Unlock()
}

// LastActivity returns the timestamp of the last qualifying exchange with
// addr, or zero if there has been none.
func (t *Tracker) LastActivity(addr uint8) hal.Timestamp {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ts[addr&0x0f]
}

// Snapshot returns the timestamps of all sixteen addresses.
func (t *Tracker) Snapshot() [hal.NumLogAddrs]hal.Timestamp {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ts
}
