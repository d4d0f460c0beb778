package follower

import (
	"errors"
	"testing"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// scriptedAdapter completes every operation with the next scripted message.
type scriptedAdapter struct {
	hal.Adapter
	next hal.Message
	err  error
}

func (s *scriptedAdapter) Transmit(msg *hal.Message) error {
	if s.err != nil {
		return s.err
	}
	*msg = s.next
	return nil
}

func (s *scriptedAdapter) Receive(msg *hal.Message) error {
	if s.err != nil {
		return s.err
	}
	*msg = s.next
	return nil
}

func message(initiator, destination uint8) hal.Message {
	m, _ := hal.NewMessage(initiator, destination, 0x8f)
	return m
}

func TestGateway_Update(t *testing.T) {
	const txTS, rxTS = hal.Timestamp(1000), hal.Timestamp(2000)

	tests := []struct {
		name   string
		op     Operation
		msg    func() hal.Message
		wantLA int // -1 when no address may change
		wantTS hal.Timestamp
	}{
		{
			name: "unicast transmit without reply updates destination",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(5, 3)
				m.TxStatus = pkg.TxStatusOK
				m.TxTimestamp, m.RxTimestamp = txTS, rxTS
				return m
			},
			wantLA: 3, wantTS: txTS,
		},
		{
			name: "transmit with reply ok updates initiator",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(0, 5) // reply from the TV
				m.Timeout = 1000
				m.TxStatus = pkg.TxStatusOK
				m.RxStatus = pkg.RxStatusOK
				m.TxTimestamp, m.RxTimestamp = txTS, rxTS
				return m
			},
			wantLA: 0, wantTS: rxTS,
		},
		{
			name: "transmit with feature abort reply updates initiator",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(4, 5)
				m.Timeout = 1000
				m.TxStatus = pkg.TxStatusOK
				m.RxStatus = pkg.RxStatusOK | pkg.RxStatusFeatureAbort
				m.TxTimestamp, m.RxTimestamp = txTS, rxTS
				return m
			},
			wantLA: 4, wantTS: rxTS,
		},
		{
			name: "transmit with reply timeout updates nothing",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(5, 3)
				m.Timeout = 1000
				m.TxStatus = pkg.TxStatusOK
				m.RxStatus = pkg.RxStatusTimeout
				m.TxTimestamp, m.RxTimestamp = txTS, rxTS
				return m
			},
			wantLA: -1,
		},
		{
			name: "broadcast transmit updates nothing",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(5, hal.LogAddrBroadcast)
				m.TxStatus = pkg.TxStatusOK
				m.TxTimestamp = txTS
				return m
			},
			wantLA: -1,
		},
		{
			name: "failed transmit updates nothing",
			op:   OpTransmit,
			msg: func() hal.Message {
				m := message(5, 3)
				m.TxStatus = pkg.TxStatusNack | pkg.TxStatusMaxRetries
				m.TxTimestamp = txTS
				return m
			},
			wantLA: -1,
		},
		{
			name: "receive ok updates initiator",
			op:   OpReceive,
			msg: func() hal.Message {
				m := message(4, 5)
				m.RxStatus = pkg.RxStatusOK
				m.RxTimestamp = rxTS
				return m
			},
			wantLA: 4, wantTS: rxTS,
		},
		{
			name: "receive broadcast from registered initiator updates it",
			op:   OpReceive,
			msg: func() hal.Message {
				m := message(0, hal.LogAddrBroadcast)
				m.RxStatus = pkg.RxStatusOK
				m.RxTimestamp = rxTS
				return m
			},
			wantLA: 0, wantTS: rxTS,
		},
		{
			name: "receive from unregistered updates nothing",
			op:   OpReceive,
			msg: func() hal.Message {
				m := message(hal.LogAddrUnregistered, hal.LogAddrBroadcast)
				m.RxStatus = pkg.RxStatusOK
				m.RxTimestamp = rxTS
				return m
			},
			wantLA: -1,
		},
		{
			name: "receive without ok status updates nothing",
			op:   OpReceive,
			msg: func() hal.Message {
				m := message(4, 5)
				m.RxStatus = pkg.RxStatusAborted
				m.RxTimestamp = rxTS
				return m
			},
			wantLA: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &scriptedAdapter{next: tt.msg()}
			tracker := NewTracker()
			g := NewGateway(adapter, tracker, true)

			var msg hal.Message
			var err error
			if tt.op == OpTransmit {
				err = g.Transmit(&msg)
			} else {
				err = g.Receive(&msg)
			}
			if err != nil {
				t.Fatalf("%v error = %v", tt.op, err)
			}

			for la := uint8(0); la < hal.NumLogAddrs; la++ {
				want := hal.Timestamp(0)
				if int(la) == tt.wantLA {
					want = tt.wantTS
				}
				if got := tracker.LastActivity(la); got != want {
					t.Errorf("LastActivity(%d) = %v, want %v", la, got, want)
				}
			}
		})
	}
}

func TestGateway_FailureSkipsUpdate(t *testing.T) {
	failure := errors.New("ioctl failed")
	next := message(4, 5)
	next.RxStatus = pkg.RxStatusOK
	next.RxTimestamp = 99
	adapter := &scriptedAdapter{next: next, err: failure}
	tracker := NewTracker()
	g := NewGateway(adapter, tracker, false)

	var msg hal.Message
	if err := g.Receive(&msg); !errors.Is(err, failure) {
		t.Fatalf("Receive() error = %v, want %v", err, failure)
	}
	if err := g.Transmit(&msg); !errors.Is(err, failure) {
		t.Fatalf("Transmit() error = %v, want %v", err, failure)
	}
	if snap := tracker.Snapshot(); snap != [hal.NumLogAddrs]hal.Timestamp{} {
		t.Errorf("tracker changed after failure: %v", snap)
	}
}

func TestGateway_MostRecentWins(t *testing.T) {
	adapter := &scriptedAdapter{}
	tracker := NewTracker()
	g := NewGateway(adapter, tracker, false)

	events := []struct {
		op   Operation
		from uint8
		to   uint8
		ts   hal.Timestamp
		ok   bool
	}{
		{OpReceive, 4, 5, 10, true},
		{OpTransmit, 5, 4, 20, true},
		{OpReceive, 0, 5, 30, true},
		{OpTransmit, 5, 4, 40, false}, // nack, not qualifying
		{OpReceive, 4, 5, 50, false},  // aborted, not qualifying
		{OpReceive, 0, 15, 60, true},
	}

	for _, e := range events {
		m := message(e.from, e.to)
		m.TxTimestamp, m.RxTimestamp = e.ts, e.ts
		if e.op == OpTransmit {
			m.TxStatus = pkg.TxStatusNack
			if e.ok {
				m.TxStatus = pkg.TxStatusOK
			}
		} else {
			m.RxStatus = pkg.RxStatusAborted
			if e.ok {
				m.RxStatus = pkg.RxStatusOK
			}
		}
		adapter.next = m

		var msg hal.Message
		var err error
		if e.op == OpTransmit {
			err = g.Transmit(&msg)
		} else {
			err = g.Receive(&msg)
		}
		if err != nil {
			t.Fatalf("%v error = %v", e.op, err)
		}
	}

	if got := tracker.LastActivity(4); got != 20 {
		t.Errorf("LastActivity(4) = %v, want 20", got)
	}
	if got := tracker.LastActivity(0); got != 60 {
		t.Errorf("LastActivity(0) = %v, want 60", got)
	}
	if got := tracker.LastActivity(5); got != 0 {
		t.Errorf("LastActivity(5) = %v, want 0", got)
	}
}

func TestOperation_String(t *testing.T) {
	if OpTransmit.String() != "CEC_TRANSMIT" || OpReceive.String() != "CEC_RECEIVE" {
		t.Errorf("Operation strings = %v, %v", OpTransmit, OpReceive)
	}
	if Operation(9).String() != "unknown" {
		t.Errorf("Operation(9) = %v", Operation(9))
	}
}
