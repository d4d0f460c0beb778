package follower

import (
	"fmt"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// Operation names one adapter operation.
type Operation int

// Adapter operations issued through a Gateway.
const (
	OpTransmit Operation = iota
	OpReceive
)

// String returns the ioctl name of the operation.
func (o Operation) String() string {
	switch o {
	case OpTransmit:
		return "CEC_TRANSMIT"
	case OpReceive:
		return "CEC_RECEIVE"
	default:
		return "unknown"
	}
}

// Gateway issues adapter operations one at a time and keeps the activity
// tracker current. It performs no retries; a failed operation is returned
// to the caller untouched.
type Gateway struct {
	adapter hal.Adapter
	tracker *Tracker
	trace   bool
}

// NewGateway wraps adapter and records activity in tracker. With trace set
// every operation and its result is logged at debug level.
func NewGateway(adapter hal.Adapter, tracker *Tracker, trace bool) *Gateway {
	return &Gateway{adapter: adapter, tracker: tracker, trace: trace}
}

// Tracker returns the activity tracker the gateway updates.
func (g *Gateway) Tracker() *Tracker {
	return g.tracker
}

// Transmit sends msg through the adapter.
func (g *Gateway) Transmit(msg *hal.Message) error {
	return g.do(OpTransmit, msg)
}

// Receive waits for the next message from the adapter.
func (g *Gateway) Receive(msg *hal.Message) error {
	return g.do(OpReceive, msg)
}

func (g *Gateway) do(op Operation, msg *hal.Message) error {
	var err error
	switch op {
	case OpTransmit:
		err = g.adapter.Transmit(msg)
	case OpReceive:
		err = g.adapter.Receive(msg)
	default:
		return fmt.Errorf("%w: operation %d", pkg.ErrInvalidParameter, op)
	}

	if g.trace {
		pkg.LogDebug(pkg.ComponentGateway, "ioctl",
			"op", op.String(),
			"ok", err == nil,
			"error", err)
	}
	if err != nil {
		return err
	}

	g.update(op, msg)
	return nil
}

// update applies the activity rules to a completed operation:
//
//   - a successful non-broadcast transmit that waited for a reply refreshes
//     the initiator when the reply arrived cleanly or as a Feature Abort,
//     using the receive time;
//   - a successful non-broadcast transmit that waited for nothing refreshes
//     the destination, using the transmit time;
//   - a clean receive from a registered initiator refreshes the initiator,
//     using the receive time.
func (g *Gateway) update(op Operation, msg *hal.Message) {
	if op == OpTransmit && msg.TxStatus.OK() && !msg.IsBroadcast() {
		if msg.Timeout != 0 {
			if msg.RxStatus.OK() || msg.RxStatus.FeatureAbort() {
				g.tracker.RecordReceive(msg.Initiator(), msg.RxTimestamp)
			}
		} else {
			g.tracker.RecordTransmit(msg.Destination(), msg.TxTimestamp)
		}
	}
	if op == OpReceive && msg.Initiator() != hal.LogAddrUnregistered && msg.RxStatus.OK() {
		g.tracker.RecordReceive(msg.Initiator(), msg.RxTimestamp)
	}
}
