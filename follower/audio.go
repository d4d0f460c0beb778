package follower

import (
	"fmt"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
	"github.com/ardnew/softcec/sad"
)

// maxSADsPerReport is how many descriptors fit one Report Short Audio
// Descriptor frame.
const maxSADsPerReport = 4

// AudioResponder answers Request Short Audio Descriptor with the emulated
// audio system's descriptors.
type AudioResponder struct {
	descriptors []sad.Descriptor
}

// NewAudioResponder returns a responder reporting descriptors.
func NewAudioResponder(descriptors []sad.Descriptor) *AudioResponder {
	d := make([]sad.Descriptor, len(descriptors))
	copy(d, descriptors)
	return &AudioResponder{descriptors: d}
}

// Descriptors returns the reported descriptors.
func (r *AudioResponder) Descriptors() []sad.Descriptor {
	return r.descriptors
}

// Respond handles directed Request Short Audio Descriptor messages from
// registered initiators. Each operand names one format by (format ID,
// code); the reply carries the matching descriptors in request order. A request that matches nothing
// is answered with Feature Abort "invalid operand".
func (r *AudioResponder) Respond(msg *hal.Message, tx Transmitter) (bool, error) {
	opcode, ok := msg.Opcode()
	if !ok || opcode != hal.OpRequestShortAudioDescriptor || msg.IsBroadcast() ||
		msg.Initiator() == hal.LogAddrUnregistered {
		return false, nil
	}

	operands := msg.Operands()
	if len(operands) > maxSADsPerReport {
		operands = operands[:maxSADsPerReport]
	}

	var payload []byte
	for _, b := range operands {
		id, code := b>>6, b&0x3f
		pkg.LogDebug(pkg.ComponentSAD, "short audio descriptor requested",
			"from", msg.Initiator(),
			"format", sad.AudioFormatIDCodeString(id, code))

		for i := range r.descriptors {
			if r.descriptors[i].Matches(id, code) {
				enc := sad.Encode(&r.descriptors[i]).Bytes()
				payload = append(payload, enc[:]...)
				break
			}
		}
	}

	reply := msg.ReplyTo()
	if len(payload) == 0 {
		return true, featureAbort(tx, &reply, opcode, hal.AbortInvalidOp)
	}

	reply.Msg[1] = hal.OpReportShortAudioDescriptor
	copy(reply.Msg[2:], payload)
	reply.Len = uint32(2 + len(payload))
	if err := tx.Transmit(&reply); err != nil {
		return true, fmt.Errorf("report short audio descriptor: %w", err)
	}
	return true, nil
}

// featureAbort sends a Feature Abort for opcode with reason on reply, which
// must already carry the reply header.
func featureAbort(tx Transmitter, reply *hal.Message, opcode, reason uint8) error {
	reply.Msg[1] = hal.OpFeatureAbort
	reply.Msg[2] = opcode
	reply.Msg[3] = reason
	reply.Len = 4
	if err := tx.Transmit(reply); err != nil {
		return fmt.Errorf("feature abort 0x%02x: %w", opcode, err)
	}
	return nil
}
