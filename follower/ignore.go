package follower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// IgnoreRule suppresses messages by initiator and opcode. AllAddresses and
// AllOpcodes may not both be set.
type IgnoreRule struct {
	Address      uint8 // Initiator logical address, unused with AllAddresses
	Opcode       uint8 // Opcode, unused with AllOpcodes
	AllAddresses bool
	AllOpcodes   bool
}

// String formats the rule in the "<la>,<opcode>" form ParseIgnoreRule accepts.
func (r IgnoreRule) String() string {
	la, op := "all", "all"
	if !r.AllAddresses {
		la = strconv.Itoa(int(r.Address))
	}
	if !r.AllOpcodes {
		op = fmt.Sprintf("0x%02x", r.Opcode)
	}
	return la + "," + op
}

// ParseIgnoreRule parses "<la>,<opcode>" where either part may be "all".
// A missing opcode means all opcodes. Numbers accept 0x and 0 prefixes.
func ParseIgnoreRule(s string) (IgnoreRule, error) {
	var r IgnoreRule
	laPart, opPart, hasOp := strings.Cut(strings.TrimSpace(s), ",")

	r.AllAddresses = strings.HasPrefix(laPart, "all")
	r.AllOpcodes = !hasOp || strings.HasPrefix(opPart, "all")

	if !r.AllAddresses {
		la, err := strconv.ParseUint(strings.TrimSpace(laPart), 0, 32)
		if err != nil {
			return r, fmt.Errorf("%w: logical address %q", pkg.ErrInvalidParameter, laPart)
		}
		if la > 15 {
			return r, fmt.Errorf("%w: %d", pkg.ErrInvalidLogicalAddress, la)
		}
		r.Address = uint8(la)
	}
	if !r.AllOpcodes {
		op, err := strconv.ParseUint(strings.TrimSpace(opPart), 0, 32)
		if err != nil {
			return r, fmt.Errorf("%w: opcode %q", pkg.ErrInvalidParameter, opPart)
		}
		if op > 255 {
			return r, fmt.Errorf("%w: %d", pkg.ErrInvalidOpcode, op)
		}
		r.Opcode = uint8(op)
	}
	if r.AllAddresses && r.AllOpcodes {
		return r, pkg.ErrIgnoreAllAll
	}
	return r, nil
}

// IgnoreFilter is the set of messages the response engine must drop: a mask
// of initiators per opcode, and initiators whose every message is dropped.
type IgnoreFilter struct {
	opcode  [256]uint16
	address [hal.NumLogAddrs]bool
}

// NewIgnoreFilter builds a filter from rules.
func NewIgnoreFilter(rules ...IgnoreRule) (*IgnoreFilter, error) {
	f := &IgnoreFilter{}
	for _, r := range rules {
		if err := f.Add(r); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Add merges rule into the filter.
func (f *IgnoreFilter) Add(r IgnoreRule) error {
	if r.AllAddresses && r.AllOpcodes {
		return pkg.ErrIgnoreAllAll
	}
	if !r.AllOpcodes {
		mask := uint16(0xffff)
		if !r.AllAddresses {
			mask = 1 << (r.Address & 0x0f)
		}
		f.opcode[r.Opcode] |= mask
		return nil
	}
	f.address[r.Address&0x0f] = true
	return nil
}

// Ignored reports whether a message from la with opcode must be dropped.
func (f *IgnoreFilter) Ignored(la, opcode uint8) bool {
	la &= 0x0f
	return f.address[la] || f.opcode[opcode]&(1<<la) != 0
}

// OpcodeMask returns the initiator mask ignored for opcode.
func (f *IgnoreFilter) OpcodeMask(opcode uint8) uint16 {
	return f.opcode[opcode]
}

// AddressIgnored reports whether every message from la is dropped.
func (f *IgnoreFilter) AddressIgnored(la uint8) bool {
	return f.address[la&0x0f]
}
