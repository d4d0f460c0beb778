package sad

import (
	"fmt"

	"github.com/ardnew/softcec/pkg"
)

// Descriptor is one short audio descriptor. Only the fields used by the
// active FormatCode (and ExtensionTypeCode for extended descriptors) reach
// the encoding; all others are ignored.
type Descriptor struct {
	NumChannels       uint8 // 1-8
	FormatCode        FormatCode
	SampleFreqMask    uint8 // SampleFreq* bits
	BitDepthMask      uint8 // BitDepth* bits (L-PCM, L-PCM 3D, MPEG-H, AC-4)
	MaxBitrate        uint8 // Codes 2-8, in 8 kbit/s units
	FormatDependent   uint8 // Codes 9-13; low 3 bits for MPEG-H and AC-4
	WMAProfile        uint8 // Code 14
	ExtensionTypeCode ExtensionType
	FrameLengthMask   uint8 // FrameLength* bits (extension types 4-6, 8, 10)
	MPS               uint8 // MPEG Surround flag (extension types 8, 10)
}

// Encoded is a packed 24-bit short audio descriptor: (b1<<16)|(b2<<8)|b3.
type Encoded uint32

// Bytes returns the three wire bytes b1, b2, b3.
func (e Encoded) Bytes() [Size]byte {
	return [Size]byte{byte(e >> 16), byte(e >> 8), byte(e)}
}

// MarshalTo writes the three wire bytes to buf.
// Returns the number of bytes written (3), or 0 if buf is too small.
func (e Encoded) MarshalTo(buf []byte) int {
	if len(buf) < Size {
		return 0
	}
	b := e.Bytes()
	copy(buf, b[:])
	return Size
}

// byte3Encoders holds the byte 3 encoder per format code. Code 0 is
// reserved and has no encoder, leaving byte 3 zero.
var byte3Encoders = [16]func(*Descriptor) uint8{
	FormatLPCM:        encodeBitDepth,
	FormatAC3:         encodeMaxBitrate,
	FormatMPEG1:       encodeMaxBitrate,
	FormatMP3:         encodeMaxBitrate,
	FormatMPEG2:       encodeMaxBitrate,
	FormatAACLC:       encodeMaxBitrate,
	FormatDTS:         encodeMaxBitrate,
	FormatATRAC:       encodeMaxBitrate,
	FormatOneBitAudio: encodeFormatDependent,
	FormatEnhancedAC3: encodeFormatDependent,
	FormatDTSHD:       encodeFormatDependent,
	FormatMAT:         encodeFormatDependent,
	FormatDST:         encodeFormatDependent,
	FormatWMAPro:      encodeWMAProfile,
	FormatExtended:    encodeExtended,
}

// Encode packs d into its 24-bit wire form. Channel counts above 8 and
// out-of-range codes are truncated to their bit fields in byte 1; codes
// above 15 and unknown extension types leave byte 3 zero.
func Encode(d *Descriptor) Encoded {
	b1 := (d.NumChannels - 1) & channelsMask
	b1 |= (uint8(d.FormatCode) & formatCodeMask) << formatCodeShift

	b2 := d.SampleFreqMask

	var b3 uint8
	if int(d.FormatCode) < len(byte3Encoders) {
		if enc := byte3Encoders[d.FormatCode]; enc != nil {
			b3 = enc(d)
		}
	}

	return Encoded(uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3))
}

func encodeBitDepth(d *Descriptor) uint8 {
	return d.BitDepthMask & bitDepthMask
}

func encodeMaxBitrate(d *Descriptor) uint8 {
	return d.MaxBitrate
}

func encodeFormatDependent(d *Descriptor) uint8 {
	return d.FormatDependent
}

func encodeWMAProfile(d *Descriptor) uint8 {
	return d.WMAProfile & wmaProfileMask
}

func encodeExtended(d *Descriptor) uint8 {
	b3 := (uint8(d.ExtensionTypeCode) & extTypeMask) << extTypeShift

	switch d.ExtensionTypeCode {
	case ExtMPEG4HEAAC, ExtMPEG4HEAACv2, ExtMPEG4AACLC:
		b3 |= encodeFrameLength(d)
	case ExtMPEG4HEAACSurround, ExtMPEG4AACLCSurround:
		b3 |= encodeFrameLength(d)
		b3 |= d.MPS & mpsMask
	case ExtMPEGH3DAudio, ExtAC4:
		b3 |= d.FormatDependent & extDependentMask
		b3 |= encodeBitDepth(d)
	case ExtLPCM3DAudio:
		b3 |= encodeBitDepth(d)
	}
	return b3
}

func encodeFrameLength(d *Descriptor) uint8 {
	return (d.FrameLengthMask & frameLengthMask) << frameLengthShift
}

// Decode unpacks a 3-byte wire descriptor into out. Fields not carried by
// the decoded format are zero. For MPEG-H 3D Audio and AC-4 the low three
// bits of byte 3 hold the union of the format-dependent value and the bit
// depth mask; they decode into FormatDependent, which re-encodes to the same
// bytes.
func Decode(data []byte, out *Descriptor) error {
	if len(data) < Size {
		return fmt.Errorf("%w: short audio descriptor needs %d bytes, have %d",
			pkg.ErrDescriptorTooShort, Size, len(data))
	}
	b1, b2, b3 := data[0], data[1], data[2]

	*out = Descriptor{
		NumChannels:    b1&channelsMask + 1,
		FormatCode:     FormatCode((b1 >> formatCodeShift) & formatCodeMask),
		SampleFreqMask: b2,
	}

	switch out.FormatCode {
	case FormatLPCM:
		out.BitDepthMask = b3 & bitDepthMask
	case FormatAC3, FormatMPEG1, FormatMP3, FormatMPEG2, FormatAACLC, FormatDTS, FormatATRAC:
		out.MaxBitrate = b3
	case FormatOneBitAudio, FormatEnhancedAC3, FormatDTSHD, FormatMAT, FormatDST:
		out.FormatDependent = b3
	case FormatWMAPro:
		out.WMAProfile = b3 & wmaProfileMask
	case FormatExtended:
		decodeExtended(b3, out)
	}
	return nil
}

func decodeExtended(b3 uint8, out *Descriptor) {
	out.ExtensionTypeCode = ExtensionType((b3 >> extTypeShift) & extTypeMask)

	switch out.ExtensionTypeCode {
	case ExtMPEG4HEAAC, ExtMPEG4HEAACv2, ExtMPEG4AACLC:
		out.FrameLengthMask = (b3 >> frameLengthShift) & frameLengthMask
	case ExtMPEG4HEAACSurround, ExtMPEG4AACLCSurround:
		out.FrameLengthMask = (b3 >> frameLengthShift) & frameLengthMask
		out.MPS = b3 & mpsMask
	case ExtMPEGH3DAudio, ExtAC4:
		out.FormatDependent = b3 & extDependentMask
	case ExtLPCM3DAudio:
		out.BitDepthMask = b3 & bitDepthMask
	}
}

// Matches reports whether d answers a Request Short Audio Descriptor operand
// with the given format ID and code.
func (d *Descriptor) Matches(formatID, code uint8) bool {
	switch formatID {
	case FormatIDBase:
		return d.FormatCode != FormatExtended && uint8(d.FormatCode) == code
	case FormatIDExtended:
		return d.FormatCode == FormatExtended && uint8(d.ExtensionTypeCode) == code
	default:
		return false
	}
}

// String returns a short human-readable summary for diagnostics.
func (d *Descriptor) String() string {
	name := d.FormatCode.String()
	if d.FormatCode == FormatExtended {
		name = d.ExtensionTypeCode.String()
	}
	return fmt.Sprintf("%s, %d channels, sample rates 0x%02x", name, d.NumChannels, d.SampleFreqMask)
}
