// Package sad encodes and decodes CTA-861 Short Audio Descriptors.
//
// A short audio descriptor is the 3-byte record a CEC audio system uses to
// report one supported audio format in a Report Short Audio Descriptor
// message. The layout is fixed by the standard:
//
//	byte 1: bit 7 zero, bits 3-6 format code, bits 0-2 channels-1
//	byte 2: supported sample rates
//	byte 3: format dependent
//
// Byte 3 depends on the format code and, for extended descriptors (code 15),
// on the extension type carried in its upper five bits.
//
//	d := sad.Descriptor{
//	    NumChannels:    2,
//	    FormatCode:     sad.FormatLPCM,
//	    SampleFreqMask: sad.SampleFreq32kHz | sad.SampleFreq44kHz | sad.SampleFreq48kHz,
//	    BitDepthMask:   sad.BitDepth24,
//	}
//	enc := sad.Encode(&d) // 0x090704
package sad
