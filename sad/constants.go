package sad

// Audio format codes (CTA-861 Table 37, byte 1 bits 3-6).
const (
	FormatReserved     FormatCode = 0
	FormatLPCM         FormatCode = 1
	FormatAC3          FormatCode = 2
	FormatMPEG1        FormatCode = 3
	FormatMP3          FormatCode = 4
	FormatMPEG2        FormatCode = 5
	FormatAACLC        FormatCode = 6
	FormatDTS          FormatCode = 7
	FormatATRAC        FormatCode = 8
	FormatOneBitAudio  FormatCode = 9
	FormatEnhancedAC3  FormatCode = 10
	FormatDTSHD        FormatCode = 11
	FormatMAT          FormatCode = 12
	FormatDST          FormatCode = 13
	FormatWMAPro       FormatCode = 14
	FormatExtended     FormatCode = 15
)

// Audio format extension type codes (CTA-861 Table 40, byte 3 bits 3-7).
const (
	ExtMPEG4HEAAC         ExtensionType = 4
	ExtMPEG4HEAACv2       ExtensionType = 5
	ExtMPEG4AACLC         ExtensionType = 6
	ExtDRA                ExtensionType = 7
	ExtMPEG4HEAACSurround ExtensionType = 8
	ExtMPEG4AACLCSurround ExtensionType = 10
	ExtMPEGH3DAudio       ExtensionType = 11
	ExtAC4                ExtensionType = 12
	ExtLPCM3DAudio        ExtensionType = 13
)

// Sample frequency mask bits (byte 2).
const (
	SampleFreq32kHz  = 1 << 0
	SampleFreq44kHz  = 1 << 1 // 44.1 kHz
	SampleFreq48kHz  = 1 << 2
	SampleFreq88kHz  = 1 << 3 // 88.2 kHz
	SampleFreq96kHz  = 1 << 4
	SampleFreq176kHz = 1 << 5 // 176.4 kHz
	SampleFreq192kHz = 1 << 6
)

// L-PCM bit depth mask bits (byte 3, formats 1 and extension 13).
const (
	BitDepth16 = 1 << 0
	BitDepth20 = 1 << 1
	BitDepth24 = 1 << 2
)

// Frame length mask bits for MPEG-4 extension types.
const (
	FrameLength960  = 1 << 0
	FrameLength1024 = 1 << 1
)

// Audio format ID values used in Request Short Audio Descriptor operands.
const (
	FormatIDBase     = 0 // Operand carries a FormatCode
	FormatIDExtended = 1 // Operand carries an ExtensionType
)

// Size is the wire size of one short audio descriptor in bytes.
const Size = 3

// Field masks and shifts of the packed layout.
const (
	channelsMask     = 0x07
	formatCodeMask   = 0x0f
	formatCodeShift  = 3
	bitDepthMask     = 0x07
	wmaProfileMask   = 0x03
	extTypeMask      = 0x1f
	extTypeShift     = 3
	frameLengthMask  = 0x03
	frameLengthShift = 1
	mpsMask          = 0x01
	extDependentMask = 0x07
)
