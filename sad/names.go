package sad

// FormatCode selects the audio coding type of a descriptor.
type FormatCode uint8

// ExtensionType selects the coding type of an extended (code 15) descriptor.
type ExtensionType uint8

var formatNames = [...]string{
	FormatReserved:    "Reserved",
	FormatLPCM:        "L-PCM",
	FormatAC3:         "AC-3",
	FormatMPEG1:       "MPEG-1",
	FormatMP3:         "MP3",
	FormatMPEG2:       "MPEG2",
	FormatAACLC:       "AAC LC",
	FormatDTS:         "DTS",
	FormatATRAC:       "ATRAC",
	FormatOneBitAudio: "One Bit Audio",
	FormatEnhancedAC3: "Enhanced AC-3",
	FormatDTSHD:       "DTS-HD",
	FormatMAT:         "MAT",
	FormatDST:         "DST",
	FormatWMAPro:      "WMA Pro",
	FormatExtended:    "Extended",
}

// String returns the audio format name, or "Illegal" outside 0-15.
func (c FormatCode) String() string {
	if int(c) < len(formatNames) {
		return formatNames[c]
	}
	return "Illegal"
}

var extensionNames = map[ExtensionType]string{
	ExtMPEG4HEAAC:         "MPEG-4 HE AAC",
	ExtMPEG4HEAACv2:       "MPEG-4 HE AAC v2",
	ExtMPEG4AACLC:         "MPEG-4 AAC LC",
	ExtDRA:                "DRA",
	ExtMPEG4HEAACSurround: "MPEG-4 HE AAC + MPEG Surround",
	ExtMPEG4AACLCSurround: "MPEG-4 AAC LC + MPEG Surround",
	ExtMPEGH3DAudio:       "MPEG-H 3D Audio",
	ExtAC4:                "AC-4",
	ExtLPCM3DAudio:        "L-PCM 3D Audio",
}

// String returns the extension type name. Types 0-3 are "Not in use" and
// any other undefined value is "Reserved".
func (t ExtensionType) String() string {
	if t <= 3 {
		return "Not in use"
	}
	if name, ok := extensionNames[t]; ok {
		return name
	}
	return "Reserved"
}

// AudioFormatCodeString returns the name of an audio format code.
func AudioFormatCodeString(code uint8) string {
	return FormatCode(code).String()
}

// ExtensionTypeCodeString returns the name of an audio format extension type.
func ExtensionTypeCodeString(code uint8) string {
	return ExtensionType(code).String()
}

// AudioFormatIDCodeString names a (format ID, code) pair as carried in a
// Request Short Audio Descriptor operand. ID 0 selects the format code table,
// ID 1 the extension type table; any other ID is "Invalid".
func AudioFormatIDCodeString(formatID, code uint8) string {
	switch formatID {
	case FormatIDBase:
		return AudioFormatCodeString(code)
	case FormatIDExtended:
		return ExtensionTypeCodeString(code)
	default:
		return "Invalid"
	}
}
