package qrsegment

/*---- QrSegment functionality ----*/

// QrSegment is a byte-mode segment of data in a QR Code symbol.
//
// Instances of this struct are immutable. Build one with MakeBytes, which
// takes the raw payload and packs it into an 8-bits-per-byte BitBuffer.
type QrSegment struct {
	// numchars is the length of this segment's unencoded data, in bytes.
	numchars uint
	// data is the data bits of this segment.
	data []bool
}

// MakeBytes returns a segment representing the given binary data encoded in byte mode.
//
// All input byte slices are acceptable.
func MakeBytes(data []uint8) QrSegment {
	bb := make(BitBuffer, 0, len(data)*8)
	for _, b := range data {
		bb.AppendBits(uint32(b), 8)
	}

	return QrSegment{
		numchars: uint(len(data)),
		data:     bb,
	}
}

/*---- Instance field getters ----*/

// NumChars returns the character count field of this segment.
func (s QrSegment) NumChars() uint {
	return s.numchars
}

// Data returns the data bits of this segment.
func (s QrSegment) Data() []bool {
	return s.data
}

/*---- Other functions ----*/

// GetTotalBits calculates the number of bits needed to encode this segment
// at the given version, or reports false if the segment's byte count
// doesn't fit the character-count field's bit width for that version.
func GetTotalBits(seg QrSegment, ver uint8) (uint, bool) {
	ccbits := NumCharCountBits(ver)
	limit := uint(1) << ccbits
	if seg.numchars >= limit {
		return 0, false
	}
	return 4 + uint(ccbits) + uint(len(seg.data)), true
}
