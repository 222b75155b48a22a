package codec

import "github.com/nsherlock/blackbox/internal/reader"

// tagged16 decodes exactly 4 values from a single tag byte holding four
// 2-bit tags (low tag first, i.e. bits 1:0 select the first field's
// width). Tag 0 means the field is 0; tag 1 is a 4-bit signed nibble
// (two packed per byte, low nibble first); tag 2 is an 8-bit signed
// byte; tag 3 is a 16-bit signed little-endian value.
func tagged16(r *reader.Reader, sink *[]uint32) error {
	r.Align()

	tagByte, err := r.ReadByte()
	if err != nil {
		return err
	}
	tags := [4]byte{tagByte & 0x3, (tagByte >> 2) & 0x3, (tagByte >> 4) & 0x3, (tagByte >> 6) & 0x3}

	var pendingNibble *byte
	for _, tag := range tags {
		switch tag {
		case 0:
			*sink = append(*sink, 0)

		case 1:
			if pendingNibble == nil {
				b, err := r.ReadByte()
				if err != nil {
					return err
				}
				*sink = append(*sink, uint32(signExtend(uint32(b&0xf), 4)))
				high := (b >> 4) & 0xf
				pendingNibble = &high
			} else {
				*sink = append(*sink, uint32(signExtend(uint32(*pendingNibble), 4)))
				pendingNibble = nil
			}

		case 2:
			b, err := r.ReadByte()
			if err != nil {
				return err
			}
			*sink = append(*sink, uint32(signExtend(uint32(b), 8)))

		case 3:
			lo, err := r.ReadByte()
			if err != nil {
				return err
			}
			hi, err := r.ReadByte()
			if err != nil {
				return err
			}
			v := uint32(lo) | uint32(hi)<<8
			*sink = append(*sink, uint32(signExtend(v, 16)))
		}
	}
	return nil
}
