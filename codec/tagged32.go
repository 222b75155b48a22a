package codec

import (
	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/internal/reader"
)

// tagged32 decodes exactly 3 values sharing a 2-bit width selector in the
// top two bits of a lead byte. The remaining bits of the lead byte, plus
// as many further bytes as needed, hold the 3 field values at the
// selected width:
//
//	00 -> 2 bits per field, all 3 packed into the lead byte's low 6 bits
//	01 -> 4 bits per field, the first nibble from the lead byte, the
//	      other two from a second byte
//	10 -> 6 bits per field, the first from the lead byte's low 6 bits,
//	      the other two each from their own byte
//	11 -> a further 2-bit selector (lead bits 5:4) chooses a uniform
//	      width of 8, 16, or 24 bits per field, each field byte-aligned
func tagged32(r *reader.Reader, sink *[]uint32) error {
	r.Align()

	lead, err := r.ReadByte()
	if err != nil {
		return err
	}

	switch lead >> 6 {
	case 0:
		*sink = append(*sink,
			uint32(signExtend(uint32((lead>>4)&0x3), 2)),
			uint32(signExtend(uint32((lead>>2)&0x3), 2)),
			uint32(signExtend(uint32(lead&0x3), 2)),
		)
		return nil

	case 1:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		*sink = append(*sink,
			uint32(signExtend(uint32(lead&0xf), 4)),
			uint32(signExtend(uint32(b>>4), 4)),
			uint32(signExtend(uint32(b&0xf), 4)),
		)
		return nil

	case 2:
		b1, err := r.ReadByte()
		if err != nil {
			return err
		}
		b2, err := r.ReadByte()
		if err != nil {
			return err
		}
		*sink = append(*sink,
			uint32(signExtend(uint32(lead&0x3f), 6)),
			uint32(signExtend(uint32(b1&0x3f), 6)),
			uint32(signExtend(uint32(b2&0x3f), 6)),
		)
		return nil

	default: // 3
		switch (lead >> 4) & 0x3 {
		case 0: // 8 bits per field
			for i := 0; i < 3; i++ {
				b, err := r.ReadByte()
				if err != nil {
					return err
				}
				*sink = append(*sink, uint32(signExtend(uint32(b), 8)))
			}
			return nil

		case 1: // 16 bits per field
			for i := 0; i < 3; i++ {
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
			return nil

		case 2: // 24 bits per field
			for i := 0; i < 3; i++ {
				b0, err := r.ReadByte()
				if err != nil {
					return err
				}
				b1, err := r.ReadByte()
				if err != nil {
					return err
				}
				b2, err := r.ReadByte()
				if err != nil {
					return err
				}
				v := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
				*sink = append(*sink, uint32(signExtend(v, 24)))
			}
			return nil

		default:
			return errors.Wrap(ErrCorrupted, "tagged32: reserved width selector 3")
		}
	}
}
