package codec

import (
	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/internal/reader"
)

// negative14Bit decodes a Variable-encoded value constrained to 14 bits
// and negates it, returning the bit pattern of that negative value as a
// u32 (i.e. (-v as u32)).
func negative14Bit(r *reader.Reader) (uint32, error) {
	v, err := variable(r)
	if err != nil {
		return 0, err
	}
	if v > 0x3fff {
		return 0, errors.Wrapf(ErrCorrupted, "negative14Bit: value %d exceeds 14 bits", v)
	}
	return uint32(-int32(v)), nil
}
