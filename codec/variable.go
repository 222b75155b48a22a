package codec

import (
	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/internal/reader"
)

// variable decodes an unsigned LEB128-like value: up to 5 bytes, each
// contributing its low 7 bits, high bit set meaning "more bytes follow".
// The 5th byte holds the top 4 bits of the 32-bit result; a 5th byte with
// its continuation bit still set is corrupted input.
func variable(r *reader.Reader) (uint32, error) {
	r.Align()

	var result uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == 4 && b&0x70 != 0 {
			return 0, errors.Wrapf(ErrCorrupted, "variable: 5th byte %#x carries more than 4 significant bits", b)
		}
		result |= uint32(b&0x7f) << uint(7*i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, errors.Wrap(ErrCorrupted, "variable: continuation bit set past 5th byte")
}
