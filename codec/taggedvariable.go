package codec

import "github.com/nsherlock/blackbox/internal/reader"

// taggedVariable decodes count (<= 8) values sharing one presence byte:
// bit i (LSB first) set means field i is present and follows as a
// VariableSigned value; otherwise the field is 0 and consumes no
// further input.
func taggedVariable(r *reader.Reader, count int, sink *[]uint32) error {
	r.Align()

	presence, err := r.ReadByte()
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		if presence&(1<<uint(i)) == 0 {
			*sink = append(*sink, 0)
			continue
		}
		v, err := variable(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, zigZagDecode(v))
	}
	return nil
}
