package codec

import "github.com/nsherlock/blackbox/internal/reader"

// eliasGamma decodes an unsigned Elias-gamma code: count the leading zero
// bits (k), then read k+1 bits (the first of which is the 1 bit that
// terminated the zero run) as a binary integer n, and return n-1.
func eliasGamma(r *reader.Reader) (uint32, error) {
	k := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		k++
	}

	n := uint32(1)
	for i := 0; i < k; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		n = (n << 1) | bit
	}
	return n - 1, nil
}
