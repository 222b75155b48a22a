package codec

import "github.com/nsherlock/blackbox/internal/reader"

// eliasDelta decodes an unsigned Elias-delta code: gamma-decode k, read k
// further bits as m, and return (1<<k) + m - 1.
func eliasDelta(r *reader.Reader) (uint32, error) {
	k, err := eliasGamma(r)
	if err != nil {
		return 0, err
	}

	m, err := r.ReadBits(int(k))
	if err != nil {
		return 0, err
	}

	return (uint32(1) << k) + m - 1, nil
}
