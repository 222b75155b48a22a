/*
DESCRIPTION
  scheduling.go implements the per-frame raw-value decode loop: walk a
  frame kind's field definitions, batching adjacent fields that share a
  tagged encoding into a single decoder call.

AUTHORS
  Grounded on original_source/blackbox-log/src/parser/frame/mod.rs's
  read_field_values and count_fields_with_same_encoding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package frame

import (
	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/internal/reader"
)

// ErrCorrupted is returned for a frame whose decoded value count does not
// match its field-definition length, a DecodeMain call with a non-main
// kind, a malformed LogEnd marker, or an unrecognized event code.
var ErrCorrupted = errors.New("corrupted frame")

// readFieldValues decodes one raw value per field in fields, batching
// runs of adjacent fields sharing a tagged encoding into one decode call
// per the encoding's MaxChunkSize.
func readFieldValues(r *reader.Reader, fields []headers.Field) ([]uint32, error) {
	values := make([]uint32, 0, len(fields))

	i := 0
	for i < len(fields) {
		enc := fields[i].Encoding
		max := enc.MaxChunkSize() - 1

		extra := 0
		for extra < max && i+1+extra < len(fields) && fields[i+1+extra].Encoding == enc {
			extra++
		}

		if err := enc.DecodeInto(r, extra, &values); err != nil {
			return nil, err
		}
		i += 1 + extra
	}

	if len(values) != len(fields) {
		return nil, errors.Wrapf(ErrCorrupted, "decoded %d values, want %d", len(values), len(fields))
	}
	return values, nil
}
