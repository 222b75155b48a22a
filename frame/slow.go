/*
DESCRIPTION
  slow.go decodes slow (S) frames: infrequent flight-controller state
  that keeps its own single history slot, separate from the main-frame
  last/last_last pair.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package frame

import (
	"github.com/ausocean/utils/logging"

	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/internal/reader"
)

// DecodeSlow decodes one slow frame. last is the previous slow frame's
// absolute values, or nil if this is the first one seen.
func DecodeSlow(r *reader.Reader, h *headers.Headers, log logging.Logger, raw bool, last []uint32) ([]uint32, error) {
	rawValues, err := readFieldValues(r, h.Slow)
	if err != nil {
		return nil, err
	}
	if raw {
		return rawValues, nil
	}
	return applyPredictors(h.Slow, KindSlow, h, log, rawValues, last, nil, 0)
}
