/*
DESCRIPTION
  gps.go decodes GPS (G) telemetry frames and the single GPS-home (H)
  reference-coordinate frame a log may carry.

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

// DecodeGPS decodes one GPS frame. last is the previous GPS frame's
// absolute values, or nil if this is the first one seen.
func DecodeGPS(r *reader.Reader, h *headers.Headers, log logging.Logger, raw bool, last []uint32) ([]uint32, error) {
	rawValues, err := readFieldValues(r, h.GPS)
	if err != nil {
		return nil, err
	}
	if raw {
		return rawValues, nil
	}
	return applyPredictors(h.GPS, KindGPS, h, log, rawValues, last, nil, 0)
}

// DecodeGPSHome decodes the log's single GPS-home frame. It carries no
// cross-frame history: HomeLat's predictor is the diagnostic stub (§9),
// and every other field in practice uses a history-free predictor.
func DecodeGPSHome(r *reader.Reader, h *headers.Headers, log logging.Logger, raw bool) ([]uint32, error) {
	rawValues, err := readFieldValues(r, h.GPSHome)
	if err != nil {
		return nil, err
	}
	if raw {
		return rawValues, nil
	}
	return applyPredictors(h.GPSHome, KindGPSHome, h, log, rawValues, nil, nil, 0)
}
