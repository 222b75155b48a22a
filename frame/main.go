/*
DESCRIPTION
  main.go decodes intra (I) and inter (P) main frames, the two kinds that
  carry the full cross-frame last/last_last history and the
  skipped-frames counter the Increment predictor consumes.

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

	"github.com/ausocean/utils/logging"

	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/internal/reader"
)

// DecodeMain decodes one main frame (kind must be KindIntra or
// KindInter). When raw is true the predictor step is skipped and the raw
// decoded values are returned directly (§8 property 4).
func DecodeMain(
	r *reader.Reader,
	h *headers.Headers,
	log logging.Logger,
	kind Kind,
	raw bool,
	last, lastLast []uint32,
	skippedFrames uint32,
) ([]uint32, error) {
	var fields []headers.Field
	switch kind {
	case KindIntra:
		fields = h.Intra
	case KindInter:
		fields = h.Inter
	default:
		return nil, errors.Wrapf(ErrCorrupted, "DecodeMain called with non-main kind %q", byte(kind))
	}

	rawValues, err := readFieldValues(r, fields)
	if err != nil {
		return nil, err
	}
	if raw {
		return rawValues, nil
	}
	return applyPredictors(fields, kind, h, log, rawValues, last, lastLast, skippedFrames)
}
