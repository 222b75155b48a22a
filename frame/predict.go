/*
DESCRIPTION
  predict.go applies the predictor pipeline to a frame's raw decoded
  values, turning them into the absolute values the frame reports,
  consulting both cross-frame history and the in-progress current frame
  for in-frame references such as Motor0.

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
	"github.com/nsherlock/blackbox/predictor"
)

// applyPredictors turns raw decoded values into absolute field values.
// last and last_last are the previous frame(s) of the same kind's
// absolute values (nil if not yet available); Motor0 and any future
// in-frame-referencing predictor sees out[:i], the absolute values
// already produced earlier in this same frame.
func applyPredictors(
	fields []headers.Field,
	kind Kind,
	h *headers.Headers,
	log logging.Logger,
	raw []uint32,
	last, lastLast []uint32,
	skippedFrames uint32,
) ([]uint32, error) {
	pkind, _ := kind.predictorKind()
	out := make([]uint32, len(raw))

	for i, f := range fields {
		var lastPtr, lastLastPtr *uint32
		if i < len(last) {
			lastPtr = &last[i]
		}
		if i < len(lastLast) {
			lastLastPtr = &lastLast[i]
		}

		v, err := predictor.Apply(f.Predictor, h, log, pkind, raw[i], f.Signed, out[:i], lastPtr, lastLastPtr, skippedFrames)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
