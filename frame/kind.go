/*
DESCRIPTION
  kind.go defines the one-byte frame-kind tag that drives the log
  driver's dispatch loop, grounded on the byte-driven packet dispatch in
  github.com/ausocean/av/container/mts.DemuxPacket.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frame implements the intra, inter, slow, GPS, and GPS-home
// frame decoders, plus event records, per a log's header-declared field
// definitions.
package frame

import "github.com/nsherlock/blackbox/predictor"

// Kind is the byte that selects which decoder consumes the next record
// in a log's data section.
type Kind byte

const (
	KindEvent   Kind = 'E'
	KindIntra   Kind = 'I'
	KindInter   Kind = 'P'
	KindSlow    Kind = 'S'
	KindGPS     Kind = 'G'
	KindGPSHome Kind = 'H'
)

// KindFromByte maps a frame-section byte to a Kind. Any byte outside the
// recognized set is a corrupted frame section.
func KindFromByte(b byte) (Kind, bool) {
	switch Kind(b) {
	case KindEvent, KindIntra, KindInter, KindSlow, KindGPS, KindGPSHome:
		return Kind(b), true
	default:
		return 0, false
	}
}

// predictorKind maps a data-frame Kind to the predictor package's
// FrameKind, used to resolve Motor0 references against the right
// field-definition table. Event has no predictor-kind counterpart.
func (k Kind) predictorKind() (predictor.FrameKind, bool) {
	switch k {
	case KindIntra:
		return predictor.Intra, true
	case KindInter:
		return predictor.Inter, true
	case KindSlow:
		return predictor.Slow, true
	case KindGPS:
		return predictor.GPS, true
	case KindGPSHome:
		return predictor.GPSHome, true
	default:
		return 0, false
	}
}
