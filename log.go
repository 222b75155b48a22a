/*
DESCRIPTION
  log.go implements the log driver: parse one log's header block, then
  dispatch on the next frame-section byte to the matching decoder until
  end of input, a LogEnd event, or an irrecoverable error, per §2 and
  §4.5's state machine.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blackbox

import (
	"github.com/nsherlock/blackbox/frame"
	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/internal/reader"
)

// Frame is one decoded record: an ordered sequence of 32-bit values
// aligned 1:1 with its kind's field-definition table, plus the kind tag
// that selected its decoder.
type Frame struct {
	Kind   frame.Kind
	Values []uint32
}

// driverState is the frame-loop's own state machine (§4.5): P and S
// records are rejected until the first I frame has been seen.
type driverState int

const (
	stateBeforeFirstIntra driverState = iota
	stateRunning
	stateTerminated
)

// Log is one decoded Blackbox log: immutable headers, the frames and
// events decoded from its binary data section up to end of input or the
// first irrecoverable error, and the stats accumulated along the way.
type Log struct {
	headers *headers.Headers
	main    []Frame
	slow    []Frame
	gps     []Frame
	gpsHome *Frame
	events  []frame.Event
	stats   Stats
}

// Headers returns the log's parsed, immutable header metadata.
func (l *Log) Headers() *headers.Headers { return l.headers }

// MainFrames returns every intra and inter frame decoded, in stream
// order.
func (l *Log) MainFrames() []Frame { return l.main }

// SlowFrames returns every slow frame decoded, in stream order.
func (l *Log) SlowFrames() []Frame { return l.slow }

// GPSFrames returns every GPS telemetry frame decoded, in stream order.
func (l *Log) GPSFrames() []Frame { return l.gps }

// GPSHomeFrame returns the log's single GPS-home reference frame, if one
// was decoded.
func (l *Log) GPSHomeFrame() (Frame, bool) {
	if l.gpsHome == nil {
		return Frame{}, false
	}
	return *l.gpsHome, true
}

// Events returns every event record decoded, in stream order.
func (l *Log) Events() []frame.Event { return l.events }

// Stats returns the frame/byte counters accumulated while decoding.
func (l *Log) Stats() Stats { return l.stats }

// parseLog parses headers from data and drives the frame loop over the
// remainder, returning a (possibly partial) Log alongside any error
// encountered (§7).
func parseLog(data []byte, cfg Config) (*Log, error) {
	log := cfg.logger()

	h, rest, err := headers.Parse(data, log)
	if err != nil {
		return &Log{}, classify(err)
	}

	l := &Log{headers: h}
	r := reader.New(rest)

	state := stateBeforeFirstIntra
	var last, lastLast, lastSlow, lastGPS []uint32

	// perPSkip approximates §2/§4.5's skipped-frames counter from the
	// header-declared "P interval" sparse-logging ratio (see DESIGN.md):
	// every inter frame is assumed to represent perPSkip main-loop
	// iterations that were not themselves logged.
	perPSkip := uint32(0)
	if h.PIntervalNum > 0 {
		perPSkip = h.PIntervalDenom/h.PIntervalNum - 1
	}

	for state != stateTerminated {
		if r.Len() == 0 {
			break
		}
		b, rerr := r.ReadByte()
		if rerr != nil {
			return l, classify(rerr)
		}

		kind, ok := frame.KindFromByte(b)
		if !ok {
			return l, classify(errCorruptedf("unrecognized frame kind byte %q", b))
		}

		switch kind {
		case frame.KindEvent:
			ev, derr := frame.DecodeEvent(r)
			if derr != nil {
				return l, classify(derr)
			}
			l.events = append(l.events, ev)
			l.stats.EventCount++
			if _, ok := ev.Payload.(frame.LogEnd); ok {
				state = stateTerminated
			}

		case frame.KindIntra:
			vals, derr := frame.DecodeMain(r, h, log, kind, cfg.Raw, last, lastLast, 0)
			if derr != nil {
				l.stats.CorruptedFrames++
				return l, classify(derr)
			}
			l.main = append(l.main, Frame{Kind: kind, Values: vals})
			lastLast, last = last, vals
			l.stats.IntraCount++
			state = stateRunning

		case frame.KindInter:
			if state == stateBeforeFirstIntra {
				return l, classify(errCorruptedf("inter frame before any intra frame"))
			}
			vals, derr := frame.DecodeMain(r, h, log, kind, cfg.Raw, last, lastLast, perPSkip)
			if derr != nil {
				l.stats.CorruptedFrames++
				return l, classify(derr)
			}
			l.main = append(l.main, Frame{Kind: kind, Values: vals})
			lastLast, last = last, vals
			l.stats.InterCount++

		case frame.KindSlow:
			if state == stateBeforeFirstIntra {
				return l, classify(errCorruptedf("slow frame before any intra frame"))
			}
			vals, derr := frame.DecodeSlow(r, h, log, cfg.Raw, lastSlow)
			if derr != nil {
				l.stats.CorruptedFrames++
				return l, classify(derr)
			}
			l.slow = append(l.slow, Frame{Kind: kind, Values: vals})
			lastSlow = vals
			l.stats.SlowCount++

		case frame.KindGPS:
			if len(h.GPS) == 0 {
				return l, classify(errCorruptedf("GPS frame with no Field G definitions"))
			}
			vals, derr := frame.DecodeGPS(r, h, log, cfg.Raw, lastGPS)
			if derr != nil {
				l.stats.CorruptedFrames++
				return l, classify(derr)
			}
			l.gps = append(l.gps, Frame{Kind: kind, Values: vals})
			lastGPS = vals
			l.stats.GPSCount++

		case frame.KindGPSHome:
			if len(h.GPSHome) == 0 {
				return l, classify(errCorruptedf("GPS-home frame with no Field H definitions"))
			}
			vals, derr := frame.DecodeGPSHome(r, h, log, cfg.Raw)
			if derr != nil {
				l.stats.CorruptedFrames++
				return l, classify(derr)
			}
			f := Frame{Kind: kind, Values: vals}
			l.gpsHome = &f
			l.stats.GPSHomeCount++
		}

		l.stats.BytesConsumed = r.Tell()
	}

	return l, nil
}
