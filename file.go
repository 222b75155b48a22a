/*
DESCRIPTION
  file.go implements the file-level split: locating the start of each
  concatenated log in a byte buffer by scanning for the product-banner
  marker, per §6's External Interfaces.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blackbox

import "bytes"

// splitMarker is the exact, case-sensitive header line that begins
// every Blackbox log. A buffer may contain this marker more than once,
// each occurrence starting a new concatenated log.
const splitMarker = "H Product:Blackbox flight data recorder by Nicholas Sherlock\n"

// File splits a byte buffer into the byte ranges of its concatenated
// logs, without decoding any of them. Decoding is deferred to
// ParseByIndex/ParseIter so that a caller only pays for the logs it
// actually parses.
type File struct {
	data    []byte
	offsets []int // start offset of each log, in ascending order
}

// New scans data for split markers and returns a File over it. data is
// not copied; it must outlive every Log subsequently parsed from this
// File.
func New(data []byte) *File {
	f := &File{data: data}
	marker := []byte(splitMarker)
	pos := 0
	for {
		idx := bytes.Index(data[pos:], marker)
		if idx < 0 {
			break
		}
		f.offsets = append(f.offsets, pos+idx)
		pos += idx + len(marker)
	}
	return f
}

// LogCount returns the number of logs found in the buffer.
func (f *File) LogCount() int {
	return len(f.offsets)
}

// logBytes returns the byte range belonging to the i'th log.
func (f *File) logBytes(i int) []byte {
	start := f.offsets[i]
	if i+1 < len(f.offsets) {
		return f.data[start:f.offsets[i+1]]
	}
	return f.data[start:]
}

// ParseByIndex decodes the i'th log (0-indexed) found in the buffer. A
// partially decoded Log is returned alongside any decode error, holding
// every frame successfully decoded before the failure (§7); an
// out-of-range i returns a nil Log.
func (f *File) ParseByIndex(cfg Config, i int) (*Log, error) {
	if i < 0 || i >= len(f.offsets) {
		return nil, &ParseError{Kind: ErrCorruptedKind, Err: errCorruptedf("log index %d out of range (have %d)", i, len(f.offsets))}
	}
	return parseLog(f.logBytes(i), cfg)
}

// LogIter yields each log in a File in order. Unlike ParseByIndex, a
// caller driving a LogIter to completion decodes every log exactly
// once, in a single forward pass over the buffer.
type LogIter struct {
	f   *File
	cfg Config
	i   int
}

// ParseIter returns a LogIter over every log in the buffer.
func (f *File) ParseIter(cfg Config) *LogIter {
	return &LogIter{f: f, cfg: cfg}
}

// Next decodes and returns the next log, or (nil, nil, false) once every
// log has been yielded. A decode error is returned alongside its
// (partial) Log, exactly as ParseByIndex would; the iterator still
// advances past it so a single corrupted log does not block the rest.
func (it *LogIter) Next() (*Log, error, bool) {
	if it.i >= len(it.f.offsets) {
		return nil, nil, false
	}
	log, err := it.f.ParseByIndex(it.cfg, it.i)
	it.i++
	return log, err, true
}
