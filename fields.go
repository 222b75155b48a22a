/*
DESCRIPTION
  fields.go implements the IterFields/IterFrames accessor pair
  supplementing the raw Frame/Headers API, letting a caller render
  typed values without re-deriving each field's unit mapping itself.
  Grounded on original_source's bbl2csv snapshot harness, which zips
  log.iter_fields() against each log.iter_frames() row.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blackbox

import "github.com/nsherlock/blackbox/units"

// FieldInfo describes one column of the main-frame time series: its
// declared name and the physical unit its raw values should be
// projected through.
type FieldInfo struct {
	Name string
	Unit units.Unit
}

// IterFields returns the name and unit of every field in the log's main
// (intra/inter) frame layout, in field-definition order. It uses the
// intra field-definition table for both frame kinds, and returns an
// empty slice when the header block declared no intra fields.
func (l *Log) IterFields() []FieldInfo {
	fields := l.headers.Intra
	out := make([]FieldInfo, len(fields))
	for i, f := range fields {
		out[i] = FieldInfo{Name: f.Name, Unit: units.UnitForField(f.Name, f.Signed)}
	}
	return out
}

// IterFrames returns every main frame's raw values re-projected through
// their field's Unit, one []units.Value row per Frame in MainFrames.
func (l *Log) IterFrames() [][]units.Value {
	fields := l.headers.Intra
	accRef := uint32(0)
	if l.headers.Acceleration1G != nil {
		accRef = *l.headers.Acceleration1G
	}
	gyroRef := 0.0
	if l.headers.GyroScale != nil {
		gyroRef = *l.headers.GyroScale
	}

	rows := make([][]units.Value, len(l.main))
	for ri, fr := range l.main {
		row := make([]units.Value, len(fr.Values))
		for i, raw := range fr.Values {
			var name string
			var signed bool
			if i < len(fields) {
				name, signed = fields[i].Name, fields[i].Signed
			}
			kind := units.UnitForField(name, signed)
			row[i] = units.NewValue(kind, raw, l.headers.Firmware, accRef, gyroRef)
		}
		rows[ri] = row
	}
	return rows
}
