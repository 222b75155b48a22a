package predictor

import "math"

// straightLine implements the StraightLine predictor arithmetic generically
// over a base width and its next-larger accumulator width, mirroring the
// TemporaryOverflow trait in original_source/blackbox-log/src/parser/predictor.rs:
// compute 2*last - last_last in the wider type, and fall back to `last`
// whenever that would over/underflow the narrower type. Absent history
// falls back per the table in spec.md §8.
func straightLine[T int8 | uint8 | int32 | uint32](last, lastLast *T) T {
	if last == nil {
		var zero T
		return zero
	}
	if lastLast == nil {
		return *last
	}

	switch l := any(*last).(type) {
	case int8:
		ll := any(*lastLast).(int8)
		wide := int64(l) + int64(l) - int64(ll)
		if wide < math.MinInt8 || wide > math.MaxInt8 {
			return *last
		}
		return any(int8(wide)).(T)
	case uint8:
		ll := any(*lastLast).(uint8)
		sum := uint64(l) + uint64(l)
		if uint64(ll) > sum {
			return *last
		}
		wide := sum - uint64(ll)
		if wide > math.MaxUint8 {
			return *last
		}
		return any(uint8(wide)).(T)
	case int32:
		ll := any(*lastLast).(int32)
		wide := int64(l) + int64(l) - int64(ll)
		if wide < math.MinInt32 || wide > math.MaxInt32 {
			return *last
		}
		return any(int32(wide)).(T)
	case uint32:
		ll := any(*lastLast).(uint32)
		sum := uint64(l) + uint64(l)
		if uint64(ll) > sum {
			return *last
		}
		wide := sum - uint64(ll)
		if wide > math.MaxUint32 {
			return *last
		}
		return any(uint32(wide)).(T)
	default:
		panic("unsupported type")
	}
}

// average implements the Average2 predictor arithmetic generically: the
// mean of last and last_last in the wider accumulator type, truncated
// back to the base type. Absent history falls back per spec.md §8.
func average[T int32 | uint32](last, lastLast *T) T {
	var l T
	if last != nil {
		l = *last
	}
	if lastLast == nil {
		return l
	}

	switch lv := any(l).(type) {
	case int32:
		ll := any(*lastLast).(int32)
		return any(int32((int64(lv) + int64(ll)) / 2)).(T)
	case uint32:
		ll := any(*lastLast).(uint32)
		return any(uint32((uint64(lv) + uint64(ll)) / 2)).(T)
	default:
		panic("unsupported type")
	}
}
