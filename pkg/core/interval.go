package core

import "math"

// Interval is a closed range [Min, Max] over the ray parameter t
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains nothing. It is the seed value when accumulating unions.
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// UniverseInterval contains every value.
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// EnclosingInterval returns the smallest interval containing both a and b
func EnclosingInterval(a, b Interval) Interval {
	return Interval{
		Min: math.Min(a.Min, b.Min),
		Max: math.Max(a.Max, b.Max),
	}
}

// Size returns Max - Min
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in the closed interval
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly inside the interval
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval bounds
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Expand returns the interval padded by delta/2 on each side
func (i Interval) Expand(delta float64) Interval {
	padding := delta / 2
	return Interval{Min: i.Min - padding, Max: i.Max + padding}
}
