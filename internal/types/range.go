package types

import "fmt"

// Range is a half-open span [Start, End) of buffer positions.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a normalized range from two positions in any order.
func NewRange(a, b Position) Range {
	return Range{Start: a, End: b}.Normalize()
}

// Normalize swaps Start and End if needed so that Start <= End.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Empty reports whether the range covers no positions.
func (r Range) Empty() bool {
	return r.Start.Compare(r.End) >= 0
}

// Contains reports whether p lies in [Start, End).
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// Overlaps reports whether the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Touches is like Overlaps but also true when the ranges are adjacent.
func (r Range) Touches(other Range) bool {
	return r.Start.Compare(other.End) <= 0 && other.Start.Compare(r.End) <= 0
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	out := r
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
