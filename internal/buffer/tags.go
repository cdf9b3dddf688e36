package buffer

import (
	"sort"

	"github.com/bethropolis/codeview/internal/types"
)

// tagStore keeps, per tag name, a sorted list of disjoint, non-adjacent ranges.
type tagStore struct {
	ranges map[string][]types.Range
}

func newTagStore() *tagStore {
	return &tagStore{ranges: make(map[string][]types.Range)}
}

func (s *tagStore) add(name string, r types.Range) {
	r = r.Normalize()
	if r.Empty() {
		return
	}
	merged := r
	out := make([]types.Range, 0, len(s.ranges[name])+1)
	for _, existing := range s.ranges[name] {
		if existing.Touches(merged) {
			merged = merged.Union(existing)
			continue
		}
		out = append(out, existing)
	}
	out = append(out, merged)
	sortRanges(out)
	s.ranges[name] = out
}

// remove subtracts r from the tag and reports whether anything changed.
func (s *tagStore) remove(name string, r types.Range) bool {
	r = r.Normalize()
	existing := s.ranges[name]
	if r.Empty() || len(existing) == 0 {
		return false
	}
	changed := false
	out := make([]types.Range, 0, len(existing)+1)
	for _, cur := range existing {
		if !cur.Overlaps(r) {
			out = append(out, cur)
			continue
		}
		changed = true
		if cur.Start.Before(r.Start) {
			out = append(out, types.Range{Start: cur.Start, End: r.Start})
		}
		if r.End.Before(cur.End) {
			out = append(out, types.Range{Start: r.End, End: cur.End})
		}
	}
	s.set(name, out)
	return changed
}

func (s *tagStore) get(name string) []types.Range {
	src := s.ranges[name]
	if len(src) == 0 {
		return nil
	}
	out := make([]types.Range, len(src))
	copy(out, src)
	return out
}

func (s *tagStore) names() []string {
	names := make([]string, 0, len(s.ranges))
	for name, rs := range s.ranges {
		if len(rs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *tagStore) clear() {
	s.ranges = make(map[string][]types.Range)
}

// shiftInsert moves every range after text was inserted at `at`, ending at
// `end`. Inserted text never inherits a tag: a range straddling the insertion
// point is split around it.
func (s *tagStore) shiftInsert(at, end types.Position) {
	for name, rs := range s.ranges {
		out := make([]types.Range, 0, len(rs)+1)
		for _, r := range rs {
			if r.Start.Before(at) && at.Before(r.End) {
				out = append(out,
					types.Range{Start: r.Start, End: at},
					types.Range{Start: end, End: shiftInsert(r.End, at, end, true)},
				)
				continue
			}
			out = append(out, types.Range{
				Start: shiftInsert(r.Start, at, end, true),
				End:   shiftInsert(r.End, at, end, false),
			})
		}
		s.set(name, out)
	}
}

// shiftDelete collapses and moves ranges after [a, b) was removed.
func (s *tagStore) shiftDelete(a, b types.Position) {
	for name, rs := range s.ranges {
		out := make([]types.Range, 0, len(rs))
		for _, r := range rs {
			moved := types.Range{Start: shiftDelete(r.Start, a, b), End: shiftDelete(r.End, a, b)}
			if moved.Empty() {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Touches(moved) {
				out[n-1] = out[n-1].Union(moved)
				continue
			}
			out = append(out, moved)
		}
		s.set(name, out)
	}
}

func (s *tagStore) set(name string, rs []types.Range) {
	if len(rs) == 0 {
		delete(s.ranges, name)
		return
	}
	s.ranges[name] = rs
}

func sortRanges(rs []types.Range) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start.Before(rs[j].Start) })
}

// shiftInsert maps p across an insertion of text spanning [at, end).
// With rightGravity a position sitting exactly at the insertion point moves
// past the new text.
func shiftInsert(p, at, end types.Position, rightGravity bool) types.Position {
	switch cmp := p.Compare(at); {
	case cmp < 0:
		return p
	case cmp == 0 && !rightGravity:
		return p
	}
	if p.Line == at.Line {
		return types.Pos(end.Line, end.Col+p.Col-at.Col)
	}
	return types.Pos(p.Line+end.Line-at.Line, p.Col)
}

// shiftDelete maps p across the removal of [a, b).
func shiftDelete(p, a, b types.Position) types.Position {
	if p.Compare(a) <= 0 {
		return p
	}
	if p.Before(b) {
		return a
	}
	if p.Line == b.Line {
		return types.Pos(a.Line, a.Col+p.Col-b.Col)
	}
	return types.Pos(p.Line-(b.Line-a.Line), p.Col)
}
