package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/types"
)

func TestFromMutation(t *testing.T) {
	tests := []struct {
		name string
		pre  LineSpan
		m    buffer.Mutation
		col  int
		want Region
	}{
		{"single line insert", LineSpan{3, 3}, buffer.Insert("3.4", "abc"), 4, LineRegion(3)},
		{"inserted line at line start", LineSpan{1, 1}, buffer.Insert("1.0", "print()\n"), 0, LineRegion(1)},
		{"three lines at line start", LineSpan{5, 5}, buffer.Insert("5.0", "a\nb\nc\n"), 0, RangeRegion(5, 7)},
		{"line break mid line", LineSpan{2, 2}, buffer.Insert("2.3", "x\n"), 3, RangeRegion(2, 3)},
		{"no trailing break", LineSpan{1, 1}, buffer.Insert("1.0", "a\nb"), 0, RangeRegion(1, 2)},
		{"delete within line", LineSpan{4, 4}, buffer.Delete("4.0", "4.2"), 0, LineRegion(4)},
		{"delete across lines", LineSpan{2, 6}, buffer.Delete("2.1", "6.0"), 1, RangeRegion(2, 6)},
		{"replace one line", LineSpan{1, 1}, buffer.Replace("1.0", "1.3", "xyz"), 0, LineRegion(1)},
		{"replace growing", LineSpan{1, 1}, buffer.Replace("1.0", "1.3", "x\ny\nz"), 0, RangeRegion(1, 3)},
		{"replace shrinking", LineSpan{1, 4}, buffer.Replace("1.0", "4.0", "x\n"), 0, RangeRegion(1, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromMutation(tt.pre, tt.m, tt.col))
		})
	}
}

func TestFromEdit(t *testing.T) {
	assert.Equal(t, LineRegion(2), FromEdit(buffer.Edit{Start: types.Pos(2, 1), End: types.Pos(2, 1)}))
	assert.Equal(t, RangeRegion(2, 4), FromEdit(buffer.Edit{Start: types.Pos(2, 1), End: types.Pos(4, 0)}))
}

func TestFromViewportChange(t *testing.T) {
	vp := types.NewRange(types.Pos(1, 0), types.Pos(10, 3))
	_, ok := FromViewportChange(vp, vp, "same", "same")
	assert.False(t, ok)

	r, ok := FromViewportChange(vp, vp, "old", "new")
	assert.True(t, ok)
	assert.Equal(t, ViewportRegion(vp), r)

	moved := types.NewRange(types.Pos(2, 0), types.Pos(11, 0))
	r, ok = FromViewportChange(vp, moved, "same", "same")
	assert.True(t, ok)
	assert.Equal(t, Viewport, r.Kind)
	assert.Equal(t, moved, r.Bounds)
}

func TestRegion_String(t *testing.T) {
	assert.Equal(t, "Line(3)", LineRegion(3).String())
	assert.Equal(t, "Range(2, 5)", RangeRegion(5, 2).String())
	assert.Equal(t, "WholeBuffer", WholeBufferRegion().String())
	assert.Equal(t, "None", Region{}.String())
	assert.True(t, Region{}.IsZero())
}

func TestSpan(t *testing.T) {
	buf := buffer.NewSliceBufferFromString("one\ntwo\nthree")
	rng := func(l1, c1, l2, c2 int) types.Range {
		return types.Range{Start: types.Pos(l1, c1), End: types.Pos(l2, c2)}
	}

	tests := []struct {
		region Region
		want   types.Range
	}{
		{LineRegion(1), rng(1, 0, 2, 0)},
		{LineRegion(3), rng(3, 0, 3, 5)},
		{LineRegion(9), rng(3, 0, 3, 5)},
		{RangeRegion(1, 2), rng(1, 0, 3, 0)},
		{RangeRegion(2, 7), rng(2, 0, 3, 5)},
		{WholeBufferRegion(), rng(1, 0, 3, 5)},
		{ViewportRegion(rng(2, 0, 9, 0)), rng(2, 0, 3, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			got, err := Span(tt.region, buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Span(Region{}, buf)
	require.Error(t, err)
}
