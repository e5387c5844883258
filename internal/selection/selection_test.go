package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(v uint32) *uint32 { return &v }

func TestMatchesShape_Square(t *testing.T) {
	for _, n := range []uint32{1, 2, 500, 4096} {
		assert.True(t, MatchesShape(ShapeSquare, n, n), "%dx%d", n, n)
		assert.False(t, MatchesShape(ShapeVertical, n, n), "%dx%d", n, n)
		assert.False(t, MatchesShape(ShapeLandscape, n, n), "%dx%d", n, n)
	}
}

func TestMatchesShape_Vertical(t *testing.T) {
	sizes := [][2]uint32{{1, 2}, {499, 500}, {300, 1200}}
	for _, s := range sizes {
		assert.True(t, MatchesShape(ShapeVertical, s[0], s[1]), "%v", s)
		assert.False(t, MatchesShape(ShapeLandscape, s[0], s[1]), "%v", s)
		assert.False(t, MatchesShape(ShapeSquare, s[0], s[1]), "%v", s)
	}
}

func TestMatchesShape_Landscape(t *testing.T) {
	sizes := [][2]uint32{{2, 1}, {500, 499}, {1920, 1080}}
	for _, s := range sizes {
		assert.True(t, MatchesShape(ShapeLandscape, s[0], s[1]), "%v", s)
		assert.False(t, MatchesShape(ShapeVertical, s[0], s[1]), "%v", s)
	}
}

func TestMatchesShape_NoneAndAny(t *testing.T) {
	assert.False(t, MatchesShape(ShapeNone, 10, 10))
	assert.False(t, MatchesShape(ShapeNone, 10, 20))
	assert.True(t, MatchesShape(ShapeAny, 10, 20))
	assert.True(t, MatchesShape(ShapeAny, 20, 10))
}

func TestMatchesShape_ZeroSize(t *testing.T) {
	assert.False(t, MatchesShape(ShapeSquare, 0, 0))
	assert.False(t, MatchesShape(ShapeAny, 0, 10))
	assert.False(t, MatchesShape(ShapeLandscape, 10, 0))
}

func TestShapeFromFlags(t *testing.T) {
	cases := []struct {
		square, vertical, landscape bool
		want                        Shape
	}{
		{false, false, false, ShapeNone},
		{true, false, false, ShapeSquare},
		{false, true, false, ShapeVertical},
		{false, false, true, ShapeLandscape},
		{true, true, false, ShapeSquare},
		{true, false, true, ShapeSquare},
	}
	for _, c := range cases {
		got, err := ShapeFromFlags(c.square, c.vertical, c.landscape)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := ShapeFromFlags(false, true, true)
	assert.Error(t, err)
}

func TestMatchesDimension(t *testing.T) {
	assert.True(t, MatchesDimension(u(100), u(100), u(1000), u(1000), 500, 500))

	// max only
	assert.True(t, MatchesDimension(nil, nil, u(1000), u(1000), 500, 500))
	assert.False(t, MatchesDimension(nil, nil, u(1000), u(1000), 1500, 1500))

	// min only
	assert.True(t, MatchesDimension(u(100), u(100), nil, nil, 500, 500))
	assert.False(t, MatchesDimension(u(100), u(100), nil, nil, 50, 50))

	// no bounds
	assert.True(t, MatchesDimension(nil, nil, nil, nil, 1, 1))
}

func TestMatchesDimension_Boundaries(t *testing.T) {
	// min is inclusive
	assert.True(t, MatchesDimension(u(100), nil, nil, nil, 100, 1))
	assert.False(t, MatchesDimension(u(100), nil, nil, nil, 99, 1))
	assert.True(t, MatchesDimension(nil, u(100), nil, nil, 1, 100))
	assert.False(t, MatchesDimension(nil, u(100), nil, nil, 1, 99))

	// max is exclusive
	assert.False(t, MatchesDimension(nil, nil, u(1000), nil, 1000, 1))
	assert.True(t, MatchesDimension(nil, nil, u(1000), nil, 999, 1))
	assert.False(t, MatchesDimension(nil, nil, nil, u(1000), 1, 1000))

	// each axis is checked on its own
	assert.False(t, MatchesDimension(u(100), u(100), nil, nil, 500, 50))
}

func TestCriteria_Matches(t *testing.T) {
	c := Criteria{Shape: ShapeLandscape, MinWidth: u(1000)}
	assert.True(t, c.Matches(1920, 1080))
	assert.False(t, c.Matches(800, 600))
	assert.False(t, c.Matches(1080, 1920))

	assert.False(t, Criteria{}.Matches(500, 500))
	assert.True(t, Criteria{Shape: ShapeAny}.Matches(500, 500))
}
