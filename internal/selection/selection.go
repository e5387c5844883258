// Package selection holds the shape and dimension predicates used to decide
// whether an image is selected.
package selection

import "fmt"

// Shape is the requested image shape.
type Shape int

const (
	// ShapeNone means no shape flag was given. It matches nothing.
	ShapeNone Shape = iota
	ShapeSquare
	ShapeVertical
	ShapeLandscape
	// ShapeAny disables the shape filter.
	ShapeAny
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeVertical:
		return "vertical"
	case ShapeLandscape:
		return "landscape"
	case ShapeAny:
		return "any"
	default:
		return "none"
	}
}

// ShapeFromFlags resolves the shape flags. Square wins over vertical and
// landscape; vertical and landscape together are rejected.
func ShapeFromFlags(square, vertical, landscape bool) (Shape, error) {
	if vertical && landscape {
		return ShapeNone, fmt.Errorf("vertical and landscape can't be set together")
	}
	switch {
	case square:
		return ShapeSquare, nil
	case vertical:
		return ShapeVertical, nil
	case landscape:
		return ShapeLandscape, nil
	}
	return ShapeNone, nil
}

// Criteria is the immutable selection built from the command line.
// A nil bound means no constraint on that axis.
type Criteria struct {
	Shape     Shape
	MinWidth  *uint32
	MinHeight *uint32
	MaxWidth  *uint32 // exclusive
	MaxHeight *uint32 // exclusive
}

// Matches reports whether an image of the given size passes both predicates.
func (c Criteria) Matches(width, height uint32) bool {
	return MatchesShape(c.Shape, width, height) &&
		MatchesDimension(c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight, width, height)
}

// MatchesShape classifies width x height and compares it to shape.
// Zero-sized input never matches.
func MatchesShape(shape Shape, width, height uint32) bool {
	if width == 0 || height == 0 {
		return false
	}
	switch shape {
	case ShapeSquare:
		return width == height
	case ShapeVertical:
		return width < height
	case ShapeLandscape:
		return width > height
	case ShapeAny:
		return true
	}
	return false
}

// MatchesDimension applies the optional bounds. Minimums are inclusive,
// maximums exclusive.
func MatchesDimension(minWidth, minHeight, maxWidth, maxHeight *uint32, width, height uint32) bool {
	if minWidth != nil && width < *minWidth {
		return false
	}
	if minHeight != nil && height < *minHeight {
		return false
	}
	if maxWidth != nil && width >= *maxWidth {
		return false
	}
	if maxHeight != nil && height >= *maxHeight {
		return false
	}
	return true
}
