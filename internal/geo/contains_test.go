package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains_Square(t *testing.T) {
	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"center", Point{5, 5}, true},
		{"far outside", Point{20, 20}, false},
		{"on west edge", Point{0, 5}, true},
		{"on east edge", Point{10, 5}, true},
		{"on north edge", Point{5, 10}, true},
		{"vertex", Point{0, 0}, true},
		{"opposite vertex", Point{10, 10}, true},
		{"just outside", Point{5, 10.0001}, false},
		{"west of polygon on vertex latitude", Point{0, -5}, false},
		{"east of polygon", Point{5, 11}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Contains(square(), tt.pt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContains_Triangle(t *testing.T) {
	tri := Polygon{{0, 0}, {0, 4}, {4, 0}}

	in, err := Contains(tri, Point{1, 1})
	require.NoError(t, err)
	assert.True(t, in)

	out, err := Contains(tri, Point{3, 3})
	require.NoError(t, err)
	assert.False(t, out)

	hyp, err := Contains(tri, Point{2, 2})
	require.NoError(t, err)
	assert.True(t, hyp, "point on the hypotenuse is on the boundary")
}

func TestContains_Concave(t *testing.T) {
	// U shape opening north: notch between lon 3 and 7 above lat 3.
	u := Polygon{{0, 0}, {10, 0}, {10, 3}, {3, 3}, {3, 7}, {10, 7}, {10, 10}, {0, 10}}

	assert.True(t, IsPointInServiceArea(Point{1, 5}, u))
	assert.True(t, IsPointInServiceArea(Point{5, 1}, u))
	assert.True(t, IsPointInServiceArea(Point{5, 9}, u))
	assert.False(t, IsPointInServiceArea(Point{5, 5}, u))
	assert.False(t, IsPointInServiceArea(Point{9, 5}, u))
	assert.True(t, IsPointInServiceArea(Point{3, 5}, u), "notch floor is boundary")
}

func TestContains_RayThroughVertex(t *testing.T) {
	// Diamond; an eastward ray at lat 5 from the west passes exactly through
	// the vertices (5,0) and (5,10).
	diamond := Polygon{{0, 5}, {5, 10}, {10, 5}, {5, 0}}

	assert.True(t, IsPointInServiceArea(Point{5, 5}, diamond))
	assert.False(t, IsPointInServiceArea(Point{5, -1}, diamond))
	assert.False(t, IsPointInServiceArea(Point{5, 11}, diamond))
}

func TestContains_WindingOrderIrrelevant(t *testing.T) {
	cw := square()
	ccw := Polygon{{10, 0}, {10, 10}, {0, 10}, {0, 0}}
	for _, pt := range []Point{{5, 5}, {20, 20}, {0, 5}, {-1, 5}} {
		a, err := Contains(cw, pt)
		require.NoError(t, err)
		b, err := Contains(ccw, pt)
		require.NoError(t, err)
		assert.Equal(t, a, b, "point %v", pt)
	}
}

func TestContains_RealCoordinates(t *testing.T) {
	melbourne := Polygon{{-37.70, 144.85}, {-37.70, 145.10}, {-37.90, 145.10}, {-37.90, 144.85}}

	assert.True(t, IsPointInServiceArea(Point{-37.8136, 144.9631}, melbourne))
	assert.False(t, IsPointInServiceArea(Point{-33.8688, 151.2093}, melbourne))
}

func TestContains_MalformedPolygon(t *testing.T) {
	_, err := Contains(Polygon{{0, 0}, {1, 1}}, Point{0, 0})
	assert.True(t, errors.Is(err, ErrInvalidPolygon))

	_, err = Contains(Polygon{{0, 0}, {0, 0}, {1, 1}}, Point{0, 0})
	assert.True(t, errors.Is(err, ErrInvalidPolygon))

	assert.False(t, IsPointInServiceArea(Point{0, 0}, nil))
}
