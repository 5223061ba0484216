// Package geo holds the service-area geometry: the vertex model, the polygon
// validator and the point-in-polygon evaluator used to decide coverage.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPolygon is matched by every validation failure.
var ErrInvalidPolygon = errors.New("invalid polygon")

// MinVertices is the smallest vertex count that encloses an area.
const MinVertices = 3

// Point is a WGS84 coordinate. On the wire it is a [lat, lon] pair.
type Point struct {
	Lat float64
	Lon float64
}

// MarshalJSON encodes the point as [lat, lon].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

// UnmarshalJSON accepts exactly two numbers.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [lat, lon] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have 2 elements, got %d", len(pair))
	}
	p.Lat, p.Lon = pair[0], pair[1]
	return nil
}

// InRange reports whether the point is a finite, valid latitude/longitude.
func (p Point) InRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lat, p.Lon)
}

// Polygon is an ordered, implicitly closed vertex ring in drawing order.
// The closing edge from the last vertex back to the first is not stored.
type Polygon []Point

// Clone returns an independent copy.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// InvalidPolygonError describes why a vertex ring was rejected.
// Index is the offending vertex, or -1 when the ring as a whole is at fault.
type InvalidPolygonError struct {
	Reason string
	Index  int
}

func (e *InvalidPolygonError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid polygon: %s", e.Reason)
	}
	return fmt.Sprintf("invalid polygon: vertex %d: %s", e.Index, e.Reason)
}

func (e *InvalidPolygonError) Is(target error) bool {
	return target == ErrInvalidPolygon
}

// ValidatePolygon checks that p can be persisted as a service area boundary.
// Self-intersecting rings are accepted.
func ValidatePolygon(p Polygon) error {
	if len(p) < MinVertices {
		return &InvalidPolygonError{
			Reason: fmt.Sprintf("needs at least %d vertices, got %d", MinVertices, len(p)),
			Index:  -1,
		}
	}
	for i, v := range p {
		if math.IsNaN(v.Lat) || math.IsNaN(v.Lon) || !v.InRange() {
			return &InvalidPolygonError{
				Reason: fmt.Sprintf("coordinate %s out of range", v),
				Index:  i,
			}
		}
	}
	for i := range p {
		next := (i + 1) % len(p)
		if p[i] == p[next] {
			return &InvalidPolygonError{
				Reason: fmt.Sprintf("duplicates vertex %d", i),
				Index:  next,
			}
		}
	}
	return nil
}
