package geo

import "math"

// boundaryEpsilon absorbs float noise when deciding that a point lies on an edge.
const boundaryEpsilon = 1e-12

// Contains reports whether pt lies inside p using the even-odd rule with an
// eastward ray along pt's latitude. Points on an edge or a vertex count as
// inside. Malformed rings fail with ErrInvalidPolygon.
func Contains(p Polygon, pt Point) (bool, error) {
	if err := ValidatePolygon(p); err != nil {
		return false, err
	}
	if math.IsNaN(pt.Lat) || math.IsNaN(pt.Lon) {
		return false, nil
	}

	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[j], p[i]
		if onSegment(pt, a, b) {
			return true, nil
		}
		// Half-open rule on latitude so a ray through a vertex is counted once.
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
			crossLon := a.Lon + (pt.Lat-a.Lat)*(b.Lon-a.Lon)/(b.Lat-a.Lat)
			if pt.Lon < crossLon {
				inside = !inside
			}
		}
	}
	return inside, nil
}

// IsPointInServiceArea is Contains for callers that only need a yes/no.
// A malformed polygon never contains anything.
func IsPointInServiceArea(pt Point, p Polygon) bool {
	ok, err := Contains(p, pt)
	return err == nil && ok
}

func onSegment(pt, a, b Point) bool {
	cross := (b.Lon-a.Lon)*(pt.Lat-a.Lat) - (b.Lat-a.Lat)*(pt.Lon-a.Lon)
	scale := math.Max(1, math.Max(math.Abs(b.Lon-a.Lon), math.Abs(b.Lat-a.Lat)))
	if math.Abs(cross) > boundaryEpsilon*scale {
		return false
	}
	return pt.Lon >= math.Min(a.Lon, b.Lon)-boundaryEpsilon &&
		pt.Lon <= math.Max(a.Lon, b.Lon)+boundaryEpsilon &&
		pt.Lat >= math.Min(a.Lat, b.Lat)-boundaryEpsilon &&
		pt.Lat <= math.Max(a.Lat, b.Lat)+boundaryEpsilon
}
