package geo

// Area is anything stored with a boundary that can be tested for coverage.
type Area interface {
	AreaID() string
	AreaPolygon() Polygon
	Active() bool
}

// SkipFunc is told about areas whose stored boundary could not be evaluated.
type SkipFunc func(a Area, err error)

// FindServiceAreasContaining returns the ids of the active areas whose boundary
// contains pt, in the order the areas were given. The result is never nil.
// Inactive areas are ignored; areas with a malformed boundary are skipped and
// reported to onSkip when it is non-nil.
func FindServiceAreasContaining(pt Point, areas []Area, onSkip SkipFunc) []string {
	ids := make([]string, 0, 1)
	for _, a := range areas {
		if !a.Active() {
			continue
		}
		ok, err := Contains(a.AreaPolygon(), pt)
		if err != nil {
			if onSkip != nil {
				onSkip(a, err)
			}
			continue
		}
		if ok {
			ids = append(ids, a.AreaID())
		}
	}
	return ids
}
