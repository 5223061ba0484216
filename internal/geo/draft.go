package geo

// Draft accumulates vertices the way an operator draws a boundary:
// one click adds a vertex, undo drops the last one, clear starts over.
// A Draft is not safe for concurrent use.
type Draft struct {
	vertices Polygon
}

// Add appends a vertex.
func (d *Draft) Add(p Point) {
	d.vertices = append(d.vertices, p)
}

// Undo removes and returns the most recent vertex.
func (d *Draft) Undo() (Point, bool) {
	if len(d.vertices) == 0 {
		return Point{}, false
	}
	last := d.vertices[len(d.vertices)-1]
	d.vertices = d.vertices[:len(d.vertices)-1]
	return last, true
}

// Clear drops every vertex.
func (d *Draft) Clear() {
	d.vertices = d.vertices[:0]
}

// Len is the number of vertices drawn so far.
func (d *Draft) Len() int {
	return len(d.vertices)
}

// Polygon returns a validated copy of the drawn ring.
func (d *Draft) Polygon() (Polygon, error) {
	if err := ValidatePolygon(d.vertices); err != nil {
		return nil, err
	}
	return d.vertices.Clone(), nil
}
