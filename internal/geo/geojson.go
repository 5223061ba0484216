package geo

import (
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Geom converts the ring to a closed go-geom polygon in lon/lat axis order.
func (p Polygon) Geom() (*geom.Polygon, error) {
	if len(p) == 0 {
		return nil, &InvalidPolygonError{Reason: "no vertices", Index: -1}
	}
	ring := make([]geom.Coord, 0, len(p)+1)
	for _, v := range p {
		ring = append(ring, geom.Coord{v.Lon, v.Lat})
	}
	ring = append(ring, geom.Coord{p[0].Lon, p[0].Lat})
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
}

// PolygonFromGeom reads the exterior ring of a polygon geometry. Holes are
// not part of the service-area model and are rejected.
func PolygonFromGeom(g geom.T) (Polygon, error) {
	poly, ok := g.(*geom.Polygon)
	if !ok {
		return nil, &InvalidPolygonError{Reason: fmt.Sprintf("expected Polygon geometry, got %T", g), Index: -1}
	}
	if poly.NumLinearRings() == 0 {
		return nil, &InvalidPolygonError{Reason: "polygon has no rings", Index: -1}
	}
	if poly.NumLinearRings() > 1 {
		return nil, &InvalidPolygonError{Reason: "polygons with holes are not supported", Index: -1}
	}
	coords := poly.LinearRing(0).Coords()
	out := make(Polygon, 0, len(coords))
	for _, c := range coords {
		out = append(out, Point{Lat: c.Y(), Lon: c.X()})
	}
	if n := len(out); n > 1 && out[0] == out[n-1] {
		out = out[:n-1]
	}
	return out, nil
}

// ParseGeoJSON decodes a GeoJSON Polygon geometry into a ring.
func ParseGeoJSON(raw []byte) (Polygon, error) {
	var g geom.T
	if err := gjson.Unmarshal(raw, &g); err != nil {
		return nil, &InvalidPolygonError{Reason: "malformed GeoJSON: " + err.Error(), Index: -1}
	}
	return PolygonFromGeom(g)
}

// EncodeWKB renders the ring as little-endian WKB for GIS consumers.
func EncodeWKB(p Polygon) ([]byte, error) {
	g, err := p.Geom()
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// DecodeWKB is the inverse of EncodeWKB.
func DecodeWKB(b []byte) (Polygon, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("decode wkb: %w", err)
	}
	return PolygonFromGeom(g)
}

// Feature wraps the ring as a GeoJSON feature.
func Feature(id string, p Polygon, props map[string]interface{}) (*gjson.Feature, error) {
	g, err := p.Geom()
	if err != nil {
		return nil, err
	}
	return &gjson.Feature{ID: id, Geometry: g, Properties: props}, nil
}
