package geo

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned for missing, malformed, non-Polygon or
	// degenerate geometry input.
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Coordinate is a WGS84 point in degrees. No range validation is applied;
// out-of-range values are the caller's responsibility.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Polygon is a GeoJSON-style polygon geometry. Only the outer ring is used;
// holes (additional rings) are carried through serialization but otherwise
// ignored. Ring points are stored in GeoJSON [lon, lat] order.
type Polygon struct {
	Rings [][][2]float64
}

// geometry is the wire form of a GeoJSON geometry object.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates [][][2]float64  `json:"coordinates,omitempty"`
	Geometry    json.RawMessage `json:"geometry,omitempty"` // Feature wrapper
}

// ParseGeoJSON parses a GeoJSON Polygon geometry from raw JSON. A Feature
// wrapper is accepted; its geometry field is extracted. Any geometry whose
// type is not "Polygon", or whose outer ring has fewer than 3 vertices,
// yields ErrInvalidGeometry.
func ParseGeoJSON(data []byte) (Polygon, error) {
	if len(data) == 0 {
		return Polygon{}, fmt.Errorf("%w: empty input", ErrInvalidGeometry)
	}

	var g geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return Polygon{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	if g.Type == "Feature" {
		if len(g.Geometry) == 0 {
			return Polygon{}, fmt.Errorf("%w: feature has no geometry", ErrInvalidGeometry)
		}
		return ParseGeoJSON(g.Geometry)
	}

	if g.Type != "Polygon" {
		return Polygon{}, fmt.Errorf("%w: expected Polygon geometry, got %q", ErrInvalidGeometry, g.Type)
	}
	if len(g.Coordinates) == 0 || len(g.Coordinates[0]) < 3 {
		return Polygon{}, fmt.Errorf("%w: polygon ring needs at least 3 vertices", ErrInvalidGeometry)
	}

	return Polygon{Rings: g.Coordinates}, nil
}

// MarshalJSON serializes the polygon back to the GeoJSON geometry form it was
// parsed from, ring order and vertex order preserved.
func (p Polygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}{
		Type:        "Polygon",
		Coordinates: p.Rings,
	})
}

// UnmarshalJSON parses a stored geometry object.
func (p *Polygon) UnmarshalJSON(data []byte) error {
	parsed, err := ParseGeoJSON(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Ring returns the outer ring in [lon, lat] order.
func (p Polygon) Ring() [][2]float64 {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// Bounds returns the axis-aligned bounding box of the outer ring.
func (p Polygon) Bounds() (minLat, minLon, maxLat, maxLon float64) {
	ring := p.Ring()
	if len(ring) == 0 {
		return 0, 0, 0, 0
	}
	minLon, minLat = ring[0][0], ring[0][1]
	maxLon, maxLat = ring[0][0], ring[0][1]
	for _, c := range ring[1:] {
		if c[0] < minLon {
			minLon = c[0]
		}
		if c[0] > maxLon {
			maxLon = c[0]
		}
		if c[1] < minLat {
			minLat = c[1]
		}
		if c[1] > maxLat {
			maxLat = c[1]
		}
	}
	return minLat, minLon, maxLat, maxLon
}

// VertexMean returns the arithmetic mean of the outer ring's vertices. It is
// the fallback sample point for polygons too thin for the sampling grid.
func (p Polygon) VertexMean() Coordinate {
	ring := p.Ring()
	if len(ring) == 0 {
		return Coordinate{}
	}
	var sumLat, sumLon float64
	for _, c := range ring {
		sumLon += c[0]
		sumLat += c[1]
	}
	n := float64(len(ring))
	return Coordinate{Lat: sumLat / n, Lon: sumLon / n}
}
