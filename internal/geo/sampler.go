package geo

import "math"

// rayEpsilon guards the intersection denominator when a horizontal ray runs
// through a vertex or along an edge. Points exactly on an edge may classify
// either way; that approximation is accepted.
const rayEpsilon = 1e-12

// Contains reports whether the coordinate lies inside the polygon's outer
// ring, using a ray-casting test (odd crossing count of a horizontal ray).
func (p Polygon) Contains(c Coordinate) bool {
	ring := p.Ring()
	n := len(ring)
	if n < 3 {
		return false
	}

	x, y := c.Lon, c.Lat
	inside := false
	for i := 0; i < n; i++ {
		x1, y1 := ring[i][0], ring[i][1]
		x2, y2 := ring[(i+1)%n][0], ring[(i+1)%n][1]
		if (y1 > y) != (y2 > y) && x < (x2-x1)*(y-y1)/(y2-y1+rayEpsilon)+x1 {
			inside = !inside
		}
	}
	return inside
}

// SamplePoints returns between 1 and maxPoints representative coordinates
// inside the polygon. A square grid of ceil(sqrt(maxPoints)) steps per axis is
// laid over the bounding box and every grid node passing the inside test is
// collected; if more than maxPoints nodes qualify, indices evenly spaced over
// the ordered list are kept (first and last always included for maxPoints >= 2).
// When no grid node falls inside, the vertex mean is returned as a single
// fallback point. The result is deterministic for a given polygon and
// maxPoints.
func SamplePoints(p Polygon, maxPoints int) []Coordinate {
	if maxPoints < 1 {
		maxPoints = 1
	}

	minLat, minLon, maxLat, maxLon := p.Bounds()
	steps := int(math.Ceil(math.Sqrt(float64(maxPoints))))
	if steps < 2 {
		steps = 2
	}

	latGrid := linspace(minLat, maxLat, steps)
	lonGrid := linspace(minLon, maxLon, steps)

	var pts []Coordinate
	for _, la := range latGrid {
		for _, lo := range lonGrid {
			c := Coordinate{Lat: la, Lon: lo}
			if p.Contains(c) {
				pts = append(pts, c)
			}
		}
	}

	if len(pts) == 0 {
		return []Coordinate{p.VertexMean()}
	}

	if len(pts) > maxPoints {
		pts = downsample(pts, maxPoints)
	}

	return pts
}

// downsample keeps maxPoints entries at evenly spaced indices across the
// ordered list, truncating fractional positions; the first and last entries
// are always kept for maxPoints >= 2.
func downsample(pts []Coordinate, maxPoints int) []Coordinate {
	if maxPoints == 1 {
		return pts[:1]
	}
	picked := make([]Coordinate, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		idx := int(float64(i) * float64(len(pts)-1) / float64(maxPoints-1))
		picked = append(picked, pts[idx])
	}
	return picked
}

// linspace returns n evenly spaced values from start to end inclusive.
func linspace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}
