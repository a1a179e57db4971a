package shapes

import (
	"errors"
	"fmt"
	"math"

	earcut "github.com/flywave/go-earcut"
)

// ErrTooManyVertices is returned for a polygon that cannot be indexed with
// 16-bit triangle indices.
var ErrTooManyVertices = errors.New("shapes: polygon has too many vertices")

// Mesh is a triangulated polygon. Points holds x,y pairs in world units
// (tile coordinates at zoom 0, y growing south); every three Indices form a
// triangle.
type Mesh struct {
	Points  []float64
	Indices []uint16
}

// Triangles returns the number of triangles in m.
func (m Mesh) Triangles() int { return len(m.Indices) / 3 }

// Contains reports whether (x, y) falls inside one of m's triangles.
func (m Mesh) Contains(x, y float64) bool {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := int(m.Indices[i])*2, int(m.Indices[i+1])*2, int(m.Indices[i+2])*2
		if inTriangle(x, y,
			m.Points[a], m.Points[a+1],
			m.Points[b], m.Points[b+1],
			m.Points[c], m.Points[c+1]) {
			return true
		}
	}
	return false
}

func inTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	d1 := cross(px, py, ax, ay, bx, by)
	d2 := cross(px, py, bx, by, cx, cy)
	d3 := cross(px, py, cx, cy, ax, ay)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}

// Triangulate fills the polygon bounded by outer, minus holes. Rings are
// flat x,y pairs and may repeat their first point at the end.
func Triangulate(outer []float64, holes ...[]float64) (Mesh, error) {
	points := make([]float64, 0, len(outer)+2*len(holes))
	points = append(points, openRing(outer)...)
	holeIndices := make([]int, 0, len(holes))
	for _, h := range holes {
		h = openRing(h)
		if len(h) < 6 {
			continue
		}
		holeIndices = append(holeIndices, len(points)/2)
		points = append(points, h...)
	}
	if len(points)/2 > math.MaxUint16+1 {
		return Mesh{}, fmt.Errorf("%w: %d", ErrTooManyVertices, len(points)/2)
	}
	if len(outer) < 6 {
		return Mesh{Points: points}, nil
	}

	tris, err := earcut.Earcut(points, holeIndices, 2)
	if err != nil {
		return Mesh{}, fmt.Errorf("triangulating polygon: %w", err)
	}
	indices := make([]uint16, len(tris))
	for i, t := range tris {
		indices[i] = uint16(t)
	}
	return Mesh{Points: points, Indices: indices}, nil
}

// openRing drops a closing point equal to the first one.
func openRing(ring []float64) []float64 {
	n := len(ring)
	if n >= 4 && ring[0] == ring[n-2] && ring[1] == ring[n-1] {
		return ring[:n-2]
	}
	return ring
}

// signedArea is positive for counter-clockwise rings in a y-up system.
func signedArea(ring []float64) float64 {
	var area float64
	n := len(ring) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[2*i]*ring[2*j+1] - ring[2*j]*ring[2*i+1]
	}
	return area / 2
}
