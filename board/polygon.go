package board

import (
	"math"

	"wealthy-cats/entities"
)

// Rand is the randomness the board needs. *rand.Rand from golang.org/x/exp
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Polygon is a closed shape given by its vertices in order.
type Polygon struct {
	Points []entities.Point
}

// NewPolygon builds a polygon from a flat x0,y0,x1,y1... list.
func NewPolygon(flat []float64) Polygon {
	pts := make([]entities.Point, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		pts = append(pts, entities.Point{X: flat[i], Y: flat[i+1]})
	}
	return Polygon{Points: pts}
}

// Contains reports whether (x, y) is inside the polygon using the even-odd
// rule.
func (p Polygon) Contains(x, y float64) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if ((a.Y <= y && y < b.Y) || (b.Y <= y && y < a.Y)) &&
			x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return
}

const maxPlacementAttempts = 100

// RandomPoint picks a point inside the polygon at least margin away from
// every edge. After maxPlacementAttempts misses the last candidate is
// returned as is.
func (p Polygon) RandomPoint(rng Rand, margin float64) entities.Point {
	minX, minY, maxX, maxY := p.Bounds()
	var pt entities.Point
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		pt = entities.Point{
			X: between(rng, minX+margin, maxX-margin),
			Y: between(rng, minY+margin, maxY-margin),
		}
		if p.Contains(pt.X, pt.Y) && !p.touchesEdge(pt, margin) {
			return pt
		}
	}
	return pt
}

// touchesEdge reports whether a circle of radius r at c crosses any edge.
func (p Polygon) touchesEdge(c entities.Point, r float64) bool {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.Points[i], p.Points[(i+1)%n]
		if segmentDistance(c, a, b) <= r {
			return true
		}
	}
	return false
}

func segmentDistance(c, a, b entities.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(c.X-a.X, c.Y-a.Y)
	}
	t := ((c.X-a.X)*dx + (c.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(c.X-(a.X+t*dx), c.Y-(a.Y+t*dy))
}

// between returns a whole number in [lo, hi]. A collapsed range yields its
// midpoint.
func between(rng Rand, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Floor(rng.Float64()*(hi-lo+1) + lo)
}

// jitter returns a value in [-spread, spread).
func jitter(rng Rand, spread float64) float64 {
	return rng.Float64()*2*spread - spread
}
