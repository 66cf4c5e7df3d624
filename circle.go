package svgpoly

import "math"

// ellipseSamples is the number of points on a full circle or ellipse,
// including the repeated closing point.
const ellipseSamples = 50

// Circle is an SVG circle element
type Circle struct {
	ID     string
	Style  string
	Cx, Cy float64
	R      float64
}

func (c *Circle) Kind() Kind        { return KindCircle }
func (c *Circle) ElementID() string { return c.ID }

// Tessellate implements the Node interface.
func (c *Circle) Tessellate() ([]Polyline, error) {
	return []Polyline{CirclePolyline(c.Cx, c.Cy, c.R)}, nil
}

// Ellipse is an SVG ellipse element
type Ellipse struct {
	ID     string
	Style  string
	Cx, Cy float64
	Rx, Ry float64
}

func (e *Ellipse) Kind() Kind        { return KindEllipse }
func (e *Ellipse) ElementID() string { return e.ID }

// Tessellate implements the Node interface.
func (e *Ellipse) Tessellate() ([]Polyline, error) {
	return []Polyline{EllipsePolyline(e.Cx, e.Cy, e.Rx, e.Ry)}, nil
}

// CirclePolyline samples a full circle. The first and last points
// coincide.
func CirclePolyline(cx, cy, r float64) Polyline {
	return EllipsePolyline(cx, cy, r, r)
}

// EllipsePolyline samples a full axis-aligned ellipse at evenly spaced
// angles over [0, 2π]. The first and last points coincide.
func EllipsePolyline(cx, cy, rx, ry float64) Polyline {
	pl := make(Polyline, ellipseSamples)
	step := 2 * math.Pi / (ellipseSamples - 1)
	for i := range pl {
		a := float64(i) * step
		pl[i] = Point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	return pl
}
