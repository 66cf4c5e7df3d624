package svgpoly

// Line is an SVG line element
type Line struct {
	ID     string
	Style  string
	X1, Y1 float64
	X2, Y2 float64
}

func (l *Line) Kind() Kind        { return KindLine }
func (l *Line) ElementID() string { return l.ID }

// Tessellate implements the Node interface.
func (l *Line) Tessellate() ([]Polyline, error) {
	return []Polyline{LinePolyline(l.X1, l.Y1, l.X2, l.Y2)}, nil
}

// LinePolyline returns the two endpoints in order.
func LinePolyline(x1, y1, x2, y2 float64) Polyline {
	return Polyline{{x1, y1}, {x2, y2}}
}
