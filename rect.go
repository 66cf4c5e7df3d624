package svgpoly

import "math"

// arcSamples is the number of angles each rounded corner is evaluated at.
// The first and last angle fall on the straight edges and are dropped.
const arcSamples = 12

// Rect is an SVG rect element. Rx and Ry are already paired: if only one
// was given both hold its value.
type Rect struct {
	ID     string
	Style  string
	X, Y   float64
	Width  float64
	Height float64
	Rx, Ry float64
}

func (r *Rect) Kind() Kind        { return KindRect }
func (r *Rect) ElementID() string { return r.ID }

// Tessellate implements the Node interface.
func (r *Rect) Tessellate() ([]Polyline, error) {
	return []Polyline{RectPolyline(r.X, r.Y, r.Width, r.Height, r.Rx, r.Ry)}, nil
}

// RectPolyline outlines a rectangle clockwise starting on the top edge.
// Rounded corners are quarter ellipses centred rx, ry inside the corner,
// sampled only when rx is non-zero. The outline is left open: the last
// point is not a repeat of the first.
func RectPolyline(x, y, w, h, rx, ry float64) Polyline {
	n := 4
	if rx != 0 {
		n += 1 + 4*(arcSamples-2)
	}
	pl := make(Polyline, 0, n)

	pl = append(pl, Point{x + rx, y}, Point{x + w - rx, y})
	if rx != 0 {
		pl = appendArc(pl, x+w-rx, y+ry, rx, ry, 3*math.Pi/2, 2*math.Pi)
	}

	pl = append(pl, Point{x + w, y + h - ry})
	if rx != 0 {
		pl = appendArc(pl, x+w-rx, y+h-ry, rx, ry, 0, math.Pi/2)
	}

	pl = append(pl, Point{x + rx, y + h})
	if rx != 0 {
		pl = appendArc(pl, x+rx, y+h-ry, rx, ry, math.Pi/2, math.Pi)
	}

	// Without rounding the left edge ends where the outline began.
	if left := (Point{x, y + ry}); left != pl[0] {
		pl = append(pl, left)
	}
	if rx != 0 {
		pl = appendArc(pl, x+rx, y+ry, rx, ry, math.Pi, 3*math.Pi/2)
	}
	return pl
}

// appendArc appends the interior samples of an elliptical arc around
// (cx, cy) swept from angle a0 to a1.
func appendArc(pl Polyline, cx, cy, rx, ry, a0, a1 float64) Polyline {
	step := (a1 - a0) / (arcSamples - 1)
	for i := 1; i < arcSamples-1; i++ {
		a := a0 + float64(i)*step
		pl = append(pl, Point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return pl
}
