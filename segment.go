package svgpoly

// Point is an X,Y coordinate.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Polyline is one continuous pen stroke: consecutive points are joined by
// straight lines, in order. It is not implicitly closed.
type Polyline []Point

// Segment is a single straight move of the pen from A to B.
type Segment struct {
	A, B Point
}

// Segments returns the straight segments between consecutive points of p.
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segs = append(segs, Segment{A: p[i-1], B: p[i]})
	}
	return segs
}

// Segments flattens lines into the sequence of segments a drawing
// consumer replays one by one. Segments never join two polylines.
func Segments(lines []Polyline) []Segment {
	var n int
	for _, l := range lines {
		if len(l) > 1 {
			n += len(l) - 1
		}
	}
	segs := make([]Segment, 0, n)
	for _, l := range lines {
		segs = append(segs, l.Segments()...)
	}
	return segs
}
