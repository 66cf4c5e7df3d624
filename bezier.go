package svgpoly

// curveSamples is the number of points each curve segment is flattened
// into, both endpoints included.
const curveSamples = 11

type cubicBezier struct {
	controlpoints [4]Point
}

// point evaluates B(t) = (1-t)³P0 + 3(1-t)²t P1 + 3(1-t)t² P2 + t³P3.
func (cb cubicBezier) point(t float64) Point {
	c := cb.controlpoints
	u := 1 - t
	a, b, d, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c[0].X + b*c[1].X + d*c[2].X + e*c[3].X,
		Y: a*c[0].Y + b*c[1].Y + d*c[2].Y + e*c[3].Y,
	}
}

func (cb cubicBezier) sample(pl Polyline, n int) Polyline {
	for i := 0; i < n; i++ {
		pl = append(pl, cb.point(sampleT(i, n)))
	}
	return pl
}

type quadraticBezier struct {
	controlpoints [3]Point
}

// point evaluates B(t) = (1-t)²P0 + 2(1-t)t P1 + t²P2.
func (qb quadraticBezier) point(t float64) Point {
	c := qb.controlpoints
	u := 1 - t
	a, b, d := u*u, 2*u*t, t*t
	return Point{
		X: a*c[0].X + b*c[1].X + d*c[2].X,
		Y: a*c[0].Y + b*c[1].Y + d*c[2].Y,
	}
}

func (qb quadraticBezier) sample(pl Polyline, n int) Polyline {
	for i := 0; i < n; i++ {
		pl = append(pl, qb.point(sampleT(i, n)))
	}
	return pl
}

// sampleT is the i-th of n evenly spaced parameters in [0, 1]. The ends
// are exact so sampled curves start and stop on their endpoints.
func sampleT(i, n int) float64 {
	if n < 2 || i == 0 {
		return 0
	}
	if i == n-1 {
		return 1
	}
	return float64(i) / float64(n-1)
}
