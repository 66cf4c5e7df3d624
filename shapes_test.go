package svgpoly

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/cheekybits/is"
	"github.com/stretchr/testify/require"
)

func TestRectSharp(t *testing.T) {
	is := is.New(t)

	pl := RectPolyline(0, 0, 10, 5, 0, 0)
	is.Equal(pl, Polyline{{0, 0}, {10, 0}, {10, 5}, {0, 5}})

	pl = RectPolyline(2, 3, 10, 5, 0, 0)
	is.Equal(pl, Polyline{{2, 3}, {12, 3}, {12, 8}, {2, 8}})
}

func TestRectRounded(t *testing.T) {
	is := is.New(t)

	pl := RectPolyline(0, 0, 100, 50, 10, 10)
	is.Equal(len(pl), 45)
	is.Equal(pl[0], Point{10, 0})
	is.Equal(pl[1], Point{90, 0})
	is.Equal(pl[12], Point{100, 40})
	is.Equal(pl[23], Point{10, 50})
	is.Equal(pl[34], Point{0, 10})
	is.NotEqual(pl[44], pl[0])

	corners := []struct {
		from   int
		center Point
	}{
		{2, Point{90, 10}},
		{13, Point{90, 40}},
		{24, Point{10, 40}},
		{35, Point{10, 10}},
	}
	for _, c := range corners {
		for _, p := range pl[c.from : c.from+10] {
			r := math.Hypot(p.X-c.center.X, p.Y-c.center.Y)
			require.InDelta(t, 10, r, 1e-9)
		}
	}

	// the top right arc runs clockwise from the top edge to the right edge
	is.True(pl[2].X > 90 && pl[2].Y < pl[11].Y)
	is.True(pl[11].X > pl[2].X)
}

func TestRectElement(t *testing.T) {
	cases := []struct {
		attrs  map[string]string
		rx, ry float64
	}{
		{map[string]string{"width": "10", "height": "5"}, 0, 0},
		{map[string]string{"width": "10", "height": "5", "rx": "2"}, 2, 2},
		{map[string]string{"width": "10", "height": "5", "ry": "3"}, 3, 3},
		{map[string]string{"width": "10", "height": "5", "rx": "2", "ry": "1"}, 2, 1},
	}
	for _, c := range cases {
		e, err := NewElement("rect", c.attrs)
		require.NoError(t, err)
		r := e.(*Rect)
		require.Equal(t, 0.0, r.X)
		require.Equal(t, 0.0, r.Y)
		require.Equal(t, c.rx, r.Rx)
		require.Equal(t, c.ry, r.Ry)
	}
}

func TestRectZeroRxWithRy(t *testing.T) {
	is := is.New(t)

	e, err := NewElement("rect", map[string]string{"width": "10", "height": "5", "rx": "0", "ry": "2"})
	is.NoErr(err)
	r := e.(*Rect)
	is.Equal(r.Rx, 0.0)
	is.Equal(r.Ry, 2.0)

	got, err := e.Tessellate()
	is.NoErr(err)
	is.Equal(got, []Polyline{{{0, 0}, {10, 0}, {10, 3}, {0, 5}, {0, 2}}})
}

func TestCircle(t *testing.T) {
	pl := CirclePolyline(0, 0, 1)
	require.Len(t, pl, 50)
	require.InDelta(t, pl[0].X, pl[49].X, 1e-9)
	require.InDelta(t, pl[0].Y, pl[49].Y, 1e-9)
	for _, p := range pl {
		require.InDelta(t, 1, p.X*p.X+p.Y*p.Y, 1e-9)
	}
	require.Equal(t, Point{1, 0}, pl[0])
}

func TestEllipse(t *testing.T) {
	e, err := NewElement("ellipse", map[string]string{"cx": "5", "cy": "-5", "rx": "4", "ry": "2"})
	require.NoError(t, err)
	got, err := e.Tessellate()
	require.NoError(t, err)
	require.Len(t, got, 1)

	pl := got[0]
	require.Len(t, pl, 50)
	require.Equal(t, Point{9, -5}, pl[0])
	for _, p := range pl {
		dx, dy := (p.X-5)/4, (p.Y+5)/2
		require.InDelta(t, 1, dx*dx+dy*dy, 1e-9)
	}
}

func TestLine(t *testing.T) {
	is := is.New(t)

	e, err := NewElement("line", map[string]string{"x1": "1", "y1": "2", "x2": "3", "y2": "4"})
	is.NoErr(err)
	got, err := e.Tessellate()
	is.NoErr(err)
	is.Equal(got, []Polyline{{{1, 2}, {3, 4}}})
}

func TestPolyline(t *testing.T) {
	is := is.New(t)

	pl, err := ParsePoints("0,0 10,0 10,10")
	is.NoErr(err)
	is.Equal(pl, Polyline{{0, 0}, {10, 0}, {10, 10}})

	pl, err = ParsePoints("0 0, 10 0,10 10")
	is.NoErr(err)
	is.Equal(pl, Polyline{{0, 0}, {10, 0}, {10, 10}})

	e, err := NewElement("polyline", map[string]string{"points": "1,2 3,4"})
	is.NoErr(err)
	got, err := e.Tessellate()
	is.NoErr(err)
	is.Equal(got, []Polyline{{{1, 2}, {3, 4}}})
}

func TestPolygon(t *testing.T) {
	is := is.New(t)

	e, err := NewElement("polygon", map[string]string{"points": "0,0 10,0 10,10"})
	is.NoErr(err)
	got, err := e.Tessellate()
	is.NoErr(err)
	is.Equal(got, []Polyline{{{0, 0}, {10, 0}, {10, 10}, {0, 0}}})
}

func TestPointsNumberForms(t *testing.T) {
	cases := []struct {
		in   string
		want Polyline
	}{
		{"0,0 10,0 .5,10", Polyline{{0, 0}, {10, 0}, {0.5, 10}}},
		{"0,0 -.5,1", Polyline{{0, 0}, {-0.5, 1}}},
		{"0,0 10,0\r\n10,10", Polyline{{0, 0}, {10, 0}, {10, 10}}},
		{"0,0\f1,1", Polyline{{0, 0}, {1, 1}}},
		{"1E2,0 0,1e2", Polyline{{100, 0}, {0, 100}}},
		{"2.5e-1,3", Polyline{{0.25, 3}}},
		{"1E-2,0", Polyline{{0.01, 0}}},
	}
	for _, c := range cases {
		got, err := ParsePoints(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestPointsRejectsUnreadInput(t *testing.T) {
	var parse *ParseError
	for _, s := range []string{"0,0 10,0 # 5,5", "0,0 10,0 x", "0,0 10,0 5;5", "0,0 abc", "0,0 (1,1)", "0,0 1.5.5,1", "1Ex,0"} {
		got, err := ParsePoints(s)
		require.True(t, errors.As(err, &parse), s)
		require.Nil(t, got, s)
	}

	got, err := (&Polygon{Points: "0,0 10,0 #,10"}).Tessellate()
	require.True(t, errors.As(err, &parse))
	require.Nil(t, got)
}

func TestPointsNoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 200; i++ {
		_, err := ParsePoints("0,0 10,0 10,10")
		require.NoError(t, err)
		_, _ = ParsePoints("0,0 x")
	}

	after := runtime.NumGoroutine()
	for deadline := time.Now().Add(time.Second); after > before+5 && time.Now().Before(deadline); {
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}
	require.True(t, after <= before+5, "goroutines before=%d after=%d", before, after)
}

func TestPolygonPolyline(t *testing.T) {
	is := is.New(t)

	is.Equal(len(PolygonPolyline(nil)), 0)
	is.Equal(PolygonPolyline([]Point{{1, 2}}), Polyline{{1, 2}, {1, 2}})
}

func TestPointsOddCount(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	pl, err := ParsePoints("0,0 10,0 10")
	require.NoError(t, err)
	require.Equal(t, Polyline{{0, 0}, {10, 0}}, pl)
	require.True(t, strings.Contains(buf.String(), "odd number of coordinates"), buf.String())
}

func TestPointsErrors(t *testing.T) {
	var missing *MissingAttributeError
	for _, s := range []string{"", "7"} {
		_, err := ParsePoints(s)
		require.True(t, errors.As(err, &missing), s)
		require.Equal(t, "points", missing.Attribute)
	}

	var parse *ParseError
	_, err := (&Polygon{Points: "0,0 x,1"}).Tessellate()
	require.True(t, errors.As(err, &parse))
	require.Equal(t, "polygon", parse.Element)
}

func TestNewElementErrors(t *testing.T) {
	var missing *MissingAttributeError
	_, err := NewElement("line", map[string]string{"x1": "0", "y1": "0", "x2": "1"})
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "line", missing.Element)
	require.Equal(t, "y2", missing.Attribute)

	_, err = NewElement("path", map[string]string{"id": "p"})
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "d", missing.Attribute)

	var parse *ParseError
	_, err = NewElement("circle", map[string]string{"cx": "1", "cy": "1", "r": "ten"})
	require.True(t, errors.As(err, &parse))
	require.Equal(t, "circle", parse.Element)
	require.Equal(t, "r", parse.Attribute)
	require.Equal(t, "ten", parse.Value)

	var unknown *UnknownElementError
	_, err = NewElement("text", nil)
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "text", unknown.Tag)
}

func TestNewElementIgnoresOtherAttributes(t *testing.T) {
	e, err := NewElement("circle", map[string]string{
		"id": "c", "cx": "1", "cy": "2", "r": "3", "fill": "red", "d": "nonsense",
	})
	require.NoError(t, err)
	require.Equal(t, &Circle{ID: "c", Cx: 1, Cy: 2, R: 3}, e)
}

func TestTessellateIdempotent(t *testing.T) {
	e, err := NewElement("rect", map[string]string{"x": "1", "y": "1", "width": "20", "height": "10", "rx": "3"})
	require.NoError(t, err)
	a, err := e.Tessellate()
	require.NoError(t, err)
	b, err := e.Tessellate()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestKind(t *testing.T) {
	for k := KindRect; k <= KindPath; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		require.Equal(t, k, got)
		require.Contains(t, ValidAttributes(k), "id")
	}
	_, ok := ParseKind("g")
	require.False(t, ok)
}

func TestSegments(t *testing.T) {
	lines := []Polyline{{{0, 0}, {1, 0}, {1, 1}}, {{5, 5}}, {{2, 2}, {3, 3}}}
	segs := Segments(lines)
	require.Equal(t, []Segment{
		{Point{0, 0}, Point{1, 0}},
		{Point{1, 0}, Point{1, 1}},
		{Point{2, 2}, Point{3, 3}},
	}, segs)
	require.Nil(t, Polyline{{1, 1}}.Segments())
}
