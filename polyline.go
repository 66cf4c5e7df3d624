package svgpoly

import (
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
)

// PolyLine is a set of connected line segments given by its points attribute.
type PolyLine struct {
	ID     string
	Style  string
	Points string
}

func (p *PolyLine) Kind() Kind        { return KindPolyline }
func (p *PolyLine) ElementID() string { return p.ID }

// Tessellate implements the Node interface.
func (p *PolyLine) Tessellate() ([]Polyline, error) {
	pts, err := parsePoints(KindPolyline.String(), p.Points)
	if err != nil {
		return nil, err
	}
	return []Polyline{pts}, nil
}

// Polygon is a PolyLine that is closed back to its first point.
type Polygon struct {
	ID     string
	Style  string
	Points string
}

func (p *Polygon) Kind() Kind        { return KindPolygon }
func (p *Polygon) ElementID() string { return p.ID }

// Tessellate implements the Node interface.
func (p *Polygon) Tessellate() ([]Polyline, error) {
	pts, err := parsePoints(KindPolygon.String(), p.Points)
	if err != nil {
		return nil, err
	}
	return []Polyline{PolygonPolyline(pts)}, nil
}

// PolygonPolyline returns pts followed by a copy of its first point.
// pts needs at least one point; for an empty slice the result is nil.
func PolygonPolyline(pts []Point) Polyline {
	if len(pts) == 0 {
		return nil
	}
	pl := make(Polyline, 0, len(pts)+1)
	pl = append(pl, pts...)
	return append(pl, pts[0])
}

// ParsePoints reads a points attribute: numbers separated by commas
// and/or whitespace, taken pairwise as x,y. A trailing unpaired number is
// dropped.
func ParsePoints(s string) (Polyline, error) {
	return parsePoints(KindPolyline.String(), s)
}

func parsePoints(element, s string) (Polyline, error) {
	nums, err := lexNumbers(element, s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		Logger().Warn("odd number of coordinates in point list, dropping the last one",
			"element", element, "count", len(nums))
	}
	if len(nums) < 2 {
		return nil, &MissingAttributeError{Element: element, Attribute: "points"}
	}

	pl := make(Polyline, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pl = append(pl, Point{nums[i], nums[i+1]})
	}
	return pl, nil
}

// lexNumbers returns every number in s. Whitespace and commas separate
// numbers; any other item, and input the lexer stops short of, is a
// ParseError.
func lexNumbers(element, s string) ([]float64, error) {
	s = normalizePoints(s)
	l, items := gl.Lex(element, s)
	defer func() {
		for range items {
		}
	}()

	var all []gl.Item
	for {
		i := l.NextItem()
		if i.Type == gl.ItemEOS {
			break
		}
		all = append(all, i)
		if i.Type == gl.ItemError {
			break
		}
	}

	var (
		nums     []float64
		consumed int
	)
	for k := 0; k < len(all); k++ {
		i := all[k]
		consumed += len(i.Value)
		switch i.Type {
		case gl.ItemWSP, gl.ItemComma:
		case gl.ItemNumber:
			v := i.Value
			if exp, n := exponent(all[k+1:]); n > 0 {
				v += exp
				for _, e := range all[k+1 : k+1+n] {
					consumed += len(e.Value)
				}
				k += n
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &ParseError{Element: element, Attribute: "points", Value: v, Err: err}
			}
			nums = append(nums, f)
		default:
			return nil, &ParseError{Element: element, Attribute: "points", Value: i.Value}
		}
	}
	if consumed < len(s) {
		return nil, &ParseError{Element: element, Attribute: "points", Value: s[consumed:]}
	}
	return nums, nil
}

// exponent recognises an upper-case exponent, which the lexer splits into
// the letter E and a number. It returns the exponent text and the number
// of items it spans.
func exponent(items []gl.Item) (string, int) {
	if len(items) < 2 || items[0].Type != gl.ItemLetter || items[1].Type != gl.ItemNumber {
		return "", 0
	}
	if items[0].Value != "E" && items[0].Value != "e" {
		return "", 0
	}
	return "e" + items[1].Value, 2
}

// normalizePoints turns the whitespace the lexer does not know into
// spaces and gives numbers written as ".5" a leading zero.
func normalizePoints(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\r' || c == '\f':
			c = ' '
		case c == '.' && (i == 0 || s[i-1] < '0' || s[i-1] > '9'):
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}
