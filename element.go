package svgpoly

import (
	"strconv"
	"strings"
)

// Kind identifies one of the supported SVG shape elements.
type Kind int

// These are the element kinds NewElement knows how to build.
const (
	KindRect Kind = iota
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindPath
)

var kindNames = [...]string{
	KindRect:     "rect",
	KindCircle:   "circle",
	KindEllipse:  "ellipse",
	KindLine:     "line",
	KindPolyline: "polyline",
	KindPolygon:  "polygon",
	KindPath:     "path",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the kind for an SVG tag name.
func ParseKind(tag string) (Kind, bool) {
	for k, name := range kindNames {
		if name == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// Node is anything in a document tree that can be turned into polylines.
type Node interface {
	ElementID() string
	Tessellate() ([]Polyline, error)
}

// Element is a decoded shape element. It is implemented by *Rect, *Circle,
// *Ellipse, *Line, *PolyLine, *Polygon and *Path only.
type Element interface {
	Node
	Kind() Kind
}

// validAttrs lists the attributes read for each kind; anything else an
// element carries is ignored.
var validAttrs = map[Kind][]string{
	KindRect:     {"id", "style", "x", "y", "width", "height", "rx", "ry"},
	KindCircle:   {"id", "style", "cx", "cy", "r"},
	KindEllipse:  {"id", "style", "cx", "cy", "rx", "ry"},
	KindLine:     {"id", "style", "x1", "y1", "x2", "y2"},
	KindPolyline: {"id", "style", "points"},
	KindPolygon:  {"id", "style", "points"},
	KindPath:     {"id", "style", "d"},
}

// ValidAttributes returns the attribute names read for elements of kind k.
func ValidAttributes(k Kind) []string {
	return append([]string(nil), validAttrs[k]...)
}

// NewElement builds the element for tag from its attributes. Attribute
// names are expected without namespace prefixes.
func NewElement(tag string, attrs map[string]string) (Element, error) {
	kind, ok := ParseKind(tag)
	if !ok {
		return nil, &UnknownElementError{Tag: tag}
	}

	r := attrReader{element: tag, attrs: make(map[string]string, len(validAttrs[kind]))}
	for _, name := range validAttrs[kind] {
		if v, ok := attrs[name]; ok {
			r.attrs[name] = v
		}
	}

	var e Element
	switch kind {
	case KindRect:
		e = r.rect()
	case KindCircle:
		e = &Circle{ID: r.attrs["id"], Style: r.attrs["style"],
			Cx: r.float("cx"), Cy: r.float("cy"), R: r.float("r")}
	case KindEllipse:
		e = &Ellipse{ID: r.attrs["id"], Style: r.attrs["style"],
			Cx: r.float("cx"), Cy: r.float("cy"), Rx: r.float("rx"), Ry: r.float("ry")}
	case KindLine:
		e = &Line{ID: r.attrs["id"], Style: r.attrs["style"],
			X1: r.float("x1"), Y1: r.float("y1"), X2: r.float("x2"), Y2: r.float("y2")}
	case KindPolyline:
		e = &PolyLine{ID: r.attrs["id"], Style: r.attrs["style"], Points: r.str("points")}
	case KindPolygon:
		e = &Polygon{ID: r.attrs["id"], Style: r.attrs["style"], Points: r.str("points")}
	case KindPath:
		e = &Path{ID: r.attrs["id"], Style: r.attrs["style"], D: r.str("d")}
	}
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}

// attrReader keeps the first error so element construction reads like a
// plain list of field assignments.
type attrReader struct {
	element string
	attrs   map[string]string
	err     error
}

func (r *attrReader) str(name string) string {
	v, ok := r.attrs[name]
	if !ok && r.err == nil {
		r.err = &MissingAttributeError{Element: r.element, Attribute: name}
	}
	return v
}

func (r *attrReader) float(name string) float64 {
	f, ok := r.optFloat(name)
	if !ok && r.err == nil {
		r.err = &MissingAttributeError{Element: r.element, Attribute: name}
	}
	return f
}

// optFloat reports whether the attribute is present. A present but
// malformed value records a ParseError.
func (r *attrReader) optFloat(name string) (float64, bool) {
	v, ok := r.attrs[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		if r.err == nil {
			r.err = &ParseError{Element: r.element, Attribute: name, Value: v, Err: err}
		}
		return 0, true
	}
	return f, true
}

func (r *attrReader) rect() *Rect {
	rc := &Rect{ID: r.attrs["id"], Style: r.attrs["style"]}
	rc.X, _ = r.optFloat("x")
	rc.Y, _ = r.optFloat("y")
	rc.Width = r.float("width")
	rc.Height = r.float("height")

	rx, hasRx := r.optFloat("rx")
	ry, hasRy := r.optFloat("ry")
	switch {
	case hasRx && !hasRy:
		ry = rx
	case hasRy && !hasRx:
		rx = ry
	}
	rc.Rx, rc.Ry = rx, ry
	return rc
}
