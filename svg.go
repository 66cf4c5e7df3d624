package svgpoly

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"runtime"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
)

// Svg represents an SVG document: its title and its top level shape
// elements and groups, in document order.
type Svg struct {
	Title     string
	Elements  []Node
	Name      string
	Transform *mt.Transform
	scale     float64
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID       string
	Elements []Node
	Parent   *Group
}

// Options controls how a document is turned into polylines.
type Options struct {
	// Hidden lists element ids to leave out. Hiding a group hides
	// everything inside it.
	Hidden []string
	// Workers bounds the number of elements tessellated at once.
	// Zero means runtime.NumCPU().
	Workers int
}

// ElementID implements the Node interface.
func (g *Group) ElementID() string { return g.ID }

// Tessellate implements the Node interface. It returns the polylines of
// every element in the group, in order.
func (g *Group) Tessellate() ([]Polyline, error) {
	var out []Polyline
	for _, n := range g.Elements {
		pls, err := n.Tessellate()
		if err != nil {
			return nil, err
		}
		out = append(out, pls...)
	}
	return out, nil
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "id" {
			g.ID = attr.Value
		}
	}
	var err error
	g.Elements, err = decodeChildren(decoder, g, nil)
	return err
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return fmt.Errorf("root element is <%s>, not <svg>", start.Name.Local)
	}
	var err error
	s.Elements, err = decodeChildren(decoder, nil, s)
	return err
}

// decodeChildren reads the children of the current element up to its end
// tag. Only the root passes a non-nil svg, which receives the title.
func decodeChildren(decoder *xml.Decoder, parent *Group, svg *Svg) ([]Node, error) {
	var nodes []Node
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch name := tok.Name.Local; {
			case name == "g":
				g := &Group{Parent: parent}
				if err = decoder.DecodeElement(g, &tok); err != nil {
					return nil, fmt.Errorf("error decoding group element: %w", err)
				}
				nodes = append(nodes, g)
			case name == "title" && svg != nil:
				if err = decoder.DecodeElement(&svg.Title, &tok); err != nil {
					return nil, fmt.Errorf("error decoding title: %w", err)
				}
			default:
				if _, ok := ParseKind(name); !ok {
					Logger().Debug("skipping unsupported element", "tag", name)
					if err = decoder.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				e, err := NewElement(name, attrMap(tok.Attr))
				if err != nil {
					return nil, fmt.Errorf("error decoding <%s>: %w", name, err)
				}
				if err = decoder.Skip(); err != nil {
					return nil, err
				}
				nodes = append(nodes, e)
			}

		case xml.EndElement:
			return nodes, nil
		}
	}
}

// attrMap keeps the attributes without a namespace prefix.
func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "" {
			m[a.Name.Local] = a.Value
		}
	}
	return m
}

func newSvg(name string, scale float64) *Svg {
	svg := &Svg{Name: name, Transform: mt.NewTransform()}
	if scale > 0 {
		svg.Transform.Scale(scale, scale)
		svg.scale = scale
	}
	if scale < 0 {
		svg.Transform.Scale(1.0/-scale, 1.0/-scale)
		svg.scale = 1.0 / -scale
	}
	return svg
}

// ParseSvg parses an SVG string into an SVG struct. A positive scale
// multiplies every output coordinate, a negative one divides by its
// magnitude and zero leaves coordinates untouched.
func ParseSvg(str string, name string, scale float64) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, scale)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string, scale float64) (*Svg, error) {
	svg := newSvg(name, scale)
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %w", err)
	}
	return svg, nil
}

// Visible returns the shape elements of the document in document order,
// leaving out the hidden ids and everything inside hidden groups.
func (s *Svg) Visible(hidden ...string) []Element {
	skip := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		skip[id] = true
	}

	var out []Element
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if id := n.ElementID(); id != "" && skip[id] {
				continue
			}
			switch n := n.(type) {
			case *Group:
				walk(n.Elements)
			case Element:
				out = append(out, n)
			}
		}
	}
	walk(s.Elements)
	return out
}

// Polylines tessellates every visible element and returns the polylines
// in document order, scaled by the document transform. Elements are
// processed concurrently; the first error stops the rest and is returned.
func (s *Svg) Polylines(ctx context.Context, opts Options) ([]Polyline, error) {
	elems := s.Visible(opts.Hidden...)
	results := make([][]Polyline, len(elems))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range elems {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pls, err := e.Tessellate()
			if err != nil {
				return fmt.Errorf("%s %q: %w", e.Kind(), e.ElementID(), err)
			}
			results[i] = s.transform(pls)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Polyline
	for _, pls := range results {
		out = append(out, pls...)
	}
	return out, nil
}

// Segments returns the straight segments of every visible element, in
// drawing order.
func (s *Svg) Segments(ctx context.Context, opts Options) ([]Segment, error) {
	lines, err := s.Polylines(ctx, opts)
	if err != nil {
		return nil, err
	}
	return Segments(lines), nil
}

func (s *Svg) transform(pls []Polyline) []Polyline {
	if s.scale == 0 || s.Transform == nil {
		return pls
	}
	for _, pl := range pls {
		for i, p := range pl {
			x, y := s.Transform.Apply(p.X, p.Y)
			pl[i] = Point{x, y}
		}
	}
	return pls
}
