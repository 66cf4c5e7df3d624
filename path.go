package svgpoly

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is an SVG path element
type Path struct {
	ID    string
	Style string
	D     string
}

func (p *Path) Kind() Kind        { return KindPath }
func (p *Path) ElementID() string { return p.ID }

// Tessellate implements the Node interface. A path yields one polyline
// per subpath.
func (p *Path) Tessellate() ([]Polyline, error) {
	return Interpret(p.D)
}

// pathCommands are the supported commands. Upper-case letters are
// accepted as aliases of the same lower-case command.
const pathCommands = "mlhvcqz"

// pathParam is one whitespace-separated parameter group, e.g. "10,-5".
type pathParam struct {
	tok  string
	vals []float64
}

// pathDescriptionParser holds the state of a single Interpret call.
type pathDescriptionParser struct {
	current   Point
	start     Point
	command   byte
	segment   Polyline
	polylines []Polyline
}

// Interpret flattens path data into one polyline per subpath.
//
// Every coordinate is a delta added to the current point, whatever the
// case of the command letter: M, L, H, V, C and Q behave exactly like m,
// l, h, v, c and q. Cubic and quadratic curves are sampled at 11 evenly
// spaced parameters each, endpoints included.
//
// The data is split on whitespace. A lone letter is a command; a letter
// glued to the number that follows it is split off first. Other tokens
// are comma separated numbers. The stream begins in an implicit moveto,
// and a leading command letter, whichever it is, opens that moveto. Data
// that starts with numbers instead of a letter uses them as that
// moveto's coordinates, so "10,10 l 1,1" starts at (10,10).
func Interpret(d string) ([]Polyline, error) {
	toks := tokenizePath(d)
	if len(toks) == 0 {
		return nil, &MissingAttributeError{Element: KindPath.String(), Attribute: "d"}
	}

	pdp := &pathDescriptionParser{command: 'm'}
	var params []pathParam

	first := 0
	if isCommandToken(toks[0]) {
		if _, err := parseCommand(toks[0], 0); err != nil {
			return nil, err
		}
		first = 1
	}

	for i := first; i < len(toks); i++ {
		tok := toks[i]
		if isCommandToken(tok) {
			cmd, err := parseCommand(tok, i)
			if err != nil {
				return nil, err
			}
			if err := pdp.execute(params); err != nil {
				return nil, err
			}
			pdp.command = cmd
			params = nil
			continue
		}

		p, err := parseParam(tok)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	if err := pdp.execute(params); err != nil {
		return nil, err
	}
	pdp.polylines = append(pdp.polylines, pdp.segment)
	return pdp.polylines, nil
}

func tokenizePath(d string) []string {
	fields := strings.Fields(d)
	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 && isLetter(f[0]) {
			toks = append(toks, f[:1], f[1:])
			continue
		}
		toks = append(toks, f)
	}
	return toks
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isCommandToken(tok string) bool {
	return len(tok) == 1 && isLetter(tok[0])
}

func parseCommand(tok string, pos int) (byte, error) {
	c := tok[0] | 0x20
	if strings.IndexByte(pathCommands, c) < 0 {
		return 0, &UnsupportedCommandError{Command: tok, Position: pos}
	}
	return c, nil
}

func parseParam(tok string) (pathParam, error) {
	parts := strings.Split(tok, ",")
	p := pathParam{tok: tok, vals: make([]float64, len(parts))}
	for i, s := range parts {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, &ParseError{Element: KindPath.String(), Attribute: "d", Value: tok, Err: err}
		}
		p.vals[i] = f
	}
	return p, nil
}

func (pdp *pathDescriptionParser) execute(params []pathParam) error {
	switch pdp.command {
	case 'm':
		return pdp.moveTo(params)
	case 'z':
		pdp.closePath()
	case 'l':
		return pdp.lineTo(params)
	case 'h':
		return pdp.axisLineTo(params, true)
	case 'v':
		return pdp.axisLineTo(params, false)
	case 'c':
		return pdp.curveTo(params)
	case 'q':
		return pdp.quadTo(params)
	}
	return nil
}

// moveTo starts a new subpath. Every pair is accumulated, so with several
// pairs only the last position becomes the subpath start and gets a point.
func (pdp *pathDescriptionParser) moveTo(params []pathParam) error {
	deltas, err := pdp.pairs(params)
	if err != nil {
		return err
	}
	if len(pdp.segment) > 0 {
		pdp.polylines = append(pdp.polylines, pdp.segment)
	}
	pdp.segment = nil
	for _, d := range deltas {
		pdp.current = pdp.current.add(d)
		pdp.start = pdp.current
	}
	pdp.segment = append(pdp.segment, pdp.current)
	return nil
}

func (pdp *pathDescriptionParser) closePath() {
	pdp.current = pdp.start
	pdp.segment = append(pdp.segment, pdp.start)
}

func (pdp *pathDescriptionParser) lineTo(params []pathParam) error {
	deltas, err := pdp.pairs(params)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		pdp.current = pdp.current.add(d)
		pdp.segment = append(pdp.segment, pdp.current)
	}
	return nil
}

// axisLineTo handles h and v. Only the final position is added to the
// polyline.
func (pdp *pathDescriptionParser) axisLineTo(params []pathParam, horizontal bool) error {
	for _, p := range params {
		if len(p.vals) != 1 {
			return pdp.arityError(p, 1)
		}
		if horizontal {
			pdp.current.X += p.vals[0]
		} else {
			pdp.current.Y += p.vals[0]
		}
	}
	pdp.segment = append(pdp.segment, pdp.current)
	return nil
}

// curveTo handles c. Parameters come in triples of control point 1,
// control point 2 and end point, all relative to the start of the curve.
func (pdp *pathDescriptionParser) curveTo(params []pathParam) error {
	deltas, err := pdp.pairs(params)
	if err != nil {
		return err
	}
	p0 := pdp.current
	for j := 0; j+3 <= len(deltas); j += 3 {
		var cb cubicBezier
		cb.controlpoints[0] = p0
		cb.controlpoints[1] = p0.add(deltas[j])
		cb.controlpoints[2] = p0.add(deltas[j+1])
		cb.controlpoints[3] = p0.add(deltas[j+2])
		pdp.segment = cb.sample(pdp.segment, curveSamples)
		p0 = cb.controlpoints[3]
	}
	if r := len(deltas) % 3; r != 0 {
		pdp.warnIncomplete(r)
	}
	pdp.current = p0
	return nil
}

// quadTo handles q. Parameters come in pairs of control point and end
// point, relative to the start of the curve.
func (pdp *pathDescriptionParser) quadTo(params []pathParam) error {
	deltas, err := pdp.pairs(params)
	if err != nil {
		return err
	}
	p0 := pdp.current
	for j := 0; j+2 <= len(deltas); j += 2 {
		var qb quadraticBezier
		qb.controlpoints[0] = p0
		qb.controlpoints[1] = p0.add(deltas[j])
		qb.controlpoints[2] = p0.add(deltas[j+1])
		pdp.segment = qb.sample(pdp.segment, curveSamples)
		p0 = qb.controlpoints[2]
	}
	if r := len(deltas) % 2; r != 0 {
		pdp.warnIncomplete(r)
	}
	pdp.current = p0
	return nil
}

func (pdp *pathDescriptionParser) pairs(params []pathParam) ([]Point, error) {
	pts := make([]Point, len(params))
	for i, p := range params {
		if len(p.vals) != 2 {
			return nil, pdp.arityError(p, 2)
		}
		pts[i] = Point{p.vals[0], p.vals[1]}
	}
	return pts, nil
}

func (pdp *pathDescriptionParser) arityError(p pathParam, want int) error {
	return &ParseError{
		Element:   KindPath.String(),
		Attribute: "d",
		Value:     p.tok,
		Err:       fmt.Errorf("command %c takes %d values per group, got %d", pdp.command, want, len(p.vals)),
	}
}

func (pdp *pathDescriptionParser) warnIncomplete(left int) {
	Logger().Warn("incomplete curve parameters ignored",
		"command", string(pdp.command), "pairs", left)
}
