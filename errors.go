package svgpoly

import "fmt"

// ParseError is returned when an attribute value cannot be converted to
// numbers.
type ParseError struct {
	Element   string
	Attribute string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot parse %s=%q: %v", e.Element, e.Attribute, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: cannot parse %s=%q", e.Element, e.Attribute, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingAttributeError is returned when an element lacks an attribute its
// geometry needs, or the attribute holds too few values.
type MissingAttributeError struct {
	Element   string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing attribute %s", e.Element, e.Attribute)
}

// UnsupportedCommandError reports a path command letter outside m, l, h,
// v, c, q and z. Position is the index of the token in the path data.
type UnsupportedCommandError struct {
	Command  string
	Position int
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("path: unsupported command %q at token %d", e.Command, e.Position)
}

// UnknownElementError is returned by NewElement for tags that are not
// one of the supported shape kinds.
type UnknownElementError struct {
	Tag string
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element <%s>", e.Tag)
}
