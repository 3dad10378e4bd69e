package geo

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// fmt reports template problems inline, e.g. "%!d(string=x)" or "%!(EXTRA int=1)".
var badVerb = regexp.MustCompile(`%!(?:[a-zA-Z]?\([^)]*\)|\((?:EXTRA|NOVERB|BADWIDTH|BADPREC|BADINDEX)[^)]*\))`)

type lengthCounter int

func (c *lengthCounter) Write(p []byte) (int, error) {
	*c += lengthCounter(len(p))
	return len(p), nil
}

// Format renders template with args into a string allocated at its exact
// final size. Templates that fmt cannot apply to args yield a *FormatError.
// Argument text is never inspected, so values containing "%!" pass through.
func Format(template string, args ...any) (string, error) {
	if err := checkTemplate(template, args); err != nil {
		return "", err
	}

	var n lengthCounter
	if _, err := fmt.Fprintf(&n, template, args...); err != nil {
		return "", &FormatError{Template: template, Reason: err.Error()}
	}

	var sb strings.Builder
	sb.Grow(int(n))
	if _, err := fmt.Fprintf(&sb, template, args...); err != nil {
		return "", &FormatError{Template: template, Reason: err.Error()}
	}

	return sb.String(), nil
}

// checkTemplate renders template against zero values of the argument types
// with literal "%%" removed, so any "%!" left in the result is fmt's own
// report of a bad verb, a type mismatch or a missing or extra argument.
func checkTemplate(template string, args []any) error {
	zeros := make([]any, len(args))
	for i, arg := range args {
		if arg != nil {
			zeros[i] = reflect.Zero(reflect.TypeOf(arg)).Interface()
		}
	}

	check := fmt.Sprintf(strings.ReplaceAll(template, "%%", ""), zeros...)
	if m := badVerb.FindString(check); m != "" {
		return &FormatError{Template: template, Reason: m}
	}
	return nil
}

// Header returns the opening of a FeatureCollection document, up to and
// including the "[" of the features array.
func Header() (string, error) {
	return Format("%s", collectionHeader)
}

// Footer returns the closing of a FeatureCollection document.
func Footer() (string, error) {
	return Format("%s", collectionFooter)
}

// PointFeature returns a one-line Feature string for a single position.
func PointFeature(x, y float64) (string, error) {
	return Format(`{"type": "Feature", "geometry": {"type": "Point", "coordinates": [%.6f, %.6f]}, "properties": {}}`, x, y)
}

// LineStringFeature returns a one-line Feature string for coords.
func LineStringFeature(coords []Coordinate) (string, error) {
	positions, err := formatPositions(coords)
	if err != nil {
		return "", err
	}
	return Format(`{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [%s]}, "properties": {}}`, positions)
}

// PolygonFeature returns a one-line Feature string for a polygon with the
// single ring ring.
func PolygonFeature(ring []Coordinate) (string, error) {
	positions, err := formatPositions(ring)
	if err != nil {
		return "", err
	}
	return Format(`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[%s]]}, "properties": {}}`, positions)
}

func formatPositions(coords []Coordinate) (string, error) {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		p, err := Format("[%.6f, %.6f]", c.X, c.Y)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", "), nil
}
