package geo

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	collectionHeader = "{\n\"type\": \"FeatureCollection\",\n\"features\": ["
	collectionFooter = "]\n}\n"

	// DefaultPrecision is the number of fractional digits written per coordinate.
	DefaultPrecision = 6
	// MaxPrecision is the most fractional digits that still carry float64 detail.
	MaxPrecision = 17
)

// Encoder writes a FeatureCollection as GeoJSON text in a single forward pass.
// Output is buffered and flushed once the document is complete.
type Encoder struct {
	w         *bufio.Writer
	err       error
	scratch   []byte
	precision int
}

// EncodeOption configures an Encoder.
type EncodeOption func(*Encoder)

// WithPrecision sets the number of fractional digits for coordinates.
// A negative value writes the shortest fixed-point form that round-trips.
func WithPrecision(n int) EncodeOption {
	return func(e *Encoder) {
		e.precision = n
	}
}

// NewEncoder returns an Encoder writing to w. The caller owns w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{
		w:         bufio.NewWriter(w),
		scratch:   make([]byte, 0, 64),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes fc as a complete FeatureCollection document. It stops at the
// first sink failure and returns it as *WriteError; fc is left untouched.
func (e *Encoder) Encode(fc *FeatureCollection) error {
	if fc.destroyed {
		return ErrDestroyed
	}
	if e.err != nil {
		return e.err
	}

	e.str(collectionHeader)
	_ = fc.features.each(&fc.list, func(pos int, _ ref, f *feature) error {
		if pos > 1 {
			e.str(",\n")
		}
		e.feature(fc, f)
		return e.err
	})
	e.str(collectionFooter)

	return e.flush()
}

// EncodeFeature writes the single feature f as a standalone JSON object.
func (e *Encoder) EncodeFeature(fc *FeatureCollection, f FeatureID) error {
	feat, err := fc.feature(f)
	if err != nil {
		return err
	}
	if e.err != nil {
		return e.err
	}

	e.feature(fc, feat)
	return e.flush()
}

// MarshalFeature renders f as a standalone JSON object string.
func MarshalFeature(fc *FeatureCollection, f FeatureID, opts ...EncodeOption) (string, error) {
	var sb strings.Builder
	if err := NewEncoder(&sb, opts...).EncodeFeature(fc, f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Encoder) feature(fc *FeatureCollection, f *feature) {
	geom := fc.geometries.get(ref(f.geom))
	seq := fc.propSeqs.get(ref(f.props))

	e.str("{\n\"type\": \"Feature\",\n\"geometry\": {\n\"type\": \"")
	e.str(geom.kind.String())
	e.str("\",\n\"coordinates\": ")
	e.coordinates(fc, geom)
	e.str("\n},\n\"properties\": {")
	e.properties(fc, seq)
	e.str("}\n}")
}

func (e *Encoder) coordinates(fc *FeatureCollection, g *geometry) {
	if g.kind == Point && g.coords.count == 1 {
		c := fc.coords.get(g.coords.head)
		e.str("[\n")
		e.position(c)
		e.str("]")
		return
	}

	open, closing := "[", "]"
	if g.kind == Polygon {
		open, closing = "[[", "]]"
	}

	e.str(open)
	_ = fc.coords.each(&g.coords, func(pos int, _ ref, c *Coordinate) error {
		if pos == 1 {
			e.str("\n[")
		} else {
			e.str(",\n[")
		}
		e.position(c)
		e.str("]")
		return e.err
	})
	e.str(closing)
}

func (e *Encoder) properties(fc *FeatureCollection, p *properties) {
	_ = fc.props.each(&p.items, func(pos int, _ ref, prop *Property) error {
		if pos == 1 {
			e.str("\n")
		} else {
			e.str(",\n")
		}
		e.scratch = appendQuoted(e.scratch[:0], prop.Name)
		e.scratch = append(e.scratch, ": "...)
		e.scratch = appendQuoted(e.scratch, prop.Value)
		e.bytes(e.scratch)
		return e.err
	})
}

func (e *Encoder) position(c *Coordinate) {
	e.scratch = appendNumber(e.scratch[:0], c.X, e.precision)
	e.scratch = append(e.scratch, ", "...)
	e.scratch = appendNumber(e.scratch, c.Y, e.precision)
	e.bytes(e.scratch)
}

func (e *Encoder) str(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = &WriteError{Err: err}
	}
}

func (e *Encoder) bytes(b []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = &WriteError{Err: err}
	}
}

func (e *Encoder) flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = &WriteError{Err: err}
	}
	return e.err
}

// appendNumber writes v in fixed-point notation. JSON has no NaN or
// infinity, so those become null.
func appendNumber(b []byte, v float64, precision int) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(b, "null"...)
	}
	return strconv.AppendFloat(b, v, 'f', precision, 64)
}

const hex = "0123456789abcdef"

// appendQuoted writes s as a JSON string literal.
func appendQuoted(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				b = append(b, '\\', c)
			case c == '\n':
				b = append(b, '\\', 'n')
			case c == '\r':
				b = append(b, '\\', 'r')
			case c == '\t':
				b = append(b, '\\', 't')
			case c < 0x20:
				b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			default:
				b = append(b, c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, "\ufffd"...)
		} else {
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return append(b, '"')
}
