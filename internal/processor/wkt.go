package processor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"

	"github.com/rs/zerolog/log"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// maxLineSize bounds a single WKT record.
const maxLineSize = 16 << 20

// ReadWKT reads one WKT geometry per line and feeds each to b as a feature
// with no properties. Blank lines and lines starting with '#' are skipped.
// It returns the number of features added.
func ReadWKT(r io.Reader, b Builder) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count, line := 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		g, err := wkt.Unmarshal(text)
		if err != nil {
			// Scan still returns the partial last line once the reader fails
			if readErr := scanner.Err(); readErr != nil {
				return count, fmt.Errorf("read wkt: %w", readErr)
			}
			return count, &SyntaxError{Format: config.FormatWKT, Line: line, Reason: err.Error()}
		}

		kind, coords, err := wktCoordinates(g, line)
		if err != nil {
			return count, err
		}

		if err := addFeature(b, kind, coords, nil); err != nil {
			return count, err
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read wkt: %w", err)
	}

	log.Debug().Int("features", count).Int("lines", line).Msg("WKT input read")
	return count, nil
}

func wktCoordinates(g gogeom.T, line int) (geo.Kind, []geo.Coordinate, error) {
	switch t := g.(type) {
	case *gogeom.Point:
		if len(t.FlatCoords()) == 0 {
			return geo.Point, nil, nil
		}
		return geo.Point, []geo.Coordinate{{X: t.X(), Y: t.Y()}}, nil

	case *gogeom.LineString:
		return geo.LineString, toCoordinates(t.Coords()), nil

	case *gogeom.Polygon:
		if t.NumLinearRings() == 0 {
			return geo.Polygon, nil, nil
		}
		if t.NumLinearRings() > 1 {
			log.Warn().Int("line", line).Int("rings", t.NumLinearRings()).Msg("Interior rings dropped, keeping exterior ring")
		}
		return geo.Polygon, toCoordinates(t.LinearRing(0).Coords()), nil
	}

	return 0, nil, &SyntaxError{
		Format: config.FormatWKT,
		Line:   line,
		Reason: fmt.Sprintf("unsupported geometry %T", g),
	}
}

func toCoordinates(coords []gogeom.Coord) []geo.Coordinate {
	out := make([]geo.Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, geo.Coordinate{X: c.X(), Y: c.Y()})
	}
	return out
}
