package processor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlInput = `features:
  - type: Polygon
    coordinates:
      - [100, 50]
      - [101, 51]
      - [102, 52]
      - [100, 50]
    properties:
      .nomenclature: true
  - type: Point
    coordinates: [200, 201]
    properties:
      .smd: true
      .bga: "true"
      symbol: r100.0
  - type: LineString
    coordinates: [[300, 80], [301, 81], [302, 82], [303, 83]]
    properties:
      .sliver_fill: true
`

const wktInput = `# comment
POINT (200 201)

LINESTRING (300 80, 301 81)
POLYGON ((0 0, 1 0, 1 1, 0 0), (0.2 0.2, 0.3 0.2, 0.3 0.3, 0.2 0.2))
POINT EMPTY
`

func collect(t *testing.T, read ReadFunc, input string) (*geo.FeatureCollection, int, error) {
	t.Helper()
	fc, err := geo.NewFeatureCollection()
	require.NoError(t, err)
	t.Cleanup(fc.Destroy)

	n, err := read(strings.NewReader(input), fc)
	return fc, n, err
}

func TestReadYAML(t *testing.T) {
	fc, n, err := collect(t, ReadYAML, yamlInput)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Equal(t, 3, fc.Len())

	features := fc.Features()

	g, err := fc.Geometry(features[1])
	require.NoError(t, err)
	kind, err := fc.Kind(g)
	require.NoError(t, err)
	assert.Equal(t, geo.Point, kind)

	coords, err := fc.Coordinates(g)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{{X: 200, Y: 201}}, coords)

	p, err := fc.FeatureProperties(features[1])
	require.NoError(t, err)
	props, err := fc.Properties(p)
	require.NoError(t, err)
	assert.Equal(t, []geo.Property{
		{Name: ".smd", Value: "true"},
		{Name: ".bga", Value: "true"},
		{Name: "symbol", Value: "r100.0"},
	}, props)

	g, err = fc.Geometry(features[2])
	require.NoError(t, err)
	coords, err = fc.Coordinates(g)
	require.NoError(t, err)
	assert.Len(t, coords, 4)
}

func TestReadYAMLRings(t *testing.T) {
	input := "features:\n  - type: Polygon\n    coordinates: [[[0, 0], [1, 0], [1, 1], [0, 0]], [[0.2, 0.2], [0.3, 0.3], [0.2, 0.2]]]\n    properties: ~\n"
	fc, _, err := collect(t, ReadYAML, input)
	require.NoError(t, err)

	g, err := fc.Geometry(fc.Features()[0])
	require.NoError(t, err)
	coords, err := fc.Coordinates(g)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}, coords)
}

func TestReadYAMLEmptyRing(t *testing.T) {
	fc, n, err := collect(t, ReadYAML, "features:\n  - type: Polygon\n    coordinates: [[]]\n")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	g, err := fc.Geometry(fc.Features()[0])
	require.NoError(t, err)
	kind, err := fc.Kind(g)
	require.NoError(t, err)
	coords, err := fc.Coordinates(g)
	require.NoError(t, err)
	assert.Equal(t, geo.Polygon, kind)
	assert.Empty(t, coords)
}

func TestReadYAMLErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		line   int
	}{
		{"unknown type", "features:\n  - type: MultiPoint\n", "unsupported geometry type", 2},
		{"short position", "features:\n  - type: Point\n    coordinates: [1]\n", "exactly 2 values", 3},
		{"scalar coordinates", "features:\n  - type: Point\n    coordinates: 5\n", "must be a sequence", 3},
		{"nested property", "features:\n  - type: Point\n    properties:\n      a: {b: c}\n", "must be a scalar", 4},
		{"bad yaml", "features: [\n", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := collect(t, ReadYAML, tt.input)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, config.FormatYAML, syntaxErr.Format)
			assert.Contains(t, syntaxErr.Reason, tt.reason)
			if tt.line > 0 {
				assert.Equal(t, tt.line, syntaxErr.Line)
			}
		})
	}
}

func TestReadYAMLEmpty(t *testing.T) {
	fc, n, err := collect(t, ReadYAML, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, fc.IsEmpty())
}

func TestReadWKT(t *testing.T) {
	fc, n, err := collect(t, ReadWKT, wktInput)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	want := []struct {
		kind   geo.Kind
		coords int
	}{
		{geo.Point, 1},
		{geo.LineString, 2},
		{geo.Polygon, 4},
		{geo.Point, 0},
	}

	for i, f := range fc.Features() {
		g, err := fc.Geometry(f)
		require.NoError(t, err)
		kind, err := fc.Kind(g)
		require.NoError(t, err)
		coords, err := fc.Coordinates(g)
		require.NoError(t, err)

		assert.Equal(t, want[i].kind, kind)
		assert.Len(t, coords, want[i].coords)
	}
}

func TestReadWKTErrors(t *testing.T) {
	_, n, err := collect(t, ReadWKT, "POINT (1 2)\nPOINT (1\n")
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 2, syntaxErr.Line)
	assert.Equal(t, 1, n)

	_, _, err = collect(t, ReadWKT, "MULTIPOINT ((1 2), (3 4))\n")
	require.ErrorAs(t, err, &syntaxErr)
	assert.Contains(t, syntaxErr.Reason, "unsupported geometry")
}

func TestConvert(t *testing.T) {
	var buf bytes.Buffer
	n, err := Convert(strings.NewReader(yamlInput), &buf, Options{Format: config.FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, [][][]float64{{{100, 50}, {101, 51}, {102, 52}, {100, 50}}}, fc.Features[0].Geometry.Polygon)
	assert.Equal(t, []float64{200, 201}, fc.Features[1].Geometry.Point)
	assert.Equal(t, "r100.0", fc.Features[1].Properties["symbol"])
	assert.Len(t, fc.Features[2].Geometry.LineString, 4)
}

func TestConvertMinify(t *testing.T) {
	var pretty, compact bytes.Buffer
	_, err := Convert(strings.NewReader(wktInput), &pretty, Options{Format: config.FormatWKT})
	require.NoError(t, err)
	_, err = Convert(strings.NewReader(wktInput), &compact, Options{Format: config.FormatWKT, Minify: true})
	require.NoError(t, err)

	assert.Less(t, compact.Len(), pretty.Len())
	assert.NotContains(t, strings.TrimSpace(compact.String()), "\n")

	var a, b any
	require.NoError(t, json.Unmarshal(pretty.Bytes(), &a))
	require.NoError(t, json.Unmarshal(compact.Bytes(), &b))
	assert.Equal(t, a, b)
}

func TestConvertReadFailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	_, err := Convert(strings.NewReader("features:\n  - type: Circle\n"), &buf, Options{Format: config.FormatYAML})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())

	_, err = Convert(strings.NewReader(""), &buf, Options{Format: "shp"})
	assert.ErrorContains(t, err, "unknown input format")
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wkt")
	out := filepath.Join(dir, "out.geojson")
	require.NoError(t, os.WriteFile(in, []byte(wktInput), 0644))

	n, err := ConvertFile(in, out, Options{Format: config.FormatWKT, Encode: []geo.EncodeOption{geo.WithPrecision(1)}})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[\n200.0, 201.0]")
	assert.True(t, json.Valid(data))

	_, err = ConvertFile(filepath.Join(dir, "absent.wkt"), out, Options{Format: config.FormatWKT})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ConvertFile(in, filepath.Join(dir, "missing", "out.geojson"), Options{Format: config.FormatWKT})
	assert.Error(t, err)
}

func TestReadWKTReadFailureOnTruncatedLine(t *testing.T) {
	errCut := errors.New("connection cut")
	r := io.MultiReader(strings.NewReader("POINT (1 2)\nPOINT (3"), iotest.ErrReader(errCut))

	fc, err := geo.NewFeatureCollection()
	require.NoError(t, err)
	defer fc.Destroy()

	// the scanner still yields "POINT (3" before reporting the read error
	n, err := ReadWKT(r, fc)
	assert.ErrorIs(t, err, errCut)
	var syntaxErr *SyntaxError
	assert.False(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, n)
}
