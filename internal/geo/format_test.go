package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	out, err := Format("[%.6f, %.6f] %s", 1.5, -2.0, "ok")
	require.NoError(t, err)
	assert.Equal(t, "[1.500000, -2.000000] ok", out)

	out, err = Format("100%% literal")
	require.NoError(t, err)
	assert.Equal(t, "100% literal", out)
}

func TestFormatPassesArgumentText(t *testing.T) {
	tests := []struct {
		template string
		args     []any
		want     string
	}{
		{"%s", []any{"100%!d(x) raw"}, "100%!d(x) raw"},
		{"name=%s", []any{"%!(EXTRA)"}, "name=%!(EXTRA)"},
		{"%v|%q", []any{"%!s(MISSING)", "%!(NOVERB)"}, `%!s(MISSING)|"%!(NOVERB)"`},
		{"%%!d(x) %d", []any{7}, "%!d(x) 7"},
	}

	for _, tt := range tests {
		out, err := Format(tt.template, tt.args...)
		require.NoError(t, err, tt.template)
		assert.Equal(t, tt.want, out)
	}
}

func TestFormatRejectsBadTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
	}{
		{"missing argument", "%s and %s", []any{"one"}},
		{"extra argument", "%s", []any{"one", "two"}},
		{"wrong type", "%d", []any{"text"}},
		{"no verb", "%", nil},
		{"wrong type hidden by text", "%d %s", []any{"%!d(x)", "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.template, tt.args...)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.template, formatErr.Template)
		})
	}
}

func TestFeatureSnippets(t *testing.T) {
	point, err := PointFeature(200, 201)
	require.NoError(t, err)
	assert.Equal(t, `{"type": "Feature", "geometry": {"type": "Point", "coordinates": [200.000000, 201.000000]}, "properties": {}}`, point)

	line, err := LineStringFeature([]Coordinate{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, `{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[1.000000, 2.000000], [3.000000, 4.000000]]}, "properties": {}}`, line)

	poly, err := PolygonFeature([]Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
	require.NoError(t, err)
	assert.Contains(t, poly, `"coordinates": [[[0.000000, 0.000000], [1.000000, 0.000000], [1.000000, 1.000000], [0.000000, 0.000000]]]`)

	for _, s := range []string{point, line, poly} {
		assert.True(t, json.Valid([]byte(s)), s)
	}
}

func TestHeaderFooterFrameSnippets(t *testing.T) {
	header, err := Header()
	require.NoError(t, err)
	footer, err := Footer()
	require.NoError(t, err)

	a, err := PointFeature(1, 2)
	require.NoError(t, err)
	b, err := PointFeature(3, 4)
	require.NoError(t, err)

	doc := header + a + ",\n" + b + footer
	assert.True(t, json.Valid([]byte(doc)))

	fc := newCollection(t)
	defer fc.Destroy()
	assert.Equal(t, header+footer, encode(t, fc))
}
