package processor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Internal structures for YAML parsing. Coordinates and properties stay as
// nodes so nesting depth and key order survive decoding.
type yamlDocument struct {
	Features []yamlFeature `yaml:"features"`
}

type yamlFeature struct {
	Type        string    `yaml:"type"`
	Coordinates yaml.Node `yaml:"coordinates"`
	Properties  yaml.Node `yaml:"properties"`
	line        int
}

func (f *yamlFeature) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlFeature
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	f.line = node.Line
	return nil
}

// ReadYAML decodes a YAML feature list and feeds it to b:
//
//	features:
//	  - type: Point
//	    coordinates: [200, 201]
//	    properties:
//	      symbol: r100.0
//
// It returns the number of features added.
func ReadYAML(r io.Reader, b Builder) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read yaml: %w", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, &SyntaxError{Format: config.FormatYAML, Reason: err.Error()}
	}

	for i, f := range doc.Features {
		kind, ok := geo.ParseKind(f.Type)
		if !ok {
			return i, &SyntaxError{Format: config.FormatYAML, Line: f.line, Reason: "unsupported geometry type " + strconv.Quote(f.Type)}
		}

		coords, err := yamlPositions(&f.Coordinates)
		if err != nil {
			return i, err
		}

		props, err := yamlProperties(&f.Properties)
		if err != nil {
			return i, err
		}

		if err := addFeature(b, kind, coords, props); err != nil {
			return i, err
		}
	}

	log.Debug().Int("features", len(doc.Features)).Msg("YAML input read")
	return len(doc.Features), nil
}

// yamlPositions accepts a single position, a list of positions, or a list
// of rings of which only the first (exterior) ring is kept.
func yamlPositions(node *yaml.Node) ([]geo.Coordinate, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, yamlError(node, "coordinates must be a sequence")
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	switch node.Content[0].Kind {
	case yaml.ScalarNode:
		c, err := yamlPosition(node)
		if err != nil {
			return nil, err
		}
		return []geo.Coordinate{c}, nil

	case yaml.SequenceNode:
		ring := node.Content[0]
		if len(ring.Content) == 0 {
			// [[]] is a polygon with an empty exterior ring
			return nil, nil
		}
		if ring.Content[0].Kind == yaml.SequenceNode {
			if len(node.Content) > 1 {
				log.Warn().Int("line", node.Line).Int("rings", len(node.Content)).Msg("Interior rings dropped, keeping exterior ring")
			}
			node = ring
		}

		coords := make([]geo.Coordinate, 0, len(node.Content))
		for _, item := range node.Content {
			c, err := yamlPosition(item)
			if err != nil {
				return nil, err
			}
			coords = append(coords, c)
		}
		return coords, nil
	}

	return nil, yamlError(node, "coordinates must hold numbers or positions")
}

func yamlPosition(node *yaml.Node) (geo.Coordinate, error) {
	var pos []float64
	if err := node.Decode(&pos); err != nil {
		return geo.Coordinate{}, yamlError(node, "position must be [x, y]")
	}
	if len(pos) != 2 {
		return geo.Coordinate{}, yamlError(node, "position must have exactly 2 values, got "+strconv.Itoa(len(pos)))
	}
	return geo.Coordinate{X: pos[0], Y: pos[1]}, nil
}

func yamlProperties(node *yaml.Node) ([]geo.Property, error) {
	if node.IsZero() || node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, yamlError(node, "properties must be a mapping")
	}

	props := make([]geo.Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, yamlError(value, "property "+strconv.Quote(key.Value)+" must be a scalar")
		}
		props = append(props, geo.Property{Name: key.Value, Value: value.Value})
	}
	return props, nil
}

func yamlError(node *yaml.Node, reason string) error {
	return &SyntaxError{Format: config.FormatYAML, Line: node.Line, Reason: reason}
}
