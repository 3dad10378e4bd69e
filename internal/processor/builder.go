// Package processor reads geometry descriptions and converts them to GeoJSON.
package processor

import (
	"fmt"

	"github.com/woozymasta/gjs/internal/geo"
)

// Builder receives features in document order. *geo.FeatureCollection
// implements it.
type Builder interface {
	NewGeometry(kind geo.Kind) (geo.GeometryID, error)
	AddCoordinate(g geo.GeometryID, x, y float64) error
	NewProperties() (geo.PropertiesID, error)
	AddProperty(p geo.PropertiesID, name, value string) error
	NewFeature(g geo.GeometryID, p geo.PropertiesID) (geo.FeatureID, error)
	Push(f geo.FeatureID) error
}

// SyntaxError reports a malformed record in the input.
type SyntaxError struct {
	Format string
	Reason string
	Line   int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Reason)
}

// addFeature builds one complete feature and appends it to b.
func addFeature(b Builder, kind geo.Kind, coords []geo.Coordinate, props []geo.Property) error {
	g, err := b.NewGeometry(kind)
	if err != nil {
		return err
	}
	for _, c := range coords {
		if err := b.AddCoordinate(g, c.X, c.Y); err != nil {
			return err
		}
	}

	p, err := b.NewProperties()
	if err != nil {
		return err
	}
	for _, prop := range props {
		if err := b.AddProperty(p, prop.Name, prop.Value); err != nil {
			return err
		}
	}

	f, err := b.NewFeature(g, p)
	if err != nil {
		return err
	}
	return b.Push(f)
}
