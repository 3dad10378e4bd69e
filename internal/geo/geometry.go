// Package geo holds the in-memory GeoJSON feature model and its serializer.
//
// A FeatureCollection owns every node reachable from it: features, their
// geometries with coordinate sequences, and their property sequences. Nodes
// are addressed by typed handles and only ever appended; Destroy releases
// the whole tree at once.
package geo

// Kind is the geometry type of a feature.
type Kind uint8

// Supported geometry kinds.
const (
	Point Kind = iota
	LineString
	Polygon
)

// String returns the GeoJSON type name of k, or "Unknown" for values outside
// the enumeration.
func (k Kind) String() string {
	switch k {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// ParseKind maps a GeoJSON type name to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "Point":
		return Point, true
	case "LineString":
		return LineString, true
	case "Polygon":
		return Polygon, true
	}
	return 0, false
}

// Coordinate is a single (x, y) position.
type Coordinate struct {
	X, Y float64
}

// GeometryID is a handle to a geometry owned by a FeatureCollection.
type GeometryID int32

type geometry struct {
	coords   sequence
	kind     Kind
	owned    bool
	released bool
}

// NewGeometry allocates a geometry of the given kind together with its empty
// coordinate sequence.
func (fc *FeatureCollection) NewGeometry(kind Kind) (GeometryID, error) {
	if fc.destroyed {
		return -1, ErrDestroyed
	}
	if err := fc.allocate(NodeGeometry); err != nil {
		return -1, err
	}
	if err := fc.allocate(NodeCoordinates); err != nil {
		fc.alloc.Release(NodeGeometry)
		return -1, err
	}

	r := fc.geometries.alloc(geometry{kind: kind, coords: newSequence()})
	return GeometryID(r), nil
}

// NewPoint is NewGeometry(Point).
func (fc *FeatureCollection) NewPoint() (GeometryID, error) { return fc.NewGeometry(Point) }

// NewLineString is NewGeometry(LineString).
func (fc *FeatureCollection) NewLineString() (GeometryID, error) { return fc.NewGeometry(LineString) }

// NewPolygon is NewGeometry(Polygon).
func (fc *FeatureCollection) NewPolygon() (GeometryID, error) { return fc.NewGeometry(Polygon) }

// AddCoordinate appends (x, y) to the coordinate sequence of g.
func (fc *FeatureCollection) AddCoordinate(g GeometryID, x, y float64) error {
	geom, err := fc.geometry(g)
	if err != nil {
		return err
	}
	if err := fc.allocate(NodeCoordinate); err != nil {
		return err
	}

	r := fc.coords.alloc(Coordinate{X: x, Y: y})
	fc.coords.push(&geom.coords, r)
	return nil
}

// Kind returns the kind g was created with.
func (fc *FeatureCollection) Kind(g GeometryID) (Kind, error) {
	geom, err := fc.geometry(g)
	if err != nil {
		return 0, err
	}
	return geom.kind, nil
}

// Coordinates returns the coordinates of g in insertion order.
func (fc *FeatureCollection) Coordinates(g GeometryID) ([]Coordinate, error) {
	geom, err := fc.geometry(g)
	if err != nil {
		return nil, err
	}

	out := make([]Coordinate, 0, geom.coords.count)
	_ = fc.coords.each(&geom.coords, func(_ int, _ ref, c *Coordinate) error {
		out = append(out, *c)
		return nil
	})
	return out, nil
}

func (fc *FeatureCollection) geometry(g GeometryID) (*geometry, error) {
	if fc.destroyed {
		return nil, ErrDestroyed
	}
	if !fc.geometries.valid(ref(g)) {
		return nil, ErrInvalidHandle
	}
	return fc.geometries.get(ref(g)), nil
}
