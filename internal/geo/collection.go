package geo

// FeatureID is a handle to a feature owned by a FeatureCollection.
type FeatureID int32

type feature struct {
	geom     GeometryID
	props    PropertiesID
	pushed   bool
	released bool
}

// FeatureCollection is the root of the feature tree. It is not safe for
// concurrent use.
type FeatureCollection struct {
	alloc Allocator

	coords     arena[Coordinate]
	geometries arena[geometry]
	props      arena[Property]
	propSeqs   arena[properties]
	features   arena[feature]

	list      sequence
	destroyed bool
}

// Option configures a FeatureCollection.
type Option func(*FeatureCollection)

// WithAllocator routes node allocation and release through a.
func WithAllocator(a Allocator) Option {
	return func(fc *FeatureCollection) {
		if a != nil {
			fc.alloc = a
		}
	}
}

// NewFeatureCollection creates an empty collection.
func NewFeatureCollection(opts ...Option) (*FeatureCollection, error) {
	fc := &FeatureCollection{
		alloc: runtimeAllocator{},
		list:  newSequence(),
	}
	for _, opt := range opts {
		opt(fc)
	}

	if err := fc.allocate(NodeCollection); err != nil {
		return nil, err
	}
	return fc, nil
}

// IsEmpty reports whether no feature has been pushed.
func (fc *FeatureCollection) IsEmpty() bool {
	return fc.list.isEmpty()
}

// Len returns the number of pushed features.
func (fc *FeatureCollection) Len() int {
	return fc.list.count
}

// NewFeature pairs g and p into a feature. The feature takes ownership of
// both, so neither can back another feature afterwards.
func (fc *FeatureCollection) NewFeature(g GeometryID, p PropertiesID) (FeatureID, error) {
	geom, err := fc.geometry(g)
	if err != nil {
		return -1, err
	}
	seq, err := fc.propertySeq(p)
	if err != nil {
		return -1, err
	}
	if geom.owned || seq.owned {
		return -1, ErrOwnership
	}
	if err := fc.allocate(NodeFeature); err != nil {
		return -1, err
	}

	geom.owned = true
	seq.owned = true
	r := fc.features.alloc(feature{geom: g, props: p})
	return FeatureID(r), nil
}

// Push appends f to the collection. A feature can be pushed only once.
func (fc *FeatureCollection) Push(f FeatureID) error {
	feat, err := fc.feature(f)
	if err != nil {
		return err
	}
	if feat.pushed {
		return ErrOwnership
	}

	feat.pushed = true
	fc.features.push(&fc.list, ref(f))
	return nil
}

// Features returns the pushed features in insertion order.
func (fc *FeatureCollection) Features() []FeatureID {
	out := make([]FeatureID, 0, fc.list.count)
	_ = fc.features.each(&fc.list, func(_ int, r ref, _ *feature) error {
		out = append(out, FeatureID(r))
		return nil
	})
	return out
}

// Geometry returns the geometry owned by f.
func (fc *FeatureCollection) Geometry(f FeatureID) (GeometryID, error) {
	feat, err := fc.feature(f)
	if err != nil {
		return -1, err
	}
	return feat.geom, nil
}

// FeatureProperties returns the property sequence owned by f.
func (fc *FeatureCollection) FeatureProperties(f FeatureID) (PropertiesID, error) {
	feat, err := fc.feature(f)
	if err != nil {
		return -1, err
	}
	return feat.props, nil
}

func (fc *FeatureCollection) feature(f FeatureID) (*feature, error) {
	if fc.destroyed {
		return nil, ErrDestroyed
	}
	if !fc.features.valid(ref(f)) {
		return nil, ErrInvalidHandle
	}
	return fc.features.get(ref(f)), nil
}

func (fc *FeatureCollection) allocate(n Node) error {
	if err := fc.alloc.Allocate(n); err != nil {
		return &AllocError{Node: n, Err: err}
	}
	return nil
}
