package geo

// Property is a single name/value attribute of a feature.
type Property struct {
	Name  string
	Value string
}

// PropertiesID is a handle to a property sequence owned by a FeatureCollection.
type PropertiesID int32

type properties struct {
	items    sequence
	owned    bool
	released bool
}

// NewProperties allocates an empty property sequence.
func (fc *FeatureCollection) NewProperties() (PropertiesID, error) {
	if fc.destroyed {
		return -1, ErrDestroyed
	}
	if err := fc.allocate(NodeProperties); err != nil {
		return -1, err
	}

	r := fc.propSeqs.alloc(properties{items: newSequence()})
	return PropertiesID(r), nil
}

// AddProperty appends a name/value pair to p. Names are not deduplicated.
func (fc *FeatureCollection) AddProperty(p PropertiesID, name, value string) error {
	seq, err := fc.propertySeq(p)
	if err != nil {
		return err
	}
	if err := fc.allocate(NodeProperty); err != nil {
		return err
	}

	r := fc.props.alloc(Property{Name: name, Value: value})
	fc.props.push(&seq.items, r)
	return nil
}

// Properties returns the entries of p in insertion order.
func (fc *FeatureCollection) Properties(p PropertiesID) ([]Property, error) {
	seq, err := fc.propertySeq(p)
	if err != nil {
		return nil, err
	}

	out := make([]Property, 0, seq.items.count)
	_ = fc.props.each(&seq.items, func(_ int, _ ref, prop *Property) error {
		out = append(out, *prop)
		return nil
	})
	return out, nil
}

func (fc *FeatureCollection) propertySeq(p PropertiesID) (*properties, error) {
	if fc.destroyed {
		return nil, ErrDestroyed
	}
	if !fc.propSeqs.valid(ref(p)) {
		return nil, ErrInvalidHandle
	}
	return fc.propSeqs.get(ref(p)), nil
}
