package geo

// Destroy releases every node of the collection exactly once and drops the
// arenas. The attached feature chain goes first, then any geometries,
// property sequences or features that an aborted build never attached.
// Calling Destroy again is a no-op; every other method returns ErrDestroyed.
func (fc *FeatureCollection) Destroy() {
	if fc.destroyed {
		return
	}

	_ = fc.features.each(&fc.list, func(_ int, _ ref, f *feature) error {
		fc.releaseFeature(f)
		return nil
	})

	// orphans
	for i := range fc.features.nodes {
		fc.releaseFeature(&fc.features.nodes[i].value)
	}
	for i := range fc.geometries.nodes {
		fc.releaseGeometry(&fc.geometries.nodes[i].value)
	}
	for i := range fc.propSeqs.nodes {
		fc.releaseProperties(&fc.propSeqs.nodes[i].value)
	}

	fc.alloc.Release(NodeCollection)

	fc.coords.drop()
	fc.geometries.drop()
	fc.props.drop()
	fc.propSeqs.drop()
	fc.features.drop()
	fc.list = newSequence()
	fc.destroyed = true
}

func (fc *FeatureCollection) releaseFeature(f *feature) {
	if f.released {
		return
	}
	fc.releaseGeometry(fc.geometries.get(ref(f.geom)))
	fc.releaseProperties(fc.propSeqs.get(ref(f.props)))
	fc.alloc.Release(NodeFeature)
	f.released = true
}

func (fc *FeatureCollection) releaseGeometry(g *geometry) {
	if g.released {
		return
	}
	_ = fc.coords.each(&g.coords, func(_ int, _ ref, _ *Coordinate) error {
		fc.alloc.Release(NodeCoordinate)
		return nil
	})
	fc.alloc.Release(NodeCoordinates)
	fc.alloc.Release(NodeGeometry)
	g.released = true
}

func (fc *FeatureCollection) releaseProperties(p *properties) {
	if p.released {
		return
	}
	_ = fc.props.each(&p.items, func(_ int, _ ref, _ *Property) error {
		fc.alloc.Release(NodeProperty)
		return nil
	})
	fc.alloc.Release(NodeProperties)
	p.released = true
}
