package geo

// Node identifies the kind of node handed to an Allocator.
type Node uint8

// Node kinds, leaves first.
const (
	NodeCoordinate Node = iota
	NodeCoordinates
	NodeGeometry
	NodeProperty
	NodeProperties
	NodeFeature
	NodeCollection
)

func (n Node) String() string {
	switch n {
	case NodeCoordinate:
		return "coordinate"
	case NodeCoordinates:
		return "coordinate sequence"
	case NodeGeometry:
		return "geometry"
	case NodeProperty:
		return "property"
	case NodeProperties:
		return "property sequence"
	case NodeFeature:
		return "feature"
	case NodeCollection:
		return "feature collection"
	default:
		return "unknown node"
	}
}

// Allocator observes node lifetimes. Allocate runs before a node becomes
// part of a collection and may refuse it; Release runs exactly once for every
// node that Allocate accepted, when the owning collection is destroyed.
type Allocator interface {
	Allocate(n Node) error
	Release(n Node)
}

// runtimeAllocator leaves memory to the Go runtime.
type runtimeAllocator struct{}

func (runtimeAllocator) Allocate(Node) error { return nil }
func (runtimeAllocator) Release(Node)        {}
