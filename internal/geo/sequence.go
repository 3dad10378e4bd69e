package geo

// ref indexes a node inside an arena. nilRef marks an absent link.
type ref int32

const nilRef ref = -1

type link[T any] struct {
	value T
	next  ref
}

// arena stores nodes of one kind. Nodes are never moved out or reused, so a
// ref stays valid until the arena is dropped.
type arena[T any] struct {
	nodes []link[T]
}

func (a *arena[T]) alloc(v T) ref {
	a.nodes = append(a.nodes, link[T]{value: v, next: nilRef})
	return ref(len(a.nodes) - 1)
}

func (a *arena[T]) valid(r ref) bool {
	return r >= 0 && int(r) < len(a.nodes)
}

func (a *arena[T]) get(r ref) *T {
	return &a.nodes[r].value
}

func (a *arena[T]) drop() {
	a.nodes = nil
}

// sequence is an append-only singly linked list over an arena, with head and
// tail links for O(1) append.
type sequence struct {
	head  ref
	tail  ref
	count int
}

func newSequence() sequence {
	return sequence{head: nilRef, tail: nilRef}
}

func (s *sequence) isEmpty() bool {
	return s.head == nilRef
}

// push links the arena node r as the new tail of s.
func (a *arena[T]) push(s *sequence, r ref) {
	if s.isEmpty() {
		s.head = r
	} else {
		a.nodes[s.tail].next = r
	}
	s.tail = r
	s.count++
}

// each visits the nodes of s in insertion order. pos is 1-based.
// A non-nil error from fn stops the walk and is returned.
func (a *arena[T]) each(s *sequence, fn func(pos int, r ref, v *T) error) error {
	pos := 1
	for r := s.head; r != nilRef; r = a.nodes[r].next {
		if err := fn(pos, r, &a.nodes[r].value); err != nil {
			return err
		}
		pos++
	}
	return nil
}
