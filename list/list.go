// Package list implements an intrusive, doubly-linked ordered list over
// nodes stored in a caller-owned arena.
//
// Nodes are addressed by Index rather than by pointer. The list never owns a
// node; it only rewires the Links the arena hands out. Passing Nil as the
// "current" node to Next or Prev starts a traversal at the head or tail.
package list

// Index addresses one node in an arena.
type Index int32

// Nil is the null node reference.
const Nil Index = -1

// Links places a node inside exactly one list.
type Links struct {
	Prev Index
	Next Index
}

// Unlinked returns links that belong to no list.
func Unlinked() Links { return Links{Prev: Nil, Next: Nil} }

// Root is the head of one ordered list.
type Root struct {
	First Index
	Last  Index
	Len   int
}

// NewRoot returns an empty list head.
func NewRoot() Root { return Root{First: Nil, Last: Nil} }

// Arena resolves an index to the links of the node stored there.
//
// Links must return nil for indices that do not address a live node.
type Arena interface {
	Links(i Index) *Links
}

// Add appends i to the tail of r.
func Add(a Arena, r *Root, i Index) bool {
	n := a.Links(i)
	if n == nil || r == nil {
		return false
	}
	n.Prev = r.Last
	n.Next = Nil
	if r.Last != Nil {
		a.Links(r.Last).Next = i
	} else {
		r.First = i
	}
	r.Last = i
	r.Len++
	return true
}

// InsertBefore links i immediately before at. Inserting before Nil appends.
func InsertBefore(a Arena, r *Root, i, at Index) bool {
	if at == Nil {
		return Add(a, r, i)
	}
	n := a.Links(i)
	m := a.Links(at)
	if n == nil || m == nil || r == nil || i == at {
		return false
	}
	n.Prev = m.Prev
	n.Next = at
	if m.Prev != Nil {
		a.Links(m.Prev).Next = i
	} else {
		r.First = i
	}
	m.Prev = i
	r.Len++
	return true
}

// Remove splices i out of r, fixing r's endpoints if i was one of them.
//
// The caller guarantees i is a member of r.
func Remove(a Arena, r *Root, i Index) bool {
	n := a.Links(i)
	if n == nil || r == nil || r.Len == 0 {
		return false
	}
	if n.Prev != Nil {
		a.Links(n.Prev).Next = n.Next
	} else if r.First == i {
		r.First = n.Next
	} else {
		return false
	}
	if n.Next != Nil {
		a.Links(n.Next).Prev = n.Prev
	} else {
		r.Last = n.Prev
	}
	n.Prev = Nil
	n.Next = Nil
	r.Len--
	return true
}

// MoveTowardTail swaps i with its next neighbour.
// It returns false if i is already the tail.
func MoveTowardTail(a Arena, r *Root, i Index) bool {
	n := a.Links(i)
	if n == nil || r == nil || n.Next == Nil {
		return false
	}
	next := n.Next
	m := a.Links(next)
	prev := n.Prev

	// prev <-> i <-> next <-> after  =>  prev <-> next <-> i <-> after
	after := m.Next
	if prev != Nil {
		a.Links(prev).Next = next
	} else {
		r.First = next
	}
	m.Prev = prev
	m.Next = i
	n.Prev = next
	n.Next = after
	if after != Nil {
		a.Links(after).Prev = i
	} else {
		r.Last = i
	}
	return true
}

// MoveTowardHead swaps i with its previous neighbour.
// It returns false if i is already the head.
func MoveTowardHead(a Arena, r *Root, i Index) bool {
	n := a.Links(i)
	if n == nil || r == nil || n.Prev == Nil {
		return false
	}
	return MoveTowardTail(a, r, n.Prev)
}

// Next returns the node after i, or the head when i is Nil.
func Next(a Arena, r *Root, i Index) Index {
	if i == Nil {
		if r == nil {
			return Nil
		}
		return r.First
	}
	n := a.Links(i)
	if n == nil {
		return Nil
	}
	return n.Next
}

// Prev returns the node before i, or the tail when i is Nil.
func Prev(a Arena, r *Root, i Index) Index {
	if i == Nil {
		if r == nil {
			return Nil
		}
		return r.Last
	}
	n := a.Links(i)
	if n == nil {
		return Nil
	}
	return n.Prev
}

// Contains reports whether i is linked into r. O(n).
func Contains(a Arena, r *Root, i Index) bool {
	for it := Next(a, r, Nil); it != Nil; it = Next(a, r, it) {
		if it == i {
			return true
		}
	}
	return false
}

// At returns the n-th node from the head, or Nil. O(n).
func At(a Arena, r *Root, n int) Index {
	it := Next(a, r, Nil)
	for ; it != Nil && n > 0; n-- {
		it = Next(a, r, it)
	}
	return it
}

// Walk calls fn for every node head to tail until fn returns false.
// The successor is read before fn runs, so fn may unlink the current node.
func Walk(a Arena, r *Root, fn func(Index) bool) {
	for it := Next(a, r, Nil); it != Nil; {
		next := Next(a, r, it)
		if !fn(it) {
			return
		}
		it = next
	}
}
