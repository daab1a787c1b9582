// Package icomb implements Lafont's interaction combinators (Con/Dup/Era)
// and the translation of a reduced, boxed proof net down into a pure
// combinator net, per spec.md §4.6's replication encoding.
//
// Grounded on original_source/src/icombs/{net,encoding,mod,hvm2,ivy}.rs,
// with the same wire/link/redex-queue discipline as pkg/linnet.Net, since a
// combinator net is itself a (much simpler) interaction net: three
// constructors instead of fifteen, each of fixed binary arity.
package icomb

import "fmt"

// VarID names one wire in an ICombNet.
type VarID int

// Tree is one node of a combinator tree: an interface with one struct per
// variant, matching pkg/linnet.Tree's shape.
type Tree interface {
	isTree()
	mapVars(func(VarID) VarID)
}

// Var is a wire occurrence.
type Var struct{ ID VarID }

// Con is the constructor combinator (⋅), used to encode Times/Par cuts and
// the structural scaffolding of every other connective's encoding.
type Con struct{ A, B Tree }

// Dup is the duplicator combinator (δ), the only constructor that erases
// sharing rather than preserving it: two Dup cells meeting annihilate, a Con
// meeting a Dup commutes.
type Dup struct{ A, B Tree }

// Era is the eraser combinator (ε), absorbing anything it meets.
type Era struct{}

func (*Var) isTree() {}
func (*Con) isTree() {}
func (*Dup) isTree() {}
func (*Era) isTree() {}

func (v *Var) mapVars(m func(VarID) VarID) { v.ID = m(v.ID) }
func (c *Con) mapVars(m func(VarID) VarID) { c.A.mapVars(m); c.B.mapVars(m) }
func (d *Dup) mapVars(m func(VarID) VarID) { d.A.mapVars(m); d.B.mapVars(m) }
func (*Era) mapVars(func(VarID) VarID)     {}

// Redex is a pending interaction between two combinator trees.
type Redex struct{ A, B Tree }

// Net is a combinator net: free Ports, a FIFO Redexes queue, and a wire
// binding table, exactly mirroring pkg/linnet.Net's shape one level down.
type Net struct {
	Ports   []Tree
	Redexes []Redex
	Vars    map[VarID]*Tree
}

// NewNet returns an empty combinator net.
func NewNet() *Net {
	return &Net{Vars: make(map[VarID]*Tree)}
}

// AllocateVarID returns the smallest wire id not already in use.
func (n *Net) AllocateVarID() VarID {
	for i := VarID(0); ; i++ {
		if _, ok := n.Vars[i]; !ok {
			return i
		}
	}
}

// CreateWire allocates a fresh, as-yet-unbound wire and returns both of its
// occurrences.
func (n *Net) CreateWire() (Tree, Tree) {
	id := n.AllocateVarID()
	n.Vars[id] = nil
	return &Var{ID: id}, &Var{ID: id}
}

func (n *Net) shiftMap() func(VarID) VarID {
	max := VarID(0)
	for id := range n.Vars {
		if id > max {
			max = id
		}
	}
	shift := max + 1
	return func(x VarID) VarID { return x + shift }
}

// Mix renumbers other's wires past n's and appends its ports, redexes and
// var table into n.
func (n *Net) Mix(other *Net) *Net {
	m := n.shiftMap()
	for _, p := range other.Ports {
		p.mapVars(m)
	}
	for i := range other.Redexes {
		other.Redexes[i].A.mapVars(m)
		other.Redexes[i].B.mapVars(m)
	}
	n.Ports = append(n.Ports, other.Ports...)
	n.Redexes = append(n.Redexes, other.Redexes...)
	for k, v := range other.Vars {
		if v != nil {
			(*v).mapVars(m)
		}
		n.Vars[m(k)] = v
	}
	return n
}

// Link establishes that a and b are connected, with the same
// allocate-then-resolve discipline as pkg/linnet.Net.Link: a variable
// occurrence whose wire is still open records the binding; one whose wire
// is already bound consumes that binding and recurses; once neither side is
// a variable, the pair is queued as a redex.
func (n *Net) Link(a, b Tree) {
	if v, ok := a.(*Var); ok {
		bound, exists := n.Vars[v.ID]
		if !exists {
			panic(fmt.Sprintf("icomb: link on unallocated wire %d", v.ID))
		}
		delete(n.Vars, v.ID)
		if bound != nil {
			n.Link(*bound, b)
		} else {
			c := b
			n.Vars[v.ID] = &c
		}
		return
	}
	if v, ok := b.(*Var); ok {
		n.Link(&Var{ID: v.ID}, a)
		return
	}
	n.Redexes = append(n.Redexes, Redex{A: a, B: b})
}

// MapVars renumbers every wire id reachable from n through m.
func (n *Net) MapVars(m func(VarID) VarID) {
	for _, p := range n.Ports {
		p.mapVars(m)
	}
	for i := range n.Redexes {
		n.Redexes[i].A.mapVars(m)
		n.Redexes[i].B.mapVars(m)
	}
	newVars := make(map[VarID]*Tree, len(n.Vars))
	for k, v := range n.Vars {
		nk := m(k)
		if v != nil {
			(*v).mapVars(m)
		}
		newVars[nk] = v
	}
	n.Vars = newVars
}

// interact fires the one rule that applies between a and b, per Lafont's
// four combinator cases: two cells of the same kind annihilate (linking
// corresponding children pairwise), two of different kinds commute (b is
// duplicated/reconstructed around a's children), and Era meeting anything
// erases it.
func (n *Net) interact(a, b Tree) {
	if _, ok := a.(*Era); ok {
		eraseInto(n, b)
		return
	}
	if _, ok := b.(*Era); ok {
		eraseInto(n, a)
		return
	}

	switch av := a.(type) {
	case *Con:
		switch bv := b.(type) {
		case *Con:
			n.Link(av.A, bv.A)
			n.Link(av.B, bv.B)
			return
		case *Dup:
			n.commute(av, bv)
			return
		}
	case *Dup:
		switch bv := b.(type) {
		case *Dup:
			n.Link(av.A, bv.A)
			n.Link(av.B, bv.B)
			return
		case *Con:
			n.commute(bv, av)
			return
		}
	}
	panic(fmt.Sprintf("icomb: no interaction between %T and %T", a, b))
}

// eraseInto links a fresh Era to each child of t (recursively dissolving it
// if it's itself a Con/Dup), or does nothing if t is already an Era.
func eraseInto(n *Net, t Tree) {
	switch v := t.(type) {
	case *Era:
		return
	case *Con:
		n.Link(v.A, &Era{})
		n.Link(v.B, &Era{})
	case *Dup:
		n.Link(v.A, &Era{})
		n.Link(v.B, &Era{})
	default:
		n.Link(t, &Era{})
	}
}

// commute fires the Con-vs-Dup case: con is split into two fresh cons whose
// children are the dup's former children, and dup is split into two fresh
// dups whose children are con's former children, wired crosswise. This is
// the standard interaction-combinator commutation rule.
func (n *Net) commute(con *Con, dup *Dup) {
	a0, a1 := n.CreateWire()
	b0, b1 := n.CreateWire()
	c0, c1 := n.CreateWire()
	d0, d1 := n.CreateWire()

	n.Link(con.A, &Dup{A: a0, B: b0})
	n.Link(con.B, &Dup{A: c0, B: d0})
	n.Link(dup.A, &Con{A: a1, B: c1})
	n.Link(dup.B, &Con{A: b1, B: d1})
}

// Normal drives n to normal form by repeatedly popping the front redex,
// FIFO like pkg/linnet.Reducer.
func (n *Net) Normal() int {
	steps := 0
	for len(n.Redexes) > 0 {
		r := n.Redexes[0]
		n.Redexes = n.Redexes[1:]
		n.interact(r.A, r.B)
		steps++
	}
	return steps
}

// Canonical resolves every indirection chain reachable from n's ports and
// redexes in place.
func (n *Net) Canonical() {
	for i := range n.Ports {
		n.Ports[i] = n.substitute(n.Ports[i])
	}
	for i := range n.Redexes {
		n.Redexes[i].A = n.substitute(n.Redexes[i].A)
		n.Redexes[i].B = n.substitute(n.Redexes[i].B)
	}
}

func (n *Net) substitute(t Tree) Tree {
	switch v := t.(type) {
	case *Var:
		if bound, ok := n.Vars[v.ID]; ok && bound != nil {
			delete(n.Vars, v.ID)
			w := n.substitute(*bound)
			return w
		}
		return v
	case *Con:
		return &Con{A: n.substitute(v.A), B: n.substitute(v.B)}
	case *Dup:
		return &Dup{A: n.substitute(v.A), B: n.substitute(v.B)}
	default:
		return t
	}
}
