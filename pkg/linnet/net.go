package linnet

import "fmt"

// Redex is a pending interaction between two agent trees, queued until the
// reducer dispatches it.
type Redex struct {
	A, B Tree
}

// Net is a boxed proof net: a sequence of free Ports, a FIFO queue of
// pending Redexes, and a table of wire bindings. Vars holds one entry per
// allocated wire id; a present key mapped to a nil *Tree means "allocated
// but not yet bound" (the wire's first occurrence has been seen, its
// partner hasn't), mirroring Rust's BTreeMap<VarId, Option<Tree>>.
type Net struct {
	Ports   []Tree
	Redexes []Redex
	Vars    map[VarID]*Tree

	// Stuck holds redexes the reducer popped but found no rule for (no
	// (L,R) or (R,L) pairing is_defined). They're never re-queued, so the
	// reducer loop still terminates; they stay here purely so the printer
	// can still show them.
	Stuck []Redex
}

// NewNet returns an empty net.
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
	return &VarTree{ID: id}, &VarTree{ID: id}
}

// freshDangling allocates a wire with a single occurrence: an unbound Var
// that nothing else in n will ever reference. Used to fill "don't care"
// positions in canonical constant nets (identityParBox) where the spec's
// own notation marks a slot with "·" rather than naming a real wire.
func (n *Net) freshDangling() Tree {
	id := n.AllocateVarID()
	n.Vars[id] = nil
	return &VarTree{ID: id}
}

// WireNet returns a net consisting of a single wire exposed at both ports —
// the identity net.
func WireNet() *Net {
	n := NewNet()
	a, b := n.CreateWire()
	n.Ports = append(n.Ports, a, b)
	return n
}

// GraftArg is one argument supplied to Graft: either a Partition (some of
// the caller's own wires, still open) or a Box (an independent sub-net,
// captured whole).
type GraftArg interface{ isGraftArg() }

// GraftPartition supplies trees that remain part of the surrounding net.
type GraftPartition struct {
	Net   *Net
	Ports []int
}

func (GraftPartition) isGraftArg() {}

// GraftBox supplies a whole sub-net, reordered so Ports lists its free
// ports in the declared order.
type GraftBox struct {
	Net   *Net
	Ports []int
}

func (GraftBox) isGraftArg() {}

// reorderTrees removes the elements of a at the given indices, in the order
// given (indices are adjusted for earlier removals, as in a VecDeque
// removal loop), and returns them in that order. If elements remain after
// all indices are consumed: when reorderRest is true they're appended to
// the result; otherwise the function reports failure and returns a
// unmodified.
func reorderTrees(a []Tree, indices []int, reorderRest bool) ([]Tree, bool) {
	rem := append([]Tree(nil), a...)
	idxs := append([]int(nil), indices...)
	result := make([]Tree, 0, len(a))
	for len(idxs) > 0 {
		idx := idxs[0]
		idxs = idxs[1:]
		result = append(result, rem[idx])
		rem = append(rem[:idx], rem[idx+1:]...)
		for i := range idxs {
			if idxs[i] > idx {
				idxs[i]--
			}
		}
	}
	if len(rem) > 0 {
		if !reorderRest {
			return a, false
		}
		result = append(result, rem...)
	}
	return result, true
}

// Graft builds the net for a single agent applied to args: a Times cell
// with two singleton partitions, a Par cell with one two-wire partition, an
// Exp1 cell with a context wire and a two-port box, and so on, per
// symbol.Shape(). The resulting net's first port is the agent itself.
func Graft(symbol Symbol, args []GraftArg) (*Net, error) {
	shape := symbol.Shape()
	if len(shape) != len(args) {
		return nil, fmt.Errorf("linnet: %s expects %d arguments, got %d", symbol, len(shape), len(args))
	}
	aux := make([]PartitionOrBox, 0, len(shape))
	built := NewNet()
	for i, want := range shape {
		switch arg := args[i].(type) {
		case GraftBox:
			if want.Kind != ArgBox || want.Size != len(arg.Ports) {
				return nil, fmt.Errorf("linnet: %s: incorrect box free port size", symbol)
			}
			reordered, ok := reorderTrees(arg.Net.Ports, arg.Ports, false)
			if !ok {
				return nil, fmt.Errorf("linnet: %s: box net has unaccounted ports", symbol)
			}
			arg.Net.Ports = reordered
			aux = append(aux, &BoxArg{Net: arg.Net})
		case GraftPartition:
			if want.Kind != ArgPartition || want.Size != len(arg.Ports) {
				return nil, fmt.Errorf("linnet: %s: incorrect partitioning", symbol)
			}
			reordered, _ := reorderTrees(arg.Net.Ports, arg.Ports, true)
			arg.Net.Ports = reordered
			ports := make([]Tree, want.Size)
			for k := 0; k < want.Size; k++ {
				ports[k] = arg.Net.Ports[0]
				arg.Net.Ports = arg.Net.Ports[1:]
			}
			varMap := built.shiftMap()
			built.Mix(arg.Net)
			for _, p := range ports {
				p.mapVars(varMap)
			}
			aux = append(aux, &Partition{Ports: ports})
		default:
			return nil, fmt.Errorf("linnet: %s: unknown graft argument kind", symbol)
		}
	}
	built.Ports = append([]Tree{&AgentTree{Symbol: symbol, Args: aux}}, built.Ports...)
	return built, nil
}

// shiftMap returns a function that offsets a wire id past every id already
// used in n, so n and a net renumbered through it can be merged without
// collisions.
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
// var table into n, which is both mutated and returned.
func (n *Net) Mix(other *Net) *Net {
	m := n.shiftMap()
	other.MapVars(m)
	n.Ports = append(n.Ports, other.Ports...)
	n.Redexes = append(n.Redexes, other.Redexes...)
	for k, v := range other.Vars {
		n.Vars[k] = v
	}
	return n
}

func removeAt(s []Tree, idx int) (Tree, []Tree) {
	t := s[idx]
	return t, append(s[:idx:idx], s[idx+1:]...)
}

// Cut mixes this and other, then links their thisPort'th and otherPort'th
// free ports together, consuming both ports.
func Cut(this *Net, thisPort int, other *Net, otherPort int) *Net {
	thisLen := len(this.Ports)
	composite := this.Mix(other)
	var portA, portB Tree
	portA, composite.Ports = removeAt(composite.Ports, thisPort)
	portB, composite.Ports = removeAt(composite.Ports, otherPort+thisLen-1)
	composite.Link(portA, portB)
	return composite
}

// Link establishes that trees a and b are connected. If either is a
// variable occurrence whose wire is still unbound, the binding is recorded;
// if it is already bound (the wire's other occurrence was linked first),
// the wire is resolved and its entry consumed, and the link proceeds with
// the bound tree instead. Once neither side is a variable, the pair is
// queued as a redex.
func (n *Net) Link(a, b Tree) {
	if v, ok := a.(*VarTree); ok {
		bound, exists := n.Vars[v.ID]
		if !exists {
			panic(fmt.Sprintf("linnet: link on unallocated wire %d", v.ID))
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
	if v, ok := b.(*VarTree); ok {
		n.Link(&VarTree{ID: v.ID}, a)
		return
	}
	n.Redexes = append(n.Redexes, Redex{A: a, B: b})
}

// PlugBox merges other into n and links each of other's free ports, in
// order, to the corresponding tree in ports. Used when a box is opened by a
// rewrite rule (e.g. One/False).
func (n *Net) PlugBox(other *Net, ports []Tree) {
	m := n.shiftMap()
	otherPorts := other.Ports
	other.Ports = nil
	n.Mix(other)
	for i, op := range otherPorts {
		op.mapVars(m)
		n.Link(op, ports[i])
	}
}

// MapVars renumbers every wire id reachable from n's ports, redexes and var
// table through m. Box sub-nets are untouched: their wire ids are locally
// scoped.
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

// Canonical resolves every indirection chain reachable from n's ports and
// redexes in place, consuming the intermediate bindings it walks through.
func (n *Net) Canonical() {
	for i := range n.Ports {
		n.SubstituteMut(&n.Ports[i])
	}
	for i := range n.Redexes {
		n.SubstituteMut(&n.Redexes[i].A)
		n.SubstituteMut(&n.Redexes[i].B)
	}
}

// SubstituteRef returns tree with every bound variable occurrence replaced
// by what it's bound to, recursively, without mutating n. Box arguments are
// cloned, not descended into: their wires belong to a different net.
func (n *Net) SubstituteRef(tree Tree) Tree {
	switch v := tree.(type) {
	case *AgentTree:
		args := make([]PartitionOrBox, len(v.Args))
		for i, a := range v.Args {
			switch av := a.(type) {
			case *Partition:
				ports := make([]Tree, len(av.Ports))
				for j, p := range av.Ports {
					ports[j] = n.SubstituteRef(p)
				}
				args[i] = &Partition{Ports: ports}
			case *BoxArg:
				args[i] = &BoxArg{Net: av.Net.Clone()}
			}
		}
		return &AgentTree{Symbol: v.Symbol, Args: args}
	case *VarTree:
		if bound, ok := n.Vars[v.ID]; ok && bound != nil {
			return n.SubstituteRef(*bound)
		}
		return &VarTree{ID: v.ID}
	default:
		panic("linnet: unknown Tree implementation")
	}
}

// SubstituteMut resolves *tree in place, the mutating counterpart of
// SubstituteRef: each binding it follows is removed from n's var table.
func (n *Net) SubstituteMut(tree *Tree) {
	switch v := (*tree).(type) {
	case *AgentTree:
		for _, a := range v.Args {
			switch av := a.(type) {
			case *Partition:
				for i := range av.Ports {
					n.SubstituteMut(&av.Ports[i])
				}
			case *BoxArg:
				av.Net.Canonical()
			}
		}
	case *VarTree:
		bound, ok := n.Vars[v.ID]
		if ok && bound != nil {
			delete(n.Vars, v.ID)
			w := *bound
			n.SubstituteMut(&w)
			*tree = w
		}
	}
}

// Clone deep-copies n, including any boxed sub-nets. Used by the graph
// compiler's multicut (instantiating a named net more than once) and by
// SubstituteRef's box handling.
func (n *Net) Clone() *Net {
	out := NewNet()
	for _, p := range n.Ports {
		out.Ports = append(out.Ports, cloneTree(p))
	}
	for _, r := range n.Redexes {
		out.Redexes = append(out.Redexes, Redex{A: cloneTree(r.A), B: cloneTree(r.B)})
	}
	for k, v := range n.Vars {
		if v == nil {
			out.Vars[k] = nil
		} else {
			c := cloneTree(*v)
			out.Vars[k] = &c
		}
	}
	return out
}
