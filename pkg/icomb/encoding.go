package icomb

// encoder collects the duplication sites a tree needs before it can be
// closed into a single combinator port, grounded on
// original_source/src/icombs/encoding.rs's Encoder.
type encoder struct {
	net  *Net
	dups []dupSite
}

// dupSite is one (companion, a, b) triple: companion is the wire the
// original Dup node's two occurrences were replaced by, and a/b are the two
// already-encoded subtrees that Dup's two children pointed at.
type dupSite struct {
	companion Tree
	a, b      Tree
}

// encodeSubtree walks tree, replacing every Dup node with a fresh wire
// (recording its two children as a pending dup site to be merged back in by
// mergeCtrs) and leaving Con/Era/Var structure untouched. A Var whose wire
// is already bound is expanded by recursing into its binding, consuming the
// binding as it goes; an unbound Var is returned as-is.
func (e *encoder) encodeSubtree(tree Tree) Tree {
	switch v := tree.(type) {
	case *Con:
		return &Con{A: e.encodeSubtree(v.A), B: e.encodeSubtree(v.B)}
	case *Era:
		return &Era{}
	case *Dup:
		p, q := e.net.CreateWire()
		ea := e.encodeSubtree(v.A)
		eb := e.encodeSubtree(v.B)
		e.dups = append(e.dups, dupSite{companion: q, a: ea, b: eb})
		return p
	case *Var:
		bound, ok := e.net.Vars[v.ID]
		if ok && bound != nil {
			delete(e.net.Vars, v.ID)
			return e.encodeSubtree(*bound)
		}
		return v
	default:
		return tree
	}
}

// mergeCtrs folds a list of dup sites into one balanced Con tree of Con
// triples, per encoding.rs's merge_ctrs: the base cases are an empty list
// (nothing to merge — (Era,Era,Era)) and a singleton (passed through
// as-is); otherwise the list is split roughly in half and each half is
// merged recursively, then the three components are paired pointwise with
// Con.
func mergeCtrs(sites []dupSite) dupSite {
	switch len(sites) {
	case 0:
		return dupSite{companion: &Era{}, a: &Era{}, b: &Era{}}
	case 1:
		return sites[0]
	default:
		mid := len(sites)/2 + 1
		if mid >= len(sites) {
			mid = len(sites) / 2
		}
		left := mergeCtrs(sites[:mid])
		right := mergeCtrs(sites[mid:])
		return dupSite{
			companion: &Con{A: left.companion, B: right.companion},
			a:         &Con{A: left.a, B: right.a},
			b:         &Con{A: left.b, B: right.b},
		}
	}
}

// EncodeTree lowers tree, a combinator tree possibly still containing Dup
// nodes hanging off a single root, into the pure Con/Era/Var shape required
// at a net's port: every Dup in tree is pulled out into one shared
// Con-of-dups witness, yielding Con(Con(inputs, tree'), Con(L, R)) where
// inputs is the merged companion wire and L/R are the merged two children.
// This is the subroutine spec.md §4.6 calls "closing the box": turning a
// tree with internal sharing into one with all sharing routed through its
// boundary.
func EncodeTree(net *Net, tree Tree) Tree {
	e := &encoder{net: net}
	encoded := e.encodeSubtree(tree)
	merged := mergeCtrs(e.dups)
	return &Con{
		A: &Con{A: merged.companion, B: encoded},
		B: &Con{A: merged.a, B: merged.b},
	}
}
