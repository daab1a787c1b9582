package icomb

import "github.com/vic/linearnet/pkg/util"

// IvyTree is a structural stand-in for the ivy crate's ivy::ast::Tree
// (Var(name) or an n-ary constructor node); there is no Go binding for that
// crate available, so --target ivy emits this shape, intentionally partial
// the same way HVMTree is.
type IvyTree struct {
	Var      string // set when this node is a variable occurrence
	Ctor     string // "con", "dup" or "era" otherwise
	Children []*IvyTree
}

// IvyNet is a structural stand-in for ivy::ast::Net: a root tree plus a
// list of active pairs.
type IvyNet struct {
	Root  *IvyTree
	Pairs [][2]*IvyTree
}

// emitIvy is grounded on original_source/src/icombs/ivy.rs's EmitIvy.
type emitIvy struct {
	scope *util.NameScope
}

// EmitIvy renders net's first port and redex list into the ivy structural
// shape.
func EmitIvy(net *Net) IvyNet {
	e := &emitIvy{scope: util.NewNameScope()}
	root := e.emitTree(net.Ports[0])
	pairs := make([][2]*IvyTree, len(net.Redexes))
	for i, r := range net.Redexes {
		pairs[i] = [2]*IvyTree{e.emitTree(r.A), e.emitTree(r.B)}
	}
	return IvyNet{Root: root, Pairs: pairs}
}

func (e *emitIvy) emitTree(t Tree) *IvyTree {
	switch v := t.(type) {
	case *Var:
		return &IvyTree{Var: e.scope.PickName(int(v.ID))}
	case *Con:
		return &IvyTree{Ctor: "con", Children: []*IvyTree{e.emitTree(v.A), e.emitTree(v.B)}}
	case *Dup:
		return &IvyTree{Ctor: "dup", Children: []*IvyTree{e.emitTree(v.A), e.emitTree(v.B)}}
	case *Era:
		return &IvyTree{Ctor: "era"}
	default:
		panic("icomb: unknown Tree implementation")
	}
}

// String renders t in ivy's n-ary-application syntax: `name` for a
// variable, `ctor(child, ...)` otherwise.
func (t *IvyTree) String() string {
	if t == nil {
		return "era()"
	}
	if t.Var != "" {
		return t.Var
	}
	s := t.Ctor + "("
	for i, c := range t.Children {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}
