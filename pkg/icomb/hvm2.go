package icomb

import "github.com/vic/linearnet/pkg/util"

// HVMTree is a structural stand-in for hvm-lang's hvm::ast::Tree: there is
// no Go binding for that crate in this module's dependency surface, so
// --target hvm2 emits this shape (and its String form below) as the
// nearest thing to the real wire format, documented as intentionally
// partial (shape mapping only, no actual HVM2 execution).
type HVMTree struct {
	Kind string // "var", "con", "dup" or "era"
	Name string // set when Kind == "var"
	Fst  *HVMTree
	Snd  *HVMTree
}

// HVMRedex is one entry of an HVMNet's interaction bag, with the
// "is-this-a-real-redex" flag hvm-lang's format carries alongside each pair.
type HVMRedex struct {
	Active   bool
	Fst, Snd *HVMTree
}

// HVMNet is a structural stand-in for hvm::ast::Net.
type HVMNet struct {
	Root *HVMTree
	RBag []HVMRedex
}

// emitHVM2 is grounded on original_source/src/icombs/hvm2.rs's EmitHVM2.
type emitHVM2 struct {
	scope *util.NameScope
}

// EmitHVM2 renders net's first port and redex bag into the hvm2 structural
// shape.
func EmitHVM2(net *Net) HVMNet {
	e := &emitHVM2{scope: util.NewNameScope()}
	root := e.emitTree(net.Ports[0])
	rbag := make([]HVMRedex, len(net.Redexes))
	for i, r := range net.Redexes {
		rbag[i] = HVMRedex{Active: true, Fst: e.emitTree(r.A), Snd: e.emitTree(r.B)}
	}
	return HVMNet{Root: root, RBag: rbag}
}

func (e *emitHVM2) emitTree(t Tree) *HVMTree {
	switch v := t.(type) {
	case *Var:
		return &HVMTree{Kind: "var", Name: e.scope.PickName(int(v.ID))}
	case *Con:
		return &HVMTree{Kind: "con", Fst: e.emitTree(v.A), Snd: e.emitTree(v.B)}
	case *Dup:
		return &HVMTree{Kind: "dup", Fst: e.emitTree(v.A), Snd: e.emitTree(v.B)}
	case *Era:
		return &HVMTree{Kind: "era"}
	default:
		panic("icomb: unknown Tree implementation")
	}
}

// String renders t in hvm2's textual syntax (`(a b)` for Con, `{a b}` for
// Dup, `*` for Era).
func (t *HVMTree) String() string {
	if t == nil {
		return "*"
	}
	switch t.Kind {
	case "var":
		return t.Name
	case "con":
		return "(" + t.Fst.String() + " " + t.Snd.String() + ")"
	case "dup":
		return "{" + t.Fst.String() + " " + t.Snd.String() + "}"
	default:
		return "*"
	}
}
