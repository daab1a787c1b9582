package linnet

import "fmt"

// Cell is a typed view of an AgentTree: instead of re-checking an agent's
// symbol and re-shaping its raw []PartitionOrBox on every use, FromTree
// projects it once into one of the fifteen concrete Cell variants below,
// each carrying its arguments with their proper Go types.
type Cell interface{ isCell() }

type CellTimes struct{ A, B Tree }
type CellPar struct{ A, B Tree }
type CellOne struct{}
type CellFalse struct {
	A   Tree
	Box *Net
}
type CellLeft struct{ Out Tree }
type CellRight struct{ Out Tree }
type CellWith struct {
	Ctx         Tree
	Left, Right *Net
}
type CellTrue struct{ Out Tree }
type CellExp0 struct{ Box *Net }
type CellExp1 struct {
	Ctx Tree
	Box *Net
}
type CellWeak struct {
	Ctx Tree
	Box *Net
}
type CellDere struct{ Out Tree }
type CellCntr struct{ A, B Tree }
type CellAll struct {
	ACtx Tree
	Box  *Net
}
type CellAny struct {
	ECtx Tree
	Box  *Net
}

func (CellTimes) isCell() {}
func (CellPar) isCell()   {}
func (CellOne) isCell()   {}
func (CellFalse) isCell() {}
func (CellLeft) isCell()  {}
func (CellRight) isCell() {}
func (CellWith) isCell()  {}
func (CellTrue) isCell()  {}
func (CellExp0) isCell()  {}
func (CellExp1) isCell()  {}
func (CellWeak) isCell()  {}
func (CellDere) isCell()  {}
func (CellCntr) isCell()  {}
func (CellAll) isCell()   {}
func (CellAny) isCell()   {}

func asPartition(a PartitionOrBox) (*Partition, bool) {
	p, ok := a.(*Partition)
	return p, ok
}

func asBox(a PartitionOrBox) (*Net, bool) {
	b, ok := a.(*BoxArg)
	if !ok {
		return nil, false
	}
	return b.Net, true
}

// FromTree projects tree into its Cell view, or reports ok=false if tree is
// a bare variable occurrence (no cell to view) or an agent whose arguments
// don't match its symbol's declared shape (a well-formedness violation
// elsewhere in the compiler).
func FromTree(tree Tree) (Cell, bool) {
	agent, ok := tree.(*AgentTree)
	if !ok {
		return nil, false
	}
	args := agent.Args
	switch agent.Symbol {
	case Times:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asPartition(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 || len(b.Ports) != 1 {
			return nil, false
		}
		return CellTimes{A: a.Ports[0], B: b.Ports[0]}, true
	case Par:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 2 {
			return nil, false
		}
		return CellPar{A: a.Ports[0], B: a.Ports[1]}, true
	case One:
		if len(args) != 0 {
			return nil, false
		}
		return CellOne{}, true
	case False:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asBox(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellFalse{A: a.Ports[0], Box: b}, true
	case Left:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellLeft{Out: a.Ports[0]}, true
	case Right:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellRight{Out: a.Ports[0]}, true
	case With:
		if len(args) != 3 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		l, ok2 := asBox(args[1])
		r, ok3 := asBox(args[2])
		if !ok1 || !ok2 || !ok3 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellWith{Ctx: a.Ports[0], Left: l, Right: r}, true
	case True:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellTrue{Out: a.Ports[0]}, true
	case Exp0:
		if len(args) != 1 {
			return nil, false
		}
		b, ok1 := asBox(args[0])
		if !ok1 {
			return nil, false
		}
		return CellExp0{Box: b}, true
	case Exp1:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asBox(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellExp1{Ctx: a.Ports[0], Box: b}, true
	case Weak:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asBox(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellWeak{Ctx: a.Ports[0], Box: b}, true
	case Dere:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellDere{Out: a.Ports[0]}, true
	case Cntr:
		if len(args) != 1 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		if !ok1 || len(a.Ports) != 2 {
			return nil, false
		}
		return CellCntr{A: a.Ports[0], B: a.Ports[1]}, true
	case All:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asBox(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellAll{ACtx: a.Ports[0], Box: b}, true
	case Any:
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := asPartition(args[0])
		b, ok2 := asBox(args[1])
		if !ok1 || !ok2 || len(a.Ports) != 1 {
			return nil, false
		}
		return CellAny{ECtx: a.Ports[0], Box: b}, true
	default:
		return nil, false
	}
}

// ToTree rebuilds an AgentTree from a Cell view. Only the variants a
// rewrite rule ever needs to reconstruct mid-reduction are implemented
// (Exp0, Exp1, Weak, Dere, Cntr — see the exponential rules in rules.go);
// every other variant is built directly via Graft at its one construction
// site (the compiler) and never needs to round-trip back through a Cell, so
// reconstructing them here is intentionally left unimplemented.
func ToTree(c Cell) (Tree, error) {
	switch v := c.(type) {
	case CellExp0:
		n, err := Graft(Exp0, []GraftArg{GraftBox{Net: v.Box, Ports: portIndices(v.Box)}})
		return wrapAgent(n, err)
	case CellExp1:
		n, err := Graft(Exp1, []GraftArg{
			partitionOf(v.Ctx),
			GraftBox{Net: v.Box, Ports: portIndices(v.Box)},
		})
		return wrapAgent(n, err)
	case CellWeak:
		n, err := Graft(Weak, []GraftArg{
			partitionOf(v.Ctx),
			GraftBox{Net: v.Box, Ports: portIndices(v.Box)},
		})
		return wrapAgent(n, err)
	case CellDere:
		n, err := Graft(Dere, []GraftArg{partitionOf(v.Out)})
		return wrapAgent(n, err)
	case CellCntr:
		pn := NewNet()
		pn.Ports = append(pn.Ports, v.A, v.B)
		n, err := Graft(Cntr, []GraftArg{GraftPartition{Net: pn, Ports: []int{0, 1}}})
		return wrapAgent(n, err)
	default:
		return nil, fmt.Errorf("linnet: ToTree not implemented for %T", c)
	}
}

func portIndices(n *Net) []int {
	idx := make([]int, len(n.Ports))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// partitionOf wraps a single tree that's already attached to the current
// net into a one-port partition graft argument.
func partitionOf(t Tree) GraftArg {
	n := NewNet()
	n.Ports = append(n.Ports, t)
	return GraftPartition{Net: n, Ports: []int{0}}
}

func wrapAgent(n *Net, err error) (Tree, error) {
	if err != nil {
		return nil, err
	}
	return n.Ports[0], nil
}
