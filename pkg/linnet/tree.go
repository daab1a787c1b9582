package linnet

// VarID identifies a wire within a single Net. Ids are allocated densely
// starting at zero and are only meaningful inside the Net that owns them;
// Mix and Graft renumber a net's ids when combining it with another.
type VarID int

// Tree is either a variable occurrence (one of a wire's two ends) or an
// agent applied to its auxiliary arguments. It mirrors the teacher's
// Node-interface-with-tag idiom (pkg/deltanet's Node/BaseNode), not a
// closed Go sum type, because Trees are rebuilt and pattern-matched far more
// often than they're type-switched on their own tag.
type Tree interface {
	isTree()
	mapVars(m func(VarID) VarID)
}

// VarTree is one occurrence of a wire.
type VarTree struct {
	ID VarID
}

func (VarTree) isTree() {}

func (t *VarTree) mapVars(m func(VarID) VarID) { t.ID = m(t.ID) }

// AgentTree applies Symbol to its auxiliary arguments.
type AgentTree struct {
	Symbol Symbol
	Args   []PartitionOrBox
}

func (*AgentTree) isTree() {}

func (t *AgentTree) mapVars(m func(VarID) VarID) {
	for _, a := range t.Args {
		a.mapVars(m)
	}
}

// PartitionOrBox is one auxiliary argument slot of an AgentTree: either an
// open Partition (more trees belonging to the same net) or a closed Box (an
// independent sub-net, locally wire-numbered).
type PartitionOrBox interface {
	isPartitionOrBox()
	mapVars(m func(VarID) VarID)
}

// Partition holds trees that still belong to the enclosing net.
type Partition struct {
	Ports []Tree
}

func (Partition) isPartitionOrBox() {}

func (p *Partition) mapVars(m func(VarID) VarID) {
	for _, t := range p.Ports {
		t.mapVars(m)
	}
}

// BoxArg holds a fully self-contained sub-net with its own locally-scoped
// wire ids.
type BoxArg struct {
	Net *Net
}

func (BoxArg) isPartitionOrBox() {}

// Boxes are opaque to mapVars: the renumbering a Mix/Graft performs on the
// outer net must never leak into a box's locally-scoped ids (mirrors
// PartitionOrBox::map_vars in original_source/src/net/mod.rs, which is a
// no-op on the Box case).
func (b *BoxArg) mapVars(m func(VarID) VarID) {}

// cloneTree deep-copies a Tree. Boxes are copied net-and-all since a boxed
// sub-net's wires are locally scoped and must not alias the original's.
func cloneTree(t Tree) Tree {
	switch v := t.(type) {
	case *VarTree:
		return &VarTree{ID: v.ID}
	case *AgentTree:
		args := make([]PartitionOrBox, len(v.Args))
		for i, a := range v.Args {
			args[i] = clonePartitionOrBox(a)
		}
		return &AgentTree{Symbol: v.Symbol, Args: args}
	default:
		panic("linnet: unknown Tree implementation")
	}
}

func clonePartitionOrBox(a PartitionOrBox) PartitionOrBox {
	switch v := a.(type) {
	case *Partition:
		ports := make([]Tree, len(v.Ports))
		for i, t := range v.Ports {
			ports[i] = cloneTree(t)
		}
		return &Partition{Ports: ports}
	case *BoxArg:
		return &BoxArg{Net: v.Net.Clone()}
	default:
		panic("linnet: unknown PartitionOrBox implementation")
	}
}
