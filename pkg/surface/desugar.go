package surface

// Desugarer flattens a parsed net so every agent appears only at the top
// level of an instruction: a nested agent such as `r = Times(One())` becomes
// a fresh monocut `v = One()` threaded into `r = Times(v)`. This is the
// shape pkg/compiler's graph compiler expects — it never has to recurse
// into an argument looking for more agents to compile.
//
// validlyDeclaredVars tracks ids that are "owed" a second occurrence (the
// var's producing side has already been emitted); newWiredVars remembers,
// per surface var id first met in a nested position before being produced,
// the fresh id of the wire monocut emitted for it, so the two occurrences of
// one surface variable land on the two ends of that wire.
type Desugarer struct {
	Output []Instruction

	nextVar             VarID
	validlyDeclaredVars map[VarID]bool
	newWiredVars        map[VarID]VarID
}

// NewDesugarer returns a desugarer that allocates fresh ids starting at
// nextVar (one past every id the parser already used in this net).
func NewDesugarer(nextVar VarID) *Desugarer {
	return &Desugarer{
		nextVar:             nextVar,
		validlyDeclaredVars: make(map[VarID]bool),
		newWiredVars:        make(map[VarID]VarID),
	}
}

func (d *Desugarer) makeVar() VarID {
	v := d.nextVar
	d.nextVar++
	return v
}

// DesugarContents rewrites each tree within an argument list, leaving the
// Partition/Box shape untouched.
func (d *Desugarer) DesugarContents(args []Argument) []Argument {
	out := make([]Argument, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case Partition:
			elems := make([]Tree, len(v.Elems))
			for j, t := range v.Elems {
				elems[j] = d.desugar(t)
			}
			out[i] = Partition{Elems: elems}
		case Box:
			elems := make([]Tree, len(v.Elems))
			for j, t := range v.Elems {
				elems[j] = d.desugar(t)
			}
			out[i] = Box{Elems: elems}
		}
	}
	return out
}

// desugar rewrites one tree: a bare Var that is already declared passes
// through, one that was auto-wired earlier is replaced by its wire's fresh
// end, and any other gets a fresh `v = new` wire monocut; an Agent is
// hoisted into a fresh monocut and replaced in place by the fresh variable
// that names it.
func (d *Desugarer) desugar(t Tree) Tree {
	switch v := t.(type) {
	case VarTree:
		if d.validlyDeclaredVars[v.ID] {
			delete(d.validlyDeclaredVars, v.ID)
			return v
		}
		if newID, ok := d.newWiredVars[v.ID]; ok {
			delete(d.newWiredVars, v.ID)
			return VarTree{ID: newID}
		}
		newID := d.makeVar()
		d.Output = append(d.Output, Monocut{Left: VarTree{ID: v.ID}, Right: VarTree{ID: newID}})
		d.validlyDeclaredVars[newID] = true
		d.newWiredVars[v.ID] = newID
		return v
	case AgentTree:
		newVar := d.makeVar()
		d.Output = append(d.Output, Monocut{
			Left:  VarTree{ID: newVar},
			Right: AgentTree{Name: v.Name, Args: d.DesugarContents(v.Args)},
		})
		d.validlyDeclaredVars[newVar] = true
		return VarTree{ID: newVar}
	default:
		return t
	}
}

// DesugarInstruction folds one parsed top-level instruction into Output,
// per the four shapes a parsed instruction can take.
func (d *Desugarer) DesugarInstruction(instr Instruction) {
	switch v := instr.(type) {
	case Multicut:
		args := make([]Tree, len(v.Args))
		for i, t := range v.Args {
			args[i] = d.desugar(t)
		}
		d.Output = append(d.Output, Multicut{Name: v.Name, Args: args})

	case Monocut:
		leftVar, leftIsVar := v.Left.(VarTree)
		rightVar, rightIsVar := v.Right.(VarTree)
		switch {
		case leftIsVar && rightIsVar:
			d.validlyDeclaredVars[leftVar.ID] = true
			d.validlyDeclaredVars[rightVar.ID] = true
			d.Output = append(d.Output, v)
		case leftIsVar:
			// `var = Agent(...)`: the agent is already at the top level,
			// only its own arguments might still hide nested agents.
			if newID, ok := d.newWiredVars[leftVar.ID]; ok {
				delete(d.newWiredVars, leftVar.ID)
				leftVar = VarTree{ID: newID}
			} else {
				d.validlyDeclaredVars[leftVar.ID] = true
			}
			agent := v.Right.(AgentTree)
			d.Output = append(d.Output, Monocut{
				Left:  leftVar,
				Right: AgentTree{Name: agent.Name, Args: d.DesugarContents(agent.Args)},
			})
		case rightIsVar:
			if newID, ok := d.newWiredVars[rightVar.ID]; ok {
				delete(d.newWiredVars, rightVar.ID)
				rightVar = VarTree{ID: newID}
			} else {
				d.validlyDeclaredVars[rightVar.ID] = true
			}
			agent := v.Left.(AgentTree)
			d.Output = append(d.Output, Monocut{
				Left:  AgentTree{Name: agent.Name, Args: d.DesugarContents(agent.Args)},
				Right: rightVar,
			})
		default:
			d.Output = append(d.Output, Monocut{Left: d.desugar(v.Left), Right: d.desugar(v.Right)})
		}
	}
}

// Desugar runs the full parser-to-compiler pipeline for one net: it
// desugars every instruction in order, then the net's declared outputs
// (which may themselves reference nested agents), and returns the
// flattened replacement for net.Instructions and net.Outputs.
func Desugar(net AstNet, nextVar VarID) ([]Instruction, []Argument) {
	d := NewDesugarer(nextVar)
	for _, instr := range net.Instructions {
		d.DesugarInstruction(instr)
	}
	outputs := d.DesugarContents(net.Outputs)
	return d.Output, outputs
}
