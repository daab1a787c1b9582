// Package compiler folds a desugared surface.Book into one pkg/linnet.Net
// per definition: the graph compiler that turns a flat list of monocut and
// multicut instructions into wired, boxed proof nets.
//
// Grounded on original_source/src/syntax/compiler.rs's Compiler, whose
// wire_to_nets/nets bookkeeping is reproduced here under Go names; the
// multicut loop's port-address arithmetic is corrected (see
// compileMulticut) since the reference's literal increasing index only
// happens to work for arity-1 callees.
package compiler

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/surface"
	"github.com/vic/linearnet/pkg/util"
)

// StructuralError wraps a failure discovered while compiling one net's
// instruction stream: an unresolved agent or net name, a box left with
// unaccounted wires, a wire used before it was produced, and so on. Err is
// wrapped with %w so callers can errors.Is/As through to one of the
// sentinels below.
type StructuralError struct {
	Net string
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("compiler: net %q: %v", e.Net, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

var (
	ErrUnknownConnective = errors.New("unknown connective")
	ErrUnknownNet        = errors.New("unknown net")
	ErrMissingWireInBox  = errors.New("missing wire in box")
	ErrMismatchedWire    = errors.New("one side of a cut is already bound, the other is free")
	ErrWrongArity        = errors.New("argument count does not match the called net's declared outputs")
	ErrIncompleteNet     = errors.New("instructions did not fold to exactly one net")
)

// wireLoc is where a not-yet-consumed surface variable currently lives: the
// id of its owning sub-net (a key into Compiler.nets) and its port address
// within that sub-net's Ports.
type wireLoc struct {
	netID int
	addr  int
}

// compiledNet is one in-progress sub-net plus the surface wire each of its
// free ports corresponds to, in order.
type compiledNet struct {
	net   *linnet.Net
	wires []surface.VarID
}

// Compiler holds the state needed to compile one surface.Book: everything
// is reset at the start of each CompileNet call except globalNets, which
// accumulates across the whole book so later nets can multicut into
// earlier ones.
type Compiler struct {
	Log *logrus.Logger

	wireToNets map[surface.VarID]wireLoc
	nets       map[int]compiledNet
	nextNetID  int
	globalNets map[string]*linnet.Net
}

// NewCompiler returns a compiler with a default (warn-level) logger and no
// compiled nets yet.
func NewCompiler() *Compiler {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Compiler{Log: log, globalNets: make(map[string]*linnet.Net)}
}

func (c *Compiler) makeNewNetID() int {
	id := c.nextNetID
	c.nextNetID++
	return id
}

// CompileBook compiles every net definition in book, in order.
func (c *Compiler) CompileBook(book surface.Book) error {
	for _, net := range book {
		if err := c.CompileNet(net); err != nil {
			return err
		}
	}
	return nil
}

// CompileNet desugars and compiles one net definition, registering the
// resulting linnet.Net under net.Name.
func (c *Compiler) CompileNet(net surface.AstNet) error {
	c.wireToNets = make(map[surface.VarID]wireLoc)
	c.nets = make(map[int]compiledNet)
	c.nextNetID = 0

	instrs, outputs := surface.Desugar(net, maxVarID(net)+1)

	for _, instr := range instrs {
		var err error
		switch v := instr.(type) {
		case surface.Monocut:
			err = c.compileMonocut(net.Name, v.Left, v.Right)
		case surface.Multicut:
			err = c.compileMulticut(net.Name, v.Name, v.Args)
		}
		if err != nil {
			return err
		}
	}

	if len(c.nets) != 1 {
		return &StructuralError{Net: net.Name, Err: fmt.Errorf("%w: got %d", ErrIncompleteNet, len(c.nets))}
	}
	var result compiledNet
	for _, v := range c.nets {
		result = v
	}

	bound := make(map[surface.VarID]linnet.Tree, len(result.wires))
	for i, w := range result.wires {
		bound[w] = result.net.Ports[i]
	}
	result.net.Ports = result.net.Ports[:0]
	for _, out := range outputs {
		part, ok := out.(surface.Partition)
		if !ok || len(part.Elems) != 1 {
			return &StructuralError{Net: net.Name, Err: fmt.Errorf("net output must be a single wire")}
		}
		v, ok := part.Elems[0].(surface.VarTree)
		if !ok {
			return &StructuralError{Net: net.Name, Err: fmt.Errorf("net output must be a bare variable")}
		}
		tree, ok := bound[v.ID]
		if !ok {
			return &StructuralError{Net: net.Name, Err: fmt.Errorf("output wire %d never produced", v.ID)}
		}
		result.net.Ports = append(result.net.Ports, tree)
	}

	c.Log.WithFields(logrus.Fields{"net": net.Name, "ports": len(result.net.Ports)}).Debug("compiler: compiled net")
	c.globalNets[net.Name] = result.net
	return nil
}

// MainNet returns the compiled net registered under "Main", the program's
// entry point.
func (c *Compiler) MainNet() (*linnet.Net, error) {
	net, ok := c.globalNets["Main"]
	if !ok {
		return nil, fmt.Errorf(`compiler: no net named "Main"`)
	}
	return net, nil
}

// compileMonocut dispatches on which side(s) of the cut are bare
// variables: Var=Var decides between wiring and cutting two existing
// sub-nets (compileWireOrCut); Agent=Var or Var=Agent grafts a fresh agent
// cell, binding its new wire to varID (compileGraft). Desugaring
// guarantees at least one side is always a bare variable.
func (c *Compiler) compileMonocut(netName string, left, right surface.Tree) error {
	leftVar, leftIsVar := left.(surface.VarTree)
	rightVar, rightIsVar := right.(surface.VarTree)

	switch {
	case leftIsVar && rightIsVar:
		return c.compileWireOrCut(netName, leftVar.ID, rightVar.ID)
	case leftIsVar:
		agent := right.(surface.AgentTree)
		return c.compileGraft(netName, leftVar.ID, agent)
	case rightIsVar:
		agent := left.(surface.AgentTree)
		return c.compileGraft(netName, rightVar.ID, agent)
	default:
		return &StructuralError{Net: netName, Err: fmt.Errorf("monocut between two agents (desugaring should have prevented this)")}
	}
}

// compileWireOrCut handles `a = b` where both sides are bare variables: if
// both wires already belong to a sub-net, those two sub-nets are cut
// together at the corresponding ports; if neither does, a fresh identity
// wire is introduced naming both. A wire bound on one side but free on the
// other can't happen in a well-formed program (every surface variable
// occurs exactly twice, produced once and consumed once) and is reported
// as a structural error rather than panicking.
func (c *Compiler) compileWireOrCut(netName string, a, b surface.VarID) error {
	aLoc, aOK := c.wireToNets[a]
	bLoc, bOK := c.wireToNets[b]
	switch {
	case aOK && bOK:
		aNet := c.nets[aLoc.netID]
		bNet := c.nets[bLoc.netID]
		delete(c.nets, aLoc.netID)
		delete(c.nets, bLoc.netID)
		newNet := linnet.Cut(aNet.net, aLoc.addr, bNet.net, bLoc.addr)
		newNetID := c.makeNewNetID()
		var newWires []surface.VarID
		for _, w := range aNet.wires {
			if w != a {
				c.wireToNets[w] = wireLoc{newNetID, len(newWires)}
				newWires = append(newWires, w)
			}
		}
		for _, w := range bNet.wires {
			if w != b {
				c.wireToNets[w] = wireLoc{newNetID, len(newWires)}
				newWires = append(newWires, w)
			}
		}
		c.nets[newNetID] = compiledNet{net: newNet, wires: newWires}
		return nil
	case !aOK && !bOK:
		newNet := linnet.WireNet()
		newNetID := c.makeNewNetID()
		c.nets[newNetID] = compiledNet{net: newNet, wires: []surface.VarID{a, b}}
		c.wireToNets[a] = wireLoc{newNetID, 0}
		c.wireToNets[b] = wireLoc{newNetID, 1}
		return nil
	default:
		return &StructuralError{Net: netName, Err: fmt.Errorf("%w: %d and %d", ErrMismatchedWire, a, b)}
	}
}

// compileGraft builds a fresh agent cell for agent, binding its own wire to
// varID and reassigning every wire among its arguments to the newly built
// sub-net (except wires consumed by a box argument, which must exactly
// account for every remaining port of whatever sub-net they draw from). If
// varID's other end already sits in a sub-net, the new cell is cut into that
// sub-net at varID's port.
func (c *Compiler) compileGraft(netName string, varID surface.VarID, agent surface.AgentTree) error {
	symbol, ok := linnet.SymbolByName(agent.Name)
	if !ok {
		return &StructuralError{Net: netName, Err: unknownNameError(ErrUnknownConnective, agent.Name, linnet.AllSymbolNames())}
	}

	prevLoc, hadPrev := c.wireToNets[varID]
	newNetID := c.makeNewNetID()
	newVars := []surface.VarID{varID}
	c.wireToNets[varID] = wireLoc{newNetID, 0}

	graftArgs := make([]linnet.GraftArg, 0, len(agent.Args))
	for _, arg := range agent.Args {
		_, isBox := arg.(surface.Box)
		trees := arg.Trees()
		if !isBox && len(trees) == 0 {
			// `One()`: an empty partition is how a nullary agent is written.
			continue
		}
		wires := make([]surface.VarID, len(trees))
		for i, t := range trees {
			v, ok := t.(surface.VarTree)
			if !ok {
				return &StructuralError{Net: netName, Err: fmt.Errorf("%s's argument must be a bare variable after desugaring", agent.Name)}
			}
			wires[i] = v.ID
		}

		included := make(map[surface.VarID]bool, len(wires))
		sourceNetID, haveSource := 0, false
		addresses := make([]int, len(wires))
		for i, w := range wires {
			loc, ok := c.wireToNets[w]
			if !ok {
				return &StructuralError{Net: netName, Err: fmt.Errorf("wire %d used before it was produced", w)}
			}
			if haveSource && loc.netID != sourceNetID {
				return &StructuralError{Net: netName, Err: fmt.Errorf("%s's argument wires span more than one sub-net", agent.Name)}
			}
			sourceNetID, haveSource = loc.netID, true
			included[w] = true
			addresses[i] = loc.addr
			delete(c.wireToNets, w)
		}

		entry, entryOK := c.nets[sourceNetID]
		if !entryOK {
			return &StructuralError{Net: netName, Err: fmt.Errorf("%s's argument wires have no backing sub-net", agent.Name)}
		}
		delete(c.nets, sourceNetID)
		for _, w := range entry.wires {
			if included[w] {
				continue
			}
			if isBox {
				return &StructuralError{Net: netName, Err: fmt.Errorf("%w: %s's box argument leaves wire %d unaccounted", ErrMissingWireInBox, agent.Name, w)}
			}
			c.wireToNets[w] = wireLoc{newNetID, len(newVars)}
			newVars = append(newVars, w)
		}

		if isBox {
			graftArgs = append(graftArgs, linnet.GraftBox{Net: entry.net, Ports: addresses})
		} else {
			graftArgs = append(graftArgs, linnet.GraftPartition{Net: entry.net, Ports: addresses})
		}
	}

	built, err := linnet.Graft(symbol, graftArgs)
	if err != nil {
		return &StructuralError{Net: netName, Err: err}
	}
	if prev, ok := c.nets[prevLoc.netID]; hadPrev && ok {
		delete(c.nets, prevLoc.netID)
		delete(c.wireToNets, varID)
		wires := append([]surface.VarID(nil), prev.wires[:prevLoc.addr]...)
		wires = append(append(wires, prev.wires[prevLoc.addr+1:]...), newVars[1:]...)
		for i, w := range wires {
			c.wireToNets[w] = wireLoc{newNetID, i}
		}
		c.nets[newNetID] = compiledNet{net: linnet.Cut(prev.net, prevLoc.addr, built, 0), wires: wires}
		return nil
	}
	c.nets[newNetID] = compiledNet{net: built, wires: newVars}
	return nil
}

// compileMulticut instantiates calleeName (cloning its compiled net so each
// call site gets an independent copy) and cuts each of args, in order,
// against the callee's declared ports.
//
// At each step the callee's own remaining ports always start at position 0
// of the evolving composite: Cut removes exactly the port it's given from
// the composite's front (the callee's side) and appends the argument's
// sub-net's leftover ports after it, so the next callee port to consume is
// always back at position 0. The reference implementation instead indexes
// with the literal loop counter (0, 1, 2, ...), which only happens to
// target the right port when the callee has a single declared output;
// cutting position 0 every time is the general form of the same idea.
func (c *Compiler) compileMulticut(netName, calleeName string, args []surface.Tree) error {
	callee, ok := c.globalNets[calleeName]
	if !ok {
		names := make([]string, 0, len(c.globalNets))
		for n := range c.globalNets {
			names = append(names, n)
		}
		return &StructuralError{Net: netName, Err: unknownNameError(ErrUnknownNet, calleeName, names)}
	}
	net := callee.Clone()
	if len(args) != len(net.Ports) {
		return &StructuralError{Net: netName, Err: fmt.Errorf("%w: %s declares %d outputs, called with %d arguments", ErrWrongArity, calleeName, len(net.Ports), len(args))}
	}

	newNetID := c.makeNewNetID()
	var newVars []surface.VarID
	for _, arg := range args {
		v, ok := arg.(surface.VarTree)
		if !ok {
			return &StructuralError{Net: netName, Err: fmt.Errorf("multicut argument must be a bare variable after desugaring")}
		}
		loc, ok := c.wireToNets[v.ID]
		if !ok {
			return &StructuralError{Net: netName, Err: fmt.Errorf("wire %d used before it was produced", v.ID)}
		}
		delete(c.wireToNets, v.ID)
		entry := c.nets[loc.netID]
		delete(c.nets, loc.netID)
		for _, w := range entry.wires {
			if w == v.ID {
				continue
			}
			c.wireToNets[w] = wireLoc{newNetID, len(newVars)}
			newVars = append(newVars, w)
		}
		net = linnet.Cut(net, 0, entry.net, loc.addr)
	}
	c.nets[newNetID] = compiledNet{net: net, wires: newVars}
	return nil
}

// unknownNameError builds an error for a name that doesn't resolve,
// appending a fuzzy "did you mean" suggestion from candidates when one
// scores well enough to be worth showing.
func unknownNameError(sentinel error, name string, candidates []string) error {
	err := fmt.Errorf("%w: %q", sentinel, name)
	if suggestion := util.SuggestName(name, candidates); suggestion != "" {
		err = fmt.Errorf("%w (did you mean %q?)", err, suggestion)
	}
	return err
}

// maxVarID scans every tree reachable from net's (not yet desugared)
// instructions and outputs for the largest surface.VarID used, so
// surface.Desugar can allocate fresh ids that never collide with it.
func maxVarID(net surface.AstNet) surface.VarID {
	max := surface.VarID(-1)
	bump := func(id surface.VarID) {
		if id > max {
			max = id
		}
	}
	var walkTree func(surface.Tree)
	walkArgs := func(args []surface.Argument) {
		for _, a := range args {
			for _, t := range a.Trees() {
				walkTree(t)
			}
		}
	}
	walkTree = func(t surface.Tree) {
		switch v := t.(type) {
		case surface.VarTree:
			bump(v.ID)
		case surface.AgentTree:
			walkArgs(v.Args)
		}
	}
	for _, instr := range net.Instructions {
		switch v := instr.(type) {
		case surface.Monocut:
			walkTree(v.Left)
			walkTree(v.Right)
		case surface.Multicut:
			for _, t := range v.Args {
				walkTree(t)
			}
		}
	}
	walkArgs(net.Outputs)
	return max
}
