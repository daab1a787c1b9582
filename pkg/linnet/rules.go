package linnet

// IsDefined reports whether a redex between left and right has a rule, with
// left's symbol dispatching first: (Times,Par), (One,False), (Left,With),
// (Right,With), (Exp0,{Weak,Dere,Cntr}), (Exp1,{Weak,Dere,Cntr}) and
// (All,Any). ApplyRule tries both orderings, since redexes aren't stored
// with a fixed polarity.
func IsDefined(left, right Cell) bool {
	switch left.(type) {
	case CellTimes:
		_, ok := right.(CellPar)
		return ok
	case CellOne:
		_, ok := right.(CellFalse)
		return ok
	case CellLeft:
		_, ok := right.(CellWith)
		return ok
	case CellRight:
		_, ok := right.(CellWith)
		return ok
	case CellExp0:
		switch right.(type) {
		case CellWeak, CellDere, CellCntr:
			return true
		}
		return false
	case CellExp1:
		switch right.(type) {
		case CellWeak, CellDere, CellCntr:
			return true
		}
		return false
	case CellAll:
		_, ok := right.(CellAny)
		return ok
	default:
		return false
	}
}

// RuleName identifies which rewrite rule fired, for statistics and tracing.
type RuleName int

const (
	RuleStuck RuleName = iota
	RuleTimesPar
	RuleOneFalse
	RuleLeftWith
	RuleRightWith
	RuleExp0Weak
	RuleExp0Dere
	RuleExp0Cntr
	RuleExp1Weak
	RuleExp1Dere
	RuleExp1Cntr
	RuleAllAny
)

func (r RuleName) String() string {
	switch r {
	case RuleTimesPar:
		return "TimesPar"
	case RuleOneFalse:
		return "OneFalse"
	case RuleLeftWith:
		return "LeftWith"
	case RuleRightWith:
		return "RightWith"
	case RuleExp0Weak:
		return "Exp0Weak"
	case RuleExp0Dere:
		return "Exp0Dere"
	case RuleExp0Cntr:
		return "Exp0Cntr"
	case RuleExp1Weak:
		return "Exp1Weak"
	case RuleExp1Dere:
		return "Exp1Dere"
	case RuleExp1Cntr:
		return "Exp1Cntr"
	case RuleAllAny:
		return "AllAny"
	default:
		return "Stuck"
	}
}

// ApplyRule fires the redex (a, b) against n, the net that owns both sides.
// It tries (a, b) against is_defined, then (b, a); if neither ordering has a
// rule the redex is moved into n.Stuck and left untouched (a source-level
// cut between connectives that never interact — e.g. Times meeting Times —
// is not a bug here, just an irreducible residual). It returns which named
// rule fired, or RuleStuck.
func ApplyRule(n *Net, a, b Tree) RuleName {
	left, lok := FromTree(a)
	right, rok := FromTree(b)
	if !lok || !rok {
		n.Stuck = append(n.Stuck, Redex{A: a, B: b})
		return RuleStuck
	}
	if IsDefined(left, right) {
		return fireRule(n, left, right)
	}
	if IsDefined(right, left) {
		return fireRule(n, right, left)
	}
	n.Stuck = append(n.Stuck, Redex{A: a, B: b})
	return RuleStuck
}

// fireRule applies the rule for (left, right), assuming IsDefined(left,
// right) already holds. Each case below is the literal right-hand side of
// the corresponding entry in the rule table: a short sequence of link,
// plug_box and wire-allocation steps against n.
func fireRule(n *Net, left, right Cell) RuleName {
	switch l := left.(type) {
	case CellTimes:
		r := right.(CellPar)
		n.Link(l.A, r.A)
		n.Link(l.B, r.B)
		return RuleTimesPar

	case CellOne:
		r := right.(CellFalse)
		n.PlugBox(r.Box, []Tree{r.A})
		return RuleOneFalse

	case CellLeft:
		r := right.(CellWith)
		n.PlugBox(r.Left, []Tree{l.Out, r.Ctx})
		return RuleLeftWith

	case CellRight:
		r := right.(CellWith)
		n.PlugBox(r.Right, []Tree{l.Out, r.Ctx})
		return RuleRightWith

	case CellExp0:
		switch r := right.(type) {
		case CellWeak:
			n.PlugBox(r.Box, []Tree{r.Ctx})
			return RuleExp0Weak
		case CellDere:
			n.PlugBox(l.Box, []Tree{r.Out})
			return RuleExp0Dere
		case CellCntr:
			n.Link(&AgentTree{Symbol: Exp0, Args: []PartitionOrBox{&BoxArg{Net: l.Box.Clone()}}}, r.A)
			n.Link(&AgentTree{Symbol: Exp0, Args: []PartitionOrBox{&BoxArg{Net: l.Box}}}, r.B)
			return RuleExp0Cntr
		}

	case CellExp1:
		switch r := right.(type) {
		case CellWeak:
			n.Link(l.Ctx, &AgentTree{Symbol: Weak, Args: []PartitionOrBox{
				&Partition{Ports: []Tree{r.Ctx}},
				&BoxArg{Net: r.Box},
			}})
			return RuleExp1Weak
		case CellDere:
			p, q := n.CreateWire()
			n.Link(l.Ctx, &AgentTree{Symbol: Dere, Args: []PartitionOrBox{&Partition{Ports: []Tree{p}}}})
			n.PlugBox(l.Box, []Tree{r.Out, q})
			return RuleExp1Dere
		case CellCntr:
			a0, a1 := n.CreateWire()
			b0, b1 := n.CreateWire()
			n.Link(l.Ctx, &AgentTree{Symbol: Cntr, Args: []PartitionOrBox{&Partition{Ports: []Tree{a0, b0}}}})
			n.Link(r.A, &AgentTree{Symbol: Exp1, Args: []PartitionOrBox{
				&Partition{Ports: []Tree{a1}},
				&BoxArg{Net: l.Box.Clone()},
			}})
			n.Link(r.B, &AgentTree{Symbol: Exp1, Args: []PartitionOrBox{
				&Partition{Ports: []Tree{b1}},
				&BoxArg{Net: l.Box},
			}})
			return RuleExp1Cntr
		}

	case CellAll:
		r := right.(CellAny)
		a0, a1 := n.CreateWire()
		b0, b1 := n.CreateWire()
		c0, c1 := n.CreateWire()
		n.PlugBox(identityParBox(), []Tree{b1})
		n.PlugBox(identityParBox(), []Tree{c1})
		n.PlugBox(l.Box, []Tree{l.ACtx, c0, a0})
		n.PlugBox(r.Box, []Tree{r.ECtx, b0, a1})
		return RuleAllAny
	}
	return RuleStuck
}

// IdentityParBox is the exported form of identityParBox, for pkg/icomb's
// translator which needs the very same witness net the (All,Any) rule uses.
func IdentityParBox() *Net {
	return identityParBox()
}

// identityParBox builds the canonical one-port closed net used by the
// (All,Any) rule as a witness for the eigenvariable it introduces on each
// side of the cut: Exp0[With[False[·,Par(·,·)], False[·,Par(·,·)]]], i.e. a
// single promoted value whose body is a With of two False-wrapped Pars, for a wholly local, never-inspected
// A. Every "·" position is a freshDangling wire: a wire with a single
// occurrence that nothing outside this net ever references, since this
// construction only needs to satisfy the shape the Exp0/With/False/Par
// cells declare, not carry any real payload.
func identityParBox() *Net {
	branch := func() *Net {
		box := NewNet()
		parNet := NewNet()
		p := parNet.freshDangling()
		q := parNet.freshDangling()
		parNet.Ports = append(parNet.Ports, &AgentTree{Symbol: Par, Args: []PartitionOrBox{&Partition{Ports: []Tree{p, q}}}})
		x := box.freshDangling()
		falseTree := &AgentTree{Symbol: False, Args: []PartitionOrBox{
			&Partition{Ports: []Tree{x}},
			&BoxArg{Net: parNet},
		}}
		filler := box.freshDangling()
		box.Ports = append(box.Ports, falseTree, filler)
		return box
	}

	inner := NewNet()
	ctx := inner.freshDangling()
	withTree := &AgentTree{Symbol: With, Args: []PartitionOrBox{
		&Partition{Ports: []Tree{ctx}},
		&BoxArg{Net: branch()},
		&BoxArg{Net: branch()},
	}}
	inner.Ports = append(inner.Ports, withTree)

	outer := NewNet()
	outer.Ports = append(outer.Ports, &AgentTree{Symbol: Exp0, Args: []PartitionOrBox{&BoxArg{Net: inner}}})
	return outer
}
