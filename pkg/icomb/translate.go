package icomb

import (
	"fmt"

	"github.com/vic/linearnet/pkg/linnet"
)

// con, dup and era are short constructor aliases matching the readability
// style of original_source/src/icombs/mod.rs's ICombTree::{c,d,e} helpers.
// d is a genuine Dup, not the Con the Rust snapshot's Tree::d mistakenly
// builds: encoding.rs's own EncodeTree treats Dup as a distinct node with
// real duplication semantics, so Dere and Cntr below need the real thing.
func con(a, b Tree) Tree { return &Con{A: a, B: b} }
func dup(a, b Tree) Tree { return &Dup{A: a, B: b} }
func era() Tree          { return &Era{} }

// Translator lowers a reduced, boxed proof net into a pure combinator net,
// grounded on original_source/src/icombs/mod.rs's Translator.
type Translator struct {
	net    *Net
	varMap map[linnet.VarID]VarID
}

// NewTranslator returns a translator with an empty target net.
func NewTranslator() *Translator {
	return &Translator{net: NewNet(), varMap: make(map[linnet.VarID]VarID)}
}

// TranslateNet lowers from's redexes, ports and bound vars into a fresh
// combinator Net. This is the package's top-level entry point.
func TranslateNet(from *linnet.Net) *Net {
	t := NewTranslator()
	for _, r := range from.Redexes {
		a := t.translateTree(r.A)
		b := t.translateTree(r.B)
		t.net.Redexes = append(t.net.Redexes, Redex{A: a, B: b})
	}
	for _, p := range from.Ports {
		t.net.Ports = append(t.net.Ports, t.translateTree(p))
	}
	for k, v := range from.Vars {
		if v != nil {
			a := t.translateTree(*v)
			nk, ok := t.varMap[k]
			if !ok {
				panic(fmt.Sprintf("icomb: bound var %d never seen during translation", k))
			}
			av := Tree(a)
			t.net.Vars[nk] = &av
		}
	}
	return t.net
}

// translateNetAndMerge translates from (an independent sub-net, e.g. a
// box's interior) in its own Translator, then merges the result's redexes
// and var table into t.net under freshly allocated ids, returning the
// translated net's free ports in order. This is how a box's contents are
// spliced into the combinator net surrounding it.
func (t *Translator) translateNetAndMerge(from *linnet.Net) []Tree {
	sub := TranslateNet(from)

	remap := make(map[VarID]VarID)
	m := func(x VarID) VarID {
		if v, ok := remap[x]; ok {
			return v
		}
		v := t.net.AllocateVarID()
		t.net.Vars[v] = nil
		remap[x] = v
		return v
	}
	sub.MapVars(m)
	for _, v := range remap {
		if bound, ok := sub.Vars[v]; ok {
			t.net.Vars[v] = bound
			delete(sub.Vars, v)
		}
	}
	if len(sub.Vars) != 0 {
		panic("icomb: translateNetAndMerge left unaccounted vars")
	}
	t.net.Redexes = append(t.net.Redexes, sub.Redexes...)
	return sub.Ports
}

// translateTree translates one linnet.Tree: a variable occurrence is looked
// up (or allocated, on its first occurrence) in varMap; an agent is
// projected into a Cell and dispatched to translateCell.
func (t *Translator) translateTree(from linnet.Tree) Tree {
	if v, ok := from.(*linnet.VarTree); ok {
		if a, ok := t.varMap[v.ID]; ok {
			delete(t.varMap, v.ID)
			return &Var{ID: a}
		}
		a := t.net.AllocateVarID()
		t.net.Vars[a] = nil
		t.varMap[v.ID] = a
		return &Var{ID: a}
	}
	cell, ok := linnet.FromTree(from)
	if !ok {
		panic(fmt.Sprintf("icomb: cannot translate %T as a cell", from))
	}
	return t.translateCell(cell)
}

// translateCell is the core of the replication encoding: every MALL and
// exponential connective is expressed in terms of Con/Dup/Era alone, per
// the 15-case table in original_source/src/icombs/mod.rs.
func (t *Translator) translateCell(cell linnet.Cell) Tree {
	switch c := cell.(type) {
	case linnet.CellTimes:
		return con(t.translateTree(c.A), t.translateTree(c.B))

	case linnet.CellPar:
		return con(t.translateTree(c.A), t.translateTree(c.B))

	case linnet.CellOne:
		return era()

	case linnet.CellFalse:
		ports := t.translateNetAndMerge(c.Box)
		b := ports[0]
		a := t.translateTree(c.A)
		t.net.Link(a, b)
		return era()

	case linnet.CellLeft:
		out := t.translateTree(c.Out)
		a, b := t.net.CreateWire()
		return con(a, con(con(b, out), era()))

	case linnet.CellRight:
		out := t.translateTree(c.Out)
		a, b := t.net.CreateWire()
		return con(a, con(era(), con(b, out)))

	case linnet.CellTrue:
		out := t.translateTree(c.Out)
		t.net.Link(era(), out)
		return era()

	case linnet.CellWith:
		leftPorts := t.translateNetAndMerge(c.Left)
		vl, cl := leftPorts[0], leftPorts[1]
		rightPorts := t.translateNetAndMerge(c.Right)
		vr, cr := rightPorts[0], rightPorts[1]
		ctx := t.translateTree(c.Ctx)
		return con(ctx, con(con(cl, vl), con(cr, vr)))

	case linnet.CellExp0:
		ports := t.translateNetAndMerge(c.Box)
		return EncodeTree(t.net, ports[0])

	case linnet.CellExp1:
		ports := t.translateNetAndMerge(c.Box)
		contents, ctxInner := ports[0], ports[1]
		ctx := t.translateTree(c.Ctx)
		a0, a1 := t.net.CreateWire()
		b0, b1 := t.net.CreateWire()
		c0, c1 := t.net.CreateWire()
		d0, d1 := t.net.CreateWire()
		e0, e1 := t.net.CreateWire()
		f0, f1 := t.net.CreateWire()
		g0, g1 := t.net.CreateWire()
		contents = EncodeTree(t.net, contents)
		t.net.Link(ctx, con(con(c1, ctxInner), con(a1, b1)))
		t.net.Link(contents, con(con(f1, g1), con(d1, e1)))
		return con(con(con(c0, f0), g0), con(con(a0, d0), con(b0, e0)))

	case linnet.CellWeak:
		ports := t.translateNetAndMerge(c.Box)
		ctx := t.translateTree(c.Ctx)
		t.net.Link(ctx, ports[0])
		return era()

	case linnet.CellDere:
		a0, a1 := t.net.CreateWire()
		b0, b1 := t.net.CreateWire()
		out := t.translateTree(c.Out)
		return con(con(dup(a0, b0), out), con(a1, b1))

	case linnet.CellCntr:
		a := t.translateTree(c.A)
		b := t.translateTree(c.B)
		return dup(a, b)

	case linnet.CellAll:
		ports := t.translateNetAndMerge(c.Box)
		ctxIn, vars, body := ports[0], ports[1], ports[2]
		idPorts := t.translateNetAndMerge(linnet.IdentityParBox())
		t.net.Link(idPorts[0], vars)
		ctx := t.translateTree(c.ACtx)
		t.net.Link(ctxIn, ctx)
		return body

	case linnet.CellAny:
		ports := t.translateNetAndMerge(c.Box)
		ctxIn, vars, body := ports[0], ports[1], ports[2]
		idPorts := t.translateNetAndMerge(linnet.IdentityParBox())
		t.net.Link(idPorts[0], vars)
		ctx := t.translateTree(c.ECtx)
		t.net.Link(ctxIn, ctx)
		return body

	default:
		panic(fmt.Sprintf("icomb: unhandled cell %T", cell))
	}
}
