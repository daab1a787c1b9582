package types

import (
	"github.com/sirupsen/logrus"

	"github.com/vic/linearnet/pkg/linnet"
)

// varKey names one polarity of one propositional variable in the
// unification environment.
type varKey struct {
	id  int
	pos bool
}

// Inferencer runs the type-inference pass described in spec.md §4.5: Log is
// threaded down rather than a package global, matching pkg/linnet.Reducer's
// habit of carrying its logger as a struct field.
type Inferencer struct {
	Log *logrus.Logger
}

// NewInferencer returns an Inferencer with a default (warn-level) logger.
func NewInferencer() *Inferencer {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Inferencer{Log: log}
}

// Infer assigns a Type to each of trees, in order, following the wire
// discipline of spec.md §4.5: a wire's first occurrence gets a fresh
// propositional variable, its second occurrence receives the variable's
// dual. It is the public entry point, used both by the CLI on a reduced
// net's residual ports and recursively (one fresh call per box) by
// inferCell below.
func (inf *Inferencer) Infer(trees []linnet.Tree) []Type {
	counter := 0
	s := &inferState{
		treeVars:     make(map[linnet.VarID]Type),
		varsConcrete: make(map[varKey]Type),
		nextID:       &counter,
		log:          inf.Log,
	}
	out := make([]Type, len(trees))
	for i, t := range trees {
		out[i] = s.infer(t)
	}
	s.finalize(out)
	return out
}

// inferState is the per-call unification environment: tree_vars tracks
// which wire ids have been seen once already (and what dual type their
// second occurrence should receive), vars_concrete is the union-find-ish
// binding environment unify populates. A fresh inferState is created for
// every box descended into, matching spec.md §4.5's per-box wire scoping;
// each Infer call starts its own counter, and a box's result is renamed
// through freshen with the enclosing call's counter so the two never collide.
type inferState struct {
	treeVars     map[linnet.VarID]Type
	varsConcrete map[varKey]Type
	nextID       *int
	log          *logrus.Logger
}

func (s *inferState) freshID() int {
	*s.nextID++
	return *s.nextID
}

// infer assigns tree its Type, consuming a tree_vars entry on a wire's
// second occurrence per spec.md §4.5.
func (s *inferState) infer(tree linnet.Tree) Type {
	switch v := tree.(type) {
	case *linnet.VarTree:
		if t, ok := s.treeVars[v.ID]; ok {
			delete(s.treeVars, v.ID)
			return t
		}
		id := s.freshID()
		s.treeVars[v.ID] = TypeVar{ID: id, Pos: false}
		return TypeVar{ID: id, Pos: true}
	case *linnet.AgentTree:
		cell, ok := linnet.FromTree(tree)
		if !ok {
			return TypeError{}
		}
		return s.inferCell(cell)
	default:
		return TypeError{}
	}
}

// reduceAndInfer normalizes box to normal form, canonicalizes it, then runs
// a brand-new Inferencer over its ports: the "reduce B to normal form,
// substitute, recursively call infer on its ports" step that every boxed
// cell's rule performs in spec.md §4.5 before typing its contents.
func (s *inferState) reduceAndInfer(box *linnet.Net) []Type {
	r := linnet.NewReducer(box)
	r.Log = s.log
	r.Run(0)
	box.Canonical()
	return (&Inferencer{Log: s.log}).Infer(box.Ports)
}

// freshenAll renumbers every TypeVar id occurring across ts using one fresh
// id per distinct original id (preserving which ids co-occur, e.g. a
// variable and its dual), drawn from s's own counter so a box's locally
// numbered result can never alias the enclosing call's ids. TypeEigen ids
// are left untouched: an eigenvariable is a single eigenvalue introduced by
// one specific ∀/∃, not a box-local propositional variable due for renaming.
func (s *inferState) freshenAll(ts ...Type) []Type {
	mapping := make(map[int]int)
	var rename func(Type) Type
	rename = func(t Type) Type {
		switch v := t.(type) {
		case TypeVar:
			id, ok := mapping[v.ID]
			if !ok {
				id = s.freshID()
				mapping[v.ID] = id
			}
			return TypeVar{ID: id, Pos: v.Pos}
		case TypeTimes:
			return TypeTimes{A: rename(v.A), B: rename(v.B)}
		case TypePar:
			return TypePar{A: rename(v.A), B: rename(v.B)}
		case TypePlus:
			return TypePlus{A: rename(v.A), B: rename(v.B)}
		case TypeWith:
			return TypeWith{A: rename(v.A), B: rename(v.B)}
		case TypeWhy:
			return TypeWhy{A: rename(v.A)}
		case TypeOfc:
			return TypeOfc{A: rename(v.A)}
		case TypeAll:
			return TypeAll{ID: v.ID, Body: rename(v.Body)}
		case TypeAny:
			return TypeAny{ID: v.ID, Body: rename(v.Body)}
		default:
			return t
		}
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = rename(t)
	}
	return out
}

func (s *inferState) freshen(t Type) Type {
	return s.freshenAll(t)[0]
}

// inferCell dispatches to the per-connective typing rules of spec.md §4.5.
// Box port orderings below match the wiring each rule in rules.go plugs
// into that box (e.g. With's boxes are plugged [value, ctx] by
// Left/RightWith, so inferring a With box yields [value, ctx] in that
// order).
func (s *inferState) inferCell(cell linnet.Cell) Type {
	switch c := cell.(type) {
	case linnet.CellTimes:
		return TypeTimes{A: s.infer(c.A), B: s.infer(c.B)}

	case linnet.CellPar:
		return TypePar{A: s.infer(c.A), B: s.infer(c.B)}

	case linnet.CellOne:
		return TypeOne{}

	case linnet.CellTrue:
		s.infer(c.Out)
		return TypeTrue{}

	case linnet.CellLeft:
		return TypePlus{A: s.infer(c.Out), B: TypeHole{}}

	case linnet.CellRight:
		return TypePlus{A: TypeHole{}, B: s.infer(c.Out)}

	case linnet.CellFalse:
		results := s.reduceAndInfer(c.Box)
		t0 := s.freshen(results[0])
		t1 := s.infer(c.A)
		if _, bad := s.unify(t0, Negate(t1)).(TypeError); bad {
			return TypeError{}
		}
		return TypeBot{}

	case linnet.CellWith:
		left := s.freshenAll(s.reduceAndInfer(c.Left)...)
		right := s.freshenAll(s.reduceAndInfer(c.Right)...)
		valueL, ctxL := left[0], left[1]
		valueR, ctxR := right[0], right[1]
		ctx := s.unify(ctxL, ctxR)
		s.unify(ctx, Negate(s.infer(c.Ctx)))
		return TypeWith{A: valueL, B: valueR}

	case linnet.CellExp0:
		t := s.freshen(s.reduceAndInfer(c.Box)[0])
		return TypeOfc{A: t}

	case linnet.CellExp1:
		results := s.freshenAll(s.reduceAndInfer(c.Box)...)
		bodyT, inpT := results[0], results[1]
		s.unify(s.infer(c.Ctx), TypeOfc{A: Negate(inpT)})
		return TypeOfc{A: bodyT}

	case linnet.CellWeak:
		t := s.freshen(s.reduceAndInfer(c.Box)[0])
		s.unify(s.infer(c.Ctx), Negate(t))
		return TypeWhy{A: TypeHole{}}

	case linnet.CellDere:
		return TypeWhy{A: s.infer(c.Out)}

	case linnet.CellCntr:
		ta := s.infer(c.A)
		tb := s.infer(c.B)
		switch {
		case isWhyHole(ta) && isWhyHole(tb):
			s.unify(ta, tb)
			return TypeWhy{A: TypeHole{}}
		case isPropositionalVar(ta) && isPropositionalVar(tb):
			// Open Question (spec.md §9, resolved in SPEC_FULL.md §8): both
			// variables are bound to the very same fresh ?v, reproducing the
			// source's apparent aliasing rather than giving each its own
			// fresh variable.
			id := s.freshID()
			fresh := TypeWhy{A: TypeVar{ID: id, Pos: true}}
			s.bindVar(ta.(TypeVar), fresh)
			s.bindVar(tb.(TypeVar), fresh)
			return fresh
		default:
			return TypeError{}
		}

	case linnet.CellAll:
		results := s.freshenAll(s.reduceAndInfer(c.Box)...)
		ctxIn, vars, body := results[0], results[1], results[2]
		eigen := s.freshID()
		witness := quantifierWitness(eigen)
		s.unify(Negate(vars), witness)
		if containsEigen(ctxIn, eigen) {
			s.log.WithField("eigen", eigen).Warn("types: quantifier freshness side condition violated")
			return TypeError{}
		}
		s.unify(Negate(s.infer(c.ACtx)), ctxIn)
		return TypeAll{ID: eigen, Body: body}

	case linnet.CellAny:
		results := s.freshenAll(s.reduceAndInfer(c.Box)...)
		ctxIn, vars, body := results[0], results[1], results[2]
		v := s.freshID()
		witness := quantifierWitness(v)
		s.unify(Negate(vars), witness)
		s.unify(Negate(s.infer(c.ECtx)), ctxIn)
		return TypeAny{ID: v, Body: body}

	default:
		return TypeError{}
	}
}

// quantifierWitness builds !((e ⅋ ¬e) & (¬e ⅋ e)), the shape the ∀/∃
// cut's "vars" port is unified against (spec.md §4.5).
func quantifierWitness(id int) Type {
	e := TypeEigen{ID: id, Pos: true}
	notE := TypeEigen{ID: id, Pos: false}
	return TypeOfc{A: TypeWith{
		A: TypePar{A: e, B: notE},
		B: TypePar{A: notE, B: e},
	}}
}

// bindVar records v's binding directly (bypassing unify's chase), used by
// Cntr's both-variables case where the fresh value is constructed, not
// unified against an existing concrete type.
func (s *inferState) bindVar(v TypeVar, val Type) {
	s.varsConcrete[varKey{id: v.ID, pos: v.Pos}] = val
	s.varsConcrete[varKey{id: v.ID, pos: !v.Pos}] = Negate(val)
}

// unify implements spec.md §4.5's structural unification: holes absorb
// anything, matching constructors recurse, propositional variables chase
// through vars_concrete (binding both polarities in lock-step when newly
// resolved), and eigenvariables only unify with themselves. Anything else
// is TypeError.
func (s *inferState) unify(a, b Type) Type {
	if _, ok := a.(TypeHole); ok {
		return b
	}
	if _, ok := b.(TypeHole); ok {
		return a
	}
	if av, ok := a.(TypeVar); ok {
		return s.unifyVar(av, b)
	}
	if bv, ok := b.(TypeVar); ok {
		return s.unifyVar(bv, a)
	}
	switch x := a.(type) {
	case TypeOne:
		if _, ok := b.(TypeOne); ok {
			return TypeOne{}
		}
	case TypeBot:
		if _, ok := b.(TypeBot); ok {
			return TypeBot{}
		}
	case TypeZero:
		if _, ok := b.(TypeZero); ok {
			return TypeZero{}
		}
	case TypeTrue:
		if _, ok := b.(TypeTrue); ok {
			return TypeTrue{}
		}
	case TypeTimes:
		if y, ok := b.(TypeTimes); ok {
			return TypeTimes{A: s.unify(x.A, y.A), B: s.unify(x.B, y.B)}
		}
	case TypePar:
		if y, ok := b.(TypePar); ok {
			return TypePar{A: s.unify(x.A, y.A), B: s.unify(x.B, y.B)}
		}
	case TypePlus:
		if y, ok := b.(TypePlus); ok {
			return TypePlus{A: s.unify(x.A, y.A), B: s.unify(x.B, y.B)}
		}
	case TypeWith:
		if y, ok := b.(TypeWith); ok {
			return TypeWith{A: s.unify(x.A, y.A), B: s.unify(x.B, y.B)}
		}
	case TypeWhy:
		if y, ok := b.(TypeWhy); ok {
			return TypeWhy{A: s.unify(x.A, y.A)}
		}
	case TypeOfc:
		if y, ok := b.(TypeOfc); ok {
			return TypeOfc{A: s.unify(x.A, y.A)}
		}
	case TypeAll:
		if y, ok := b.(TypeAll); ok && x.ID == y.ID {
			return TypeAll{ID: x.ID, Body: s.unify(x.Body, y.Body)}
		}
	case TypeAny:
		if y, ok := b.(TypeAny); ok && x.ID == y.ID {
			return TypeAny{ID: x.ID, Body: s.unify(x.Body, y.Body)}
		}
	case TypeEigen:
		if y, ok := b.(TypeEigen); ok && y.ID == x.ID && y.Pos == x.Pos {
			return x
		}
	}
	return TypeError{}
}

// unifyVar resolves a variable side of a unify call: chases an existing
// concrete binding if one exists, otherwise binds both of v's polarities
// (directly to other if it is itself a variable pointed at in lock-step, or
// to other/¬other if it is concrete).
func (s *inferState) unifyVar(v TypeVar, other Type) Type {
	key := varKey{id: v.ID, pos: v.Pos}
	if bound, ok := s.varsConcrete[key]; ok {
		return s.unify(bound, other)
	}
	if ov, ok := other.(TypeVar); ok {
		otherKey := varKey{id: ov.ID, pos: ov.Pos}
		if bound, ok := s.varsConcrete[otherKey]; ok {
			return s.unifyVar(v, bound)
		}
	}
	s.varsConcrete[key] = other
	s.varsConcrete[varKey{id: v.ID, pos: !v.Pos}] = Negate(other)
	return other
}

// finalize substitutes every variable binding resolved during inference
// throughout the final result vector.
func (s *inferState) finalize(types []Type) {
	for i := range types {
		types[i] = substitute(types[i], s.varsConcrete)
	}
}

func substitute(t Type, env map[varKey]Type) Type {
	switch v := t.(type) {
	case TypeVar:
		if bound, ok := env[varKey{id: v.ID, pos: v.Pos}]; ok {
			return substitute(bound, env)
		}
		return v
	case TypeTimes:
		return TypeTimes{A: substitute(v.A, env), B: substitute(v.B, env)}
	case TypePar:
		return TypePar{A: substitute(v.A, env), B: substitute(v.B, env)}
	case TypePlus:
		return TypePlus{A: substitute(v.A, env), B: substitute(v.B, env)}
	case TypeWith:
		return TypeWith{A: substitute(v.A, env), B: substitute(v.B, env)}
	case TypeWhy:
		return TypeWhy{A: substitute(v.A, env)}
	case TypeOfc:
		return TypeOfc{A: substitute(v.A, env)}
	case TypeAll:
		return TypeAll{ID: v.ID, Body: substitute(v.Body, env)}
	case TypeAny:
		return TypeAny{ID: v.ID, Body: substitute(v.Body, env)}
	default:
		return t
	}
}
