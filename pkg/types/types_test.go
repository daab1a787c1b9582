package types

import (
	"testing"

	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/util"
)

func TestNegateInvolutive(t *testing.T) {
	cases := []Type{
		TypeOne{},
		TypeBot{},
		TypeTimes{A: TypeOne{}, B: TypeBot{}},
		TypePar{A: TypeVar{ID: 1, Pos: true}, B: TypeVar{ID: 2, Pos: false}},
		TypePlus{A: TypeTrue{}, B: TypeZero{}},
		TypeWith{A: TypeZero{}, B: TypeTrue{}},
		TypeOfc{A: TypeOne{}},
		TypeWhy{A: TypeBot{}},
		TypeAll{ID: 7, Body: TypeVar{ID: 1, Pos: true}},
		TypeAny{ID: 7, Body: TypeVar{ID: 1, Pos: false}},
		TypeHole{},
		TypeError{},
	}
	for _, c := range cases {
		got := Negate(Negate(c))
		if Show(got, util.NewNameScope()) != Show(c, util.NewNameScope()) {
			t.Errorf("Negate(Negate(%v)) = %v, want %v", c, got, c)
		}
	}
}

func TestNegateDuals(t *testing.T) {
	scope := util.NewNameScope()
	tests := []struct{ in, want Type }{
		{TypeOne{}, TypeBot{}},
		{TypeBot{}, TypeOne{}},
		{TypeZero{}, TypeTrue{}},
		{TypeTrue{}, TypeZero{}},
		{TypeTimes{A: TypeOne{}, B: TypeOne{}}, TypePar{A: TypeBot{}, B: TypeBot{}}},
		{TypePlus{A: TypeOne{}, B: TypeOne{}}, TypeWith{A: TypeBot{}, B: TypeBot{}}},
		{TypeOfc{A: TypeOne{}}, TypeWhy{A: TypeBot{}}},
	}
	for _, tt := range tests {
		if got := Show(Negate(tt.in), scope); got != Show(tt.want, scope) {
			t.Errorf("Negate(%v) = %s, want %s", tt.in, got, Show(tt.want, scope))
		}
	}
}

func TestInferTimesOfFreeWires(t *testing.T) {
	// Times(a)(b) on its own, with a and b dangling wires and no cut: the
	// Infer call hands back a ⊗ whose legs are one fresh variable each.
	times, err := linnet.Graft(linnet.Times, []linnet.GraftArg{
		linnet.GraftPartition{Net: oneVarNet(), Ports: []int{0}},
		linnet.GraftPartition{Net: oneVarNet(), Ports: []int{0}},
	})
	if err != nil {
		t.Fatalf("Graft(Times): %v", err)
	}

	inf := NewInferencer()
	results := inf.Infer(times.Ports)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	tt, ok := results[0].(TypeTimes)
	if !ok {
		t.Fatalf("results[0] = %T, want TypeTimes", results[0])
	}
	if _, ok := tt.A.(TypeVar); !ok {
		t.Errorf("TypeTimes.A = %T, want TypeVar", tt.A)
	}
	if _, ok := tt.B.(TypeVar); !ok {
		t.Errorf("TypeTimes.B = %T, want TypeVar", tt.B)
	}
}

func TestInferOneIsOne(t *testing.T) {
	one, err := linnet.Graft(linnet.One, nil)
	if err != nil {
		t.Fatalf("Graft(One): %v", err)
	}
	inf := NewInferencer()
	results := inf.Infer(one.Ports)
	if _, ok := results[0].(TypeOne); !ok {
		t.Errorf("results[0] = %T, want TypeOne", results[0])
	}
}

// oneVarNet returns a single-port net whose one port is a fresh dangling
// variable, the shape Graft expects a one-port partition argument's
// backing net to have.
func oneVarNet() *linnet.Net {
	n := linnet.NewNet()
	id := n.AllocateVarID()
	v := linnet.Tree(&linnet.VarTree{ID: id})
	n.Vars[id] = nil
	n.Ports = append(n.Ports, v)
	return n
}
