package linnet

import "testing"

func TestFromTreeRejectsVar(t *testing.T) {
	if _, ok := FromTree(&VarTree{ID: 0}); ok {
		t.Errorf("FromTree on a bare Var should fail")
	}
}

func TestFromTreeRejectsWrongArity(t *testing.T) {
	bad := &AgentTree{Symbol: One, Args: []PartitionOrBox{&Partition{Ports: []Tree{&VarTree{ID: 0}}}}}
	if _, ok := FromTree(bad); ok {
		t.Errorf("FromTree should reject a One agent carrying arguments")
	}
}

func TestToTreeRoundTripExp0(t *testing.T) {
	one, _ := Graft(One, nil)
	want := CellExp0{Box: one}
	tree, err := ToTree(want)
	if err != nil {
		t.Fatalf("ToTree(CellExp0): %v", err)
	}
	got, ok := FromTree(tree)
	if !ok {
		t.Fatalf("FromTree on round-tripped Exp0 tree failed")
	}
	gotExp0, ok := got.(CellExp0)
	if !ok || gotExp0.Box != one {
		t.Errorf("round trip didn't preserve the boxed net: %#v", got)
	}
}

func TestToTreeRoundTripCntr(t *testing.T) {
	pn := NewNet()
	a0, a1 := pn.CreateWire()
	pn.Ports = append(pn.Ports, a0, a1)
	want := CellCntr{A: pn.Ports[0], B: pn.Ports[1]}
	tree, err := ToTree(want)
	if err != nil {
		t.Fatalf("ToTree(CellCntr): %v", err)
	}
	agent, ok := tree.(*AgentTree)
	if !ok || agent.Symbol != Cntr {
		t.Fatalf("ToTree(CellCntr) = %#v, want a Cntr agent", tree)
	}
}

func TestToTreeUnimplementedVariant(t *testing.T) {
	if _, err := ToTree(CellTimes{}); err == nil {
		t.Errorf("ToTree(CellTimes) should report an error: only the exponential rules round-trip through Cell")
	}
}
