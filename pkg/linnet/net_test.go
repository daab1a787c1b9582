package linnet

import "testing"

func TestGraftOne(t *testing.T) {
	n, err := Graft(One, nil)
	if err != nil {
		t.Fatalf("Graft(One): %v", err)
	}
	if len(n.Ports) != 1 {
		t.Fatalf("One net has %d ports, want 1", len(n.Ports))
	}
	agent, ok := n.Ports[0].(*AgentTree)
	if !ok || agent.Symbol != One {
		t.Errorf("port 0 = %#v, want One agent", n.Ports[0])
	}
}

func TestGraftArityMismatch(t *testing.T) {
	if _, err := Graft(One, []GraftArg{GraftPartition{Net: NewNet(), Ports: nil}}); err == nil {
		t.Errorf("Graft(One, 1 arg) should fail, One takes no arguments")
	}
}

func TestGraftTimesOfOnes(t *testing.T) {
	a, _ := Graft(One, nil)
	b, _ := Graft(One, nil)
	times, err := Graft(Times, []GraftArg{
		GraftPartition{Net: a, Ports: []int{0}},
		GraftPartition{Net: b, Ports: []int{0}},
	})
	if err != nil {
		t.Fatalf("Graft(Times): %v", err)
	}
	if len(times.Ports) != 1 {
		t.Fatalf("Times net has %d ports, want 1", len(times.Ports))
	}
	cell, ok := FromTree(times.Ports[0])
	if !ok {
		t.Fatalf("FromTree failed on Times agent")
	}
	ct, ok := cell.(CellTimes)
	if !ok {
		t.Fatalf("cell = %#v, want CellTimes", cell)
	}
	for _, side := range []Tree{ct.A, ct.B} {
		agent, ok := side.(*AgentTree)
		if !ok || agent.Symbol != One {
			t.Errorf("Times branch = %#v, want One agent", side)
		}
	}
}

func TestWireNetIsIdentity(t *testing.T) {
	n := WireNet()
	if len(n.Ports) != 2 {
		t.Fatalf("WireNet has %d ports, want 2", len(n.Ports))
	}
	a, aok := n.Ports[0].(*VarTree)
	b, bok := n.Ports[1].(*VarTree)
	if !aok || !bok || a.ID != b.ID {
		t.Errorf("WireNet ports aren't the same wire: %#v, %#v", n.Ports[0], n.Ports[1])
	}
}

func TestCutLinksBothSidesImmediately(t *testing.T) {
	one, _ := Graft(One, nil)
	// False((a), [One]) consumes a One via plug_box when cut against One.
	falseNet, err := Graft(False, []GraftArg{
		GraftPartition{Net: WireNet(), Ports: []int{0}},
		GraftBox{Net: one, Ports: []int{0}},
	})
	if err != nil {
		t.Fatalf("Graft(False): %v", err)
	}
	if len(falseNet.Ports) != 2 {
		t.Fatalf("False net has %d ports, want 2 (agent + leftover wire end)", len(falseNet.Ports))
	}
	oneAgain, _ := Graft(One, nil)
	composite := Cut(oneAgain, 0, falseNet, 0)
	if len(composite.Redexes) != 1 {
		t.Fatalf("composite has %d redexes, want 1", len(composite.Redexes))
	}
	if _, ok := FromTree(composite.Redexes[0].A); !ok {
		t.Errorf("redex.A isn't a projectable cell")
	}
}

func TestPlugBoxLinksEachFreePort(t *testing.T) {
	inner := WireNet()
	outer := NewNet()
	p0, p1 := outer.CreateWire()
	outer.Ports = append(outer.Ports, p0, p1)
	outer.PlugBox(inner, []Tree{p0, p1})
	if len(outer.Redexes) != 0 {
		t.Fatalf("plugging a wire net shouldn't create a redex, got %d", len(outer.Redexes))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	one, _ := Graft(One, nil)
	exp0, err := Graft(Exp0, []GraftArg{GraftBox{Net: one, Ports: []int{0}}})
	if err != nil {
		t.Fatalf("Graft(Exp0): %v", err)
	}
	clone := exp0.Clone()
	cell, _ := FromTree(exp0.Ports[0])
	cloneCell, _ := FromTree(clone.Ports[0])
	box := cell.(CellExp0).Box
	cloneBox := cloneCell.(CellExp0).Box
	if box == cloneBox {
		t.Errorf("Clone shares the boxed sub-net with the original")
	}
}
