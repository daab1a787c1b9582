package icomb

import (
	"testing"

	"github.com/vic/linearnet/pkg/linnet"
)

func TestConConAnnihilates(t *testing.T) {
	net := NewNet()
	a0, a1 := net.CreateWire()
	b0, b1 := net.CreateWire()
	net.Redexes = append(net.Redexes, Redex{A: con(a0, b0), B: con(a1, b1)})
	net.Ports = append(net.Ports, &Era{}, &Era{})

	steps := net.Normal()
	if steps != 1 {
		t.Fatalf("Normal() = %d steps, want 1", steps)
	}
	if len(net.Redexes) != 0 {
		t.Fatalf("redexes left over: %v", net.Redexes)
	}
}

func TestConDupCommutes(t *testing.T) {
	net := NewNet()
	a0, a1 := net.CreateWire()
	b0, b1 := net.CreateWire()
	c0, c1 := net.CreateWire()
	d0, d1 := net.CreateWire()
	net.Redexes = append(net.Redexes, Redex{A: con(a0, b0), B: dup(c0, d0)})
	net.Ports = append(net.Ports, a1, b1, c1, d1)

	steps := net.Normal()
	if steps != 1 {
		t.Fatalf("Normal() = %d steps, want 1", steps)
	}
	// Commuting a Con past a Dup produces 4 fresh wires worth of new
	// structure but no further redexes, since both sides were bare
	// variables with nothing else to interact against.
	if len(net.Redexes) != 0 {
		t.Fatalf("unexpected leftover redexes: %v", net.Redexes)
	}
}

func TestEraAbsorbsAnything(t *testing.T) {
	net := NewNet()
	a0, a1 := net.CreateWire()
	b0, b1 := net.CreateWire()
	net.Redexes = append(net.Redexes, Redex{A: con(a0, b0), B: &Era{}})
	net.Ports = append(net.Ports, a1, b1)

	net.Normal()
	net.Canonical()
	for _, p := range net.Ports {
		if _, ok := p.(*Era); !ok {
			t.Errorf("port = %T, want *Era after erasure", p)
		}
	}
}

func TestTranslateOneIsEra(t *testing.T) {
	one, err := linnet.Graft(linnet.One, nil)
	if err != nil {
		t.Fatalf("Graft(One): %v", err)
	}
	out := TranslateNet(one)
	if len(out.Ports) != 1 {
		t.Fatalf("len(Ports) = %d, want 1", len(out.Ports))
	}
	if _, ok := out.Ports[0].(*Era); !ok {
		t.Errorf("translated One port = %T, want *Era", out.Ports[0])
	}
}

func TestTranslateTimesIsCon(t *testing.T) {
	times, err := linnet.Graft(linnet.Times, []linnet.GraftArg{
		linnet.GraftPartition{Net: oneVarNet(), Ports: []int{0}},
		linnet.GraftPartition{Net: oneVarNet(), Ports: []int{0}},
	})
	if err != nil {
		t.Fatalf("Graft(Times): %v", err)
	}
	out := TranslateNet(times)
	if _, ok := out.Ports[0].(*Con); !ok {
		t.Errorf("translated Times port = %T, want *Con", out.Ports[0])
	}
}

func oneVarNet() *linnet.Net {
	n := linnet.NewNet()
	id := n.AllocateVarID()
	v := linnet.Tree(&linnet.VarTree{ID: id})
	n.Vars[id] = nil
	n.Ports = append(n.Ports, v)
	return n
}
