package printer

import (
	"strings"
	"testing"

	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/util"
)

func TestShowNetOne(t *testing.T) {
	one, err := linnet.Graft(linnet.One, nil)
	if err != nil {
		t.Fatalf("Graft(One): %v", err)
	}
	out := ShowNet(one, util.NewNameScope(), 0)
	if !strings.Contains(out, "One") {
		t.Errorf("ShowNet(One) = %q, want it to mention One", out)
	}
}

func TestShowNetTimesNamesBothWires(t *testing.T) {
	n := linnet.NewNet()
	a0, a1 := n.CreateWire()
	n.Ports = append(n.Ports, a1)
	timesInner := linnet.NewNet()
	timesInner.Ports = append(timesInner.Ports, a0)
	partNet := linnet.NewNet()
	b0, b1 := partNet.CreateWire()
	partNet.Ports = append(partNet.Ports, b0, b1)

	times, err := linnet.Graft(linnet.Times, []linnet.GraftArg{
		linnet.GraftPartition{Net: timesInner, Ports: []int{0}},
		linnet.GraftPartition{Net: partNet, Ports: []int{0}},
	})
	if err != nil {
		t.Fatalf("Graft(Times): %v", err)
	}
	n.Mix(times)
	out := ShowNet(n, util.NewNameScope(), 0)
	if !strings.Contains(out, "Times") {
		t.Errorf("ShowNet output = %q, want it to mention Times", out)
	}
}
