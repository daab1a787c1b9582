package linnet

import "testing"

func TestReducerStepReturnsFalseOnEmptyQueue(t *testing.T) {
	r := NewReducer(NewNet())
	if r.Step() {
		t.Errorf("Step() on an empty queue should return false")
	}
}

func TestReducerRunRespectsMaxSteps(t *testing.T) {
	n := NewNet()
	// Three independent stuck redexes: each Step call pops one regardless of
	// whether a rule applies, so this also exercises the max-steps cutoff
	// against stuck dispatch, not just successful rewrites.
	for i := 0; i < 3; i++ {
		n.Redexes = append(n.Redexes, Redex{
			A: &AgentTree{Symbol: One},
			B: &AgentTree{Symbol: True, Args: []PartitionOrBox{&Partition{Ports: []Tree{&VarTree{ID: VarID(i)}}}}},
		})
		n.Vars[VarID(i)] = nil
	}
	r := NewReducer(n)
	steps := r.Run(2)
	if steps != 2 {
		t.Fatalf("Run(2) took %d steps, want 2", steps)
	}
	if len(n.Redexes) != 1 {
		t.Errorf("expected 1 redex left unpopped, got %d", len(n.Redexes))
	}
}

func TestReducerTraceRecordsSteps(t *testing.T) {
	one, _ := Graft(One, nil)
	innerOne, _ := Graft(One, nil)
	ctxWire := WireNet()
	falseNet, _ := Graft(False, []GraftArg{
		GraftPartition{Net: ctxWire, Ports: []int{0}},
		GraftBox{Net: innerOne, Ports: []int{0}},
	})
	composite := Cut(one, 0, falseNet, 0)

	r := NewReducer(composite)
	r.EnableTrace(8)
	r.Run(0)
	events := r.TraceSnapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 trace event, got %d", len(events))
	}
	if events[0].Rule != RuleOneFalse {
		t.Errorf("trace event rule = %v, want RuleOneFalse", events[0].Rule)
	}
}

func TestReducerTraceDisabledByDefault(t *testing.T) {
	r := NewReducer(NewNet())
	if r.TraceSnapshot() != nil {
		t.Errorf("TraceSnapshot() should be nil when tracing was never enabled")
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{TimesPar: 2, Stuck: 1}
	if got := s.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
}
