package surface

import "testing"

func parseOne(t *testing.T, src string) AstNet {
	t.Helper()
	book, err := NewParser(src).ParseBook()
	if err != nil {
		t.Fatalf("ParseBook(%q): %v", src, err)
	}
	return book[0]
}

func TestDesugarFlattensNestedAgent(t *testing.T) {
	// Times(a)(b) already has its agent arguments as bare variables, so
	// nothing needs hoisting here — a baseline check that desugaring a
	// flat program is a no-op on instruction count.
	net := parseOne(t, "Main(r) { r = Times(a)(b)\n a = One()\n b = One() }")
	instrs, outputs := Desugar(net, 3)
	if len(instrs) != 3 {
		t.Fatalf("got %d instructions, want 3 (already flat)", len(instrs))
	}
	if len(outputs) != 1 {
		t.Fatalf("got %d outputs, want 1", len(outputs))
	}
}

func TestDesugarHoistsNestedAgent(t *testing.T) {
	// One() nested directly inside Times's partition must be hoisted into
	// its own monocut, since the compiler only ever looks at the top level
	// of an instruction for an agent to compile.
	net := parseOne(t, "Main(r) { r = Times(One())(b)\n b = One() }")
	instrs, _ := Desugar(net, 2)
	if len(instrs) != 3 {
		t.Fatalf("got %d instructions, want 3 (one hoisted out of Times's partition)", len(instrs))
	}
	for _, instr := range instrs {
		mono, ok := instr.(Monocut)
		if !ok {
			t.Fatalf("instruction = %#v, want Monocut", instr)
		}
		if agent, ok := mono.Right.(AgentTree); ok {
			for _, arg := range agent.Args {
				for _, elem := range arg.Trees() {
					if _, ok := elem.(AgentTree); ok {
						t.Errorf("found a nested agent after desugaring: %#v", elem)
					}
				}
			}
		}
	}
}

func TestDesugarOutputsCanReferenceVars(t *testing.T) {
	net := parseOne(t, "Main(r) { r = One() }")
	instrs, outputs := Desugar(net, 1)
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if _, ok := outputs[0].(Partition); !ok {
		t.Fatalf("outputs[0] = %#v, want Partition", outputs[0])
	}
}
