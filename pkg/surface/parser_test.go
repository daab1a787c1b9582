package surface

import "testing"

func TestParseSimpleNet(t *testing.T) {
	book, err := NewParser("Main(o) { o = One() }").ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	if len(book) != 1 {
		t.Fatalf("got %d nets, want 1", len(book))
	}
	net := book[0]
	if net.Name != "Main" {
		t.Errorf("net.Name = %q, want Main", net.Name)
	}
	if len(net.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(net.Instructions))
	}
	mono, ok := net.Instructions[0].(Monocut)
	if !ok {
		t.Fatalf("instruction = %#v, want Monocut", net.Instructions[0])
	}
	if _, ok := mono.Left.(VarTree); !ok {
		t.Errorf("left side = %#v, want a variable", mono.Left)
	}
	agent, ok := mono.Right.(AgentTree)
	if !ok || agent.Name != "One" {
		t.Errorf("right side = %#v, want One()", mono.Right)
	}
}

func TestParseRejectsThirdOccurrence(t *testing.T) {
	_, err := NewParser("Main() { a = One() a = One() a = One() }").ParseBook()
	if err == nil {
		t.Fatalf("expected a syntax error for a variable used more than twice")
	}
}

func TestParseRejectsSingleOccurrence(t *testing.T) {
	_, err := NewParser("Main() { x = One() }").ParseBook()
	if err == nil {
		t.Fatalf("expected a syntax error: x occurs only once")
	}
}

func TestParsePartitionArguments(t *testing.T) {
	book, err := NewParser("Main(r) { r = Times(a)(b)\n a = One()\n b = One() }").ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	net := book[0]
	if len(net.Outputs) != 1 {
		t.Fatalf("got %d outputs, want 1", len(net.Outputs))
	}
	if _, ok := net.Outputs[0].(Partition); !ok {
		t.Errorf("header arg = %#v, want a Partition of size 1", net.Outputs[0])
	}
}

func TestParseMulticut(t *testing.T) {
	book, err := NewParser("Main(r) { Helper(r a)\n a = One() }").ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	net := book[0]
	var found bool
	for _, instr := range net.Instructions {
		if mc, ok := instr.(Multicut); ok {
			found = true
			if mc.Name != "Helper" || len(mc.Args) != 2 {
				t.Errorf("multicut = %#v, want Helper with 2 args", mc)
			}
		}
	}
	if !found {
		t.Fatalf("no Multicut instruction parsed")
	}
}

func TestParseUnclosedBraceIsSyntaxError(t *testing.T) {
	_, err := NewParser("Main() { o = One()").ParseBook()
	if err == nil {
		t.Fatalf("expected a syntax error for an unclosed net")
	}
}

func TestParseMultipleNets(t *testing.T) {
	book, err := NewParser("Helper(r) { r = One() }\nMain(r) { Helper(r) }").ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	if len(book) != 2 {
		t.Fatalf("got %d nets, want 2", len(book))
	}
}
