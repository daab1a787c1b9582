package compiler

import (
	"strings"
	"testing"

	"github.com/vic/linearnet/pkg/surface"
)

func parseOne(t *testing.T, src string) surface.AstNet {
	t.Helper()
	book, err := surface.NewParser(src).ParseBook()
	if err != nil {
		t.Fatalf("ParseBook(%q): %v", src, err)
	}
	if len(book) != 1 {
		t.Fatalf("ParseBook(%q) = %d nets, want 1", src, len(book))
	}
	return book[0]
}

func TestCompileIdentityWire(t *testing.T) {
	net := parseOne(t, "Main(x) { x = y y = One() }")
	c := NewCompiler()
	if err := c.CompileNet(net); err != nil {
		t.Fatalf("CompileNet: %v", err)
	}
	main, err := c.MainNet()
	if err != nil {
		t.Fatalf("MainNet: %v", err)
	}
	if len(main.Ports) != 1 {
		t.Fatalf("len(Ports) = %d, want 1", len(main.Ports))
	}
}

func TestCompileOneAgent(t *testing.T) {
	net := parseOne(t, "Main(x) { x = One() }")
	c := NewCompiler()
	if err := c.CompileNet(net); err != nil {
		t.Fatalf("CompileNet: %v", err)
	}
	main, err := c.MainNet()
	if err != nil {
		t.Fatalf("MainNet: %v", err)
	}
	if len(main.Ports) != 1 {
		t.Fatalf("len(Ports) = %d, want 1", len(main.Ports))
	}
}

func TestCompileTimesWithBox(t *testing.T) {
	net := parseOne(t, "Main(x) { x = Times(a)[b] a = One() b = One() }")
	c := NewCompiler()
	if err := c.CompileNet(net); err == nil {
		t.Fatal("CompileNet: want error, Times takes two partitions and no box")
	}
}

func TestCompileUnknownConnectiveSuggestsName(t *testing.T) {
	net := parseOne(t, "Main(x) { x = Tims() }")
	c := NewCompiler()
	err := c.CompileNet(net)
	if err == nil {
		t.Fatal("CompileNet: want error for unknown connective")
	}
	if !strings.Contains(err.Error(), "Times") {
		t.Errorf("error = %q, want it to suggest Times", err.Error())
	}
}

func TestCompileBookMulticut(t *testing.T) {
	book, err := surface.NewParser(`
		Unit(x) { x = One() }
		Main(x) { Unit(x) }
	`).ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	c := NewCompiler()
	if err := c.CompileBook(book); err != nil {
		t.Fatalf("CompileBook: %v", err)
	}
	main, err := c.MainNet()
	if err != nil {
		t.Fatalf("MainNet: %v", err)
	}
	if len(main.Ports) != 1 {
		t.Fatalf("len(Ports) = %d, want 1", len(main.Ports))
	}
}

func TestCompileUnknownNetSuggestsName(t *testing.T) {
	book, err := surface.NewParser(`
		Unit(x) { x = One() }
		Main(x) { Unt(x) }
	`).ParseBook()
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	c := NewCompiler()
	err = c.CompileBook(book)
	if err == nil {
		t.Fatal("CompileBook: want error for unknown net")
	}
	if !strings.Contains(err.Error(), "Unit") {
		t.Errorf("error = %q, want it to suggest Unit", err.Error())
	}
}
