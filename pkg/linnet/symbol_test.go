package linnet

import "testing"

func TestSymbolShapeMatchesTable(t *testing.T) {
	cases := []struct {
		sym   Symbol
		shape []ArgShape
	}{
		{Times, []ArgShape{{ArgPartition, 1}, {ArgPartition, 1}}},
		{Par, []ArgShape{{ArgPartition, 2}}},
		{One, []ArgShape{}},
		{False, []ArgShape{{ArgPartition, 1}, {ArgBox, 1}}},
		{With, []ArgShape{{ArgPartition, 1}, {ArgBox, 2}, {ArgBox, 2}}},
		{Exp0, []ArgShape{{ArgBox, 1}}},
		{Exp1, []ArgShape{{ArgPartition, 1}, {ArgBox, 2}}},
		{Cntr, []ArgShape{{ArgPartition, 2}}},
		{All, []ArgShape{{ArgPartition, 1}, {ArgBox, 3}}},
		{Any, []ArgShape{{ArgPartition, 1}, {ArgBox, 3}}},
	}
	for _, c := range cases {
		got := c.sym.Shape()
		if len(got) != len(c.shape) {
			t.Fatalf("%s: got %d args, want %d", c.sym, len(got), len(c.shape))
		}
		for i := range got {
			if got[i] != c.shape[i] {
				t.Errorf("%s arg %d: got %+v, want %+v", c.sym, i, got[i], c.shape[i])
			}
		}
	}
}

func TestSymbolByName(t *testing.T) {
	for _, name := range AllSymbolNames() {
		sym, ok := SymbolByName(name)
		if !ok {
			t.Fatalf("SymbolByName(%q) not found", name)
		}
		if sym.String() != name {
			t.Errorf("SymbolByName(%q).String() = %q", name, sym.String())
		}
	}
	if _, ok := SymbolByName("Xyz"); ok {
		t.Errorf("SymbolByName(\"Xyz\") unexpectedly found")
	}
}
