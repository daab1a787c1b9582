// Package surface implements the textual front end of the proof-net
// language: lexing and parsing the `Name(args*) { instr* }` surface
// grammar into an AST, then desugaring that AST so every agent occurs only
// at the top level of an instruction — the shape the graph compiler in
// pkg/compiler expects.
package surface

import (
	"fmt"
	"strings"
)

// VarID names a surface-level variable occurrence before compilation; it's
// assigned by the parser the moment a variable name is first seen; a wire
// id of the same name space as linnet.VarID, but local to one AstNet before
// desugaring renumbers things further.
type VarID int

// Tree is one syntax tree on either side of an instruction: a bare
// variable occurrence or an agent applied to its arguments.
type Tree interface {
	fmt.Stringer
	isTree()
}

// VarTree is a variable occurrence, resolved to its id at parse time.
type VarTree struct {
	ID VarID
}

func (VarTree) isTree() {}
func (t VarTree) String() string {
	return fmt.Sprintf("v%d", t.ID)
}

// AgentTree applies a named connective to its arguments.
type AgentTree struct {
	Name string
	Args []Argument
}

func (AgentTree) isTree() {}
func (t AgentTree) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	for _, a := range t.Args {
		b.WriteString(a.String())
	}
	return b.String()
}

// Argument is one parenthesised or bracketed argument list following an
// agent name: a Partition of trees that stay in the enclosing net, or a Box
// of trees that become a locally-scoped sub-net.
type Argument interface {
	fmt.Stringer
	isArgument()
	Trees() []Tree
}

// Partition is a `(...)`-delimited argument.
type Partition struct {
	Elems []Tree
}

func (Partition) isArgument()     {}
func (a Partition) Trees() []Tree { return a.Elems }
func (a Partition) String() string {
	parts := make([]string, len(a.Elems))
	for i, t := range a.Elems {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Box is a `[...]`-delimited argument.
type Box struct {
	Elems []Tree
}

func (Box) isArgument()     {}
func (a Box) Trees() []Tree { return a.Elems }
func (a Box) String() string {
	parts := make([]string, len(a.Elems))
	for i, t := range a.Elems {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Instruction is one statement inside a net's braces: either a cut between
// two trees (a monocut, `t = t`) or a call into a previously-defined net
// (a multicut, `Name(args*)`).
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Monocut is `left = right`.
type Monocut struct {
	Left, Right Tree
}

func (Monocut) isInstruction() {}
func (i Monocut) String() string {
	return fmt.Sprintf("%s = %s", i.Left, i.Right)
}

// Multicut instantiates net Name, connecting its declared outputs to Args
// in order.
type Multicut struct {
	Name string
	Args []Tree
}

func (Multicut) isInstruction() {}
func (i Multicut) String() string {
	parts := make([]string, len(i.Args))
	for j, t := range i.Args {
		parts[j] = t.String()
	}
	return fmt.Sprintf("%s(%s)", i.Name, strings.Join(parts, " "))
}

// AstNet is one parsed (but not yet desugared) net definition.
type AstNet struct {
	Name         string
	Outputs      []Argument
	Instructions []Instruction
}

// Book is an ordered sequence of net definitions, the unit a parser
// produces and a compiler consumes.
type Book []AstNet
