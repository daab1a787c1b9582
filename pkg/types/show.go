package types

import (
	"fmt"

	"github.com/vic/linearnet/pkg/util"
)

// Show renders t using the exact connective symbols of
// original_source/src/types/show.rs, extended to the full grammar: scope
// supplies stable short names for variable and eigenvariable ids, shared
// with whatever else in the same printing session names wires.
func Show(t Type, scope *util.NameScope) string {
	switch v := t.(type) {
	case TypeTimes:
		return fmt.Sprintf("(%s ⊗ %s)", Show(v.A, scope), Show(v.B, scope))
	case TypePar:
		return fmt.Sprintf("(%s ⅋ %s)", Show(v.A, scope), Show(v.B, scope))
	case TypeOne:
		return "1"
	case TypeBot:
		return "⊥"
	case TypePlus:
		return fmt.Sprintf("(%s ⊕ %s)", Show(v.A, scope), Show(v.B, scope))
	case TypeWith:
		return fmt.Sprintf("(%s & %s)", Show(v.A, scope), Show(v.B, scope))
	case TypeZero:
		return "0"
	case TypeTrue:
		return "⊤"
	case TypeWhy:
		return fmt.Sprintf("?%s", Show(v.A, scope))
	case TypeOfc:
		return fmt.Sprintf("!%s", Show(v.A, scope))
	case TypeAll:
		return fmt.Sprintf("∀%s.%s", eigenName(scope, v.ID), Show(v.Body, scope))
	case TypeAny:
		return fmt.Sprintf("∃%s.%s", eigenName(scope, v.ID), Show(v.Body, scope))
	case TypeVar:
		name := scope.PickName(v.ID)
		if !v.Pos {
			return name + "'"
		}
		return name
	case TypeEigen:
		name := eigenName(scope, v.ID)
		if !v.Pos {
			return name + "'"
		}
		return name
	case TypeHole:
		return "_"
	case TypeError:
		return "Error"
	default:
		return fmt.Sprintf("<unknown type %T>", t)
	}
}

// eigenName names an eigenvariable using the same base-26 scheme as
// ordinary variables but offset into a disjoint (negative) id range, so it
// gets its own scope entry and a printed ∀e.(e ⅋ a') never has its bound
// name collide with an unrelated free variable a in the same scope.
func eigenName(scope *util.NameScope, id int) string {
	return scope.PickName(-id - 1)
}
