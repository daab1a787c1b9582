package icomb

import (
	"fmt"
	"strings"

	"github.com/vic/linearnet/pkg/util"
)

// Show renders net's free ports and redex queue in the combinator calculus'
// own notation (con as (a . b), dup as <a, b>, era as *), one per line, the same
// register as pkg/printer's proof-net output.
func Show(net *Net) string {
	scope := util.NewNameScope()
	var b strings.Builder
	for _, p := range net.Ports {
		fmt.Fprintln(&b, showTree(p, scope))
	}
	for _, r := range net.Redexes {
		fmt.Fprintf(&b, "%s = %s\n", showTree(r.A, scope), showTree(r.B, scope))
	}
	return b.String()
}

func showTree(t Tree, scope *util.NameScope) string {
	switch v := t.(type) {
	case *Var:
		return scope.PickName(int(v.ID))
	case *Con:
		return fmt.Sprintf("(%s . %s)", showTree(v.A, scope), showTree(v.B, scope))
	case *Dup:
		return fmt.Sprintf("<%s, %s>", showTree(v.A, scope), showTree(v.B, scope))
	case *Era:
		return "*"
	default:
		return fmt.Sprintf("<unknown tree %T>", t)
	}
}
