// Package printer renders a pkg/linnet.Net back into the surface syntax,
// one port or redex per line with boxes nested at increasing indent.
//
// Grounded on original_source/src/net/show.rs, carrying over its
// opportunistic wire-inlining (a Var whose binding is still present is
// shown as its binding, not as a bare name) guarded by a visited set so a
// self-referential or already-consumed binding can't recurse forever.
package printer

import (
	"fmt"
	"strings"

	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/util"
)

// ShowNet renders every free port and pending redex (queued and stuck) of
// net at the given indent, using scope for stable variable names across
// recursive box calls.
func ShowNet(net *linnet.Net, scope *util.NameScope, indent int) string {
	visited := make(map[linnet.VarID]bool)
	var b strings.Builder
	prefix := strings.Repeat("    ", indent)
	for _, p := range net.Ports {
		fmt.Fprintf(&b, "%s%s\n", prefix, showTree(net, scope, visited, indent, p))
	}
	for _, r := range net.Redexes {
		fmt.Fprintf(&b, "%s%s = %s\n", prefix,
			showTree(net, scope, visited, indent, r.A),
			showTree(net, scope, visited, indent, r.B))
	}
	for _, r := range net.Stuck {
		fmt.Fprintf(&b, "%s%s = %s  // stuck\n", prefix,
			showTree(net, scope, visited, indent, r.A),
			showTree(net, scope, visited, indent, r.B))
	}
	return b.String()
}

func showTree(net *linnet.Net, scope *util.NameScope, visited map[linnet.VarID]bool, indent int, tree linnet.Tree) string {
	switch v := tree.(type) {
	case *linnet.AgentTree:
		var b strings.Builder
		b.WriteString(v.Symbol.String())
		for _, aux := range v.Args {
			b.WriteString(showAux(net, scope, visited, indent, aux))
		}
		return b.String()
	case *linnet.VarTree:
		if bound, ok := net.Vars[v.ID]; ok && bound != nil && !visited[v.ID] {
			visited[v.ID] = true
			return showTree(net, scope, visited, indent, *bound)
		}
		return scope.PickName(int(v.ID))
	default:
		return fmt.Sprintf("<unknown tree %T>", tree)
	}
}

func showAux(net *linnet.Net, scope *util.NameScope, visited map[linnet.VarID]bool, indent int, aux linnet.PartitionOrBox) string {
	switch v := aux.(type) {
	case *linnet.Partition:
		names := make([]string, len(v.Ports))
		for i, p := range v.Ports {
			names[i] = showTree(net, scope, visited, indent, p)
		}
		return "(" + util.JoinWith(names, " ") + ")"
	case *linnet.BoxArg:
		return "[\n" + ShowNet(v.Net, scope, indent+1) + strings.Repeat("    ", indent) + "]"
	default:
		return fmt.Sprintf("<unknown aux %T>", aux)
	}
}

// ShowTree renders a single tree, for callers that only want one term
// (e.g. a type's witness net) rather than a whole net's ports and redexes.
func ShowTree(net *linnet.Net, scope *util.NameScope, tree linnet.Tree) string {
	return showTree(net, scope, make(map[linnet.VarID]bool), 0, tree)
}
