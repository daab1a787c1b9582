// Package gentests holds the assertion helper generated golden tests call
// into: parse, compile, reduce and type one book's Main net, then compare
// against the cached expected output.
//
// Retargeted from the teacher's own CheckLambdaReduction, which ran the
// same parse/reduce/compare shape over lambda terms and DeltaNet.
package gentests

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vic/linearnet/pkg/compiler"
	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/printer"
	"github.com/vic/linearnet/pkg/surface"
	"github.com/vic/linearnet/pkg/types"
	"github.com/vic/linearnet/pkg/util"
)

// CheckNetReduction parses source, compiles and reduces its Main net to
// normal form, and asserts the printed reduced net and inferred sequent
// match expectedNet and expectedSequent exactly.
func CheckNetReduction(t *testing.T, name, source, expectedNet, expectedSequent string) {
	t.Helper()

	book, err := surface.NewParser(source).ParseBook()
	require.NoError(t, err, "%s: parse error", name)

	c := compiler.NewCompiler()
	require.NoError(t, c.CompileBook(book), "%s: compile error", name)

	mainNet, err := c.MainNet()
	require.NoError(t, err, "%s: no Main net", name)

	reducer := linnet.NewReducer(mainNet)
	steps := reducer.Run(0)
	mainNet.Canonical()
	t.Logf("%s: %d reduction steps, stats=%+v", name, steps, reducer.Stats)

	actualNet := printer.ShowNet(mainNet, util.NewNameScope(), 0)
	if diff := cmp.Diff(expectedNet, actualNet); diff != "" {
		t.Errorf("%s: reduced net mismatch (-want +got):\n%s", name, diff)
	}

	inf := types.NewInferencer()
	inferred := inf.Infer(mainNet.Ports)
	scope := util.NewNameScope()
	shown := make([]string, len(inferred))
	for i, ty := range inferred {
		shown[i] = types.Show(ty, scope)
	}
	actualSequent := "|- " + strings.Join(shown, ", ")
	if diff := cmp.Diff(expectedSequent, actualSequent); diff != "" {
		t.Errorf("%s: sequent mismatch (-want +got):\n%s", name, diff)
	}
}
