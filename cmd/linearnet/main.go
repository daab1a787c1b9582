// Command linearnet compiles, reduces, and types a proof-net book read from
// standard input (or a file path argument), printing the pipeline's stages
// in order: the parsed book, the compiled entry net, its reduced form, the
// inferred sequent, and the combinator-encoded net, plus any requested
// structural emission targets.
//
// Grounded on cmd/godnet/main.go's stdin-or-argv-path read and stats-banner
// shape, with cobra/pflag taking over flag parsing per
// opal-lang-opal/runtime/cli/harness.go's rootCmd-with-RunE wiring.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vic/linearnet/pkg/compiler"
	"github.com/vic/linearnet/pkg/icomb"
	"github.com/vic/linearnet/pkg/linnet"
	"github.com/vic/linearnet/pkg/printer"
	"github.com/vic/linearnet/pkg/surface"
	"github.com/vic/linearnet/pkg/types"
	"github.com/vic/linearnet/pkg/util"
)

var (
	targets  []string
	trace    int
	maxSteps int
	verbose  int
)

func main() {
	log := logrus.New()

	root := &cobra.Command{
		Use:           "linearnet [file]",
		Short:         "Compile, reduce and type a proof-net book",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, log)
		},
	}
	root.Flags().StringArrayVar(&targets, "target", nil, "emit a structural target net (hvm2, ivy); repeatable")
	root.Flags().IntVar(&trace, "trace", 0, "ring buffer capacity for reduction tracing (0 disables)")
	root.Flags().IntVar(&maxSteps, "max-steps", 0, "stop reduction after N steps (0 means unbounded)")
	root.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	if err := root.Execute(); err != nil {
		if strings.HasPrefix(err.Error(), "syntax error") {
			fmt.Fprintf(os.Stderr, "Syntax error: %s\n", strings.TrimPrefix(err.Error(), "syntax error: "))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, log *logrus.Logger) error {
	switch {
	case verbose >= 3:
		log.SetLevel(logrus.TraceLevel)
	case verbose == 2:
		log.SetLevel(logrus.DebugLevel)
	case verbose == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	source, err := readSource(args)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	book, err := surface.NewParser(string(source)).ParseBook()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "== book ==")
	for _, net := range book {
		fmt.Fprintln(out, showAstNet(net))
	}

	c := compiler.NewCompiler()
	c.Log = log
	if err := c.CompileBook(book); err != nil {
		log.WithError(err).Error("linearnet: compilation failed")
		return err
	}

	mainNet, err := c.MainNet()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "== compiled ==")
	fmt.Fprint(out, printer.ShowNet(mainNet, util.NewNameScope(), 0))

	reducer := linnet.NewReducer(mainNet)
	reducer.Log = log
	if trace > 0 {
		reducer.EnableTrace(trace)
	}
	reducer.Run(maxSteps)
	mainNet.Canonical()

	fmt.Fprintln(out, "== reduced ==")
	fmt.Fprint(out, printer.ShowNet(mainNet, util.NewNameScope(), 0))

	inf := types.NewInferencer()
	inf.Log = log
	inferred := inf.Infer(mainNet.Ports)
	typeScope := util.NewNameScope()
	shown := make([]string, len(inferred))
	for i, t := range inferred {
		shown[i] = types.Show(t, typeScope)
	}
	fmt.Fprintln(out, "== sequent ==")
	fmt.Fprintf(out, "|- %s\n", strings.Join(shown, ", "))

	combNet := icomb.TranslateNet(mainNet)
	fmt.Fprintln(out, "== combinators ==")
	fmt.Fprint(out, icomb.Show(combNet))

	for _, target := range targets {
		switch target {
		case "hvm2":
			fmt.Fprintln(out, "== target: hvm2 ==")
			fmt.Fprintln(out, formatHVM2(icomb.EmitHVM2(combNet)))
		case "ivy":
			fmt.Fprintln(out, "== target: ivy ==")
			fmt.Fprintln(out, formatIvy(icomb.EmitIvy(combNet)))
		default:
			log.WithField("target", target).Warn("linearnet: unknown --target, ignoring")
		}
	}

	return nil
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

// showAstNet renders one parsed net definition using Argument's and
// Instruction's own String forms, since surface.AstNet itself doesn't
// carry one (its Outputs/Instructions fields are the only pieces a reader
// needs echoed back).
func showAstNet(net surface.AstNet) string {
	var b strings.Builder
	b.WriteString(net.Name)
	for _, o := range net.Outputs {
		b.WriteString(o.String())
	}
	b.WriteString(" { ")
	for i, instr := range net.Instructions {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(instr.String())
	}
	b.WriteString(" }")
	return b.String()
}

func formatHVM2(net icomb.HVMNet) string {
	var b strings.Builder
	b.WriteString(net.Root.String())
	for _, r := range net.RBag {
		fmt.Fprintf(&b, " & %s ~ %s", r.Fst.String(), r.Snd.String())
	}
	return b.String()
}

func formatIvy(net icomb.IvyNet) string {
	var b strings.Builder
	b.WriteString(net.Root.String())
	for _, p := range net.Pairs {
		fmt.Fprintf(&b, " & %s ~ %s", p[0].String(), p[1].String())
	}
	return b.String()
}
