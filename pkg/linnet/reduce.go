package linnet

import "github.com/sirupsen/logrus"

// Stats counts how many times each rule fired during a reduction, plus how
// many redexes were left stuck. Field names mirror RuleName's String form.
type Stats struct {
	TimesPar  uint64
	OneFalse  uint64
	LeftWith  uint64
	RightWith uint64
	Exp0Weak  uint64
	Exp0Dere  uint64
	Exp0Cntr  uint64
	Exp1Weak  uint64
	Exp1Dere  uint64
	Exp1Cntr  uint64
	AllAny    uint64
	Stuck     uint64
}

func (s *Stats) record(r RuleName) {
	switch r {
	case RuleTimesPar:
		s.TimesPar++
	case RuleOneFalse:
		s.OneFalse++
	case RuleLeftWith:
		s.LeftWith++
	case RuleRightWith:
		s.RightWith++
	case RuleExp0Weak:
		s.Exp0Weak++
	case RuleExp0Dere:
		s.Exp0Dere++
	case RuleExp0Cntr:
		s.Exp0Cntr++
	case RuleExp1Weak:
		s.Exp1Weak++
	case RuleExp1Dere:
		s.Exp1Dere++
	case RuleExp1Cntr:
		s.Exp1Cntr++
	case RuleAllAny:
		s.AllAny++
	default:
		s.Stuck++
	}
}

// Total returns the number of redexes dispatched (fired or stuck).
func (s *Stats) Total() uint64 {
	return s.TimesPar + s.OneFalse + s.LeftWith + s.RightWith +
		s.Exp0Weak + s.Exp0Dere + s.Exp0Cntr +
		s.Exp1Weak + s.Exp1Dere + s.Exp1Cntr +
		s.AllAny + s.Stuck
}

// Reducer drives a Net to normal form by repeatedly popping the front of its
// Redexes queue and dispatching it through ApplyRule. It is single-threaded
// and runs the queue in strict FIFO (insertion) order: newly created
// redexes — in particular the two copies a Cntr produces when it meets a
// promoted box — are appended at the back, never jumped ahead of older
// work, so box duplication can't starve the rest of the net's reduction.
type Reducer struct {
	Net   *Net
	Stats Stats
	Log   *logrus.Logger

	trace *traceBuffer
}

// NewReducer returns a reducer over net with a default (warn-level) logger and
// no tracing enabled.
func NewReducer(net *Net) *Reducer {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Reducer{Net: net, Log: log}
}

// EnableTrace starts recording up to capacity reduction steps. Disabled by
// default; the CLI turns it on when --trace is passed.
func (r *Reducer) EnableTrace(capacity int) {
	r.trace = newTraceBuffer(capacity)
}

// TraceSnapshot returns the events recorded so far, oldest first, or nil if
// tracing is disabled.
func (r *Reducer) TraceSnapshot() []TraceEvent {
	if r.trace == nil {
		return nil
	}
	return r.trace.snapshot()
}

// Step pops the front redex and dispatches it, returning false if the queue
// was already empty.
func (r *Reducer) Step() bool {
	if len(r.Net.Redexes) == 0 {
		return false
	}
	redex := r.Net.Redexes[0]
	r.Net.Redexes = r.Net.Redexes[1:]

	rule := ApplyRule(r.Net, redex.A, redex.B)
	r.Stats.record(rule)
	if r.trace != nil {
		r.trace.record(rule, redex)
	}
	if rule == RuleStuck {
		r.Log.WithFields(logrus.Fields{
			"left":  redex.A,
			"right": redex.B,
		}).Debug("linnet: stuck redex, no rule applies")
	} else {
		r.Log.WithField("rule", rule).Trace("linnet: fired rule")
	}
	return true
}

// Run drives the net to normal form: it steps until the redex queue is
// empty, or until maxSteps steps have run (maxSteps <= 0 means unbounded).
// It returns the number of steps actually taken. A positive maxSteps is a
// safety valve for the CLI's --max-steps flag, not part of the reduction
// semantics itself — the rules are confluent-enough in practice that a
// well-formed program terminates on its own.
func (r *Reducer) Run(maxSteps int) int {
	steps := 0
	for r.Step() {
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			r.Log.WithField("steps", steps).Warn("linnet: reduction stopped at --max-steps")
			break
		}
	}
	return steps
}
