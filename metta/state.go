package metta

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"github.com/cnf/structhash"
)

// State is the composable value representing "REPL state so far": the
// expressions still awaiting reduction, the rule environment in effect, and
// the append-only log of reduction results. States are value-pure: Run
// never mutates its inputs, so independent chains derived from a common
// ancestor can never observe each other's additions.
type State struct {
	Pending []Term
	Env     *Environment
	Outputs []Term
}

// NewState returns the empty state: nothing pending, empty environment,
// no outputs.
func NewState() State {
	return State{Env: NewEnvironment()}
}

// Compiled wraps freshly parsed top-level terms into a state ready to be
// passed as the second argument of Run. This is the parser-to-evaluator
// boundary: pending expressions in source order, empty environment, empty
// output log.
func Compiled(exprs ...Term) State {
	s := NewState()
	s.Pending = append([]Term{}, exprs...)
	return s
}

// Run is the sole composition operation. It merges the compiled state's
// environment into the accumulated one, reduces every pending expression of
// compiled in order under the merged environment, and appends all results
// to the accumulated output log. The returned state has no pending
// expressions and can itself become the accumulated argument of a further
// Run.
func Run(accumulated State, compiled State) State {
	env := envOf(accumulated).Union(envOf(compiled))
	outputs := make([]Term, len(accumulated.Outputs), len(accumulated.Outputs)+len(compiled.Pending))
	copy(outputs, accumulated.Outputs)
	for _, e := range compiled.Pending {
		tracer().Infof("run: %s", e.String())
		rs, env2 := Eval(e, env)
		env = env2
		outputs = append(outputs, rs...)
		tracer().Infof("  => %s", TermsString(rs))
	}
	return State{Pending: nil, Env: env, Outputs: outputs}
}

// RunSource is a convenience for chains driven by an external compiler
// front end: it runs a pre-parsed expression list against an accumulated
// state.
func RunSource(accumulated State, exprs ...Term) State {
	return Run(accumulated, Compiled(exprs...))
}

func envOf(s State) *Environment {
	if s.Env == nil {
		return NewEnvironment()
	}
	return s.Env
}

// Signature returns a structural md5 fingerprint of a state. Two states
// with equal pending expressions, rules, types and outputs have equal
// signatures; the REPL shows it as a state identity and the tests use it
// to check purity and chain isolation.
func (s State) Signature() string {
	env := envOf(s)
	rules := make([]string, 0, env.RuleCount())
	for _, r := range env.Rules() {
		rules = append(rules, r.String())
	}
	types := make(map[string]string, env.TypeCount())
	for name, ty := range env.types {
		types[name] = ty.String()
	}
	hash, err := structhash.Hash(struct {
		Pending []string
		Rules   []string
		Types   map[string]string
		Outputs []string
	}{
		Pending: termStrings(s.Pending),
		Rules:   rules,
		Types:   types,
		Outputs: termStrings(s.Outputs),
	}, 1)
	if err != nil {
		panic("cannot hash state")
	}
	return hash
}

func termStrings(terms []Term) []string {
	ss := make([]string, len(terms))
	for i, t := range terms {
		ss[i] = t.String()
	}
	return ss
}
