package metta

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func defRule(name string, factor int64) Term {
	return Sexpr(Sym("="),
		Sexpr(Sym(name), Vari("x")),
		Sexpr(Sym("*"), Vari("x"), Long(factor)))
}

func wantOutputs(t *testing.T, s State, want []Term) {
	t.Helper()
	if len(s.Outputs) != len(want) {
		t.Fatalf("expected %d outputs, got %s", len(want), TermsString(s.Outputs))
	}
	for i, w := range want {
		if !s.Outputs[i].Equal(w) {
			t.Errorf("output %d expected %s, got %s", i, w.String(), s.Outputs[i].String())
		}
	}
}

func TestRunArithmeticChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := NewState()
	s = Run(s, Compiled(Sexpr(Sym("+"), Long(1), Long(2))))
	s = Run(s, Compiled(Sexpr(Sym("*"), Long(3), Long(4))))
	s = Run(s, Compiled(Sexpr(Sym("-"), Long(10), Long(5))))
	wantOutputs(t, s, []Term{Long(3), Long(12), Long(5)})
}

func TestRunSingleBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := Run(NewState(), Compiled(
		Sexpr(Sym("+"), Long(1), Long(2)),
		Sexpr(Sym("*"), Long(3), Long(4)),
		Sexpr(Sym("-"), Long(10), Long(5)),
	))
	wantOutputs(t, s, []Term{Long(3), Long(12), Long(5)})
}

func TestRunRuleChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := NewState()
	s = Run(s, Compiled(defRule("double", 2)))
	s = Run(s, Compiled(defRule("triple", 3)))
	s = Run(s, Compiled(
		Sexpr(Sym("!"), Sexpr(Sym("double"), Long(5))),
		Sexpr(Sym("!"), Sexpr(Sym("triple"), Long(5))),
	))
	wantOutputs(t, s, []Term{NilTerm, NilTerm, Long(10), Long(15)})
}

func TestRunNestedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := NewState()
	s = Run(s, Compiled(defRule("double", 2)))
	s = Run(s, Compiled(Sexpr(Sym("="),
		Sexpr(Sym("quadruple"), Vari("x")),
		Sexpr(Sym("double"), Sexpr(Sym("double"), Vari("x"))))))
	s = Run(s, Compiled(Sexpr(Sym("!"), Sexpr(Sym("quadruple"), Long(3)))))
	wantOutputs(t, s, []Term{NilTerm, NilTerm, Long(12)})
}

func TestRunErrorsAreValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := Run(NewState(), Compiled(
		Sexpr(Sym("+"), Long(1), Long(2)),
		Sexpr(Sym("error"), Str("test"), Long(0)),
		Sexpr(Sym("+"), Long(5), Long(5)),
	))
	wantOutputs(t, s, []Term{Long(3), ErrorTerm("test", Long(0)), Long(10)})
}

func TestRunConjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := Run(NewState(), Compiled(Conj(
		Sexpr(Sym("+"), Long(1), Long(1)),
		Sexpr(Sym("+"), Long(2), Long(2)),
		Sexpr(Sym("+"), Long(3), Long(3)),
	)))
	wantOutputs(t, s, []Term{Long(6)})
}

func TestRunCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	table := Sexpr(
		Sexpr(Long(1), Str("one")),
		Sexpr(Long(2), Str("two")),
		Sexpr(Long(3), Str("three")),
	)
	s := Run(NewState(), Compiled(Sexpr(Sym("case"), Long(2), table)))
	wantOutputs(t, s, []Term{Str("two")})
	//
	small := Sexpr(Sexpr(Long(1), Str("one")), Sexpr(Long(2), Str("two")))
	s = Run(NewState(), Compiled(Sexpr(Sym("case"), Long(99), small)))
	wantOutputs(t, s, []Term{EmptyTerm})
}

func TestRunChainIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s0 := NewState()
	// two independent chains branch off the common ancestor
	sa := Run(s0, Compiled(defRule("double", 2)))
	sb := Run(s0, Compiled(defRule("triple", 3)))
	sa = Run(sa, Compiled(Sexpr(Sym("!"), Sexpr(Sym("double"), Long(5)))))
	sb = Run(sb, Compiled(Sexpr(Sym("!"), Sexpr(Sym("triple"), Long(5)))))
	wantOutputs(t, sa, []Term{NilTerm, Long(10)})
	wantOutputs(t, sb, []Term{NilTerm, Long(15)})
	// A cannot evaluate triple: the call stays inert
	sa2 := Run(sa, Compiled(Sexpr(Sym("triple"), Long(5))))
	if got := sa2.Outputs[len(sa2.Outputs)-1]; !got.Equal(Sexpr(Sym("triple"), Long(5))) {
		t.Errorf("chain A expected not to know triple, got %s", got.String())
	}
	sb2 := Run(sb, Compiled(Sexpr(Sym("double"), Long(5))))
	if got := sb2.Outputs[len(sb2.Outputs)-1]; !got.Equal(Sexpr(Sym("double"), Long(5))) {
		t.Errorf("chain B expected not to know double, got %s", got.String())
	}
	if sa.Env.RuleCount() != 1 || sb.Env.RuleCount() != 1 {
		t.Errorf("chains expected to hold exactly their own rule")
	}
	if s0.Env.RuleCount() != 0 {
		t.Errorf("ancestor state expected to stay empty")
	}
}

func TestRunMonotonicOutputs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := NewState()
	var history []State
	blocks := []Term{
		Sexpr(Sym("+"), Long(1), Long(2)),
		defRule("double", 2),
		Sexpr(Sym("double"), Long(4)),
	}
	for _, b := range blocks {
		s = Run(s, Compiled(b))
		history = append(history, s)
	}
	for i := 0; i < len(history)-1; i++ {
		a, b := history[i], history[i+1]
		if len(a.Outputs) > len(b.Outputs) {
			t.Fatalf("outputs shrank between run %d and %d", i, i+1)
		}
		for j := range a.Outputs {
			if !a.Outputs[j].Equal(b.Outputs[j]) {
				t.Errorf("output %d changed between runs: %s vs %s",
					j, a.Outputs[j].String(), b.Outputs[j].String())
			}
		}
	}
}

func TestRunPurity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	acc := Run(NewState(), Compiled(defRule("double", 2)))
	compiled := Compiled(Sexpr(Sym("double"), Long(21)))
	s1 := Run(acc, compiled)
	s2 := Run(acc, compiled)
	if s1.Signature() != s2.Signature() {
		t.Errorf("repeated run with equal inputs expected equal states:\n%s\n%s",
			s1.Signature(), s2.Signature())
	}
	// the inputs themselves are untouched
	if len(acc.Outputs) != 1 || acc.Env.RuleCount() != 1 {
		t.Errorf("run mutated its accumulated input")
	}
	if len(compiled.Pending) != 1 {
		t.Errorf("run mutated its compiled input")
	}
}

func TestRunEnvironmentAccumulation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	s := NewState()
	s = Run(s, Compiled(defRule("double", 2)))
	s = Run(s, Compiled(Sexpr(Sym("+"), Long(0), Long(0))))
	s = Run(s, Compiled(Sexpr(Sym("+"), Long(0), Long(0))))
	// the rule from the first block is still available
	s = Run(s, Compiled(Sexpr(Sym("double"), Long(8))))
	if got := s.Outputs[len(s.Outputs)-1]; !got.Equal(Long(16)) {
		t.Errorf("rule expected to remain available along the chain, got %s", got.String())
	}
}

func TestRunIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	compiled := Compiled(Sexpr(Sym("+"), Long(2), Long(2)))
	viaEmpty := Run(NewState(), compiled)
	fresh := NewState()
	fresh.Env = fresh.Env.Union(compiled.Env)
	withPending := fresh
	withPending.Pending = compiled.Pending
	direct := Run(NewState(), withPending)
	if viaEmpty.Signature() != direct.Signature() {
		t.Errorf("identity invariant violated:\n%s\n%s", viaEmpty.Signature(), direct.Signature())
	}
}

func TestStateSignatureSensitivity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	a := Run(NewState(), Compiled(Sexpr(Sym("+"), Long(1), Long(1))))
	b := Run(NewState(), Compiled(Sexpr(Sym("+"), Long(1), Long(2))))
	if a.Signature() == b.Signature() {
		t.Errorf("states with different outputs expected different signatures")
	}
}
