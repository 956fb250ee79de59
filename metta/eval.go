package metta

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

// MaxDepth bounds the reduction recursion. Exceeding it does not abort a
// run: the offending branch reduces to Error("recursion limit", term).
const MaxDepth = 512

// Eval reduces a term under an environment. It returns zero or more result
// terms (one expression may rewrite to many results when several rules
// match) and the environment as extended along the reduction trajectory
// (rule and type definitions encountered on the way).
func Eval(t Term, env *Environment) ([]Term, *Environment) {
	return eval(t, env, 0)
}

func eval(t Term, env *Environment, depth int) ([]Term, *Environment) {
	if depth > MaxDepth {
		return []Term{ErrorTerm("recursion limit", t)}, env
	}
	tracer().Debugf("eval %s", t.String())
	switch t.Type() {
	case NilType, BoolType, LongType, DoubleType, StringType, VarType, AtomType:
		return []Term{t}, env
	case ErrorType, AnnotType:
		// errors are values; annotations are inert data
		return []Term{t}, env
	case ConjType:
		return evalConjunction(t.Items(), env, depth)
	case SexprType:
		return evalSexpr(t, env, depth)
	}
	panic("unknown term type in eval")
}

func evalSexpr(t Term, env *Environment, depth int) ([]Term, *Environment) {
	items := t.Items()
	if len(items) == 0 {
		return []Term{t}, env
	}
	head := items[0]
	if head.Type() == AtomType {
		if op, ok := builtins[head.Name()]; ok {
			return op(head.Name(), items[1:], env, depth)
		}
		return applyRules(head, items[1:], env, depth)
	}
	// Non-atom head: reduce the head first. If it reduces to an atom,
	// restart dispatch with the resolved head; otherwise the whole
	// S-expression is inert.
	hs, env := eval(head, env, depth+1)
	if len(hs) == 1 && hs[0].Type() == AtomType && !hs[0].Equal(head) {
		resolved := append([]Term{hs[0]}, items[1:]...)
		return eval(Sexpr(resolved...), env, depth+1)
	}
	return []Term{t}, env
}

// applyRules reduces the argument terms left to right and then fires every
// matching rule for each argument combination. Results concatenate in rule
// insertion order. A combination no rule matches reduces to itself, as an
// inert ground term.
func applyRules(head Term, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	combos, env := evalSeq(args, env, depth)
	var out []Term
	for _, combo := range combos {
		call := Sexpr(append([]Term{head}, combo...)...)
		rs, env2, fired := fireRules(call, env, depth)
		env = env2
		if !fired {
			out = append(out, call)
			continue
		}
		out = append(out, rs...)
	}
	return out, env
}

// fireRules collects every rule whose lhs matches the call, substitutes the
// match bindings into the rule's rhs and reduces it. The boolean result
// reports whether any rule matched at all.
func fireRules(call Term, env *Environment, depth int) ([]Term, *Environment, bool) {
	var out []Term
	fired := false
	for _, rule := range env.Rules() {
		b, ok := Match(rule.Lhs, call, nil)
		if !ok {
			continue
		}
		fired = true
		tracer().Debugf("firing %s on %s", rule.String(), call.String())
		body := Subst(rule.Rhs, b)
		rs, env2 := eval(body, env, depth+1)
		env = env2
		out = append(out, rs...)
	}
	return out, env, fired
}

// evalSeq reduces a sequence of terms left to right, threading environment
// updates, and forms the cartesian product of the per-term results. The
// empty sequence yields a single empty combination.
func evalSeq(items []Term, env *Environment, depth int) ([][]Term, *Environment) {
	combos := [][]Term{{}}
	for _, item := range items {
		rs, env2 := eval(item, env, depth+1)
		env = env2
		next := make([][]Term, 0, len(combos)*len(rs))
		for _, combo := range combos {
			for _, r := range rs {
				ext := make([]Term, len(combo), len(combo)+1)
				copy(ext, combo)
				next = append(next, append(ext, r))
			}
		}
		combos = next
	}
	return combos, env
}

// --- Conjunctions ----------------------------------------------------------

// goalBranch is one alternative while walking the goals of a conjunction:
// the bindings accumulated so far, the last goal's result on this branch,
// and whether the branch was short-circuited by an error.
type goalBranch struct {
	bind  Bindings
	last  Term
	erred bool
}

// evalConjunction reduces (, g₁ g₂ … gₙ) with left-to-right binding
// threading. Bindings accumulated on a branch are substituted into the next
// goal before it is processed. A goal still containing variables after
// substitution is treated as a query against the rule store: every rule
// whose lhs the goal pattern-matches contributes a branch with the extended
// bindings and the reduced rule body as the goal's result. A goal without
// variables, or one no rule head answers, reduces ordinarily. An error
// result short-circuits its branch. The conjunction's results are the last
// goal's results, one per surviving branch combination.
func evalConjunction(goals []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(goals) == 0 {
		return []Term{NilTerm}, env
	}
	branches := []goalBranch{{bind: Bindings{}, last: NilTerm}}
	for _, goal := range goals {
		next := make([]goalBranch, 0, len(branches))
		for _, br := range branches {
			if br.erred {
				next = append(next, br)
				continue
			}
			g := SubstFree(goal, br.bind)
			if g.Type() == SexprType && ContainsVar(g) {
				solved := false
				for _, rule := range env.Rules() {
					b2, ok := Match(g, rule.Lhs, br.bind)
					if !ok {
						continue
					}
					solved = true
					rs, env2 := eval(SubstFree(rule.Rhs, b2), env, depth+1)
					env = env2
					next = appendGoalResults(next, b2, rs)
				}
				if solved {
					continue
				}
			}
			rs, env2 := eval(g, env, depth+1)
			env = env2
			next = appendGoalResults(next, br.bind, rs)
		}
		branches = next
	}
	out := make([]Term, 0, len(branches))
	for _, br := range branches {
		out = append(out, br.last)
	}
	return out, env
}

func appendGoalResults(branches []goalBranch, bind Bindings, results []Term) []goalBranch {
	for _, r := range results {
		branches = append(branches, goalBranch{bind: bind, last: r, erred: r.IsError()})
	}
	return branches
}
