package metta

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

// Operator is the signature of a built-in special form. It receives the
// form's name (for error reporting), the raw, unevaluated argument terms,
// and the depth of the enclosing reduction.
type Operator func(name string, args []Term, env *Environment, depth int) ([]Term, *Environment)

// builtins maps special-form names to their implementations. An atom in
// head position is looked up here before rule firing is attempted.
var builtins map[string]Operator

func init() {
	builtins = map[string]Operator{
		"=":        opDefine,
		":":        opDeclareType,
		"!":        opBang,
		"quote":    opQuote,
		"eval":     opEval,
		"if":       opIf,
		"error":    opError,
		"is-error": opIsError,
		"catch":    opCatch,
		"case":     opCase,
		"switch":   opSwitch,
		"rulify":   opRulify,
		"exec":     opExec,
		"lookup":   opLookup,
		"coalg":    opCoalg,
		"+":        opArith,
		"-":        opArith,
		"*":        opArith,
		"/":        opArith,
		"div":      opArith,
		"==":       opCompare,
		"<":        opCompare,
		">":        opCompare,
		"<=":       opCompare,
		">=":       opCompare,
		"and":      opLogic,
		"or":       opLogic,
		"not":      opLogic,
	}
}

// IsSpecialForm reports whether name denotes a built-in special form.
func IsSpecialForm(name string) bool {
	_, ok := builtins[name]
	return ok
}

func arityError(name string) []Term {
	return []Term{ErrorTerm("arity", Sym(name))}
}

func mismatch(offender Term) Term {
	return ErrorTerm("type mismatch", offender)
}

// --- Definition forms -------------------------------------------------------

// (= lhs rhs) binds a rewrite rule. Neither side is evaluated.
func opDefine(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	env = env.WithRule(Rule{Lhs: args[0], Rhs: args[1]})
	return []Term{NilTerm}, env
}

// (: name type) records an advisory type annotation. Not enforced.
func opDeclareType(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	if args[0].Type() != AtomType {
		return []Term{mismatch(args[0])}, env
	}
	env = env.WithType(args[0].Name(), args[1])
	return []Term{NilTerm}, env
}

// --- Evaluation control -----------------------------------------------------

// (! e) evaluates e and emits all results. Prefix !e desugars to this form.
func opBang(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	return eval(args[0], env, depth+1)
}

// (quote e) yields e unevaluated.
func opQuote(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	return []Term{args[0]}, env
}

// (eval e) evaluates e, then evaluates each result once more.
func opEval(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	rs, env := eval(args[0], env, depth+1)
	var out []Term
	for _, r := range rs {
		rr, env2 := eval(r, env, depth+1)
		env = env2
		out = append(out, rr...)
	}
	return out, env
}

// (if c t f) selects on a boolean condition. A non-boolean condition
// result (including an error) propagates unchanged. Each result of a
// non-deterministic condition selects independently.
func opIf(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 3 {
		return arityError(name), env
	}
	cs, env := eval(args[0], env, depth+1)
	var out []Term
	for _, c := range cs {
		if c.Type() == BoolType {
			branch := args[2]
			if c.Data.(bool) {
				branch = args[1]
			}
			rs, env2 := eval(branch, env, depth+1)
			env = env2
			out = append(out, rs...)
			continue
		}
		out = append(out, c)
	}
	return out, env
}

// --- Error forms ------------------------------------------------------------

// (error msg payload) builds an error value. The message is taken verbatim
// when it is a string literal and evaluated otherwise; the payload is never
// evaluated.
func opError(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	if args[0].Type() == StringType {
		return []Term{ErrorTerm(args[0].Data.(string), args[1])}, env
	}
	ms, env := eval(args[0], env, depth+1)
	var out []Term
	for _, m := range ms {
		msg := m.String()
		if m.Type() == StringType {
			msg = m.Data.(string)
		}
		out = append(out, ErrorTerm(msg, args[1]))
	}
	return out, env
}

// (is-error e) evaluates e and tests each result for error-ness.
func opIsError(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	rs, env := eval(args[0], env, depth+1)
	out := make([]Term, len(rs))
	for i, r := range rs {
		out[i] = Boolean(r.IsError())
	}
	return out, env
}

// (catch e fallback) replaces every error result of e by the evaluated
// fallback; non-error results pass through.
func opCatch(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	rs, env := eval(args[0], env, depth+1)
	var out []Term
	for _, r := range rs {
		if !r.IsError() {
			out = append(out, r)
			continue
		}
		fs, env2 := eval(args[1], env, depth+1)
		env = env2
		out = append(out, fs...)
	}
	return out, env
}

// --- case / switch ----------------------------------------------------------

// (case atom cases) evaluates atom first, then branches on the first
// matching (pattern template) pair; first match wins. The sentinel atom
// Empty is a perfectly matchable value, so users can branch on "no result"
// flows. No match yields Empty.
func opCase(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	pairs, ok := casePairs(args[1])
	if !ok {
		return []Term{mismatch(args[1])}, env
	}
	vs, env := eval(args[0], env, depth+1)
	var out []Term
	for _, v := range vs {
		rs, env2 := branchOn(v, pairs, env, depth)
		env = env2
		out = append(out, rs...)
	}
	return out, env
}

// (switch atom cases) is case without the prior evaluation of atom.
func opSwitch(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	pairs, ok := casePairs(args[1])
	if !ok {
		return []Term{mismatch(args[1])}, env
	}
	return branchOn(args[0], pairs, env, depth)
}

func casePairs(t Term) ([]Rule, bool) {
	if t.Type() != SexprType {
		return nil, false
	}
	var pairs []Rule
	for _, item := range t.Items() {
		if item.Type() != SexprType || len(item.Items()) != 2 {
			return nil, false
		}
		pairs = append(pairs, Rule{Lhs: item.Items()[0], Rhs: item.Items()[1]})
	}
	return pairs, true
}

func branchOn(v Term, pairs []Rule, env *Environment, depth int) ([]Term, *Environment) {
	for _, pair := range pairs {
		b, ok := Match(pair.Lhs, v, nil)
		if !ok {
			continue
		}
		return eval(Subst(pair.Rhs, b), env, depth+1)
	}
	return []Term{EmptyTerm}, env
}

// --- Higher-order rule forms ------------------------------------------------

// (rulify lhs rhs) evaluates both sides and binds the resulting rule(s).
// Non-deterministic sides bind one rule per combination.
func opRulify(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	combos, env := evalSeq(args, env, depth)
	for _, combo := range combos {
		if combo[0].IsError() {
			return []Term{combo[0]}, env
		}
		if combo[1].IsError() {
			return []Term{combo[1]}, env
		}
		env = env.WithRule(Rule{Lhs: combo[0], Rhs: combo[1]})
	}
	return []Term{NilTerm}, env
}

// (exec e) evaluates e; every result of shape (= l r) is installed as a
// rule, all other results pass through. With nothing to pass through the
// result is Nil.
func opExec(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	rs, env := eval(args[0], env, depth+1)
	var out []Term
	for _, r := range rs {
		if items := r.Items(); r.Type() == SexprType && len(items) == 3 && items[0].IsAtomNamed("=") {
			env = env.WithRule(Rule{Lhs: items[1], Rhs: items[2]})
			continue
		}
		out = append(out, r)
	}
	if out == nil {
		out = []Term{NilTerm}
	}
	return out, env
}

// (lookup pat) queries the rule store: for every rule whose lhs matches the
// unevaluated pattern, the rhs is returned with the match bindings
// substituted. No match yields Empty.
func opLookup(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 1 {
		return arityError(name), env
	}
	var out []Term
	for _, rule := range env.Rules() {
		if b, ok := Match(rule.Lhs, args[0], nil); ok {
			out = append(out, SubstFree(rule.Rhs, b))
		}
	}
	if out == nil {
		out = []Term{EmptyTerm}
	}
	return out, env
}

// (coalg lhs rhs) binds the unfold-direction rule rhs → lhs. Neither side
// is evaluated.
func opCoalg(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	env = env.WithRule(Rule{Lhs: args[1], Rhs: args[0]})
	return []Term{NilTerm}, env
}

// --- Arithmetic -------------------------------------------------------------

// number is a Long or Double operand, normalized for mixed arithmetic.
type number struct {
	l     int64
	f     float64
	isDbl bool
}

func numOf(t Term) (number, bool) {
	switch t.Type() {
	case LongType:
		n := t.Data.(int64)
		return number{l: n, f: float64(n)}, true
	case DoubleType:
		return number{f: t.Data.(float64), isDbl: true}, true
	}
	return number{}, false
}

// opArith implements + - * / div over Longs and Doubles. Longs are closed
// under + - * and truncated division; any Double operand promotes the
// whole operation. div demands Longs. Wrong-typed operands yield
// Error("type mismatch", offender), as does Long division by zero.
func opArith(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) < 2 {
		return arityError(name), env
	}
	combos, env := evalSeq(args, env, depth)
	var out []Term
	for _, combo := range combos {
		out = append(out, foldArith(name, combo))
	}
	return out, env
}

func foldArith(name string, args []Term) Term {
	nums := make([]number, len(args))
	anyDbl := false
	for i, a := range args {
		if a.IsError() {
			return a
		}
		n, ok := numOf(a)
		if !ok {
			return mismatch(a)
		}
		if n.isDbl {
			if name == "div" {
				return mismatch(a)
			}
			anyDbl = true
		}
		nums[i] = n
	}
	if anyDbl {
		acc := nums[0].f
		for _, n := range nums[1:] {
			switch name {
			case "+":
				acc += n.f
			case "-":
				acc -= n.f
			case "*":
				acc *= n.f
			case "/":
				acc /= n.f
			}
		}
		return Dbl(acc)
	}
	acc := nums[0].l
	for i, n := range nums[1:] {
		switch name {
		case "+":
			acc += n.l
		case "-":
			acc -= n.l
		case "*":
			acc *= n.l
		case "/", "div":
			if n.l == 0 {
				return mismatch(args[i+1])
			}
			acc /= n.l
		}
	}
	return Long(acc)
}

// opCompare implements == < > <= >=. Equality compares any two terms,
// numbers by value across Long/Double; the relational operators are
// numeric only.
func opCompare(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if len(args) != 2 {
		return arityError(name), env
	}
	combos, env := evalSeq(args, env, depth)
	var out []Term
	for _, combo := range combos {
		out = append(out, compare(name, combo[0], combo[1]))
	}
	return out, env
}

func compare(name string, a Term, b Term) Term {
	if a.IsError() {
		return a
	}
	if b.IsError() {
		return b
	}
	na, aok := numOf(a)
	nb, bok := numOf(b)
	if name == "==" {
		if aok && bok {
			return Boolean(na.f == nb.f)
		}
		return Boolean(a.Equal(b))
	}
	if !aok {
		return mismatch(a)
	}
	if !bok {
		return mismatch(b)
	}
	switch name {
	case "<":
		return Boolean(na.f < nb.f)
	case ">":
		return Boolean(na.f > nb.f)
	case "<=":
		return Boolean(na.f <= nb.f)
	case ">=":
		return Boolean(na.f >= nb.f)
	}
	panic("unknown comparison " + name)
}

// opLogic implements and, or (n-ary) and not (unary) over booleans.
func opLogic(name string, args []Term, env *Environment, depth int) ([]Term, *Environment) {
	if name == "not" && len(args) != 1 || name != "not" && len(args) < 2 {
		return arityError(name), env
	}
	combos, env := evalSeq(args, env, depth)
	var out []Term
	for _, combo := range combos {
		out = append(out, foldLogic(name, combo))
	}
	return out, env
}

func foldLogic(name string, args []Term) Term {
	vals := make([]bool, len(args))
	for i, a := range args {
		if a.IsError() {
			return a
		}
		if a.Type() != BoolType {
			return mismatch(a)
		}
		vals[i] = a.Data.(bool)
	}
	switch name {
	case "not":
		return Boolean(!vals[0])
	case "and":
		for _, v := range vals {
			if !v {
				return Boolean(false)
			}
		}
		return Boolean(true)
	case "or":
		for _, v := range vals {
			if v {
				return Boolean(true)
			}
		}
		return Boolean(false)
	}
	panic("unknown logic op " + name)
}
