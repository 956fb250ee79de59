package metta

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

// Bindings maps variable names to the terms they were matched against.
type Bindings map[string]Term

// clone copies a binding map. Match never mutates its input map, so that
// failed alternatives leave the caller's bindings untouched.
func (b Bindings) clone() Bindings {
	cp := make(Bindings, len(b)+2)
	for k, v := range b {
		cp[k] = v
	}
	return cp
}

// Lookup returns the binding for a variable name.
func (b Bindings) Lookup(name string) (Term, bool) {
	t, ok := b[name]
	return t, ok
}

// Match unifies a pattern term with a value term, threading a binding map.
// On success it returns an extended copy of b; on failure it returns nil
// and false. Matching is pure and total:
//
//   1. a variable matches anything, but a repeated variable must see
//      structurally equal values,
//   2. literals and atoms match by structural equality,
//   3. S-expressions and conjunctions match componentwise, same length,
//      left to right,
//   4. all other tag combinations fail.
//
func Match(pattern Term, value Term, b Bindings) (Bindings, bool) {
	if b == nil {
		b = Bindings{}
	}
	return match(pattern, value, b.clone())
}

// match works on a private copy of the bindings and may extend it in place.
func match(pattern Term, value Term, b Bindings) (Bindings, bool) {
	if pattern.Type() == VarType {
		name := pattern.Name()
		if bound, ok := b[name]; ok {
			if bound.Equal(value) {
				return b, true
			}
			return nil, false
		}
		b[name] = value
		return b, true
	}
	if pattern.Type() != value.Type() {
		return nil, false
	}
	switch pattern.Type() {
	case SexprType, ConjType:
		ps, vs := pattern.Items(), value.Items()
		if len(ps) != len(vs) {
			return nil, false
		}
		ok := true
		for i := range ps {
			if b, ok = match(ps[i], vs[i], b); !ok {
				return nil, false
			}
		}
		return b, true
	}
	if pattern.Equal(value) {
		return b, true
	}
	return nil, false
}

// --- Substitution ----------------------------------------------------------

// Subst instantiates a rule template under a binding map. A variable left
// free by the bindings is a template error: the whole substitution yields
// Error("unbound", $name).
func Subst(template Term, b Bindings) Term {
	t, free := subst(template, b, false)
	if free != nil {
		return ErrorTerm("unbound", *free)
	}
	return t
}

// SubstFree is like Subst but leaves free variables in place. Conjunction
// goals use it: a variable unbound by goal gᵢ may legitimately be bound by
// a later goal.
func SubstFree(template Term, b Bindings) Term {
	t, _ := subst(template, b, true)
	return t
}

func subst(template Term, b Bindings, keepFree bool) (Term, *Term) {
	switch template.Type() {
	case VarType:
		if bound, ok := b[template.Name()]; ok {
			return bound, nil
		}
		if keepFree {
			return template, nil
		}
		v := template
		return template, &v
	case SexprType, ConjType:
		items := template.Items()
		cp := make([]Term, len(items))
		for i, it := range items {
			t, free := subst(it, b, keepFree)
			if free != nil {
				return template, free
			}
			cp[i] = t
		}
		return Term{typ: template.Type(), Data: cp}, nil
	}
	return template, nil
}

// ContainsVar reports whether a term mentions any variable.
func ContainsVar(t Term) bool {
	switch t.Type() {
	case VarType:
		return true
	case SexprType, ConjType:
		for _, it := range t.Items() {
			if ContainsVar(it) {
				return true
			}
		}
	}
	return false
}
