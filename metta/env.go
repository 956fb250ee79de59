package metta

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Rule is a rewrite declaration lhs → rhs, introduced by (= lhs rhs).
// The lhs is a pattern, the rhs a template over the lhs's variables.
type Rule struct {
	Lhs Term
	Rhs Term
}

func (r Rule) String() string {
	return fmt.Sprintf("(= %s %s)", r.Lhs.String(), r.Rhs.String())
}

// Environment is the set of rules and advisory type annotations in effect
// at a given point of reduction. Environments have value semantics:
// extending one returns a new environment, the receiver is never mutated.
// Rule order is insertion order; it fixes the concatenation order of rule
// firing results, while firing itself considers all matching rules.
type Environment struct {
	rules *arraylist.List // of Rule
	types map[string]Term
}

// NewEnvironment returns an environment with no rules and no types.
func NewEnvironment() *Environment {
	return &Environment{
		rules: arraylist.New(),
		types: map[string]Term{},
	}
}

// shallow copy; the per-element values are immutable Terms, so copying the
// containers is enough to seal off the receiver.
func (env *Environment) copy() *Environment {
	cp := &Environment{
		rules: arraylist.New(env.rules.Values()...),
		types: make(map[string]Term, len(env.types)),
	}
	for k, v := range env.types {
		cp.types[k] = v
	}
	return cp
}

// WithRule appends a rule; returns the extended environment.
func (env *Environment) WithRule(r Rule) *Environment {
	cp := env.copy()
	cp.rules.Add(r)
	return cp
}

// WithType records an advisory type annotation for a name; returns the
// extended environment. A later annotation for the same name wins.
func (env *Environment) WithType(name string, ty Term) *Environment {
	cp := env.copy()
	cp.types[name] = ty
	return cp
}

// Union concatenates the receiver's rules with other's (duplicates are
// preserved, receiver first) and overlays the type annotations, other
// winning on name collisions.
func (env *Environment) Union(other *Environment) *Environment {
	cp := env.copy()
	if other == nil {
		return cp
	}
	cp.rules.Add(other.rules.Values()...)
	for k, v := range other.types {
		cp.types[k] = v
	}
	return cp
}

// RuleCount returns the number of rules.
func (env *Environment) RuleCount() int {
	return env.rules.Size()
}

// RuleAt returns the rule at insertion position i.
func (env *Environment) RuleAt(i int) (Rule, bool) {
	v, ok := env.rules.Get(i)
	if !ok {
		return Rule{}, false
	}
	return v.(Rule), true
}

// Rules returns the rules in insertion order.
func (env *Environment) Rules() []Rule {
	rs := make([]Rule, 0, env.rules.Size())
	it := env.rules.Iterator()
	for it.Next() {
		rs = append(rs, it.Value().(Rule))
	}
	return rs
}

// TypeOf returns the advisory type recorded for a name.
func (env *Environment) TypeOf(name string) (Term, bool) {
	t, ok := env.types[name]
	return t, ok
}

// Types returns a copy of the type-annotation mapping.
func (env *Environment) Types() map[string]Term {
	cp := make(map[string]Term, len(env.types))
	for k, v := range env.types {
		cp[k] = v
	}
	return cp
}

// TypeCount returns the number of recorded type annotations.
func (env *Environment) TypeCount() int {
	return len(env.types)
}

// Dump returns a listing of the environment. Rules print in insertion
// order, type annotations in name order.
func (env *Environment) Dump() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("--- environment: %d rules, %d types ---\n",
		env.rules.Size(), len(env.types)))
	it := env.rules.Iterator()
	for it.Next() {
		b.WriteString(fmt.Sprintf("%3d: %s\n", it.Index(), it.Value().(Rule).String()))
	}
	names := treeset.NewWith(utils.StringComparator)
	for name := range env.types {
		names.Add(name)
	}
	names.Each(func(_ int, name interface{}) {
		b.WriteString(fmt.Sprintf("     (: %s %s)\n", name, env.types[name.(string)].String()))
	})
	b.WriteString("---------------------------------------\n")
	return b.String()
}
