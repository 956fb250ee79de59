package metta

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatchVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	b, ok := Match(Vari("x"), Long(7), nil)
	if !ok {
		t.Fatalf("variable expected to match any value")
	}
	if v, _ := b.Lookup("x"); !v.Equal(Long(7)) {
		t.Errorf("expected $x to be bound to 7, is %s", v.String())
	}
}

func TestMatchRepeatedVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	pattern := Sexpr(Sym("pair"), Vari("x"), Vari("x"))
	if _, ok := Match(pattern, Sexpr(Sym("pair"), Long(1), Long(1)), nil); !ok {
		t.Errorf("repeated variable expected to match equal components")
	}
	if _, ok := Match(pattern, Sexpr(Sym("pair"), Long(1), Long(2)), nil); ok {
		t.Errorf("repeated variable must not match unequal components")
	}
}

func TestMatchComponentwise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	pattern := Sexpr(Sym("f"), Vari("a"), Sexpr(Sym("g"), Vari("b")))
	value := Sexpr(Sym("f"), Str("hi"), Sexpr(Sym("g"), Long(2)))
	b, ok := Match(pattern, value, nil)
	if !ok {
		t.Fatalf("nested pattern expected to match")
	}
	if v, _ := b.Lookup("a"); !v.Equal(Str("hi")) {
		t.Errorf("expected $a bound to \"hi\", is %s", v.String())
	}
	if v, _ := b.Lookup("b"); !v.Equal(Long(2)) {
		t.Errorf("expected $b bound to 2, is %s", v.String())
	}
}

func TestMatchConjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	pattern := Conj(Sexpr(Sym("p"), Vari("x")), Vari("y"))
	value := Conj(Sexpr(Sym("p"), Long(3)), Sym("q"))
	b, ok := Match(pattern, value, nil)
	if !ok {
		t.Fatalf("conjunction pattern expected to match conjunction value")
	}
	if v, _ := b.Lookup("x"); !v.Equal(Long(3)) {
		t.Errorf("expected $x bound to 3, is %s", v.String())
	}
	// conjunctions do not match s-exprs of the same arity
	if _, ok := Match(pattern, Sexpr(Sexpr(Sym("p"), Long(3)), Sym("q")), nil); ok {
		t.Errorf("conjunction pattern must not match plain s-expr")
	}
}

func TestMatchMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	if _, ok := Match(Long(1), Long(2), nil); ok {
		t.Errorf("different literals must not match")
	}
	if _, ok := Match(Sym("a"), Sym("b"), nil); ok {
		t.Errorf("different atoms must not match")
	}
	if _, ok := Match(Sexpr(Sym("f"), Vari("x")), Sexpr(Sym("f")), nil); ok {
		t.Errorf("length mismatch expected to fail")
	}
}

func TestMatchDoesNotMutateBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	b := Bindings{"x": Long(1)}
	if _, ok := Match(Vari("x"), Long(2), b); ok {
		t.Errorf("bound variable must not rebind to a different value")
	}
	b2, ok := Match(Vari("y"), Long(9), b)
	if !ok {
		t.Fatalf("fresh variable expected to bind")
	}
	if _, present := b.Lookup("y"); present {
		t.Errorf("Match mutated the caller's binding map")
	}
	if v, _ := b2.Lookup("x"); !v.Equal(Long(1)) {
		t.Errorf("extended map expected to retain prior bindings")
	}
}

func TestMatchIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	pattern := Sexpr(Sym("f"), Vari("x"), Long(2))
	value := Sexpr(Sym("f"), Str("v"), Long(2))
	b1, ok1 := Match(pattern, value, nil)
	b2, ok2 := Match(pattern, value, nil)
	if ok1 != ok2 || len(b1) != len(b2) {
		t.Fatalf("repeated match expected to be deterministic")
	}
	for k, v := range b1 {
		if !b2[k].Equal(v) {
			t.Errorf("binding for $%s differs between invocations", k)
		}
	}
}

func TestSubst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	b := Bindings{"x": Long(5)}
	tmpl := Sexpr(Sym("*"), Vari("x"), Long(2))
	got := Subst(tmpl, b)
	if !got.Equal(Sexpr(Sym("*"), Long(5), Long(2))) {
		t.Errorf("expected (* 5 2), got %s", got.String())
	}
}

func TestSubstUnbound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	got := Subst(Sexpr(Sym("f"), Vari("nope")), Bindings{})
	if !got.IsError() {
		t.Fatalf("free variable in template expected to yield an error value")
	}
	info := got.ErrInfo()
	if info.Message != "unbound" {
		t.Errorf("expected unbound error, got %q", info.Message)
	}
	if !info.Payload.Equal(Vari("nope")) {
		t.Errorf("expected payload $nope, got %s", info.Payload.String())
	}
}

func TestSubstFree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mettatron.metta")
	defer teardown()
	//
	b := Bindings{"x": Long(1)}
	tmpl := Sexpr(Sym("f"), Vari("x"), Vari("y"))
	got := SubstFree(tmpl, b)
	if !got.Equal(Sexpr(Sym("f"), Long(1), Vari("y"))) {
		t.Errorf("expected (f 1 $y), got %s", got.String())
	}
}
