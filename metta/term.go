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
	"strconv"
)

// Term is the universal value of the engine. A term is a tagged variant;
// the payload in Data depends on the tag:
//
//    NilType       nil
//    BoolType      bool
//    LongType      int64
//    DoubleType    float64
//    StringType    string
//    AtomType      string (the identifier)
//    VarType       string (the variable name, without the $ sigil)
//    SexprType     []Term
//    ConjType      []Term
//    ErrorType     ErrInfo
//    AnnotType     AnnotInfo
//
// Terms are immutable values; share them freely.
type Term struct {
	typ  TermType
	Data interface{}
}

// TermType is a type specifier for a term.
type TermType int

//go:generate stringer -type TermType
const (
	NilType TermType = iota
	BoolType
	LongType
	DoubleType
	StringType
	AtomType
	VarType
	SexprType
	ConjType
	ErrorType
	AnnotType
)

// ErrInfo is the payload of an ErrorType term. Errors are values, not
// control flow: they travel through reduction like any other result.
type ErrInfo struct {
	Message string
	Payload *Term
}

// AnnotInfo is the payload of an AnnotType term. Type annotations are
// advisory only; the reducer never enforces them.
type AnnotInfo struct {
	Expr *Term
	Type *Term
}

// NilTerm is the unit value, the result of rule definitions and of the
// empty conjunction.
var NilTerm = Term{}

// EmptyTerm is the sentinel atom returned by case/switch and lookup when
// no alternative matched.
var EmptyTerm = Sym("Empty")

// Type returns a term's type tag.
func (t Term) Type() TermType {
	return t.typ
}

// --- Constructors ----------------------------------------------------------

// Boolean wraps a bool.
func Boolean(b bool) Term {
	return Term{typ: BoolType, Data: b}
}

// Long wraps a 64-bit signed integer.
func Long(n int64) Term {
	return Term{typ: LongType, Data: n}
}

// Dbl wraps a 64-bit float.
func Dbl(x float64) Term {
	return Term{typ: DoubleType, Data: x}
}

// Str wraps a text literal.
func Str(s string) Term {
	return Term{typ: StringType, Data: s}
}

// Sym creates an atom, i.e. an unbound symbol. In head position of an
// S-expression an atom may denote a special form or name a rule.
func Sym(name string) Term {
	return Term{typ: AtomType, Data: name}
}

// Vari creates a variable, written $name in surface syntax.
func Vari(name string) Term {
	return Term{typ: VarType, Data: name}
}

// Sexpr creates a generic compound form from its items.
func Sexpr(items ...Term) Term {
	if items == nil {
		items = []Term{}
	}
	return Term{typ: SexprType, Data: items}
}

// Conj creates an explicit n-ary conjunction, printed (, g₁ g₂ …).
func Conj(goals ...Term) Term {
	if goals == nil {
		goals = []Term{}
	}
	return Term{typ: ConjType, Data: goals}
}

// ErrorTerm creates a first-class error value. It does not interrupt
// reduction.
func ErrorTerm(msg string, payload Term) Term {
	p := payload
	return Term{typ: ErrorType, Data: ErrInfo{Message: msg, Payload: &p}}
}

// Annot creates an advisory type annotation.
func Annot(expr Term, typ Term) Term {
	e, y := expr, typ
	return Term{typ: AnnotType, Data: AnnotInfo{Expr: &e, Type: &y}}
}

// Atomize creates a Term from an untyped value. Strings become string
// literals; use Sym and Vari for atoms and variables.
func Atomize(thing interface{}) Term {
	if thing == nil {
		return NilTerm
	}
	if t, ok := thing.(Term); ok {
		return t
	}
	switch v := thing.(type) {
	case bool:
		return Boolean(v)
	case int:
		return Long(int64(v))
	case int32:
		return Long(int64(v))
	case int64:
		return Long(v)
	case float32:
		return Dbl(float64(v))
	case float64:
		return Dbl(v)
	case string:
		return Str(v)
	case []Term:
		return Sexpr(v...)
	case error:
		return ErrorTerm(v.Error(), NilTerm)
	}
	panic(fmt.Sprintf("cannot atomize %T", thing))
}

// --- Accessors -------------------------------------------------------------

// IsNil returns true for the unit value.
func (t Term) IsNil() bool {
	return t.typ == NilType
}

// IsError returns true iff t is an error value.
func (t Term) IsError() bool {
	return t.typ == ErrorType
}

// Name returns the identifier of an atom or variable, "" otherwise.
func (t Term) Name() string {
	if t.typ == AtomType || t.typ == VarType {
		return t.Data.(string)
	}
	return ""
}

// Items returns the item sequence of an S-expression or conjunction,
// nil otherwise.
func (t Term) Items() []Term {
	if t.typ == SexprType || t.typ == ConjType {
		return t.Data.([]Term)
	}
	return nil
}

// ErrInfo returns the payload of an error term.
func (t Term) ErrInfo() ErrInfo {
	return t.Data.(ErrInfo)
}

// AnnotInfo returns the payload of a type-annotation term.
func (t Term) AnnotInfo() AnnotInfo {
	return t.Data.(AnnotInfo)
}

// IsAtomNamed tests for a specific atom.
func (t Term) IsAtomNamed(name string) bool {
	return t.typ == AtomType && t.Data.(string) == name
}

// --- Equality and cloning --------------------------------------------------

// Equal is componentwise structural equality. Variables compare by name;
// Long and Double are distinct types and never equal each other.
func (t Term) Equal(other Term) bool {
	if t.typ != other.typ {
		return false
	}
	switch t.typ {
	case NilType:
		return true
	case SexprType, ConjType:
		a, b := t.Items(), other.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case ErrorType:
		ea, eb := t.ErrInfo(), other.ErrInfo()
		return ea.Message == eb.Message && ea.Payload.Equal(*eb.Payload)
	case AnnotType:
		aa, ab := t.AnnotInfo(), other.AnnotInfo()
		return aa.Expr.Equal(*ab.Expr) && aa.Type.Equal(*ab.Type)
	}
	return t.Data == other.Data
}

// Clone returns a deep copy of a term. Since terms are immutable values
// this is only needed when handing terms across the host boundary.
func (t Term) Clone() Term {
	switch t.typ {
	case SexprType, ConjType:
		items := t.Items()
		cp := make([]Term, len(items))
		for i, it := range items {
			cp[i] = it.Clone()
		}
		return Term{typ: t.typ, Data: cp}
	case ErrorType:
		e := t.ErrInfo()
		return ErrorTerm(e.Message, e.Payload.Clone())
	case AnnotType:
		a := t.AnnotInfo()
		return Annot(a.Expr.Clone(), a.Type.Clone())
	}
	return t
}

// --- Printing --------------------------------------------------------------

// String pretty-prints a term:
//
//    ()  true  42  3.14  "text"  foo  $x  (a b c)  (, g₁ g₂)  (error "msg" p)
//
func (t Term) String() string {
	switch t.typ {
	case NilType:
		return "()"
	case BoolType:
		if t.Data.(bool) {
			return "true"
		}
		return "false"
	case LongType:
		return strconv.FormatInt(t.Data.(int64), 10)
	case DoubleType:
		return strconv.FormatFloat(t.Data.(float64), 'g', -1, 64)
	case StringType:
		return fmt.Sprintf("%q", t.Data.(string))
	case AtomType:
		return t.Data.(string)
	case VarType:
		return "$" + t.Data.(string)
	case SexprType:
		return seqString(t.Items(), "")
	case ConjType:
		items := t.Items()
		if len(items) == 0 {
			return "(,)"
		}
		return seqString(items, ", ")
	case ErrorType:
		e := t.ErrInfo()
		return fmt.Sprintf("(error %q %s)", e.Message, e.Payload.String())
	case AnnotType:
		a := t.AnnotInfo()
		return fmt.Sprintf("(: %s %s)", a.Expr.String(), a.Type.String())
	}
	return fmt.Sprintf("%s[%v]", t.typ, t.Data)
}

func seqString(items []Term, head string) string {
	var b bytes.Buffer
	b.WriteString("(")
	b.WriteString(head)
	for i, it := range items {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(it.String())
	}
	b.WriteString(")")
	return b.String()
}

// TermsString prints a sequence of terms, space separated within brackets.
func TermsString(terms []Term) string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(t.String())
	}
	b.WriteString("]")
	return b.String()
}
