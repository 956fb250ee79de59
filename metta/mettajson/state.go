package mettajson

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/f1r3fly-io/mettatron/metta"
)

// RunJSON is the single operation exposed across the host boundary: it
// decodes an accumulated and a compiled state, runs the composition, and
// encodes the resulting state.
func RunJSON(accumulated []byte, compiled []byte) ([]byte, error) {
	acc, err := UnmarshalState(accumulated)
	if err != nil {
		return nil, fmt.Errorf("accumulated state: %v", err)
	}
	comp, err := UnmarshalState(compiled)
	if err != nil {
		return nil, fmt.Errorf("compiled state: %v", err)
	}
	tracer().Infof("run across host boundary: %d pending", len(comp.Pending))
	return MarshalState(metta.Run(acc, comp))
}

// --- Encoding ---------------------------------------------------------------

type stateJSON struct {
	Pending []json.RawMessage `json:"pending_exprs"`
	Env     envJSON           `json:"environment"`
	Outputs []json.RawMessage `json:"eval_outputs"`
}

type envJSON struct {
	Rules []ruleJSON                 `json:"rules"`
	Types map[string]json.RawMessage `json:"types"`
}

type ruleJSON struct {
	Lhs json.RawMessage `json:"lhs"`
	Rhs json.RawMessage `json:"rhs"`
}

// MarshalState encodes a state as the §host-boundary JSON object.
func MarshalState(s metta.State) ([]byte, error) {
	sj := stateJSON{
		Pending: make([]json.RawMessage, 0, len(s.Pending)),
		Outputs: make([]json.RawMessage, 0, len(s.Outputs)),
	}
	for _, t := range s.Pending {
		sj.Pending = append(sj.Pending, marshalTerm(t))
	}
	for _, t := range s.Outputs {
		sj.Outputs = append(sj.Outputs, marshalTerm(t))
	}
	env := s.Env
	if env == nil {
		env = metta.NewEnvironment()
	}
	sj.Env.Rules = make([]ruleJSON, 0, env.RuleCount())
	for _, r := range env.Rules() {
		sj.Env.Rules = append(sj.Env.Rules, ruleJSON{Lhs: marshalTerm(r.Lhs), Rhs: marshalTerm(r.Rhs)})
	}
	sj.Env.Types = map[string]json.RawMessage{}
	for name, ty := range env.Types() {
		sj.Env.Types[name] = marshalTerm(ty)
	}
	return json.Marshal(sj)
}

// UnmarshalState decodes a state from its JSON encoding.
func UnmarshalState(data []byte) (metta.State, error) {
	var sj stateJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return metta.State{}, err
	}
	s := metta.NewState()
	for _, raw := range sj.Pending {
		t, err := unmarshalTerm(raw)
		if err != nil {
			return metta.State{}, err
		}
		s.Pending = append(s.Pending, t)
	}
	for _, raw := range sj.Outputs {
		t, err := unmarshalTerm(raw)
		if err != nil {
			return metta.State{}, err
		}
		s.Outputs = append(s.Outputs, t)
	}
	env := metta.NewEnvironment()
	for _, rj := range sj.Env.Rules {
		lhs, err := unmarshalTerm(rj.Lhs)
		if err != nil {
			return metta.State{}, err
		}
		rhs, err := unmarshalTerm(rj.Rhs)
		if err != nil {
			return metta.State{}, err
		}
		env = env.WithRule(metta.Rule{Lhs: lhs, Rhs: rhs})
	}
	for name, raw := range sj.Env.Types {
		ty, err := unmarshalTerm(raw)
		if err != nil {
			return metta.State{}, err
		}
		env = env.WithType(name, ty)
	}
	s.Env = env
	return s, nil
}

// --- Terms ------------------------------------------------------------------

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("cannot marshal term fragment: %v", err))
	}
	return data
}

func tagged(tag string, payload interface{}) json.RawMessage {
	return mustJSON(map[string]interface{}{tag: payload})
}

func marshalTerm(t metta.Term) json.RawMessage {
	switch t.Type() {
	case metta.NilType:
		return mustJSON("Nil")
	case metta.BoolType:
		return tagged("Bool", t.Data)
	case metta.LongType:
		return tagged("Long", t.Data)
	case metta.DoubleType:
		return tagged("Double", t.Data)
	case metta.StringType:
		return tagged("String", t.Data)
	case metta.AtomType:
		return tagged("Atom", t.Name())
	case metta.VarType:
		return tagged("Variable", t.Name())
	case metta.SexprType:
		return tagged("SExpr", rawItems(t.Items()))
	case metta.ConjType:
		return tagged("Conjunction", rawItems(t.Items()))
	case metta.ErrorType:
		info := t.ErrInfo()
		return tagged("Error", map[string]interface{}{
			"message": info.Message,
			"payload": marshalTerm(*info.Payload),
		})
	case metta.AnnotType:
		info := t.AnnotInfo()
		return tagged("TypeAnnot", map[string]interface{}{
			"expr": marshalTerm(*info.Expr),
			"type": marshalTerm(*info.Type),
		})
	}
	panic("unknown term type in marshalTerm")
}

func rawItems(items []metta.Term) []json.RawMessage {
	raws := make([]json.RawMessage, len(items))
	for i, it := range items {
		raws[i] = marshalTerm(it)
	}
	return raws
}

func unmarshalTerm(raw json.RawMessage) (metta.Term, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return metta.NilTerm, err
	}
	return termOf(v)
}

func termOf(v interface{}) (metta.Term, error) {
	switch x := v.(type) {
	case string:
		if x == "Nil" {
			return metta.NilTerm, nil
		}
		return metta.NilTerm, fmt.Errorf("unknown term encoding %q", x)
	case map[string]interface{}:
		if len(x) != 1 {
			return metta.NilTerm, fmt.Errorf("term object must carry exactly one tag")
		}
		for tag, payload := range x {
			return taggedTermOf(tag, payload)
		}
	}
	return metta.NilTerm, fmt.Errorf("unknown term encoding %T", v)
}

func taggedTermOf(tag string, payload interface{}) (metta.Term, error) {
	switch tag {
	case "Nil":
		return metta.NilTerm, nil
	case "Bool":
		b, ok := payload.(bool)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Bool payload must be a boolean")
		}
		return metta.Boolean(b), nil
	case "Long":
		num, ok := payload.(json.Number)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Long payload must be a number")
		}
		n, err := num.Int64()
		if err != nil {
			return metta.NilTerm, err
		}
		return metta.Long(n), nil
	case "Double":
		num, ok := payload.(json.Number)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Double payload must be a number")
		}
		f, err := num.Float64()
		if err != nil {
			return metta.NilTerm, err
		}
		return metta.Dbl(f), nil
	case "String":
		s, ok := payload.(string)
		if !ok {
			return metta.NilTerm, fmt.Errorf("String payload must be text")
		}
		return metta.Str(s), nil
	case "Atom":
		s, ok := payload.(string)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Atom payload must be text")
		}
		return metta.Sym(s), nil
	case "Variable":
		s, ok := payload.(string)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Variable payload must be text")
		}
		return metta.Vari(s), nil
	case "SExpr", "Conjunction":
		list, ok := payload.([]interface{})
		if !ok {
			return metta.NilTerm, fmt.Errorf("%s payload must be a list", tag)
		}
		items := make([]metta.Term, len(list))
		for i, el := range list {
			t, err := termOf(el)
			if err != nil {
				return metta.NilTerm, err
			}
			items[i] = t
		}
		if tag == "Conjunction" {
			return metta.Conj(items...), nil
		}
		return metta.Sexpr(items...), nil
	case "Error":
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return metta.NilTerm, fmt.Errorf("Error payload must be an object")
		}
		msg, ok := obj["message"].(string)
		if !ok {
			return metta.NilTerm, fmt.Errorf("Error payload must carry a message")
		}
		p, err := termOf(obj["payload"])
		if err != nil {
			return metta.NilTerm, err
		}
		return metta.ErrorTerm(msg, p), nil
	case "TypeAnnot":
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return metta.NilTerm, fmt.Errorf("TypeAnnot payload must be an object")
		}
		expr, err := termOf(obj["expr"])
		if err != nil {
			return metta.NilTerm, err
		}
		ty, err := termOf(obj["type"])
		if err != nil {
			return metta.NilTerm, err
		}
		return metta.Annot(expr, ty), nil
	}
	return metta.NilTerm, fmt.Errorf("unknown term tag %q", tag)
}
