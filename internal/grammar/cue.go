package grammar

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ParseCUE compiles a CUE definition using the CUE SDK's Go API directly
// (not a CLI subprocess). The filename is only used for error positions.
func ParseCUE(filename string, data []byte) (*Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	d := &Definition{}

	if nv := v.LookupPath(cue.ParsePath("name")); nv.Exists() {
		name, err := nv.String()
		if err != nil {
			return nil, &CompileError{Field: "name", Message: "must be a string", Pos: nv.Pos()}
		}
		d.Name = name
	}

	av := v.LookupPath(cue.ParsePath("axiom"))
	if !av.Exists() {
		return nil, &CompileError{Field: "axiom", Message: "axiom is required", Pos: v.Pos()}
	}
	axiom, err := av.String()
	if err != nil {
		return nil, &CompileError{Field: "axiom", Message: "must be a string", Pos: av.Pos()}
	}
	d.Axiom = axiom

	if uv := v.LookupPath(cue.ParsePath("unmapped")); uv.Exists() {
		policy, err := uv.String()
		if err != nil {
			return nil, &CompileError{Field: "unmapped", Message: "must be a string", Pos: uv.Pos()}
		}
		d.Unmapped = policy
	}

	rv := v.LookupPath(cue.ParsePath("rules"))
	if !rv.Exists() {
		return nil, &CompileError{Field: "rules", Message: "rules list is required", Pos: v.Pos()}
	}
	iter, err := rv.List()
	if err != nil {
		return nil, &CompileError{Field: "rules", Message: "must be a list", Pos: rv.Pos()}
	}
	for i := 0; iter.Next(); i++ {
		rule, err := parseCUERule(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		d.Rules = append(d.Rules, rule)
	}

	return d, nil
}

func parseCUERule(v cue.Value, index int) (Rule, error) {
	field := fmt.Sprintf("rules[%d]", index)
	var r Rule

	sv := v.LookupPath(cue.ParsePath("symbol"))
	if !sv.Exists() {
		return r, &CompileError{Field: field + ".symbol", Message: "symbol is required", Pos: v.Pos()}
	}
	symbol, err := sv.String()
	if err != nil {
		return r, &CompileError{Field: field + ".symbol", Message: "must be a string", Pos: sv.Pos()}
	}
	r.Symbol = symbol

	if pv := v.LookupPath(cue.ParsePath("production")); pv.Exists() {
		production, err := pv.String()
		if err != nil {
			return r, &CompileError{Field: field + ".production", Message: "must be a string", Pos: pv.Pos()}
		}
		r.Production = &production
	}
	if av := v.LookupPath(cue.ParsePath("advance")); av.Exists() {
		distance, err := av.Float64()
		if err != nil {
			return r, &CompileError{Field: field + ".advance", Message: "must be a number", Pos: av.Pos()}
		}
		r.Advance = &distance
	}
	if rv := v.LookupPath(cue.ParsePath("rotate")); rv.Exists() {
		angle, err := rv.Float64()
		if err != nil {
			return r, &CompileError{Field: field + ".rotate", Message: "must be a number", Pos: rv.Pos()}
		}
		r.Rotate = &angle
	}
	if bv := v.LookupPath(cue.ParsePath("push")); bv.Exists() {
		push, err := bv.Bool()
		if err != nil {
			return r, &CompileError{Field: field + ".push", Message: "must be a bool", Pos: bv.Pos()}
		}
		r.Push = push
	}
	if bv := v.LookupPath(cue.ParsePath("pop")); bv.Exists() {
		pop, err := bv.Bool()
		if err != nil {
			return r, &CompileError{Field: field + ".pop", Message: "must be a bool", Pos: bv.Pos()}
		}
		r.Pop = pop
	}

	return r, nil
}

// formatCUEError flattens a CUE error list into a single readable error.
func formatCUEError(err error) error {
	return fmt.Errorf("cue: %s", cueerrors.Details(err, nil))
}
