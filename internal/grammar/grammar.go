// Package grammar loads L-system definitions from files and compiles them
// into rule tables. Definitions are written in YAML or CUE; both map onto
// the same Definition shape and go through the same validation.
package grammar

import (
	"fmt"

	"github.com/hmoreau/lindel/internal/lsystem"
	"github.com/hmoreau/lindel/internal/rules"
	"github.com/hmoreau/lindel/internal/turtle"
)

// Unmapped policy names accepted in definition files.
const (
	UnmappedKeep = "keep"
	UnmappedDrop = "drop"
)

// Definition is a declarative L-system: an axiom plus per-symbol rules.
type Definition struct {
	// Name labels the system in output and logs.
	Name string `yaml:"name"`

	// Axiom is the initial symbol sequence. Required, non-empty.
	Axiom string `yaml:"axiom"`

	// Unmapped selects the policy for symbols without a production rule:
	// "keep" (identity, the default) or "drop".
	Unmapped string `yaml:"unmapped"`

	// Rules lists the per-symbol productions and turtle actions.
	Rules []Rule `yaml:"rules"`
}

// Rule defines one symbol. Production is optional: a symbol may carry only
// a turtle action. At most one of Advance, Rotate, Push, Pop may be set.
type Rule struct {
	Symbol     string   `yaml:"symbol"`
	Production *string  `yaml:"production"`
	Advance    *float64 `yaml:"advance"`
	Rotate     *float64 `yaml:"rotate"`
	Push       bool     `yaml:"push"`
	Pop        bool     `yaml:"pop"`
}

// tag resolves the rule's turtle action. ok=false means the rule declares
// more than one action.
func (r *Rule) tag() (turtle.Command, bool) {
	set := 0
	cmd := turtle.None
	if r.Advance != nil {
		set++
		cmd = turtle.Advance(*r.Advance)
	}
	if r.Rotate != nil {
		set++
		cmd = turtle.Rotate(*r.Rotate)
	}
	if r.Push {
		set++
		cmd = turtle.PushState
	}
	if r.Pop {
		set++
		cmd = turtle.PopState
	}
	return cmd, set <= 1
}

// Validate checks the definition and returns every problem found, in the
// collect-all style: callers can report all errors at once instead of
// fixing them one by one.
func (d *Definition) Validate() []error {
	var errs []error

	if d.Axiom == "" {
		errs = append(errs, &CompileError{Field: "axiom", Message: "axiom is required"})
	}
	if d.Unmapped != "" && d.Unmapped != UnmappedKeep && d.Unmapped != UnmappedDrop {
		errs = append(errs, &CompileError{
			Field:   "unmapped",
			Message: fmt.Sprintf("invalid policy %q: must be %q or %q", d.Unmapped, UnmappedKeep, UnmappedDrop),
		})
	}
	if len(d.Rules) == 0 {
		errs = append(errs, &CompileError{Field: "rules", Message: "at least one rule is required"})
	}

	seen := make(map[string]bool, len(d.Rules))
	for i, r := range d.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if symbols := []rune(r.Symbol); len(symbols) != 1 {
			errs = append(errs, &CompileError{
				Field:   field + ".symbol",
				Message: fmt.Sprintf("symbol must be exactly one character, got %q", r.Symbol),
			})
		}
		if seen[r.Symbol] {
			errs = append(errs, &CompileError{
				Field:   field + ".symbol",
				Message: fmt.Sprintf("duplicate symbol %q", r.Symbol),
			})
		}
		seen[r.Symbol] = true
		if _, ok := r.tag(); !ok {
			errs = append(errs, &CompileError{
				Field:   field,
				Message: "at most one of advance, rotate, push, pop may be set",
			})
		}
	}
	return errs
}

// Table compiles the definition into a frozen rule table. The definition
// must validate first.
func (d *Definition) Table() (*rules.Table[rune], error) {
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	b := rules.NewBuilder[rune]()
	if d.Unmapped == UnmappedDrop {
		b.WithUnmapped(rules.DropUnmapped)
	}
	for _, r := range d.Rules {
		symbol := []rune(r.Symbol)[0]
		tag, _ := r.tag()
		if r.Production != nil {
			b.Set(symbol, []rune(*r.Production), tag)
		} else {
			b.Tag(symbol, tag)
		}
	}
	return b.Freeze(), nil
}

// System compiles the definition and builds its generation-0 system.
func (d *Definition) System() (*lsystem.System[rune], error) {
	table, err := d.Table()
	if err != nil {
		return nil, err
	}
	return lsystem.NewString(d.Axiom, table), nil
}
