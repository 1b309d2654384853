package grammar

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmoreau/lindel/internal/process"
	"github.com/hmoreau/lindel/internal/rules"
	"github.com/hmoreau/lindel/internal/turtle"
)

func TestLoad_YAMLAndCUEAgree(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "arrowhead.yaml"))
	require.NoError(t, err)
	fromCUE, err := Load(filepath.Join("testdata", "arrowhead.cue"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromCUE, "both formats compile to the same definition")
	assert.Equal(t, "sierpinski-arrowhead", fromYAML.Name)
	assert.Equal(t, "A", fromYAML.Axiom)
	require.Len(t, fromYAML.Rules, 4)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("definition.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported definition format")
}

func TestDefinition_Table(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "arrowhead.yaml"))
	require.NoError(t, err)

	table, err := d.Table()
	require.NoError(t, err)

	prod, ok := table.Production('A')
	require.True(t, ok)
	assert.Equal(t, []rune("+B-A-B+"), prod)

	tag, ok := table.Tag('B')
	require.True(t, ok)
	assert.Equal(t, turtle.Advance(15), tag)

	assert.Equal(t, 7, table.BiggestExpansion())
	assert.Equal(t, rules.KeepUnmapped, table.Unmapped())
}

func TestDefinition_SystemDerives(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "arrowhead.yaml"))
	require.NoError(t, err)

	sys, err := d.System()
	require.NoError(t, err)
	require.Equal(t, uint64(0), sys.Iteration())

	next, err := process.NewSequential[rune]().Rewrite(sys)
	require.NoError(t, err)
	assert.Equal(t, []rune("+B-A-B+"), next.State())
}

func TestDefinition_PushPopRules(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "plant.yaml"))
	require.NoError(t, err)

	table, err := d.Table()
	require.NoError(t, err)

	tag, ok := table.Tag('[')
	require.True(t, ok)
	assert.Equal(t, turtle.PushState, tag)

	tag, ok = table.Tag(']')
	require.True(t, ok)
	assert.Equal(t, turtle.PopState, tag)

	// Tag-only symbols must not gain a production rule.
	_, ok = table.Production('+')
	assert.False(t, ok)
}

func TestParseYAML_RejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("axiom: A\nrules:\n  - symbol: A\n    prodcution: AB\n"))
	require.Error(t, err, "typoed field names must not be ignored")
}

func TestParseYAML_EmptyDocument(t *testing.T) {
	_, err := ParseYAML([]byte(""))
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "empty definition")
}

func TestParseCUE_MissingAxiom(t *testing.T) {
	_, err := ParseCUE("bad.cue", []byte(`rules: [{symbol: "A"}]`))
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "axiom", ce.Field)
}

func TestParseCUE_BadRuleTypes(t *testing.T) {
	_, err := ParseCUE("bad.cue", []byte(`
axiom: "A"
rules: [{symbol: "A", advance: "fast"}]
`))
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "rules[0].advance", ce.Field)
}

func TestDefinition_Validate(t *testing.T) {
	production := "AB"
	tests := []struct {
		name    string
		def     Definition
		wantErr []string
	}{
		{
			name: "valid",
			def: Definition{
				Axiom: "A",
				Rules: []Rule{{Symbol: "A", Production: &production}},
			},
		},
		{
			name:    "missing axiom and rules",
			def:     Definition{},
			wantErr: []string{"axiom is required", "at least one rule"},
		},
		{
			name: "multi-character symbol",
			def: Definition{
				Axiom: "A",
				Rules: []Rule{{Symbol: "AB", Production: &production}},
			},
			wantErr: []string{"exactly one character"},
		},
		{
			name: "duplicate symbol",
			def: Definition{
				Axiom: "A",
				Rules: []Rule{
					{Symbol: "A", Production: &production},
					{Symbol: "A", Production: &production},
				},
			},
			wantErr: []string{"duplicate symbol"},
		},
		{
			name: "conflicting actions",
			def: Definition{
				Axiom: "A",
				Rules: []Rule{{Symbol: "A", Advance: f64(1), Push: true}},
			},
			wantErr: []string{"at most one of"},
		},
		{
			name: "bad unmapped policy",
			def: Definition{
				Axiom:    "A",
				Unmapped: "erase",
				Rules:    []Rule{{Symbol: "A", Production: &production}},
			},
			wantErr: []string{`invalid policy "erase"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.def.Validate()
			if len(tt.wantErr) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantErr))
			for i, want := range tt.wantErr {
				assert.Contains(t, errs[i].Error(), want)
			}
		})
	}
}

func TestDefinition_DropPolicyReachesTable(t *testing.T) {
	production := "AA"
	d := Definition{
		Axiom:    "A",
		Unmapped: UnmappedDrop,
		Rules:    []Rule{{Symbol: "A", Production: &production}},
	}
	table, err := d.Table()
	require.NoError(t, err)
	assert.Equal(t, rules.DropUnmapped, table.Unmapped())
}

// Golden file locks the compiled shape of the arrowhead definition.
// Regenerate with: go test ./internal/grammar -update
func TestDefinition_Golden(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "arrowhead.yaml"))
	require.NoError(t, err)

	table, err := d.Table()
	require.NoError(t, err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "name: %s\n", d.Name)
	fmt.Fprintf(&sb, "axiom: %s\n", d.Axiom)
	fmt.Fprintf(&sb, "biggest_expansion: %d\n", table.BiggestExpansion())
	for _, r := range d.Rules {
		symbol := []rune(r.Symbol)[0]
		prod, _ := table.Production(symbol)
		tag, _ := table.Tag(symbol)
		fmt.Fprintf(&sb, "rule %s -> %q tag=%s\n", r.Symbol, string(prod), tag)
	}

	g := goldie.New(t)
	g.Assert(t, "arrowhead_definition", []byte(sb.String()))
}

func f64(v float64) *float64 { return &v }
