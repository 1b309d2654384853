package lsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmoreau/lindel/internal/rules"
	"github.com/hmoreau/lindel/internal/turtle"
)

func algaeTable() *rules.Table[rune] {
	b := rules.NewBuilder[rune]()
	rules.SetString(b, 'A', "AB", turtle.None)
	rules.SetString(b, 'B', "A", turtle.None)
	return b.Freeze()
}

func TestNew_StartsAtIterationZero(t *testing.T) {
	sys := New([]rune("A"), algaeTable())
	assert.Equal(t, uint64(0), sys.Iteration())
	assert.Equal(t, []rune("A"), sys.State())
	assert.Equal(t, 1, sys.Len())
}

func TestNew_CopiesAxiom(t *testing.T) {
	axiom := []rune("AB")
	sys := New(axiom, algaeTable())
	axiom[0] = 'X'
	assert.Equal(t, []rune("AB"), sys.State(), "mutating the axiom must not reach the system")
}

func TestNewString(t *testing.T) {
	sys := NewString("ABA", algaeTable())
	assert.Equal(t, uint64(0), sys.Iteration())
	assert.Equal(t, []rune("ABA"), sys.State())
}

func TestNext_IncrementsIterationAndSharesRules(t *testing.T) {
	table := algaeTable()
	gen0 := NewString("A", table)
	gen1 := gen0.Next([]rune("AB"))
	gen2 := gen1.Next([]rune("ABA"))

	assert.Equal(t, uint64(1), gen1.Iteration())
	assert.Equal(t, uint64(2), gen2.Iteration())
	assert.Equal(t, []rune("AB"), gen1.State())

	// The rule table handle is shared, not copied.
	assert.Same(t, table, gen1.Rules())
	assert.Same(t, table, gen2.Rules())

	// The predecessor is untouched.
	assert.Equal(t, uint64(0), gen0.Iteration())
	assert.Equal(t, []rune("A"), gen0.State())
}
