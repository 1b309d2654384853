package rules

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmoreau/lindel/internal/turtle"
)

func TestBuilder_SetAndLookup(t *testing.T) {
	b := NewBuilder[rune]()
	SetString(b, 'A', "+B-A-B+", turtle.None)
	SetString(b, 'B', "-A+B+A-", turtle.None)
	table := b.Freeze()

	prod, ok := table.Production('A')
	require.True(t, ok)
	assert.Equal(t, []rune("+B-A-B+"), prod)

	prod, ok = table.Production('B')
	require.True(t, ok)
	assert.Equal(t, []rune("-A+B+A-"), prod)

	_, ok = table.Production('C')
	assert.False(t, ok, "unmapped symbol should have no production")
}

func TestBuilder_SetReportsReplacement(t *testing.T) {
	b := NewBuilder[byte]()
	assert.False(t, SetBytes(b, 'A', []byte("AB"), turtle.None), "first insert is not a replacement")
	assert.True(t, SetBytes(b, 'A', []byte("A"), turtle.None), "second insert replaces")
}

func TestBuilder_ProductionIsCopied(t *testing.T) {
	production := []rune("AB")
	b := NewBuilder[rune]()
	b.Set('A', production, turtle.None)
	production[0] = 'X'

	table := b.Freeze()
	prod, ok := table.Production('A')
	require.True(t, ok)
	assert.Equal(t, []rune("AB"), prod, "mutating the argument must not reach the table")
}

func TestTable_BiggestExpansion(t *testing.T) {
	t.Run("empty table floors at 1", func(t *testing.T) {
		table := NewBuilder[rune]().Freeze()
		assert.Equal(t, 1, table.BiggestExpansion())
	})

	t.Run("tracks maximum production length", func(t *testing.T) {
		b := NewBuilder[rune]()
		SetString(b, 'A', "AB", turtle.None)
		SetString(b, 'B', "A", turtle.None)
		SetString(b, 'C', "ABCAB", turtle.None)
		assert.Equal(t, 5, b.Freeze().BiggestExpansion())
	})

	t.Run("never decreases on replacement", func(t *testing.T) {
		b := NewBuilder[rune]()
		SetString(b, 'A', "ABCD", turtle.None)
		SetString(b, 'A', "A", turtle.None)
		assert.Equal(t, 4, b.Freeze().BiggestExpansion(),
			"replacing with a shorter production keeps the bound monotone")
	})

	t.Run("empty production floors at 1", func(t *testing.T) {
		b := NewBuilder[rune]()
		SetString(b, 'A', "", turtle.None)
		assert.Equal(t, 1, b.Freeze().BiggestExpansion())
	})
}

func TestTable_EmptyProductionIsARule(t *testing.T) {
	b := NewBuilder[rune]()
	SetString(b, 'A', "", turtle.None)
	table := b.Freeze()

	prod, ok := table.Production('A')
	assert.True(t, ok, "an empty production is still a rule")
	assert.Empty(t, prod)
}

func TestTable_Tags(t *testing.T) {
	b := NewBuilder[rune]()
	SetString(b, 'A', "AB", turtle.Advance(10))
	SetString(b, '+', "+", turtle.Rotate(60))
	b.Tag('F', turtle.Advance(5)) // tag without a production
	table := b.Freeze()

	tag, ok := table.Tag('A')
	require.True(t, ok)
	assert.Equal(t, turtle.Advance(10), tag)

	tag, ok = table.Tag('F')
	require.True(t, ok)
	assert.Equal(t, turtle.Advance(5), tag)
	_, ok = table.Production('F')
	assert.False(t, ok, "Tag must not create a production rule")

	_, ok = table.Tag('B')
	assert.False(t, ok, "untagged symbol has no interpretation")
}

func TestTable_NoneTagIsNotStored(t *testing.T) {
	b := NewBuilder[rune]()
	SetString(b, 'A', "AB", turtle.None)
	table := b.Freeze()

	_, ok := table.Tag('A')
	assert.False(t, ok, "the no-op tag carries no interpretation")
}

func TestBuilder_UnmappedPolicy(t *testing.T) {
	assert.Equal(t, KeepUnmapped, NewBuilder[rune]().Freeze().Unmapped(),
		"identity is the default")

	table := NewBuilder[rune]().WithUnmapped(DropUnmapped).Freeze()
	assert.Equal(t, DropUnmapped, table.Unmapped())
}

func TestBuilder_FreezeTwicePanics(t *testing.T) {
	b := NewBuilder[rune]()
	b.Freeze()
	assert.Panics(t, func() { b.Freeze() })
}

func TestTable_ConcurrentReads(t *testing.T) {
	b := NewBuilder[rune]()
	SetString(b, 'A', "AB", turtle.Advance(1))
	SetString(b, 'B', "A", turtle.None)
	table := b.Freeze()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				prod, ok := table.Production('A')
				assert.True(t, ok)
				assert.Len(t, prod, 2)
				_, _ = table.Tag('A')
				assert.GreaterOrEqual(t, table.BiggestExpansion(), 1)
			}
		}()
	}
	wg.Wait()
}
