package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgaeFixturesAgree(t *testing.T) {
	require.Len(t, AlgaeStates, len(AlgaeLengths))
	for i, s := range AlgaeStates {
		assert.Len(t, s, AlgaeLengths[i], "generation %d", i)
	}
}

func TestArrowheadTable(t *testing.T) {
	table := ArrowheadTable()
	assert.Equal(t, 7, table.BiggestExpansion())
	assert.Equal(t, 4, table.Len())
}
