// Package testutil provides deterministic L-system fixtures shared across
// package tests: classic rule sets with known derivation sequences.
package testutil

import (
	"github.com/hmoreau/lindel/internal/rules"
	"github.com/hmoreau/lindel/internal/turtle"
)

// AlgaeTable returns Lindenmayer's original algae system (A -> AB, B -> A).
// From axiom "A" the generation lengths follow the Fibonacci sequence:
// 1, 2, 3, 5, 8, 13, 21, 34, ...
func AlgaeTable() *rules.Table[rune] {
	b := rules.NewBuilder[rune]()
	rules.SetString(b, 'A', "AB", turtle.None)
	rules.SetString(b, 'B', "A", turtle.None)
	return b.Freeze()
}

// AlgaeLengths holds the expected algae state lengths for generations 0..7.
var AlgaeLengths = []int{1, 2, 3, 5, 8, 13, 21, 34}

// AlgaeStates holds the expected algae states for generations 0..7.
var AlgaeStates = []string{
	"A",
	"AB",
	"ABA",
	"ABAAB",
	"ABAABABA",
	"ABAABABAABAAB",
	"ABAABABAABAABABAABABA",
	"ABAABABAABAABABAABABAABAABABAABAAB",
}

// ArrowheadTable returns the Sierpinski arrowhead curve with its turtle
// interpretation: A and B advance by 10 and 15, + and - rotate by +-60
// degrees.
func ArrowheadTable() *rules.Table[rune] {
	b := rules.NewBuilder[rune]()
	rules.SetString(b, 'A', "+B-A-B+", turtle.Advance(10))
	rules.SetString(b, 'B', "-A+B+A-", turtle.Advance(15))
	rules.SetString(b, '+', "+", turtle.Rotate(60))
	rules.SetString(b, '-', "-", turtle.Rotate(-60))
	return b.Freeze()
}
