package pddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNestedLists(t *testing.T) {
	nodes, err := Parse(`(define (domain foo) (:requirements :strips))`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	root := nodes[0]
	assert.False(t, root.IsAtom())
	assert.Equal(t, "define", head(root))
	assert.Equal(t, "(define (domain foo) (:requirements :strips))", root.String())
}

func TestParseUnterminatedListIsError(t *testing.T) {
	_, err := Parse(`(define (domain foo)`)
	assert.Error(t, err)
}

func TestParseUnexpectedCloseParenIsError(t *testing.T) {
	_, err := Parse(`)`)
	assert.Error(t, err)
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	nodes, err := Parse("; a comment\n(foo bar) ; trailing\n")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "(foo bar)", nodes[0].String())
}

func TestFindSection(t *testing.T) {
	nodes, err := Parse(`(define (:types block) (:predicates (on ?a ?b)))`)
	require.NoError(t, err)
	section, ok := findSection(nodes[0], ":predicates")
	require.True(t, ok)
	assert.Equal(t, "(:predicates (on ?a ?b))", section.String())

	_, ok = findSection(nodes[0], ":missing")
	assert.False(t, ok)
}
