package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhraseVerifierAllPresent(t *testing.T) {
	q := Parse(`"quick fox" jumps`)
	v := NewPhraseVerifier(q)

	require.True(t, v.AllPresent("the quick fox jumps over the lazy dog"))
	require.False(t, v.AllPresent("the fox is quick and jumps"))
}

func TestPhraseVerifierNoPhrasesAlwaysPresent(t *testing.T) {
	q := Parse("alpha beta")
	v := NewPhraseVerifier(q)
	require.True(t, v.AllPresent("anything at all"))
}
