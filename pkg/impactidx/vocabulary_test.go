package impactidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVocabularyLookup(t *testing.T) {
	vocab, err := NewVocabulary(
		[]string{"alpha", "beta", "gamma"},
		[]TermEntry{{FT: 4}, {FT: 4}, {FT: 4}},
	)
	require.NoError(t, err)

	entry, ok := vocab.Lookup("beta")
	require.True(t, ok)
	require.Equal(t, uint64(4), entry.FT)

	_, ok = vocab.Lookup("delta")
	require.False(t, ok)
}

func TestNewVocabularyRejectsUnsorted(t *testing.T) {
	_, err := NewVocabulary([]string{"beta", "alpha"}, []TermEntry{{}, {}})
	require.Error(t, err)
}

func TestVocabularyRejectsDuplicates(t *testing.T) {
	_, err := NewVocabulary([]string{"alpha", "alpha"}, []TermEntry{{}, {}})
	require.Error(t, err)
}

func TestNewVocabularyRejectsMismatchedLengths(t *testing.T) {
	_, err := NewVocabulary([]string{"alpha"}, []TermEntry{{}, {}})
	require.Error(t, err)
}
