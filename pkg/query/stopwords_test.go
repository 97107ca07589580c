package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDropStopwordsRemovesCommonWords(t *testing.T) {
	q := Parse("the quick fox and the lazy dog")
	DropStopwords(q)

	for _, term := range q.Terms {
		require.NotEqual(t, "the", term.Text)
		require.NotEqual(t, "and", term.Text)
	}
	require.NotEmpty(t, q.Terms)
}
