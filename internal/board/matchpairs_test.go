package board

import (
	"testing"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchQuestion() *models.QuizQuestion {
	return &models.QuizQuestion{
		QuestionID:   "q-match",
		QuestionType: models.MatchPairs,
		MatchPairs: &models.MatchPairsPayload{
			Left: []models.Choice{
				{ID: "l1", Text: "dog"},
				{ID: "l2", Text: "cat"},
				{ID: "l3", Text: "bird"},
			},
			Right: []models.Choice{
				{ID: "r1", Text: "bark"},
				{ID: "r2", Text: "meow"},
				{ID: "r3", Text: "tweet"},
			},
		},
	}
}

func TestMatchBoard_ShuffleIsSeedDeterministic(t *testing.T) {
	a, err := NewMatchBoard(newMatchQuestion(), "attempt-1")
	require.NoError(t, err)
	b, err := NewMatchBoard(newMatchQuestion(), "attempt-1")
	require.NoError(t, err)

	assert.Equal(t, a.Right(), b.Right(), "same seed must give the same order")

	// Left column is never shuffled.
	assert.Equal(t, "l1", a.Left()[0].ID)
	assert.Equal(t, "l3", a.Left()[2].ID)
}

func TestMatchBoard_CommitAndEvict(t *testing.T) {
	b, err := NewMatchBoard(newMatchQuestion(), "seed")
	require.NoError(t, err)

	b.SelectLeft("l1")
	b.SelectRight("r1")
	rightID, ok := b.Pair("l1")
	require.True(t, ok)
	assert.Equal(t, "r1", rightID)

	// Pairing l2 with r1 evicts the l1 pair; a right item belongs to at most
	// one pair.
	b.SelectLeft("l2")
	b.SelectRight("r1")
	_, ok = b.Pair("l1")
	assert.False(t, ok)
	rightID, _ = b.Pair("l2")
	assert.Equal(t, "r1", rightID)
	assert.Equal(t, 1, b.PairCount())
}

func TestMatchBoard_RepairingLeftReplacesItsPair(t *testing.T) {
	b, err := NewMatchBoard(newMatchQuestion(), "seed")
	require.NoError(t, err)

	b.SelectLeft("l1")
	b.SelectRight("r1")
	b.SelectRight("r2")
	b.SelectLeft("l1")

	rightID, ok := b.Pair("l1")
	require.True(t, ok)
	assert.Equal(t, "r2", rightID)
	assert.Equal(t, 1, b.PairCount())
}

func TestMatchBoard_TapPairedSideUnpairs(t *testing.T) {
	b, err := NewMatchBoard(newMatchQuestion(), "seed")
	require.NoError(t, err)

	b.SelectLeft("l1")
	b.SelectRight("r1")

	// Tapping the committed left item with nothing pending removes the pair.
	b.SelectLeft("l1")
	assert.Equal(t, 0, b.PairCount())

	b.SelectLeft("l2")
	b.SelectRight("r2")
	b.SelectRight("r2")
	assert.Equal(t, 0, b.PairCount())
}

func TestMatchBoard_DraftHoldsAllPairs(t *testing.T) {
	b, err := NewMatchBoard(newMatchQuestion(), "seed")
	require.NoError(t, err)

	b.SelectLeft("l1")
	b.SelectRight("r1")
	b.SelectLeft("l2")
	b.SelectRight("r2")
	b.SelectLeft("l3")
	b.SelectRight("r3")

	draft := b.Draft()
	assert.Equal(t, map[string]string{"l1": "r1", "l2": "r2", "l3": "r3"}, draft.Pairs)
}
