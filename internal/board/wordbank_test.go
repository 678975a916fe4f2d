package board

import (
	"testing"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWordBankQuestion() *models.QuizQuestion {
	return &models.QuizQuestion{
		QuestionID:   "q-wb",
		QuestionType: models.WordBank,
		WordBank: &models.WordBankPayload{Tokens: []models.Choice{
			{ID: "t1", Text: "I"},
			{ID: "t2", Text: "like"},
			{ID: "t3", Text: "tea"},
		}},
	}
}

func TestWordBankBoard_SelectionOrderIsPreserved(t *testing.T) {
	b, err := NewWordBankBoard(newWordBankQuestion())
	require.NoError(t, err)

	b.Select("t3")
	b.Select("t1")
	b.Select("t2")

	assert.Equal(t, []string{"t3", "t1", "t2"}, b.Selected())
	assert.Empty(t, b.Available())
	assert.Equal(t, []string{"t3", "t1", "t2"}, b.Draft().TokenOrder)
}

func TestWordBankBoard_DoubleSelectIgnored(t *testing.T) {
	b, err := NewWordBankBoard(newWordBankQuestion())
	require.NoError(t, err)

	b.Select("t1")
	b.Select("t1")
	b.Select("unknown")

	assert.Equal(t, []string{"t1"}, b.Selected())
	assert.Len(t, b.Available(), 2)
}

func TestWordBankBoard_RemoveClosesGap(t *testing.T) {
	b, err := NewWordBankBoard(newWordBankQuestion())
	require.NoError(t, err)

	b.Select("t1")
	b.Select("t2")
	b.Select("t3")
	b.Remove("t2")

	assert.Equal(t, []string{"t1", "t3"}, b.Selected())

	// The removed token is selectable again and appends at the end.
	b.Select("t2")
	assert.Equal(t, []string{"t1", "t3", "t2"}, b.Selected())
}
