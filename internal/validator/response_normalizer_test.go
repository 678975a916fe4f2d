package validator

import (
	"testing"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceQuestion() *models.QuizQuestion {
	return &models.QuizQuestion{
		QuestionID:   "q1",
		QuestionType: models.MultipleChoice,
		QuestionText: "Pick one",
		Choice: &models.ChoicePayload{Choices: []models.Choice{
			{ID: "a", Text: "A"},
			{ID: "b", Text: "B"},
		}},
	}
}

func clozeQuestion() *models.QuizQuestion {
	return &models.QuizQuestion{
		QuestionID:   "q2",
		QuestionType: models.Cloze,
		QuestionText: "{{b1}} and {{b2}}",
		Cloze: &models.ClozePayload{BlankOptions: map[string][]models.Choice{
			"b1": {{ID: "o1", Text: "salt"}},
			"b2": {{ID: "o2", Text: "pepper"}},
		}},
	}
}

func TestNormalizeQuestionResponse_IncompleteDraftsReturnNil(t *testing.T) {
	tests := []struct {
		name     string
		question *models.QuizQuestion
		draft    *models.Response
	}{
		{"nil question", nil, &models.Response{ChoiceID: "a"}},
		{"nil draft", choiceQuestion(), nil},
		{"choice without selection", choiceQuestion(), &models.Response{}},
		{
			"true_false without value",
			&models.QuizQuestion{QuestionType: models.TrueFalse},
			&models.Response{},
		},
		{
			"cloze missing one blank",
			clozeQuestion(),
			&models.Response{Answers: map[string]string{"b1": "o1"}},
		},
		{
			"cloze with empty answer",
			clozeQuestion(),
			&models.Response{Answers: map[string]string{"b1": "o1", "b2": ""}},
		},
		{
			"word_bank with no tokens",
			&models.QuizQuestion{QuestionType: models.WordBank},
			&models.Response{TokenOrder: nil},
		},
		{
			"conversation missing a turn",
			&models.QuizQuestion{
				QuestionType: models.Conversation,
				Conversation: &models.ConversationPayload{Turns: []models.ConversationTurn{
					{ID: "t1"}, {ID: "t2"},
				}},
			},
			&models.Response{Answers: map[string]string{"t1": "r1"}},
		},
		{
			"match_pairs missing a left item",
			&models.QuizQuestion{
				QuestionType: models.MatchPairs,
				MatchPairs: &models.MatchPairsPayload{
					Left:  []models.Choice{{ID: "l1"}, {ID: "l2"}},
					Right: []models.Choice{{ID: "r1"}, {ID: "r2"}},
				},
			},
			&models.Response{Pairs: map[string]string{"l1": "r1"}},
		},
		{
			"short_text whitespace only",
			&models.QuizQuestion{QuestionType: models.ShortText, ShortText: &models.ShortTextPayload{}},
			&models.Response{Text: "   "},
		},
		{
			"unknown kind",
			&models.QuizQuestion{QuestionType: models.QuestionKind("essay")},
			&models.Response{Text: "anything"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, NormalizeQuestionResponse(tt.question, tt.draft))
		})
	}
}

func TestNormalizeQuestionResponse_CompleteDrafts(t *testing.T) {
	t.Run("multiple_choice", func(t *testing.T) {
		got := NormalizeQuestionResponse(choiceQuestion(), &models.Response{ChoiceID: "b", Text: "noise"})
		require.NotNil(t, got)
		assert.Equal(t, "b", got.ChoiceID)
		assert.Empty(t, got.Text, "irrelevant fields must be stripped")
	})

	t.Run("true_false copies the value", func(t *testing.T) {
		v := true
		draft := &models.Response{Value: &v}
		got := NormalizeQuestionResponse(&models.QuizQuestion{QuestionType: models.TrueFalse}, draft)
		require.NotNil(t, got)
		require.NotNil(t, got.Value)
		assert.True(t, *got.Value)
		assert.NotSame(t, draft.Value, got.Value)
	})

	t.Run("cloze drops stale blank keys", func(t *testing.T) {
		draft := &models.Response{Answers: map[string]string{
			"b1":   "o1",
			"b2":   "o2",
			"gone": "o9",
		}}
		got := NormalizeQuestionResponse(clozeQuestion(), draft)
		require.NotNil(t, got)
		assert.Equal(t, map[string]string{"b1": "o1", "b2": "o2"}, got.Answers)
	})

	t.Run("word_bank keeps the order", func(t *testing.T) {
		question := &models.QuizQuestion{QuestionType: models.WordBank}
		got := NormalizeQuestionResponse(question, &models.Response{TokenOrder: []string{"t2", "t1"}})
		require.NotNil(t, got)
		assert.Equal(t, []string{"t2", "t1"}, got.TokenOrder)
	})

	t.Run("conversation requires every turn", func(t *testing.T) {
		question := &models.QuizQuestion{
			QuestionType: models.Conversation,
			Conversation: &models.ConversationPayload{Turns: []models.ConversationTurn{
				{ID: "t1"}, {ID: "t2"},
			}},
		}
		got := NormalizeQuestionResponse(question, &models.Response{Answers: map[string]string{
			"t1": "r1",
			"t2": "r2",
		}})
		require.NotNil(t, got)
		assert.Len(t, got.Answers, 2)
	})

	t.Run("match_pairs requires every left item", func(t *testing.T) {
		question := &models.QuizQuestion{
			QuestionType: models.MatchPairs,
			MatchPairs: &models.MatchPairsPayload{
				Left:  []models.Choice{{ID: "l1"}, {ID: "l2"}},
				Right: []models.Choice{{ID: "r1"}, {ID: "r2"}},
			},
		}
		got := NormalizeQuestionResponse(question, &models.Response{Pairs: map[string]string{
			"l1": "r2",
			"l2": "r1",
		}})
		require.NotNil(t, got)
		assert.Equal(t, "r2", got.Pairs["l1"])
	})

	t.Run("short_text trims", func(t *testing.T) {
		question := &models.QuizQuestion{QuestionType: models.ShortText, ShortText: &models.ShortTextPayload{}}
		got := NormalizeQuestionResponse(question, &models.Response{Text: "  hello  "})
		require.NotNil(t, got)
		assert.Equal(t, "hello", got.Text)
	})
}
