package mockserver

import (
	"testing"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGrade_MultipleChoice(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.MultipleChoice},
		Answer:   &AnswerKey{ChoiceID: "b"},
	}

	assert.True(t, grade(content, &models.Response{ChoiceID: "b"}))
	assert.False(t, grade(content, &models.Response{ChoiceID: "a"}))
	assert.False(t, grade(content, &models.Response{}))
	assert.False(t, grade(content, nil))
}

func TestGrade_TrueFalse(t *testing.T) {
	v := false
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.TrueFalse},
		Answer:   &AnswerKey{Value: &v},
	}

	no, yes := false, true
	assert.True(t, grade(content, &models.Response{Value: &no}))
	assert.False(t, grade(content, &models.Response{Value: &yes}))
	assert.False(t, grade(content, &models.Response{}))
}

func TestGrade_ClozeComparesTextCaseInsensitively(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{
			QuestionType: models.Cloze,
			QuestionText: "{{b1}} world",
			Cloze: &models.ClozePayload{BlankOptions: map[string][]models.Choice{
				"b1": {
					{ID: "o1", Text: "HELLO"},
					{ID: "o2", Text: "bye"},
				},
			}},
		},
		Answer: &AnswerKey{ClozeTexts: map[string]string{"b1": "hello"}},
	}

	// The submitted choice id resolves to "HELLO", which matches "hello".
	assert.True(t, grade(content, &models.Response{Answers: map[string]string{"b1": "o1"}}))
	assert.False(t, grade(content, &models.Response{Answers: map[string]string{"b1": "o2"}}))
	assert.False(t, grade(content, &models.Response{Answers: map[string]string{"b1": "unknown"}}))
	assert.False(t, grade(content, &models.Response{Answers: map[string]string{}}))
}

func TestGrade_WordBankOrderMatters(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.WordBank},
		Answer:   &AnswerKey{TokenOrder: []string{"t1", "t2", "t3"}},
	}

	assert.True(t, grade(content, &models.Response{TokenOrder: []string{"t1", "t2", "t3"}}))
	assert.False(t, grade(content, &models.Response{TokenOrder: []string{"t2", "t1", "t3"}}))
	assert.False(t, grade(content, &models.Response{TokenOrder: []string{"t1", "t2"}}))
}

func TestGrade_Conversation(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.Conversation},
		Answer:   &AnswerKey{TurnReplies: map[string]string{"t1": "r1", "t2": "r3"}},
	}

	assert.True(t, grade(content, &models.Response{Answers: map[string]string{"t1": "r1", "t2": "r3"}}))
	assert.False(t, grade(content, &models.Response{Answers: map[string]string{"t1": "r1", "t2": "r4"}}))
	assert.False(t, grade(content, &models.Response{Answers: map[string]string{"t1": "r1"}}))
}

func TestGrade_MatchPairs(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.MatchPairs},
		Answer:   &AnswerKey{Pairs: map[string]string{"l1": "r1", "l2": "r2"}},
	}

	assert.True(t, grade(content, &models.Response{Pairs: map[string]string{"l1": "r1", "l2": "r2"}}))
	assert.False(t, grade(content, &models.Response{Pairs: map[string]string{"l1": "r2", "l2": "r1"}}))
}

func TestGrade_ShortText(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.ShortText},
		Answer:   &AnswerKey{AcceptedTexts: []string{"Hello", "Hi"}},
	}

	assert.True(t, grade(content, &models.Response{Text: "hello"}))
	assert.True(t, grade(content, &models.Response{Text: "  HI  "}))
	assert.False(t, grade(content, &models.Response{Text: "hey"}))
	assert.False(t, grade(content, &models.Response{Text: "   "}))
}

func TestGrade_UnknownKindIsIncorrect(t *testing.T) {
	content := &QuestionContent{
		Question: &models.QuizQuestion{QuestionType: models.QuestionKind("essay")},
		Answer:   &AnswerKey{},
	}
	assert.False(t, grade(content, &models.Response{Text: "anything"}))
}
