package mockserver

import (
	"strings"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// grade checks a normalized response against the question's answer key and
// returns the verdict. Unknown kinds grade as incorrect rather than erroring
// so a content mistake never takes the dev backend down.
func grade(content *QuestionContent, response *models.Response) bool {
	if content == nil || content.Answer == nil || response == nil {
		return false
	}

	question := content.Question
	key := content.Answer

	switch question.QuestionType {
	case models.MultipleChoice:
		return response.ChoiceID != "" && response.ChoiceID == key.ChoiceID
	case models.TrueFalse:
		return response.Value != nil && key.Value != nil && *response.Value == *key.Value
	case models.Cloze:
		return gradeCloze(question, key, response)
	case models.WordBank:
		return gradeTokenOrder(key.TokenOrder, response.TokenOrder)
	case models.Conversation:
		return gradeStringMap(key.TurnReplies, response.Answers)
	case models.MatchPairs:
		return gradeStringMap(key.Pairs, response.Pairs)
	case models.ShortText:
		return gradeShortText(key.AcceptedTexts, response.Text)
	default:
		return false
	}
}

// gradeCloze resolves each submitted choice id back to its text and compares
// case-insensitively against the accepted text for that blank.
func gradeCloze(question *models.QuizQuestion, key *AnswerKey, response *models.Response) bool {
	if question.Cloze == nil || len(key.ClozeTexts) == 0 {
		return false
	}

	blanks := question.BlankIDs()
	if len(response.Answers) != len(blanks) {
		return false
	}

	for _, blankID := range blanks {
		choiceID, ok := response.Answers[blankID]
		if !ok {
			return false
		}

		accepted, ok := key.ClozeTexts[blankID]
		if !ok {
			return false
		}

		text, found := choiceText(question.Cloze.BlankOptions[blankID], choiceID)
		if !found || !strings.EqualFold(text, accepted) {
			return false
		}
	}
	return true
}

func choiceText(options []models.Choice, choiceID string) (string, bool) {
	for _, option := range options {
		if option.ID == choiceID {
			return option.Text, true
		}
	}
	return "", false
}

func gradeTokenOrder(expected, actual []string) bool {
	if len(expected) == 0 || len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return false
		}
	}
	return true
}

func gradeStringMap(expected, actual map[string]string) bool {
	if len(expected) == 0 || len(expected) != len(actual) {
		return false
	}
	for k, v := range expected {
		if actual[k] != v {
			return false
		}
	}
	return true
}

func gradeShortText(accepted []string, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, candidate := range accepted {
		if strings.EqualFold(strings.TrimSpace(candidate), trimmed) {
			return true
		}
	}
	return false
}
