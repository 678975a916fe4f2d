package validator

import (
	"strings"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// NormalizeQuestionResponse gates a draft response before submission. It
// returns a cleaned response carrying only the fields relevant to the
// question's kind, or nil when the draft does not yet satisfy the kind's
// completeness predicate. Nil is the only failure signal: callers use it to
// enable or disable the submit affordance, so no error is ever returned for
// a malformed or partial draft.
func NormalizeQuestionResponse(question *models.QuizQuestion, draft *models.Response) *models.Response {
	if question == nil || draft == nil {
		return nil
	}

	switch question.QuestionType {
	case models.MultipleChoice:
		return normalizeChoice(draft)
	case models.TrueFalse:
		return normalizeTrueFalse(draft)
	case models.Cloze:
		return normalizeCloze(question, draft)
	case models.WordBank:
		return normalizeWordBank(draft)
	case models.Conversation:
		return normalizeConversation(question, draft)
	case models.MatchPairs:
		return normalizeMatchPairs(question, draft)
	case models.ShortText:
		return normalizeShortText(draft)
	default:
		return nil
	}
}

func normalizeChoice(draft *models.Response) *models.Response {
	if draft.ChoiceID == "" {
		return nil
	}
	return &models.Response{ChoiceID: draft.ChoiceID}
}

func normalizeTrueFalse(draft *models.Response) *models.Response {
	if draft.Value == nil {
		return nil
	}
	v := *draft.Value
	return &models.Response{Value: &v}
}

// normalizeCloze requires an answer for every blank present in the current
// template text. Stale keys from blanks that are no longer in the template
// are dropped rather than counted.
func normalizeCloze(question *models.QuizQuestion, draft *models.Response) *models.Response {
	blanks := question.BlankIDs()
	if len(blanks) == 0 || draft.Answers == nil {
		return nil
	}
	answers := make(map[string]string, len(blanks))
	for _, blankID := range blanks {
		choiceID, ok := draft.Answers[blankID]
		if !ok || choiceID == "" {
			return nil
		}
		answers[blankID] = choiceID
	}
	return &models.Response{Answers: answers}
}

func normalizeWordBank(draft *models.Response) *models.Response {
	if len(draft.TokenOrder) == 0 {
		return nil
	}
	return &models.Response{TokenOrder: append([]string(nil), draft.TokenOrder...)}
}

func normalizeConversation(question *models.QuizQuestion, draft *models.Response) *models.Response {
	if question.Conversation == nil || len(question.Conversation.Turns) == 0 || draft.Answers == nil {
		return nil
	}
	answers := make(map[string]string, len(question.Conversation.Turns))
	for _, turn := range question.Conversation.Turns {
		replyID, ok := draft.Answers[turn.ID]
		if !ok || replyID == "" {
			return nil
		}
		answers[turn.ID] = replyID
	}
	return &models.Response{Answers: answers}
}

func normalizeMatchPairs(question *models.QuizQuestion, draft *models.Response) *models.Response {
	if question.MatchPairs == nil || len(question.MatchPairs.Left) == 0 || draft.Pairs == nil {
		return nil
	}
	pairs := make(map[string]string, len(question.MatchPairs.Left))
	for _, left := range question.MatchPairs.Left {
		rightID, ok := draft.Pairs[left.ID]
		if !ok || rightID == "" {
			return nil
		}
		pairs[left.ID] = rightID
	}
	return &models.Response{Pairs: pairs}
}

func normalizeShortText(draft *models.Response) *models.Response {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return nil
	}
	return &models.Response{Text: text}
}
