package validator

import (
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// ContentValidator checks that a question's payload is well-formed for its
// kind. It is used when seeding or importing lesson content; the runner
// itself trusts whatever the backend delivers.
type ContentValidator struct{}

func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// ValidateQuestion validates a complete question object.
func (v *ContentValidator) ValidateQuestion(question *models.QuizQuestion) error {
	if question.QuestionID == "" {
		return fmt.Errorf("question id is required")
	}
	if question.QuestionText == "" {
		return fmt.Errorf("question text is required")
	}

	switch question.QuestionType {
	case models.MultipleChoice:
		return v.validateChoicePayload(question.Choice, 2)
	case models.TrueFalse:
		return v.validateChoicePayload(question.Choice, 2)
	case models.Cloze:
		return v.validateClozePayload(question)
	case models.WordBank:
		return v.validateWordBankPayload(question.WordBank)
	case models.Conversation:
		return v.validateConversationPayload(question.Conversation)
	case models.MatchPairs:
		return v.validateMatchPairsPayload(question.MatchPairs)
	case models.ShortText:
		return v.validateShortTextPayload(question.ShortText)
	default:
		return fmt.Errorf("unsupported question type: %s", question.QuestionType)
	}
}

// ValidateBatch validates multiple questions.
func (v *ContentValidator) ValidateBatch(questions []*models.QuizQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

func (v *ContentValidator) validateChoicePayload(payload *models.ChoicePayload, minChoices int) error {
	if payload == nil {
		return fmt.Errorf("choice payload is required")
	}
	if len(payload.Choices) < minChoices {
		return fmt.Errorf("must have at least %d choices", minChoices)
	}

	seen := make(map[string]bool)
	for _, choice := range payload.Choices {
		if choice.ID == "" {
			return fmt.Errorf("choice id cannot be empty")
		}
		if choice.Text == "" {
			return fmt.Errorf("choice text cannot be empty")
		}
		if seen[choice.ID] {
			return fmt.Errorf("duplicate choice id '%s'", choice.ID)
		}
		seen[choice.ID] = true
	}
	return nil
}

func (v *ContentValidator) validateClozePayload(question *models.QuizQuestion) error {
	if question.Cloze == nil {
		return fmt.Errorf("cloze payload is required")
	}

	blanks := question.BlankIDs()
	if len(blanks) == 0 {
		return fmt.Errorf("template must contain at least 1 blank token")
	}

	for _, blankID := range blanks {
		options, ok := question.Cloze.BlankOptions[blankID]
		if !ok || len(options) == 0 {
			return fmt.Errorf("blank '%s' must have at least 1 option", blankID)
		}
		for _, option := range options {
			if option.ID == "" || option.Text == "" {
				return fmt.Errorf("blank '%s' has an option with empty id or text", blankID)
			}
		}
	}
	return nil
}

func (v *ContentValidator) validateWordBankPayload(payload *models.WordBankPayload) error {
	if payload == nil {
		return fmt.Errorf("word bank payload is required")
	}
	if len(payload.Tokens) < 2 {
		return fmt.Errorf("must have at least 2 tokens")
	}
	for _, token := range payload.Tokens {
		if token.ID == "" || token.Text == "" {
			return fmt.Errorf("token id and text cannot be empty")
		}
	}
	return nil
}

func (v *ContentValidator) validateConversationPayload(payload *models.ConversationPayload) error {
	if payload == nil {
		return fmt.Errorf("conversation payload is required")
	}
	if len(payload.Turns) == 0 {
		return fmt.Errorf("must have at least 1 turn")
	}
	for _, turn := range payload.Turns {
		if turn.ID == "" {
			return fmt.Errorf("turn id cannot be empty")
		}
		if len(turn.Replies) < 2 {
			return fmt.Errorf("turn '%s' must have at least 2 replies", turn.ID)
		}
	}
	return nil
}

func (v *ContentValidator) validateMatchPairsPayload(payload *models.MatchPairsPayload) error {
	if payload == nil {
		return fmt.Errorf("match pairs payload is required")
	}
	if len(payload.Left) < 2 {
		return fmt.Errorf("must have at least 2 pairs")
	}
	if len(payload.Left) != len(payload.Right) {
		return fmt.Errorf("left and right columns must have the same length")
	}
	return nil
}

func (v *ContentValidator) validateShortTextPayload(payload *models.ShortTextPayload) error {
	if payload == nil {
		return fmt.Errorf("short text payload is required")
	}
	if payload.MinLength < 0 || payload.MaxLength < 0 {
		return fmt.Errorf("length constraints cannot be negative")
	}
	if payload.MaxLength > 0 && payload.MinLength > payload.MaxLength {
		return fmt.Errorf("minimum length cannot be greater than maximum")
	}
	return nil
}
