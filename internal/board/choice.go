package board

import (
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// ChoiceBoard drives multiple-choice and true/false questions: a single
// selectable choice, newest selection wins.
type ChoiceBoard struct {
	kind     models.QuestionKind
	choices  []models.Choice
	selected string
	disabled bool
}

func NewChoiceBoard(question *models.QuizQuestion) (*ChoiceBoard, error) {
	if question == nil || question.Choice == nil ||
		(question.QuestionType != models.MultipleChoice && question.QuestionType != models.TrueFalse) {
		return nil, fmt.Errorf("choice board requires a multiple_choice or true_false question")
	}

	return &ChoiceBoard{
		kind:    question.QuestionType,
		choices: append([]models.Choice(nil), question.Choice.Choices...),
	}, nil
}

// Choices returns the choices in payload order.
func (b *ChoiceBoard) Choices() []models.Choice {
	return b.choices
}

// Select records the choice. Unknown ids are ignored.
func (b *ChoiceBoard) Select(choiceID string) {
	if b.disabled {
		return
	}
	for _, choice := range b.choices {
		if choice.ID == choiceID {
			b.selected = choiceID
			return
		}
	}
}

// Selected returns the currently selected choice id, empty when none.
func (b *ChoiceBoard) Selected() string {
	return b.selected
}

func (b *ChoiceBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response in the shape the question's kind
// requires. True/false payloads carry choices with ids "true" and "false".
func (b *ChoiceBoard) Draft() *models.Response {
	if b.kind == models.TrueFalse {
		if b.selected == "" {
			return &models.Response{}
		}
		value := b.selected == "true"
		return &models.Response{Value: &value}
	}
	return &models.Response{ChoiceID: b.selected}
}

// ShortTextBoard drives a free-text question. The payload's length bounds
// are advisory and surfaced for display; only non-empty-after-trim gates
// submission.
type ShortTextBoard struct {
	payload  models.ShortTextPayload
	text     string
	disabled bool
}

func NewShortTextBoard(question *models.QuizQuestion) (*ShortTextBoard, error) {
	if question == nil || question.QuestionType != models.ShortText || question.ShortText == nil {
		return nil, fmt.Errorf("short text board requires a short_text question")
	}

	return &ShortTextBoard{payload: *question.ShortText}, nil
}

func (b *ShortTextBoard) SetText(text string) {
	if b.disabled {
		return
	}
	b.text = text
}

func (b *ShortTextBoard) Text() string {
	return b.text
}

func (b *ShortTextBoard) Placeholder() string {
	return b.payload.Placeholder
}

// LengthHint returns the advisory min/max length bounds.
func (b *ShortTextBoard) LengthHint() (min, max int) {
	return b.payload.MinLength, b.payload.MaxLength
}

func (b *ShortTextBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response.
func (b *ShortTextBoard) Draft() *models.Response {
	return &models.Response{Text: b.text}
}
