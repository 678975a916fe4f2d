package board

import (
	"fmt"
	"strings"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// OptionChip is one visual option in the cloze tray. Options are
// deduplicated by case-insensitive text across all blanks, so a single chip
// can resolve to different (blank, choice) pairs depending on the blank it
// is assigned to.
type OptionChip struct {
	Key  string // lowercased text, the dedup key
	Text string // display text of the first occurrence
}

// ClozeBoard drives a fill-in-the-blank question. Two interaction modes
// mutate the same answers map: tap an option then tap a blank, or drag an
// option directly onto a blank.
type ClozeBoard struct {
	question *models.QuizQuestion
	chips    []OptionChip
	answers  map[string]string // blankId -> choiceId
	selected string            // chip key picked in tap mode, "" when none
	errMsg   string
	disabled bool
}

func NewClozeBoard(question *models.QuizQuestion) (*ClozeBoard, error) {
	if question == nil || question.QuestionType != models.Cloze || question.Cloze == nil {
		return nil, fmt.Errorf("cloze board requires a cloze question")
	}

	b := &ClozeBoard{
		question: question,
		answers:  make(map[string]string),
	}

	seen := make(map[string]bool)
	for _, blankID := range question.BlankIDs() {
		for _, option := range question.Cloze.BlankOptions[blankID] {
			key := strings.ToLower(option.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			b.chips = append(b.chips, OptionChip{Key: key, Text: option.Text})
		}
	}

	return b, nil
}

// Options returns the deduplicated option tray.
func (b *ClozeBoard) Options() []OptionChip {
	return b.chips
}

// SelectOption picks an option chip in tap mode. Selecting clears any
// pending local error.
func (b *ClozeBoard) SelectOption(key string) {
	if b.disabled {
		return
	}
	b.selected = strings.ToLower(key)
	b.errMsg = ""
}

// TapBlank assigns the currently selected option to the blank, if any.
func (b *ClozeBoard) TapBlank(blankID string) {
	if b.disabled || b.selected == "" {
		return
	}
	selected := b.selected
	b.selected = ""
	b.assign(selected, blankID)
}

// DropOption assigns an option onto a blank directly (drag mode).
func (b *ClozeBoard) DropOption(key, blankID string) {
	if b.disabled {
		return
	}
	b.assign(strings.ToLower(key), blankID)
}

// assign resolves the chip against the target blank's own choice set. A chip
// may legally fill any blank whose choices contain matching text
// (case-insensitive); otherwise the assignment is rejected, the answers map
// is left unchanged and a local, recoverable error is surfaced.
func (b *ClozeBoard) assign(key, blankID string) {
	options, ok := b.question.Cloze.BlankOptions[blankID]
	if !ok {
		b.errMsg = fmt.Sprintf("unknown blank %q", blankID)
		return
	}

	for _, option := range options {
		if strings.ToLower(option.Text) == key {
			b.answers[blankID] = option.ID
			b.errMsg = ""
			return
		}
	}

	b.errMsg = fmt.Sprintf("%q does not fit this blank", key)
}

// ClearBlank removes the answer for one blank.
func (b *ClozeBoard) ClearBlank(blankID string) {
	if b.disabled {
		return
	}
	delete(b.answers, blankID)
	b.errMsg = ""
}

// Answer returns the choice currently filling a blank.
func (b *ClozeBoard) Answer(blankID string) (string, bool) {
	choiceID, ok := b.answers[blankID]
	return choiceID, ok
}

// Error returns the current local error message, empty when none. It is
// cleared by the next successful interaction.
func (b *ClozeBoard) Error() string {
	return b.errMsg
}

func (b *ClozeBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response.
func (b *ClozeBoard) Draft() *models.Response {
	answers := make(map[string]string, len(b.answers))
	for k, v := range b.answers {
		answers[k] = v
	}
	return &models.Response{Answers: answers}
}
