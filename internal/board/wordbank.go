package board

import (
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// WordBankBoard drives a word-bank question: tokens move from an available
// pool into an ordered selection.
type WordBankBoard struct {
	tokens   []models.Choice
	selected []string // token ids in selection order
	disabled bool
}

func NewWordBankBoard(question *models.QuizQuestion) (*WordBankBoard, error) {
	if question == nil || question.QuestionType != models.WordBank || question.WordBank == nil {
		return nil, fmt.Errorf("word bank board requires a word_bank question")
	}

	return &WordBankBoard{
		tokens: append([]models.Choice(nil), question.WordBank.Tokens...),
	}, nil
}

// Select appends a token to the selection. Unknown or already-selected
// tokens are ignored; a token cannot be selected twice.
func (b *WordBankBoard) Select(tokenID string) {
	if b.disabled || !b.knownToken(tokenID) {
		return
	}
	for _, id := range b.selected {
		if id == tokenID {
			return
		}
	}
	b.selected = append(b.selected, tokenID)
}

// Remove takes a token out of the selection, closing the gap so the order
// of the remaining tokens is preserved. The token becomes selectable again.
func (b *WordBankBoard) Remove(tokenID string) {
	if b.disabled {
		return
	}
	for i, id := range b.selected {
		if id == tokenID {
			b.selected = append(b.selected[:i], b.selected[i+1:]...)
			return
		}
	}
}

// Selected returns the token ids in selection order.
func (b *WordBankBoard) Selected() []string {
	return append([]string(nil), b.selected...)
}

// Available returns the tokens still in the pool, in payload order.
func (b *WordBankBoard) Available() []models.Choice {
	taken := make(map[string]bool, len(b.selected))
	for _, id := range b.selected {
		taken[id] = true
	}

	var available []models.Choice
	for _, token := range b.tokens {
		if !taken[token.ID] {
			available = append(available, token)
		}
	}
	return available
}

func (b *WordBankBoard) knownToken(tokenID string) bool {
	for _, token := range b.tokens {
		if token.ID == tokenID {
			return true
		}
	}
	return false
}

func (b *WordBankBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response.
func (b *WordBankBoard) Draft() *models.Response {
	return &models.Response{TokenOrder: append([]string(nil), b.selected...)}
}
