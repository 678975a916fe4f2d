package board

import (
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// MatchBoard drives a match-pairs question. The right column is presented in
// a seed-derived deterministic shuffle so learners cannot rely on positional
// cues across attempts while the order stays reproducible in tests.
type MatchBoard struct {
	left  []models.Choice
	right []models.Choice

	pairs        map[string]string // leftId -> rightId
	pendingLeft  string
	pendingRight string
	disabled     bool
}

func NewMatchBoard(question *models.QuizQuestion, seed string) (*MatchBoard, error) {
	if question == nil || question.QuestionType != models.MatchPairs || question.MatchPairs == nil {
		return nil, fmt.Errorf("match board requires a match_pairs question")
	}

	return &MatchBoard{
		left:  append([]models.Choice(nil), question.MatchPairs.Left...),
		right: shuffleChoices(seed, question.MatchPairs.Right),
		pairs: make(map[string]string),
	}, nil
}

// Left returns the left column in payload order.
func (b *MatchBoard) Left() []models.Choice {
	return b.left
}

// Right returns the right column in its shuffled presentation order.
func (b *MatchBoard) Right() []models.Choice {
	return b.right
}

// SelectLeft handles a tap on a left item. Tapping the left side of an
// already-committed pair, with no selection pending, unpairs it.
func (b *MatchBoard) SelectLeft(leftID string) {
	if b.disabled {
		return
	}
	if b.pendingRight != "" {
		b.commit(leftID, b.pendingRight)
		return
	}
	if _, paired := b.pairs[leftID]; paired && b.pendingLeft == "" {
		delete(b.pairs, leftID)
		return
	}
	b.pendingLeft = leftID
}

// SelectRight handles a tap on a right item, mirroring SelectLeft.
func (b *MatchBoard) SelectRight(rightID string) {
	if b.disabled {
		return
	}
	if b.pendingLeft != "" {
		b.commit(b.pendingLeft, rightID)
		return
	}
	if leftID, paired := b.pairedLeftFor(rightID); paired && b.pendingRight == "" {
		delete(b.pairs, leftID)
		return
	}
	b.pendingRight = rightID
}

// commit stores a pair, evicting any prior pairing that used either side.
func (b *MatchBoard) commit(leftID, rightID string) {
	if existing, paired := b.pairedLeftFor(rightID); paired {
		delete(b.pairs, existing)
	}
	b.pairs[leftID] = rightID
	b.pendingLeft = ""
	b.pendingRight = ""
}

func (b *MatchBoard) pairedLeftFor(rightID string) (string, bool) {
	for leftID, pairedRight := range b.pairs {
		if pairedRight == rightID {
			return leftID, true
		}
	}
	return "", false
}

// Pair returns the right item currently matched to a left item.
func (b *MatchBoard) Pair(leftID string) (string, bool) {
	rightID, ok := b.pairs[leftID]
	return rightID, ok
}

// PairCount returns how many pairs are committed.
func (b *MatchBoard) PairCount() int {
	return len(b.pairs)
}

func (b *MatchBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response.
func (b *MatchBoard) Draft() *models.Response {
	pairs := make(map[string]string, len(b.pairs))
	for k, v := range b.pairs {
		pairs[k] = v
	}
	return &models.Response{Pairs: pairs}
}
