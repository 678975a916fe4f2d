package board

import (
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// ConversationBoard drives a conversation question: one reply selectable per
// turn, a new selection overwrites the previous one for that turn only.
type ConversationBoard struct {
	turns    []models.ConversationTurn
	answers  map[string]string // turnId -> replyId
	disabled bool
}

func NewConversationBoard(question *models.QuizQuestion) (*ConversationBoard, error) {
	if question == nil || question.QuestionType != models.Conversation || question.Conversation == nil {
		return nil, fmt.Errorf("conversation board requires a conversation question")
	}

	return &ConversationBoard{
		turns:   append([]models.ConversationTurn(nil), question.Conversation.Turns...),
		answers: make(map[string]string),
	}, nil
}

// Turns returns the conversation turns in payload order.
func (b *ConversationBoard) Turns() []models.ConversationTurn {
	return b.turns
}

// SelectReply records a reply for a turn. Replies that do not belong to the
// turn are ignored.
func (b *ConversationBoard) SelectReply(turnID, replyID string) {
	if b.disabled {
		return
	}
	for _, turn := range b.turns {
		if turn.ID != turnID {
			continue
		}
		for _, reply := range turn.Replies {
			if reply.ID == replyID {
				b.answers[turnID] = replyID
				return
			}
		}
		return
	}
}

// Reply returns the reply currently selected for a turn.
func (b *ConversationBoard) Reply(turnID string) (string, bool) {
	replyID, ok := b.answers[turnID]
	return replyID, ok
}

func (b *ConversationBoard) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Draft returns the current draft response.
func (b *ConversationBoard) Draft() *models.Response {
	answers := make(map[string]string, len(b.answers))
	for k, v := range b.answers {
		answers[k] = v
	}
	return &models.Response{Answers: answers}
}
