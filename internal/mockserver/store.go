package mockserver

import (
	"context"
	"errors"
	"time"

	"github.com/lumilearn/quiz-runner/internal/models"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrSessionNotFound = errors.New("attempt session not found")
)

// AnswerKey is the authoritative answer for one question. Keys never leave
// the server; the runner only ever sees graded verdicts.
type AnswerKey struct {
	// multiple_choice
	ChoiceID string `json:"choiceId,omitempty"`
	// true_false
	Value *bool `json:"value,omitempty"`
	// cloze: blankId -> accepted text, compared case-insensitively against
	// the text of the submitted choice
	ClozeTexts map[string]string `json:"clozeTexts,omitempty"`
	// conversation: turnId -> correct replyId
	TurnReplies map[string]string `json:"turnReplies,omitempty"`
	// match_pairs: leftId -> rightId
	Pairs map[string]string `json:"pairs,omitempty"`
	// word_bank: expected token order
	TokenOrder []string `json:"tokenOrder,omitempty"`
	// short_text: accepted answers, compared trimmed and case-insensitively
	AcceptedTexts []string `json:"acceptedTexts,omitempty"`
}

// QuestionContent bundles a deliverable question with its answer key.
type QuestionContent struct {
	Question    *models.QuizQuestion `json:"question"`
	Answer      *AnswerKey           `json:"answer"`
	Points      int                  `json:"points"`
	Explanation string               `json:"explanation,omitempty"`
}

// LessonContent is one lesson's quiz content.
type LessonContent struct {
	LessonID  string             `json:"lessonId"`
	Title     string             `json:"title"`
	Questions []*QuestionContent `json:"questions"`
}

func (l *LessonContent) question(questionID string) *QuestionContent {
	for _, q := range l.Questions {
		if q.Question.QuestionID == questionID {
			return q
		}
	}
	return nil
}

// ContentStore serves lesson quiz content.
type ContentStore interface {
	GetLesson(ctx context.Context, lessonID string) (*LessonContent, error)
	ListLessonIDs(ctx context.Context) ([]string, error)
}

// AttemptSession is the server-side state of one quiz attempt.
type AttemptSession struct {
	AttemptID        string            `json:"attemptId"`
	LessonID         string            `json:"lessonId"`
	QuestionIDs      []string          `json:"questionIds"`
	Index            int               `json:"index"`
	CorrectCount     int               `json:"correctCount"`
	EarnedScore      int               `json:"earnedScore"`
	MaxScore         int               `json:"maxScore"`
	Status           models.QuizStatus `json:"status"`
	WrongQuestionIDs []string          `json:"wrongQuestionIds"`
	StartedAt        time.Time         `json:"startedAt"`
}

// HeartsState is the stored hearts ledger.
type HeartsState struct {
	Remaining    int       `json:"remaining"`
	NextRefillAt time.Time `json:"nextRefillAt"`
}

// LessonProgress is the per-lesson completion record updated on a pass.
type LessonProgress struct {
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
	BestScore int    `json:"bestScore"`
	XPEarned  int    `json:"xpEarned"`
}

// SessionStore persists attempt sessions, the hearts ledger and lesson
// progress. Implementations exist in memory and on Redis so a dev backend
// can survive restarts.
type SessionStore interface {
	GetSession(ctx context.Context, lessonID string) (*AttemptSession, error)
	SaveSession(ctx context.Context, session *AttemptSession) error
	DeleteSession(ctx context.Context, lessonID string) error

	GetHearts(ctx context.Context) (*HeartsState, error)
	SaveHearts(ctx context.Context, state *HeartsState) error

	GetProgress(ctx context.Context, lessonID string) (*LessonProgress, error)
	SaveProgress(ctx context.Context, progress *LessonProgress) error
}
