package models

import "time"

type QuizStatus string

const (
	QuizInProgress    QuizStatus = "in_progress"
	QuizPassed        QuizStatus = "passed"
	QuizFailed        QuizStatus = "failed"
	QuizBlockedHearts QuizStatus = "blocked_hearts"
)

// Terminal reports whether only restart or navigation transitions remain.
func (s QuizStatus) Terminal() bool {
	return s == QuizPassed || s == QuizFailed || s == QuizBlockedHearts
}

type RestartMode string

const (
	RestartFull      RestartMode = "full"
	RestartWrongOnly RestartMode = "wrong_only"
)

func (m RestartMode) Valid() bool {
	return m == RestartFull || m == RestartWrongOnly
}

// LessonHeartsStatus is the shared lives budget. It is broadcast whole on
// every change; last writer wins, there is no merge logic.
type LessonHeartsStatus struct {
	HeartsRemaining int    `json:"heartsRemaining"`
	HeartsRefillAt  string `json:"heartsRefillAt,omitempty"`
}

// RefillTime parses the refill timestamp, returning the zero time when the
// backend reported none.
func (h LessonHeartsStatus) RefillTime() time.Time {
	if h.HeartsRefillAt == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, h.HeartsRefillAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LessonQuizState is the backend's authoritative view of one quiz attempt.
// The client holds it as a cache and replaces it wholesale on every
// transition; server-owned fields are never mutated in place.
type LessonQuizState struct {
	AttemptID        string             `json:"attemptId"`
	Status           QuizStatus         `json:"status"`
	QuestionIndex    int                `json:"questionIndex"`
	TotalQuestions   int                `json:"totalQuestions"`
	CorrectCount     int                `json:"correctCount"`
	EarnedScore      int                `json:"earnedScore"`
	MaxScore         int                `json:"maxScore"`
	Hearts           LessonHeartsStatus `json:"hearts"`
	CanAnswer        bool               `json:"canAnswer"`
	CanRestart       bool               `json:"canRestart"`
	CurrentQuestion  *QuizQuestion      `json:"currentQuestion,omitempty"`
	WrongQuestionIDs []string           `json:"wrongQuestionIds,omitempty"`
}

// QuizSummary is derived from the final submit response once the backend
// reports the quiz completed.
type QuizSummary struct {
	TotalQuestions   int      `json:"totalQuestions"`
	CorrectCount     int      `json:"correctCount"`
	EarnedScore      int      `json:"earnedScore"`
	MaxScore         int      `json:"maxScore"`
	Passed           bool     `json:"passed"`
	WrongQuestionIDs []string `json:"wrongQuestionIds,omitempty"`
}

// Accuracy returns the rounded percentage of correct answers. The divisor is
// clamped to one so an empty quiz reports 0% instead of dividing by zero.
func (s QuizSummary) Accuracy() int {
	total := s.TotalQuestions
	if total < 1 {
		total = 1
	}
	return int(float64(s.CorrectCount)/float64(total)*100 + 0.5)
}

// LessonProgressDetail is fetched after a pass to refresh the lesson's
// progress display. Completion side effects are applied server-side.
type LessonProgressDetail struct {
	LessonID       string  `json:"lessonId"`
	Completed      bool    `json:"completed"`
	BestScore      int     `json:"bestScore"`
	XPEarned       int     `json:"xpEarned"`
	CompletionRate float64 `json:"completionRate"`
}
