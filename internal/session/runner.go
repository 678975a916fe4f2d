package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/lumilearn/quiz-runner/internal/validator"
)

// Gateway is the remote backend consumed by the runner. The backend owns all
// authoritative state: grading, the hearts ledger and persistence.
type Gateway interface {
	FetchLessonQuizState(ctx context.Context, lessonID string) (*models.LessonQuizState, error)
	SubmitLessonQuizAnswer(ctx context.Context, lessonID string, req models.SubmitRequest) (*models.SubmitResult, error)
	RestartLessonQuiz(ctx context.Context, lessonID string, mode models.RestartMode) (*models.LessonQuizState, error)
	FetchLessonProgressDetail(ctx context.Context, lessonID string) (*models.LessonProgressDetail, error)
}

// Broadcaster receives every hearts change the runner applies.
type Broadcaster interface {
	Emit(status models.LessonHeartsStatus) error
}

// Feedback is the immediate verdict shown after a submission, before the
// learner explicitly continues.
type Feedback struct {
	Correct     bool
	Explanation string
}

// Runner is the lesson quiz session state machine. It holds the current
// attempt as a client-side cache of the backend's state and replaces it
// wholesale on every authoritative update; server-owned fields are never
// merged field by field. All methods are safe for use from multiple
// goroutines, though the flow is inherently sequential: only one question is
// answerable at a time and a plain in-flight flag is the only mutual
// exclusion against duplicate submits.
type Runner struct {
	mu sync.Mutex

	lessonID  string
	gateway   Gateway
	broadcast Broadcaster
	logger    *slog.Logger

	state      *models.LessonQuizState
	draft      *models.Response
	feedback   *Feedback
	pending    *models.LessonQuizState
	summary    *models.QuizSummary
	submitting bool
	closed     bool
}

func NewRunner(lessonID string, gateway Gateway, broadcast Broadcaster, logger *slog.Logger) *Runner {
	return &Runner{
		lessonID:  lessonID,
		gateway:   gateway,
		broadcast: broadcast,
		logger:    logger,
	}
}

// Load fetches the quiz state for the lesson and replaces the session with
// whatever the backend reports, including a quiz that starts blocked on
// hearts. This is the only entry transition.
func (r *Runner) Load(ctx context.Context) error {
	state, err := r.gateway.FetchLessonQuizState(ctx, r.lessonID)
	if err != nil {
		return fmt.Errorf("failed to fetch quiz state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerClosed
	}

	r.state = state
	r.draft = nil
	r.feedback = nil
	r.pending = nil
	r.summary = nil

	r.logger.Info("Quiz state loaded",
		"lesson_id", r.lessonID,
		"attempt_id", state.AttemptID,
		"status", state.Status,
		"question_index", state.QuestionIndex,
		"hearts_remaining", state.Hearts.HeartsRemaining)

	r.emitHearts(state.Hearts)
	return nil
}

// SetDraft replaces the in-progress draft for the current question.
func (r *Runner) SetDraft(draft *models.Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = draft.Clone()
}

// CanSubmit reports whether the current draft would pass the submit gate.
// Incomplete drafts never reach the network.
func (r *Runner) CanSubmit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitGate() == nil
}

func (r *Runner) submitGate() error {
	switch {
	case r.state == nil:
		return ErrNotLoaded
	case r.submitting:
		return ErrSubmitInFlight
	case r.state.Status != models.QuizInProgress:
		return ErrQuizNotActive
	case !r.state.CanAnswer:
		return ErrCannotAnswer
	case r.state.CurrentQuestion == nil:
		return ErrNoActiveQuestion
	case r.state.AttemptID == "":
		return ErrMissingAttempt
	}
	if validator.NormalizeQuestionResponse(r.state.CurrentQuestion, r.draft) == nil {
		return ErrIncompleteResponse
	}
	return nil
}

// Submit sends the normalized draft to the backend. On a completed quiz the
// session transitions straight to its terminal state and the summary is
// derived from the final response; otherwise the verdict is surfaced as
// feedback and the next question is staged until the learner continues.
// On gateway failure the session is left untouched so the learner can retry.
func (r *Runner) Submit(ctx context.Context) (*Feedback, error) {
	r.mu.Lock()
	if err := r.submitGate(); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	normalized := validator.NormalizeQuestionResponse(r.state.CurrentQuestion, r.draft)
	req := models.SubmitRequest{
		AttemptID:  r.state.AttemptID,
		QuestionID: r.state.CurrentQuestion.QuestionID,
		Response:   normalized,
	}
	prevHearts := r.state.Hearts
	r.submitting = true
	r.mu.Unlock()

	result, err := r.gateway.SubmitLessonQuizAnswer(ctx, r.lessonID, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitting = false

	if r.closed {
		// The controller was abandoned while the request was in flight;
		// a stale response must not be applied.
		return nil, ErrRunnerClosed
	}
	if err != nil {
		r.logger.Error("Answer submission failed",
			"lesson_id", r.lessonID,
			"question_id", req.QuestionID,
			"error", err)
		return nil, fmt.Errorf("failed to submit answer: %w", err)
	}

	hearts := resolveHeartsAfterSubmit(prevHearts, result.Hearts, result.Correct)
	r.feedback = &Feedback{Correct: result.Correct, Explanation: result.Explanation}

	if result.QuizCompleted {
		r.applyCompletion(result, hearts)
	} else {
		r.stageNext(result, hearts)
	}

	r.emitHearts(hearts)
	return r.feedback, nil
}

// applyCompletion replaces the session with its terminal state and derives
// the summary from the final server response.
func (r *Runner) applyCompletion(result *models.SubmitResult, hearts models.LessonHeartsStatus) {
	passed := result.Status == models.QuizPassed
	if result.Passed != nil {
		passed = *result.Passed
	}

	r.summary = &models.QuizSummary{
		TotalQuestions:   result.TotalQuestions,
		CorrectCount:     result.CorrectCount,
		EarnedScore:      result.EarnedScore,
		MaxScore:         result.MaxScore,
		Passed:           passed,
		WrongQuestionIDs: append([]string(nil), result.WrongQuestionIDs...),
	}

	r.state = &models.LessonQuizState{
		AttemptID:        r.state.AttemptID,
		Status:           result.Status,
		QuestionIndex:    result.QuestionIndex,
		TotalQuestions:   result.TotalQuestions,
		CorrectCount:     result.CorrectCount,
		EarnedScore:      result.EarnedScore,
		MaxScore:         result.MaxScore,
		Hearts:           hearts,
		CanAnswer:        false,
		CanRestart:       hearts.HeartsRemaining > 0,
		CurrentQuestion:  nil,
		WrongQuestionIDs: append([]string(nil), result.WrongQuestionIDs...),
	}
	r.pending = nil

	r.logger.Info("Quiz completed",
		"lesson_id", r.lessonID,
		"status", result.Status,
		"correct_count", result.CorrectCount,
		"total_questions", result.TotalQuestions)
}

// stageNext stores the post-answer state without advancing; the learner must
// explicitly continue past the feedback.
func (r *Runner) stageNext(result *models.SubmitResult, hearts models.LessonHeartsStatus) {
	r.pending = &models.LessonQuizState{
		AttemptID:        r.state.AttemptID,
		Status:           result.Status,
		QuestionIndex:    result.QuestionIndex,
		TotalQuestions:   result.TotalQuestions,
		CorrectCount:     result.CorrectCount,
		EarnedScore:      result.EarnedScore,
		MaxScore:         result.MaxScore,
		Hearts:           hearts,
		CanAnswer:        result.Status == models.QuizInProgress,
		CanRestart:       r.state.CanRestart,
		CurrentQuestion:  result.NextQuestion,
		WrongQuestionIDs: append([]string(nil), result.WrongQuestionIDs...),
	}

	// Keep the visible hearts consistent while feedback is showing.
	r.state.Hearts = hearts
}

// Continue clears the feedback and, when a next question is staged, promotes
// it to the live state. The draft is cleared on every question change.
func (r *Runner) Continue() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.feedback == nil {
		return ErrNoFeedback
	}

	if r.pending != nil {
		r.state = r.pending
		r.pending = nil
	}
	r.feedback = nil
	r.draft = nil
	return nil
}

// Restart begins a fresh attempt. Wrong-only restarts replay just the missed
// questions and require a failed quiz; both modes require at least one heart.
func (r *Runner) Restart(ctx context.Context, mode models.RestartMode) error {
	r.mu.Lock()
	switch {
	case r.state == nil:
		r.mu.Unlock()
		return ErrNotLoaded
	case r.submitting:
		r.mu.Unlock()
		return ErrSubmitInFlight
	case !r.state.Status.Terminal():
		r.mu.Unlock()
		return ErrNotRestartable
	case mode == models.RestartWrongOnly && r.state.Status != models.QuizFailed:
		r.mu.Unlock()
		return ErrWrongOnlyNotFailed
	case r.state.Hearts.HeartsRemaining <= 0:
		r.mu.Unlock()
		return ErrHeartsExhausted
	}
	r.submitting = true
	r.mu.Unlock()

	state, err := r.gateway.RestartLessonQuiz(ctx, r.lessonID, mode)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitting = false

	if r.closed {
		return ErrRunnerClosed
	}
	if err != nil {
		r.logger.Error("Quiz restart failed",
			"lesson_id", r.lessonID,
			"mode", mode,
			"error", err)
		return fmt.Errorf("failed to restart quiz: %w", err)
	}

	r.state = state
	r.draft = nil
	r.feedback = nil
	r.pending = nil
	r.summary = nil

	r.logger.Info("Quiz restarted",
		"lesson_id", r.lessonID,
		"mode", mode,
		"attempt_id", state.AttemptID,
		"total_questions", state.TotalQuestions)

	r.emitHearts(state.Hearts)
	return nil
}

// State returns a snapshot of the current session state.
func (r *Runner) State() *models.LessonQuizState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil
	}
	snapshot := *r.state
	return &snapshot
}

// Feedback returns the verdict currently showing, nil when none.
func (r *Runner) Feedback() *Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.feedback == nil {
		return nil
	}
	f := *r.feedback
	return &f
}

// Summary returns the terminal summary once the quiz completed, nil before.
func (r *Runner) Summary() *models.QuizSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.summary == nil {
		return nil
	}
	s := *r.summary
	return &s
}

// Progress fetches the lesson's completion record from the backend.
func (r *Runner) Progress(ctx context.Context) (*models.LessonProgressDetail, error) {
	detail, err := r.gateway.FetchLessonProgressDetail(ctx, r.lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lesson progress: %w", err)
	}
	return detail, nil
}

// Close marks the runner abandoned, e.g. on navigation away. In-flight
// gateway results arriving afterwards are dropped instead of applied.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *Runner) emitHearts(status models.LessonHeartsStatus) {
	if r.broadcast == nil {
		return
	}
	if err := r.broadcast.Emit(status); err != nil {
		r.logger.Warn("Hearts broadcast failed", "error", err)
	}
}

// resolveHeartsAfterSubmit reconciles the server-reported hearts with the
// previous known value. The server reports hearts after its own deduction,
// but a slow response can still carry a stale count: on an incorrect answer
// the server value is trusted only if it already decreased, otherwise the
// previous value is pessimistically decremented by one. The server remains
// authoritative on the next fetch.
func resolveHeartsAfterSubmit(prev, server models.LessonHeartsStatus, correct bool) models.LessonHeartsStatus {
	if correct {
		return server
	}
	if server.HeartsRemaining < prev.HeartsRemaining {
		return server
	}
	resolved := server
	resolved.HeartsRemaining = prev.HeartsRemaining - 1
	if resolved.HeartsRemaining < 0 {
		resolved.HeartsRemaining = 0
	}
	return resolved
}
