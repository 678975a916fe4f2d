package mockserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/lumilearn/quiz-runner/internal/models"
)

var (
	ErrAttemptMismatch  = errors.New("attempt id does not match the active attempt")
	ErrQuestionMismatch = errors.New("question id does not match the current question")
	ErrQuizNotActive    = errors.New("quiz is not in progress")
	ErrHeartsEmpty      = errors.New("no hearts remaining")
	ErrNotRestartable   = errors.New("quiz cannot be restarted in current state")
	ErrNoWrongQuestions = errors.New("no wrong questions to redo")
)

// QuizService implements the backend semantics the runner talks to: attempt
// sessions, grading, the hearts ledger, wrong-question tracking and lesson
// progress. It exists so the app is fully usable offline; the production
// backend owns the same contract.
type QuizService struct {
	content     ContentStore
	sessions    SessionStore
	hearts      *HeartsLedger
	logger      *slog.Logger
	passPercent int
	newID       func() string
}

func NewQuizService(content ContentStore, sessions SessionStore, hearts *HeartsLedger, passPercent int, logger *slog.Logger) *QuizService {
	if passPercent <= 0 || passPercent > 100 {
		passPercent = 70
	}
	return &QuizService{
		content:     content,
		sessions:    sessions,
		hearts:      hearts,
		logger:      logger,
		passPercent: passPercent,
		newID:       watermill.NewUUID,
	}
}

// GetQuizState returns the current attempt for a lesson, creating a fresh
// full attempt when none exists.
func (s *QuizService) GetQuizState(ctx context.Context, lessonID string) (*models.LessonQuizState, error) {
	lesson, err := s.content.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, lessonID)
	if errors.Is(err, ErrSessionNotFound) {
		session = s.newSession(lesson, allQuestionIDs(lesson))
		if err := s.sessions.SaveSession(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info("Attempt started",
			"lesson_id", lessonID,
			"attempt_id", session.AttemptID,
			"total_questions", len(session.QuestionIDs))
	} else if err != nil {
		return nil, err
	}

	hearts, err := s.hearts.Current(ctx)
	if err != nil {
		return nil, err
	}

	return s.buildState(lesson, session, hearts), nil
}

// SubmitAnswer grades the response for the current question and advances the
// attempt. Hearts are deducted on wrong answers; running out of hearts ends
// the attempt as failed.
func (s *QuizService) SubmitAnswer(ctx context.Context, lessonID string, req models.SubmitRequest) (*models.SubmitResult, error) {
	lesson, err := s.content.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.QuizInProgress {
		return nil, ErrQuizNotActive
	}
	if req.AttemptID != session.AttemptID {
		return nil, ErrAttemptMismatch
	}

	hearts, err := s.hearts.Current(ctx)
	if err != nil {
		return nil, err
	}
	if hearts.Remaining <= 0 {
		return nil, ErrHeartsEmpty
	}

	if session.Index >= len(session.QuestionIDs) {
		return nil, ErrQuestionMismatch
	}
	currentID := session.QuestionIDs[session.Index]
	if req.QuestionID != currentID {
		return nil, ErrQuestionMismatch
	}

	content := lesson.question(currentID)
	if content == nil {
		return nil, fmt.Errorf("lesson %s is missing question %s", lessonID, currentID)
	}

	correct := grade(content, req.Response)
	if correct {
		session.CorrectCount++
		session.EarnedScore += content.Points
	} else {
		session.WrongQuestionIDs = append(session.WrongQuestionIDs, currentID)
		hearts, err = s.hearts.Lose(ctx)
		if err != nil {
			return nil, err
		}
	}
	session.Index++

	completed := session.Index >= len(session.QuestionIDs) || hearts.Remaining <= 0
	var passed bool
	if completed {
		answeredAll := session.Index >= len(session.QuestionIDs)
		passed = answeredAll && session.CorrectCount*100 >= s.passPercent*len(session.QuestionIDs)
		if passed {
			session.Status = models.QuizPassed
			if err := s.recordPass(ctx, lessonID, session); err != nil {
				return nil, err
			}
		} else {
			session.Status = models.QuizFailed
		}
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Answer graded",
		"lesson_id", lessonID,
		"question_id", currentID,
		"correct", correct,
		"hearts_remaining", hearts.Remaining,
		"completed", completed)

	result := &models.SubmitResult{
		Correct:          correct,
		Explanation:      content.Explanation,
		QuizCompleted:    completed,
		Status:           session.Status,
		QuestionIndex:    session.Index,
		TotalQuestions:   len(session.QuestionIDs),
		CorrectCount:     session.CorrectCount,
		EarnedScore:      session.EarnedScore,
		MaxScore:         session.MaxScore,
		Hearts:           hearts.Status(),
		WrongQuestionIDs: append([]string(nil), session.WrongQuestionIDs...),
	}
	if completed {
		result.Passed = &passed
	} else {
		next := lesson.question(session.QuestionIDs[session.Index])
		if next == nil {
			return nil, fmt.Errorf("lesson %s is missing question %s", lessonID, session.QuestionIDs[session.Index])
		}
		result.NextQuestion = next.Question
	}

	return result, nil
}

// Restart replaces the attempt with a fresh one, either over the full quiz
// or just the previously wrong questions.
func (s *QuizService) Restart(ctx context.Context, lessonID string, mode models.RestartMode) (*models.LessonQuizState, error) {
	lesson, err := s.content.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, lessonID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}
	if session != nil && session.Status == models.QuizInProgress {
		return nil, ErrNotRestartable
	}

	hearts, err := s.hearts.Current(ctx)
	if err != nil {
		return nil, err
	}
	if hearts.Remaining <= 0 {
		return nil, ErrHeartsEmpty
	}

	var questionIDs []string
	switch mode {
	case models.RestartWrongOnly:
		if session == nil || session.Status != models.QuizFailed {
			return nil, ErrNoWrongQuestions
		}
		questionIDs = orderedWrongIDs(lesson, session.WrongQuestionIDs)
		if len(questionIDs) == 0 {
			return nil, ErrNoWrongQuestions
		}
	default:
		questionIDs = allQuestionIDs(lesson)
	}

	fresh := s.newSession(lesson, questionIDs)
	if err := s.sessions.SaveSession(ctx, fresh); err != nil {
		return nil, err
	}

	s.logger.Info("Attempt restarted",
		"lesson_id", lessonID,
		"mode", mode,
		"attempt_id", fresh.AttemptID,
		"total_questions", len(fresh.QuestionIDs))

	return s.buildState(lesson, fresh, hearts), nil
}

// GetProgress returns the lesson's completion record.
func (s *QuizService) GetProgress(ctx context.Context, lessonID string) (*models.LessonProgressDetail, error) {
	if _, err := s.content.GetLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	progress, err := s.sessions.GetProgress(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &LessonProgress{LessonID: lessonID}
	}

	detail := &models.LessonProgressDetail{
		LessonID:  lessonID,
		Completed: progress.Completed,
		BestScore: progress.BestScore,
		XPEarned:  progress.XPEarned,
	}
	if progress.Completed {
		detail.CompletionRate = 1
	}
	return detail, nil
}

func (s *QuizService) newSession(lesson *LessonContent, questionIDs []string) *AttemptSession {
	maxScore := 0
	for _, id := range questionIDs {
		if content := lesson.question(id); content != nil {
			maxScore += content.Points
		}
	}

	return &AttemptSession{
		AttemptID:   s.newID(),
		LessonID:    lesson.LessonID,
		QuestionIDs: questionIDs,
		Status:      models.QuizInProgress,
		MaxScore:    maxScore,
		StartedAt:   time.Now(),
	}
}

func (s *QuizService) recordPass(ctx context.Context, lessonID string, session *AttemptSession) error {
	progress, err := s.sessions.GetProgress(ctx, lessonID)
	if err != nil {
		return err
	}
	if progress == nil {
		progress = &LessonProgress{LessonID: lessonID}
	}

	progress.Completed = true
	if session.EarnedScore > progress.BestScore {
		progress.BestScore = session.EarnedScore
	}
	progress.XPEarned += session.EarnedScore

	return s.sessions.SaveProgress(ctx, progress)
}

// buildState assembles the wire state. A quiz that is nominally in progress
// but out of hearts is reported as blocked_hearts; the learner can neither
// answer nor restart until a refill lands.
func (s *QuizService) buildState(lesson *LessonContent, session *AttemptSession, hearts *HeartsState) *models.LessonQuizState {
	status := session.Status
	if status == models.QuizInProgress && hearts.Remaining <= 0 {
		status = models.QuizBlockedHearts
	}

	state := &models.LessonQuizState{
		AttemptID:        session.AttemptID,
		Status:           status,
		QuestionIndex:    session.Index,
		TotalQuestions:   len(session.QuestionIDs),
		CorrectCount:     session.CorrectCount,
		EarnedScore:      session.EarnedScore,
		MaxScore:         session.MaxScore,
		Hearts:           hearts.Status(),
		CanAnswer:        status == models.QuizInProgress && session.Index < len(session.QuestionIDs),
		CanRestart:       status.Terminal() && hearts.Remaining > 0,
		WrongQuestionIDs: append([]string(nil), session.WrongQuestionIDs...),
	}

	if state.CanAnswer {
		if content := lesson.question(session.QuestionIDs[session.Index]); content != nil {
			state.CurrentQuestion = content.Question
		}
	}

	return state
}

func allQuestionIDs(lesson *LessonContent) []string {
	ids := make([]string, 0, len(lesson.Questions))
	for _, content := range lesson.Questions {
		ids = append(ids, content.Question.QuestionID)
	}
	return ids
}

// orderedWrongIDs returns the wrong-question subset in lesson order, with
// duplicates from repeated misses collapsed.
func orderedWrongIDs(lesson *LessonContent, wrongIDs []string) []string {
	wrong := make(map[string]bool, len(wrongIDs))
	for _, id := range wrongIDs {
		wrong[id] = true
	}

	var ordered []string
	for _, content := range lesson.Questions {
		if wrong[content.Question.QuestionID] {
			ordered = append(ordered, content.Question.QuestionID)
		}
	}
	return ordered
}
