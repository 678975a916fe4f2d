package mockserver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mcContent(id, answer string, points int) *QuestionContent {
	return &QuestionContent{
		Question: &models.QuizQuestion{
			QuestionID:   id,
			QuestionType: models.MultipleChoice,
			QuestionText: "Pick one",
			Choice: &models.ChoicePayload{Choices: []models.Choice{
				{ID: "a", Text: "A"},
				{ID: "b", Text: "B"},
			}},
		},
		Answer:      &AnswerKey{ChoiceID: answer},
		Points:      points,
		Explanation: "because",
	}
}

func newTestService(t *testing.T, questions ...*QuestionContent) *QuizService {
	t.Helper()
	lesson := &LessonContent{LessonID: "lesson-1", Title: "Test", Questions: questions}
	store := NewMemorySessionStore()
	ledger := NewHeartsLedger(store, 5, 30*time.Minute)
	return NewQuizService(NewMemoryContentStore([]*LessonContent{lesson}), store, ledger, 70, testLogger())
}

func submit(t *testing.T, svc *QuizService, state *models.LessonQuizState, choiceID string) *models.SubmitResult {
	t.Helper()
	result, err := svc.SubmitAnswer(context.Background(), "lesson-1", models.SubmitRequest{
		AttemptID:  state.AttemptID,
		QuestionID: state.CurrentQuestion.QuestionID,
		Response:   &models.Response{ChoiceID: choiceID},
	})
	require.NoError(t, err)
	return result
}

func TestQuizService_GetQuizStateCreatesAttempt(t *testing.T) {
	svc := newTestService(t, mcContent("q1", "a", 10), mcContent("q2", "a", 10))

	state, err := svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)
	assert.NotEmpty(t, state.AttemptID)
	assert.Equal(t, models.QuizInProgress, state.Status)
	assert.Equal(t, 2, state.TotalQuestions)
	assert.Equal(t, 20, state.MaxScore)
	assert.True(t, state.CanAnswer)
	assert.Equal(t, "q1", state.CurrentQuestion.QuestionID)

	// A second fetch reuses the same attempt.
	again, err := svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, state.AttemptID, again.AttemptID)
}

func TestQuizService_UnknownLesson(t *testing.T) {
	svc := newTestService(t, mcContent("q1", "a", 10))
	_, err := svc.GetQuizState(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestQuizService_SubmitAdvancesAndCarriesNextQuestion(t *testing.T) {
	svc := newTestService(t, mcContent("q1", "a", 10), mcContent("q2", "b", 10))
	state, err := svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)

	result := submit(t, svc, state, "a")
	assert.True(t, result.Correct)
	assert.Equal(t, "because", result.Explanation)
	assert.False(t, result.QuizCompleted)
	assert.Equal(t, 1, result.QuestionIndex)
	assert.Equal(t, 10, result.EarnedScore)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q2", result.NextQuestion.QuestionID)
	assert.Nil(t, result.Passed)
}

func TestQuizService_SubmitValidatesAttemptAndQuestion(t *testing.T) {
	svc := newTestService(t, mcContent("q1", "a", 10), mcContent("q2", "a", 10))
	state, err := svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.SubmitAnswer(ctx, "lesson-1", models.SubmitRequest{
		AttemptID:  "stale-attempt",
		QuestionID: "q1",
		Response:   &models.Response{ChoiceID: "a"},
	})
	assert.ErrorIs(t, err, ErrAttemptMismatch)

	_, err = svc.SubmitAnswer(ctx, "lesson-1", models.SubmitRequest{
		AttemptID:  state.AttemptID,
		QuestionID: "q2",
		Response:   &models.Response{ChoiceID: "a"},
	})
	assert.ErrorIs(t, err, ErrQuestionMismatch)
}

func TestQuizService_PassThresholdAndProgress(t *testing.T) {
	// Three questions at 70%: two correct of three is 66%, fails; all three pass.
	svc := newTestService(t,
		mcContent("q1", "a", 10),
		mcContent("q2", "a", 10),
		mcContent("q3", "a", 10),
	)
	state, err := svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)

	submit(t, svc, state, "a")
	state, err = svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "a")
	state, err = svc.GetQuizState(context.Background(), "lesson-1")
	require.NoError(t, err)
	result := submit(t, svc, state, "a")

	assert.True(t, result.QuizCompleted)
	assert.Equal(t, models.QuizPassed, result.Status)
	require.NotNil(t, result.Passed)
	assert.True(t, *result.Passed)

	detail, err := svc.GetProgress(context.Background(), "lesson-1")
	require.NoError(t, err)
	assert.True(t, detail.Completed)
	assert.Equal(t, 30, detail.BestScore)
	assert.Equal(t, 30, detail.XPEarned)
	assert.Equal(t, float64(1), detail.CompletionRate)
}

func TestQuizService_WrongAnswersFailAndTrackIDs(t *testing.T) {
	svc := newTestService(t,
		mcContent("q1", "a", 10),
		mcContent("q2", "a", 10),
		mcContent("q3", "a", 10),
	)
	ctx := context.Background()
	state, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)

	submit(t, svc, state, "b")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "b")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	result := submit(t, svc, state, "a")

	assert.True(t, result.QuizCompleted)
	assert.Equal(t, models.QuizFailed, result.Status)
	require.NotNil(t, result.Passed)
	assert.False(t, *result.Passed)
	assert.Equal(t, []string{"q1", "q2"}, result.WrongQuestionIDs)
	assert.Equal(t, 3, result.Hearts.HeartsRemaining)
}

func TestQuizService_RunningOutOfHeartsEndsAttempt(t *testing.T) {
	lesson := &LessonContent{LessonID: "lesson-1", Questions: []*QuestionContent{
		mcContent("q1", "a", 10),
		mcContent("q2", "a", 10),
		mcContent("q3", "a", 10),
	}}
	store := NewMemorySessionStore()
	ledger := NewHeartsLedger(store, 2, 30*time.Minute)
	svc := NewQuizService(NewMemoryContentStore([]*LessonContent{lesson}), store, ledger, 70, testLogger())
	ctx := context.Background()

	state, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "b")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	result := submit(t, svc, state, "b")

	assert.True(t, result.QuizCompleted, "zero hearts ends the attempt early")
	assert.Equal(t, models.QuizFailed, result.Status)
	assert.Equal(t, 0, result.Hearts.HeartsRemaining)

	// Further submissions are rejected; the blocked state reports no restart.
	_, err = svc.SubmitAnswer(ctx, "lesson-1", models.SubmitRequest{
		AttemptID:  state.AttemptID,
		QuestionID: "q3",
		Response:   &models.Response{ChoiceID: "a"},
	})
	assert.ErrorIs(t, err, ErrQuizNotActive)

	blocked, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	assert.False(t, blocked.CanRestart)

	_, err = svc.Restart(ctx, "lesson-1", models.RestartFull)
	assert.ErrorIs(t, err, ErrHeartsEmpty)
}

func TestQuizService_BlockedHeartsStateOnLoad(t *testing.T) {
	lesson := &LessonContent{LessonID: "lesson-1", Questions: []*QuestionContent{
		mcContent("q1", "a", 10),
		mcContent("q2", "a", 10),
	}}
	store := NewMemorySessionStore()
	ledger := NewHeartsLedger(store, 1, 30*time.Minute)
	svc := NewQuizService(NewMemoryContentStore([]*LessonContent{lesson}), store, ledger, 70, testLogger())
	ctx := context.Background()

	state, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)

	// Drain the single heart mid-quiz without finishing.
	_, err = ledger.Lose(ctx)
	require.NoError(t, err)
	_ = state

	// Force the session back to in_progress with hearts at zero.
	session, err := store.GetSession(ctx, "lesson-1")
	require.NoError(t, err)
	require.Equal(t, models.QuizInProgress, session.Status)

	blocked, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizBlockedHearts, blocked.Status)
	assert.False(t, blocked.CanAnswer)
	assert.False(t, blocked.CanRestart)
	assert.NotEmpty(t, blocked.Hearts.HeartsRefillAt)
}

func TestQuizService_RestartModes(t *testing.T) {
	svc := newTestService(t,
		mcContent("q1", "a", 10),
		mcContent("q2", "a", 10),
		mcContent("q3", "a", 10),
	)
	ctx := context.Background()

	state, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)

	// Restarting an in-progress quiz is rejected.
	_, err = svc.Restart(ctx, "lesson-1", models.RestartFull)
	assert.ErrorIs(t, err, ErrNotRestartable)

	// Fail with q1 and q3 wrong.
	submit(t, svc, state, "b")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "a")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "b")

	fresh, err := svc.Restart(ctx, "lesson-1", models.RestartWrongOnly)
	require.NoError(t, err)
	assert.NotEqual(t, state.AttemptID, fresh.AttemptID)
	assert.Equal(t, 2, fresh.TotalQuestions)
	assert.Equal(t, 20, fresh.MaxScore)
	assert.Equal(t, "q1", fresh.CurrentQuestion.QuestionID)
	assert.Empty(t, fresh.WrongQuestionIDs)

	// A wrong-only restart of the fresh (in-progress) attempt is rejected
	// again, and after passing it, wrong-only has nothing to replay.
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	submit(t, svc, state, "a")
	state, err = svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	result := submit(t, svc, state, "a")
	require.True(t, result.QuizCompleted)
	assert.Equal(t, models.QuizPassed, result.Status)

	_, err = svc.Restart(ctx, "lesson-1", models.RestartWrongOnly)
	assert.ErrorIs(t, err, ErrNoWrongQuestions)

	full, err := svc.Restart(ctx, "lesson-1", models.RestartFull)
	require.NoError(t, err)
	assert.Equal(t, 3, full.TotalQuestions)
}
