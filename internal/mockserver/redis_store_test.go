package mockserver

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisSessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client)
}

func TestRedisSessionStore_SessionRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx, "lesson-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session := &AttemptSession{
		AttemptID:        "attempt-1",
		LessonID:         "lesson-1",
		QuestionIDs:      []string{"q1", "q2"},
		Index:            1,
		CorrectCount:     1,
		EarnedScore:      10,
		MaxScore:         20,
		Status:           models.QuizInProgress,
		WrongQuestionIDs: []string{"q1"},
		StartedAt:        time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.GetSession(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, session.AttemptID, loaded.AttemptID)
	assert.Equal(t, session.QuestionIDs, loaded.QuestionIDs)
	assert.Equal(t, session.WrongQuestionIDs, loaded.WrongQuestionIDs)
	assert.Equal(t, models.QuizInProgress, loaded.Status)

	require.NoError(t, store.DeleteSession(ctx, "lesson-1"))
	_, err = store.GetSession(ctx, "lesson-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_HeartsRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	state, err := store.GetHearts(ctx)
	require.NoError(t, err)
	assert.Nil(t, state, "unset hearts report nil so the ledger seeds the default")

	next := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, store.SaveHearts(ctx, &HeartsState{Remaining: 3, NextRefillAt: next}))

	state, err = store.GetHearts(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 3, state.Remaining)
	assert.True(t, state.NextRefillAt.Equal(next))
}

func TestRedisSessionStore_ProgressRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	progress, err := store.GetProgress(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Nil(t, progress)

	require.NoError(t, store.SaveProgress(ctx, &LessonProgress{
		LessonID:  "lesson-1",
		Completed: true,
		BestScore: 25,
		XPEarned:  40,
	}))

	progress, err = store.GetProgress(ctx, "lesson-1")
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.True(t, progress.Completed)
	assert.Equal(t, 25, progress.BestScore)
	assert.Equal(t, 40, progress.XPEarned)
}

func TestRedisSessionStore_WorksWithLedgerAndService(t *testing.T) {
	store := newRedisStore(t)
	lesson := &LessonContent{LessonID: "lesson-1", Questions: []*QuestionContent{
		mcContent("q1", "a", 10),
	}}
	ledger := NewHeartsLedger(store, 5, 30*time.Minute)
	svc := NewQuizService(NewMemoryContentStore([]*LessonContent{lesson}), store, ledger, 70, testLogger())
	ctx := context.Background()

	state, err := svc.GetQuizState(ctx, "lesson-1")
	require.NoError(t, err)
	result := submit(t, svc, state, "a")
	assert.True(t, result.QuizCompleted)
	assert.Equal(t, models.QuizPassed, result.Status)
}
