package mockserver

import (
	"context"
	"time"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// HeartsLedger owns the lives budget: hearts are lost on wrong answers and
// refill one at a time on a fixed schedule.
type HeartsLedger struct {
	store    SessionStore
	capacity int
	refill   time.Duration
	now      func() time.Time
}

func NewHeartsLedger(store SessionStore, capacity int, refill time.Duration) *HeartsLedger {
	if capacity <= 0 {
		capacity = 5
	}
	if refill <= 0 {
		refill = 30 * time.Minute
	}
	return &HeartsLedger{
		store:    store,
		capacity: capacity,
		refill:   refill,
		now:      time.Now,
	}
}

// Current returns the hearts state after applying any due refills.
func (l *HeartsLedger) Current(ctx context.Context) (*HeartsState, error) {
	state, err := l.store.GetHearts(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &HeartsState{Remaining: l.capacity}
	}

	changed := l.applyRefills(state)
	if changed {
		if err := l.store.SaveHearts(ctx, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Lose deducts one heart and schedules the next refill.
func (l *HeartsLedger) Lose(ctx context.Context) (*HeartsState, error) {
	state, err := l.Current(ctx)
	if err != nil {
		return nil, err
	}
	if state.Remaining <= 0 {
		return state, nil
	}

	if state.Remaining == l.capacity {
		state.NextRefillAt = l.now().Add(l.refill)
	}
	state.Remaining--

	if err := l.store.SaveHearts(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (l *HeartsLedger) applyRefills(state *HeartsState) bool {
	changed := false
	now := l.now()
	for state.Remaining < l.capacity && !state.NextRefillAt.IsZero() && !now.Before(state.NextRefillAt) {
		state.Remaining++
		state.NextRefillAt = state.NextRefillAt.Add(l.refill)
		changed = true
	}
	if state.Remaining >= l.capacity && !state.NextRefillAt.IsZero() {
		state.NextRefillAt = time.Time{}
		changed = true
	}
	return changed
}

// Status converts a stored state into the wire shape.
func (s *HeartsState) Status() models.LessonHeartsStatus {
	status := models.LessonHeartsStatus{HeartsRemaining: s.Remaining}
	if !s.NextRefillAt.IsZero() {
		status.HeartsRefillAt = s.NextRefillAt.UTC().Format(time.RFC3339)
	}
	return status
}
