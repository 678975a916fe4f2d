package mockserver

import (
	"context"
	"sync"
)

// MemoryContentStore serves lesson content from an in-memory map, the
// default for offline development.
type MemoryContentStore struct {
	mu      sync.RWMutex
	lessons map[string]*LessonContent
}

func NewMemoryContentStore(lessons []*LessonContent) *MemoryContentStore {
	store := &MemoryContentStore{lessons: make(map[string]*LessonContent, len(lessons))}
	for _, lesson := range lessons {
		store.lessons[lesson.LessonID] = lesson
	}
	return store
}

func (s *MemoryContentStore) GetLesson(_ context.Context, lessonID string) (*LessonContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lesson, ok := s.lessons[lessonID]
	if !ok {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

func (s *MemoryContentStore) ListLessonIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.lessons))
	for id := range s.lessons {
		ids = append(ids, id)
	}
	return ids, nil
}

// AddLesson inserts or replaces a lesson, used by the importer.
func (s *MemoryContentStore) AddLesson(lesson *LessonContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons[lesson.LessonID] = lesson
}

// MemorySessionStore is the in-memory SessionStore implementation.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*AttemptSession
	hearts   *HeartsState
	progress map[string]*LessonProgress
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*AttemptSession),
		progress: make(map[string]*LessonProgress),
	}
}

func (s *MemorySessionStore) GetSession(_ context.Context, lessonID string) (*AttemptSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[lessonID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	copied.QuestionIDs = append([]string(nil), session.QuestionIDs...)
	copied.WrongQuestionIDs = append([]string(nil), session.WrongQuestionIDs...)
	return &copied, nil
}

func (s *MemorySessionStore) SaveSession(_ context.Context, session *AttemptSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	copied.QuestionIDs = append([]string(nil), session.QuestionIDs...)
	copied.WrongQuestionIDs = append([]string(nil), session.WrongQuestionIDs...)
	s.sessions[session.LessonID] = &copied
	return nil
}

func (s *MemorySessionStore) DeleteSession(_ context.Context, lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, lessonID)
	return nil
}

func (s *MemorySessionStore) GetHearts(_ context.Context) (*HeartsState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hearts == nil {
		return nil, nil
	}
	copied := *s.hearts
	return &copied, nil
}

func (s *MemorySessionStore) SaveHearts(_ context.Context, state *HeartsState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.hearts = &copied
	return nil
}

func (s *MemorySessionStore) GetProgress(_ context.Context, lessonID string) (*LessonProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress, ok := s.progress[lessonID]
	if !ok {
		return nil, nil
	}
	copied := *progress
	return &copied, nil
}

func (s *MemorySessionStore) SaveProgress(_ context.Context, progress *LessonProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *progress
	s.progress[progress.LessonID] = &copied
	return nil
}
