package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lumilearn/quiz-runner/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonRecord is the persisted lesson row.
type LessonRecord struct {
	ID    string `gorm:"primaryKey;size:64"`
	Title string `gorm:"size:200;not null"`
}

func (LessonRecord) TableName() string {
	return "lessons"
}

// QuestionRecord persists one question with its payload and answer key as
// JSON documents, keyed to its lesson and position.
type QuestionRecord struct {
	ID          string         `gorm:"primaryKey;size:64"`
	LessonID    string         `gorm:"index;size:64;not null"`
	Position    int            `gorm:"not null"`
	Kind        string         `gorm:"size:32;not null"`
	Text        string         `gorm:"type:text;not null"`
	Payload     datatypes.JSON `gorm:"not null"`
	AnswerKey   datatypes.JSON `gorm:"not null"`
	Points      int            `gorm:"default:1"`
	Explanation string         `gorm:"type:text"`
}

func (QuestionRecord) TableName() string {
	return "lesson_questions"
}

// GormContentStore is the Postgres-backed ContentStore for dev setups that
// want persistent, editable content.
type GormContentStore struct {
	db *gorm.DB
}

func NewGormContentStore(db *gorm.DB) (*GormContentStore, error) {
	if err := db.AutoMigrate(&LessonRecord{}, &QuestionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate content tables: %w", err)
	}
	return &GormContentStore{db: db}, nil
}

func (s *GormContentStore) GetLesson(ctx context.Context, lessonID string) (*LessonContent, error) {
	var lessonRecord LessonRecord
	err := s.db.WithContext(ctx).First(&lessonRecord, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %s: %w", lessonID, err)
	}

	var questionRecords []QuestionRecord
	if err := s.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("position asc").
		Find(&questionRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions for lesson %s: %w", lessonID, err)
	}

	lesson := &LessonContent{
		LessonID:  lessonRecord.ID,
		Title:     lessonRecord.Title,
		Questions: make([]*QuestionContent, 0, len(questionRecords)),
	}

	for _, record := range questionRecords {
		content, err := recordToContent(record)
		if err != nil {
			return nil, err
		}
		lesson.Questions = append(lesson.Questions, content)
	}

	return lesson, nil
}

func (s *GormContentStore) ListLessonIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).
		Model(&LessonRecord{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return ids, nil
}

// SaveLesson upserts a lesson and its questions, used by the importer.
func (s *GormContentStore) SaveLesson(ctx context.Context, lesson *LessonContent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&LessonRecord{ID: lesson.LessonID, Title: lesson.Title}).Error; err != nil {
			return fmt.Errorf("failed to save lesson %s: %w", lesson.LessonID, err)
		}

		if err := tx.Where("lesson_id = ?", lesson.LessonID).Delete(&QuestionRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear questions for lesson %s: %w", lesson.LessonID, err)
		}

		for position, content := range lesson.Questions {
			record, err := contentToRecord(lesson.LessonID, position, content)
			if err != nil {
				return err
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to save question %s: %w", record.ID, err)
			}
		}
		return nil
	})
}

func recordToContent(record QuestionRecord) (*QuestionContent, error) {
	envelope := map[string]json.RawMessage{
		"questionId":   mustJSON(record.ID),
		"questionType": mustJSON(record.Kind),
		"questionText": mustJSON(record.Text),
		"payload":      json.RawMessage(record.Payload),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble question %s: %w", record.ID, err)
	}

	var question models.QuizQuestion
	if err := json.Unmarshal(raw, &question); err != nil {
		return nil, fmt.Errorf("failed to decode question %s: %w", record.ID, err)
	}

	var answer AnswerKey
	if err := json.Unmarshal(record.AnswerKey, &answer); err != nil {
		return nil, fmt.Errorf("failed to decode answer key for %s: %w", record.ID, err)
	}

	return &QuestionContent{
		Question:    &question,
		Answer:      &answer,
		Points:      record.Points,
		Explanation: record.Explanation,
	}, nil
}

func contentToRecord(lessonID string, position int, content *QuestionContent) (*QuestionRecord, error) {
	raw, err := json.Marshal(content.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question %s: %w", content.Question.QuestionID, err)
	}
	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to extract payload for %s: %w", content.Question.QuestionID, err)
	}

	answerKey, err := json.Marshal(content.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer key for %s: %w", content.Question.QuestionID, err)
	}

	return &QuestionRecord{
		ID:          content.Question.QuestionID,
		LessonID:    lessonID,
		Position:    position,
		Kind:        string(content.Question.QuestionType),
		Text:        content.Question.QuestionText,
		Payload:     datatypes.JSON(envelope.Payload),
		AnswerKey:   datatypes.JSON(answerKey),
		Points:      content.Points,
		Explanation: content.Explanation,
	}, nil
}

func mustJSON(v interface{}) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
