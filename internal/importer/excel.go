package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lumilearn/quiz-runner/internal/mockserver"
	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/lumilearn/quiz-runner/internal/validator"
	"github.com/xuri/excelize/v2"
)

const questionsSheet = "Questions"

var requiredColumns = []string{
	"lesson_id", "lesson_title", "question_id", "question_type", "question_text", "payload", "answer_key",
}

// RowError reports a single workbook row that could not be imported.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ImportResult summarizes one workbook import. Lessons holds the content
// assembled from the rows that parsed cleanly; Errors lists every rejected
// row, so a mostly good workbook still imports.
type ImportResult struct {
	TotalRows    int                         `json:"total_rows"`
	SuccessCount int                         `json:"success_count"`
	ErrorCount   int                         `json:"error_count"`
	Errors       []RowError                  `json:"errors,omitempty"`
	Lessons      []*mockserver.LessonContent `json:"-"`
}

// ExcelImporter reads lesson quiz content from a workbook. Expected layout is
// a single "Questions" sheet with a header row; questions with the same
// lesson_id are grouped into one lesson in row order.
type ExcelImporter struct {
	content *validator.ContentValidator
	logger  *slog.Logger
}

func NewExcelImporter(logger *slog.Logger) *ExcelImporter {
	return &ExcelImporter{
		content: validator.NewContentValidator(),
		logger:  logger,
	}
}

// ImportFile opens a workbook from disk and imports it.
func (im *ExcelImporter) ImportFile(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return im.importWorkbook(f)
}

// Import reads a workbook from a stream and imports it.
func (im *ExcelImporter) Import(reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return im.importWorkbook(f)
}

func (im *ExcelImporter) importWorkbook(f *excelize.File) (*ImportResult, error) {
	rows, err := f.GetRows(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", questionsSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q must have a header row and at least one data row", questionsSheet)
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}

	var lessons []*mockserver.LessonContent
	byID := make(map[string]*mockserver.LessonContent)

	for rowIndex, row := range rows[1:] {
		rowNum := rowIndex + 2
		lessonID, content, rowErr := im.parseRow(row, headerMap, rowNum)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			result.ErrorCount++
			continue
		}

		lesson, ok := byID[lessonID]
		if !ok {
			lesson = &mockserver.LessonContent{
				LessonID: lessonID,
				Title:    cell(row, headerMap, "lesson_title"),
			}
			byID[lessonID] = lesson
			lessons = append(lessons, lesson)
		}
		lesson.Questions = append(lesson.Questions, content)
		result.SuccessCount++
	}

	result.Lessons = lessons
	im.logger.Info("Workbook imported",
		"lessons", len(lessons),
		"questions", result.SuccessCount,
		"errors", result.ErrorCount)

	return result, nil
}

func (im *ExcelImporter) parseRow(row []string, headerMap map[string]int, rowNum int) (string, *mockserver.QuestionContent, *RowError) {
	lessonID := cell(row, headerMap, "lesson_id")
	if lessonID == "" {
		return "", nil, &RowError{Row: rowNum, Column: "lesson_id", Message: "lesson_id is required"}
	}

	kind := models.QuestionKind(cell(row, headerMap, "question_type"))
	if !kind.Valid() {
		return "", nil, &RowError{Row: rowNum, Column: "question_type", Message: fmt.Sprintf("unknown question type %q", kind)}
	}

	questionID := cell(row, headerMap, "question_id")
	if questionID == "" {
		return "", nil, &RowError{Row: rowNum, Column: "question_id", Message: "question_id is required"}
	}

	envelope := map[string]json.RawMessage{
		"questionId":   mustJSON(questionID),
		"questionType": mustJSON(kind),
		"questionText": mustJSON(cell(row, headerMap, "question_text")),
		"payload":      json.RawMessage(cell(row, headerMap, "payload")),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", nil, &RowError{Row: rowNum, Column: "payload", Message: err.Error()}
	}

	var question models.QuizQuestion
	if err := json.Unmarshal(raw, &question); err != nil {
		return "", nil, &RowError{Row: rowNum, Column: "payload", Message: fmt.Sprintf("invalid payload: %v", err)}
	}
	if err := im.content.ValidateQuestion(&question); err != nil {
		return "", nil, &RowError{Row: rowNum, Column: "payload", Message: err.Error()}
	}

	var answer mockserver.AnswerKey
	if err := json.Unmarshal([]byte(cell(row, headerMap, "answer_key")), &answer); err != nil {
		return "", nil, &RowError{Row: rowNum, Column: "answer_key", Message: fmt.Sprintf("invalid answer key: %v", err)}
	}

	points := 1
	if raw := cell(row, headerMap, "points"); raw != "" {
		points, err = strconv.Atoi(raw)
		if err != nil || points <= 0 {
			return "", nil, &RowError{Row: rowNum, Column: "points", Message: fmt.Sprintf("invalid points value %q", raw)}
		}
	}

	return lessonID, &mockserver.QuestionContent{
		Question:    &question,
		Answer:      &answer,
		Points:      points,
		Explanation: cell(row, headerMap, "explanation"),
	}, nil
}

func cell(row []string, headerMap map[string]int, column string) string {
	idx, ok := headerMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func mustJSON(v interface{}) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
