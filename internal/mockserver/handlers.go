package mockserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumilearn/quiz-runner/internal/models"
	"github.com/lumilearn/quiz-runner/internal/validator"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type restartQuizRequest struct {
	Mode models.RestartMode `json:"mode" validate:"required,restart_mode"`
}

// QuizHandler exposes the lesson quiz API consumed by the gateway client.
type QuizHandler struct {
	service   *QuizService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewQuizHandler(service *QuizService, validator *validator.Validator, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

func (h *QuizHandler) GetQuizState(c *gin.Context) {
	lessonID := parseLessonID(c)
	if lessonID == "" {
		return
	}

	state, err := h.service.GetQuizState(c.Request.Context(), lessonID)
	if err != nil {
		h.respondError(c, err, "Failed to get quiz state")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quiz state retrieved successfully",
		Data:    state,
	})
}

func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	lessonID := parseLessonID(c)
	if lessonID == "" {
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ToValidationErrors(err),
		})
		return
	}

	result, err := h.service.SubmitAnswer(c.Request.Context(), lessonID, req)
	if err != nil {
		h.respondError(c, err, "Failed to submit answer")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Answer submitted successfully",
		Data:    result,
	})
}

func (h *QuizHandler) RestartQuiz(c *gin.Context) {
	lessonID := parseLessonID(c)
	if lessonID == "" {
		return
	}

	var req restartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ToValidationErrors(err),
		})
		return
	}

	state, err := h.service.Restart(c.Request.Context(), lessonID, req.Mode)
	if err != nil {
		h.respondError(c, err, "Failed to restart quiz")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quiz restarted successfully",
		Data:    state,
	})
}

func (h *QuizHandler) GetProgress(c *gin.Context) {
	lessonID := parseLessonID(c)
	if lessonID == "" {
		return
	}

	detail, err := h.service.GetProgress(c.Request.Context(), lessonID)
	if err != nil {
		h.respondError(c, err, "Failed to get lesson progress")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Lesson progress retrieved successfully",
		Data:    detail,
	})
}

func (h *QuizHandler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrLessonNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Lesson not found"})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "No active attempt for this lesson"})
	case errors.Is(err, ErrAttemptMismatch),
		errors.Is(err, ErrQuestionMismatch),
		errors.Is(err, ErrQuizNotActive),
		errors.Is(err, ErrNotRestartable),
		errors.Is(err, ErrNoWrongQuestions),
		errors.Is(err, ErrHeartsEmpty):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		h.logger.Error(message, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
	}
}

func parseLessonID(c *gin.Context) string {
	lessonID := strings.TrimSpace(c.Param("lesson_id"))
	if lessonID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid lesson_id",
			Details: "ID cannot be empty",
		})
		return ""
	}
	return lessonID
}
