package mockserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the lesson quiz API on the router.
func (h *QuizHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		lessons := v1.Group("/lessons")
		{
			lessons.GET("/:lesson_id/quiz", h.GetQuizState)
			lessons.POST("/:lesson_id/quiz/answers", h.SubmitAnswer)
			lessons.POST("/:lesson_id/quiz/restart", h.RestartQuiz)
			lessons.GET("/:lesson_id/progress", h.GetProgress)
		}
	}
}
