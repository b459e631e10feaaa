package handlers

import (
	"net/http"

	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	gradingHandler *GradingHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(serviceManager.Exam(), logger),
		gradingHandler: NewGradingHandler(serviceManager.Grading(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		exams := v1.Group("/exams")
		{
			exams.POST("/import", hm.examHandler.ImportAiken)
			exams.POST("", hm.examHandler.CreateExam)
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.PUT("/:id", hm.examHandler.UpdateExam)
			exams.DELETE("/:id", hm.examHandler.DeleteExam)

			// Grading
			exams.POST("/:id/submissions", hm.gradingHandler.SubmitAnswers)
			exams.POST("/:id/submissions/batch", hm.gradingHandler.SubmitBatch)
			exams.GET("/:id/results", hm.gradingHandler.ListExamResults)
			exams.GET("/:id/statistics", hm.gradingHandler.GetExamStatistics)
			exams.GET("/:id/report", hm.gradingHandler.ExportReport)
		}

		results := v1.Group("/results")
		{
			results.GET("", hm.gradingHandler.ListResults)
			results.GET("/:id", hm.gradingHandler.GetResult)
		}

		v1.GET("/statistics", hm.gradingHandler.GetStatistics)
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "exam-service",
	})
}
