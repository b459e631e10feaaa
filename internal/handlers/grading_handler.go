package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/models"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
}

func NewGradingHandler(gradingService services.GradingService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
	}
}

// BatchSubmissionRequest carries several submissions for one exam
type BatchSubmissionRequest struct {
	Submissions []models.Submission `json:"submissions" binding:"required"`
}

// SubmitAnswers grades one submission
// @Summary Submit answers
// @Tags grading
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Success 201 {object} SuccessResponse{data=models.ScoredResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exams/{id}/submissions [post]
func (h *GradingHandler) SubmitAnswers(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	h.LogRequest(c, "Submitting answers", "exam_id", examID)

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.gradingService.Submit(c.Request.Context(), examID, &sub)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission graded", result)
}

// SubmitBatch grades several submissions against one exam
// @Router /exams/{id}/submissions/batch [post]
func (h *GradingHandler) SubmitBatch(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	var req BatchSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting batch", "exam_id", examID, "count", len(req.Submissions))

	results, err := h.gradingService.SubmitBatch(c.Request.Context(), examID, req.Submissions)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Batch graded", results)
}

// ListExamResults lists the results recorded for an exam
// @Router /exams/{id}/results [get]
func (h *GradingHandler) ListExamResults(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	filters, page, size, ok := parseResultFilters(c)
	if !ok {
		return
	}
	filters.ExamID = examID

	results, total, err := h.gradingService.ListResults(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Items: results, Total: total, Page: page, Size: size})
}

// ListResults lists results across exams
// @Router /results [get]
func (h *GradingHandler) ListResults(c *gin.Context) {
	filters, page, size, ok := parseResultFilters(c)
	if !ok {
		return
	}
	filters.ExamID = c.Query("exam_id")

	results, total, err := h.gradingService.ListResults(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Items: results, Total: total, Page: page, Size: size})
}

// GetResult returns one scored result
// @Router /results/{id} [get]
func (h *GradingHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	result, err := h.gradingService.GetResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExamStatistics summarizes the results of one exam
// @Router /exams/{id}/statistics [get]
func (h *GradingHandler) GetExamStatistics(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	stats, err := h.gradingService.ExamStatistics(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStatistics summarizes results matching the query filters
// @Param exam_id query string false "Exam ID"
// @Param subject query string false "Subject"
// @Param student_ref query string false "Student reference"
// @Router /statistics [get]
func (h *GradingHandler) GetStatistics(c *gin.Context) {
	var filters services.StatisticsFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	stats, err := h.gradingService.Statistics(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportReport downloads an exam's results as CSV or XLSX
// @Param format query string false "csv or xlsx" default(csv)
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /exams/{id}/report [get]
func (h *GradingHandler) ExportReport(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	format := models.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(models.ExportCSV))))

	h.LogRequest(c, "Exporting results", "exam_id", examID, "format", format)

	data, err := h.gradingService.ExportResults(c.Request.Context(), examID, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("results-%s-%s.%s", examID, time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType(format), data)
}

func contentType(format models.ExportFormat) string {
	if format == models.ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func parseResultFilters(c *gin.Context) (repositories.ResultFilters, int, int, bool) {
	page, size, limit, offset := parsePage(c)
	filters := repositories.ResultFilters{
		StudentRef: c.Query("student_ref"),
		Subject:    c.Query("subject"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		Limit:      limit,
		Offset:     offset,
	}

	if v := c.Query("passed"); v != "" {
		passed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid passed filter",
				Details: err.Error(),
			})
			return filters, 0, 0, false
		}
		filters.Passed = &passed
	}

	return filters, page, size, true
}
