package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories"
	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds AIKEN files accepted through multipart upload
const maxUploadBytes = 2 << 20

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// ImportAiken creates an exam from AIKEN text
// @Summary Import AIKEN exam
// @Description Accepts JSON {title, content, ...} or a multipart form with a "file" field
// @Tags exams
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} SuccessResponse{data=models.ImportSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /exams/import [post]
func (h *ExamHandler) ImportAiken(c *gin.Context) {
	h.LogRequest(c, "Importing AIKEN exam")

	var req services.ImportAikenRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if !h.bindUpload(c, &req) {
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	summary, err := h.examService.ImportAiken(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Exam imported", summary)
}

func (h *ExamHandler) bindUpload(c *gin.Context, req *services.ImportAikenRequest) bool {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "File is required", Details: err.Error()})
		return false
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "File is too large"})
		return false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cannot read file", Details: err.Error()})
		return false
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cannot read file", Details: err.Error()})
		return false
	}

	req.Content = string(content)
	req.Title = c.PostForm("title")
	req.Description = c.PostForm("description")
	req.Subject = c.PostForm("subject")

	timeLimit, present, err := parseIntForm(c, "time_limit_seconds")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid form field", Details: err.Error()})
		return false
	}
	if present {
		req.TimeLimitSeconds = timeLimit
	}

	passing, present, err := parseIntForm(c, "passing_percentage")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid form field", Details: err.Error()})
		return false
	}
	if present {
		req.PassingPercentage = &passing
	}
	return true
}

// CreateExam creates an exam from structured questions
// @Router /exams [post]
func (h *ExamHandler) CreateExam(c *gin.Context) {
	h.LogRequest(c, "Creating exam")

	var req services.SaveExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Exam created", exam)
}

// UpdateExam re-assembles an exam from edited questions
// @Router /exams/{id} [put]
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Updating exam", "exam_id", id)

	var req services.SaveExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exam updated", exam)
}

// GetExam returns an assembled exam
// @Router /exams/{id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// ListExams lists exams, optionally by subject
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	page, size, limit, offset := parsePage(c)

	exams, total, err := h.examService.List(c.Request.Context(), repositories.ExamFilters{
		Subject: c.Query("subject"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Items: exams, Total: total, Page: page, Size: size})
}

// DeleteExam removes an exam
// @Router /exams/{id} [delete]
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting exam", "exam_id", id)

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIntForm reads an optional integer form field. A field that is present
// but not an integer is an error.
func parseIntForm(c *gin.Context, field string) (int, bool, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer, got %q", field, raw)
	}
	return value, true, nil
}
