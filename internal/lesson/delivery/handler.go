package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"melodica-backend/internal/lesson/domain"
	lessondto "melodica-backend/internal/lesson/dto"
	"melodica-backend/internal/lesson/usecase"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	lessonUsecase usecase.LessonUsecase
}

func NewLessonHandler(lessonUsecase usecase.LessonUsecase) *LessonHandler {
	return &LessonHandler{
		lessonUsecase: lessonUsecase,
	}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	teacherID := c.GetString("userID")

	limit := 20
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	var status *domain.LessonStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := domain.LessonStatus(statusStr)
		status = &s
	}

	lessons, total, err := h.lessonUsecase.ListLessons(teacherID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lessondto.LessonsResponse{Lessons: lessons, Total: total})
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	teacherID := c.GetString("userID")
	lesson, err := h.lessonUsecase.GetLesson(teacherID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req lessondto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacherID := c.GetString("userID")
	lesson, err := h.lessonUsecase.CreateLesson(teacherID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	var req lessondto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacherID := c.GetString("userID")
	lesson, err := h.lessonUsecase.UpdateLesson(teacherID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) CancelLesson(c *gin.Context) {
	teacherID := c.GetString("userID")
	lesson, err := h.lessonUsecase.CancelLesson(teacherID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) ListStudents(c *gin.Context) {
	teacherID := c.GetString("userID")
	students, err := h.lessonUsecase.ListStudents(teacherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lessondto.StudentsResponse{Students: students})
}
