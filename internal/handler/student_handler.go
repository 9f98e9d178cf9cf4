package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records/internal/middleware"
	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
	"github.com/noah-isme/uni-records/pkg/response"
)

type enrollmentService interface {
	Get(ctx context.Context, studentID string) (*models.Student, error)
	EnrollSubject(ctx context.Context, studentID, subjectName string) (*models.Student, *models.Subject, error)
	RemoveSubject(ctx context.Context, studentID, subjectID string) (*models.Student, error)
	ChangePassword(ctx context.Context, studentID string, req service.ChangePasswordRequest) (*models.Student, error)
	Overview(student models.Student) models.StudentOverview
}

// EnrollRequest is the enrollment form payload.
type EnrollRequest struct {
	SubjectName string `json:"subject_name" binding:"required"`
}

// StudentHandler exposes the logged-in student's enrollment endpoints.
type StudentHandler struct {
	students enrollmentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students enrollmentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Me returns the current student with computed average and grade state.
func (h *StudentHandler) Me(c *gin.Context) {
	claims := middleware.CurrentStudent(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	student, err := h.students.Get(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.students.Overview(*student))
}

// Enroll adds a subject with a randomly assigned mark.
func (h *StudentHandler) Enroll(c *gin.Context) {
	claims := middleware.CurrentStudent(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, subject, err := h.students.EnrollSubject(c.Request.Context(), claims.StudentID, req.SubjectName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"subject": subject,
		"student": h.students.Overview(*student),
	})
}

// RemoveSubject drops an enrolled subject.
func (h *StudentHandler) RemoveSubject(c *gin.Context) {
	claims := middleware.CurrentStudent(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	student, err := h.students.RemoveSubject(c.Request.Context(), claims.StudentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.students.Overview(*student))
}

// ChangePassword replaces the student's password.
func (h *StudentHandler) ChangePassword(c *gin.Context) {
	claims := middleware.CurrentStudent(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if _, err := h.students.ChangePassword(c.Request.Context(), claims.StudentID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
