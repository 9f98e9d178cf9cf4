package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
	"github.com/noah-isme/uni-records/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.Student, error)
	Overview(student models.Student) models.StudentOverview
}

type sessionService interface {
	Login(ctx context.Context, email, password string) (*models.SessionToken, error)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	students registrationService
	sessions sessionService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(students registrationService, sessions sessionService) *AuthHandler {
	return &AuthHandler{students: students, sessions: sessions}
}

// Register creates a new student account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.students.Overview(*student))
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token)
}
