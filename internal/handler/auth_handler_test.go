package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
)

type registrationServiceMock struct {
	registerResp *models.Student
	registerErr  error
	lastRequest  service.RegisterRequest
	called       bool
}

func (m *registrationServiceMock) Register(ctx context.Context, req service.RegisterRequest) (*models.Student, error) {
	m.called = true
	m.lastRequest = req
	return m.registerResp, m.registerErr
}

func (m *registrationServiceMock) Overview(student models.Student) models.StudentOverview {
	return models.NewStudentOverview(student, 50)
}

type sessionServiceMock struct {
	loginResp *models.SessionToken
	loginErr  error
	lastEmail string
	called    bool
}

func (m *sessionServiceMock) Login(ctx context.Context, email, password string) (*models.SessionToken, error) {
	m.called = true
	m.lastEmail = email
	return m.loginResp, m.loginErr
}

func TestAuthHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &registrationServiceMock{
		registerResp: &models.Student{ID: "123456", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@university.com"},
	}
	h := NewAuthHandler(mockSvc, &sessionServiceMock{})

	payload, _ := json.Marshal(service.RegisterRequest{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane.doe@university.com", Password: "Passw123",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.called)
	assert.Equal(t, "jane.doe@university.com", mockSvc.lastRequest.Email)
	assert.NotContains(t, w.Body.String(), `"password"`)
}

func TestAuthHandlerRegisterInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&registrationServiceMock{}, &sessionServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"first_name":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Register(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerRegisterServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &registrationServiceMock{registerErr: appErrors.ErrEmailTaken}
	h := NewAuthHandler(mockSvc, &sessionServiceMock{})

	payload, _ := json.Marshal(service.RegisterRequest{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane.doe@university.com", Password: "Passw123",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Register(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
}

func TestAuthHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &sessionServiceMock{
		loginResp: &models.SessionToken{AccessToken: "token", ExpiresIn: 3600},
	}
	h := NewAuthHandler(&registrationServiceMock{}, mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"jane.doe@university.com","password":"Passw123"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.called)
	assert.Equal(t, "jane.doe@university.com", mockSvc.lastEmail)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestAuthHandlerLoginFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &sessionServiceMock{loginErr: appErrors.ErrInvalidCredentials}
	h := NewAuthHandler(&registrationServiceMock{}, mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"jane.doe@university.com","password":"Wrong999"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
