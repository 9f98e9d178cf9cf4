package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/uni-records/pkg/errors"
)

func newTestAuthService(expiry time.Duration) (*AuthService, *StudentService) {
	students := NewStudentService(&memStudentRepo{}, validator.New(), zap.NewNop(), RecordRules{MaxSubjects: 4, PassingAverage: 50})
	auth := NewAuthService(students, zap.NewNop(), AuthConfig{Secret: "test_secret", Expiration: expiry, Issuer: "uni-records-test"})
	return auth, students
}

func TestAuthLoginIssuesValidToken(t *testing.T) {
	auth, students := newTestAuthService(time.Hour)
	ctx := context.Background()

	registered, err := students.Register(ctx, RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@university.com", Password: "Passw123"})
	require.NoError(t, err)

	token, err := auth.Login(ctx, "jane.doe@university.com", "Passw123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, registered.ID, token.Student.ID)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := auth.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.StudentID)
	assert.Equal(t, "jane.doe@university.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.FullName)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	auth, students := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := students.Register(ctx, RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@university.com", Password: "Passw123"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "jane.doe@university.com", "Wrongpw999")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthValidateTokenRejectsForgeries(t *testing.T) {
	auth, students := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := students.Register(ctx, RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@university.com", Password: "Passw123"})
	require.NoError(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	other := NewAuthService(students, zap.NewNop(), AuthConfig{Secret: "other_secret", Expiration: time.Hour})
	stolen, err := other.Login(ctx, "jane.doe@university.com", "Passw123")
	require.NoError(t, err)

	_, err = auth.ValidateToken(stolen.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized, "token signed with another secret must fail")
}

func TestAuthValidateTokenRejectsExpired(t *testing.T) {
	auth, students := newTestAuthService(-time.Minute)
	ctx := context.Background()

	_, err := students.Register(ctx, RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@university.com", Password: "Passw123"})
	require.NoError(t, err)

	token, err := auth.Login(ctx, "jane.doe@university.com", "Passw123")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
