package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-records/internal/models"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
)

// AuthConfig defines configuration for HTTP session tokens.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService issues and validates session tokens for the HTTP front end.
// Credential checking is delegated to the student service.
type AuthService struct {
	students *StudentService
	logger   *zap.Logger
	config   AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students *StudentService, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiration == 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{students: students, logger: logger, config: config}
}

// Login authenticates a student and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.SessionToken, error) {
	student, err := s.students.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.JWTClaims{
		StudentID: student.ID,
		Email:     student.Email,
		FullName:  fmt.Sprintf("%s %s", student.FirstName, student.LastName),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   student.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.logger.Info("student logged in", zap.String("student_id", student.ID))
	return &models.SessionToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		Student:     s.students.Overview(*student),
	}, nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
