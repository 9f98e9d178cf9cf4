package service

import (
	"context"
	"math/rand"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uni-records/internal/models"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
	"github.com/noah-isme/uni-records/pkg/ids"
)

const (
	studentIDLength = 6
	subjectIDLength = 3
)

var (
	// Accepted address shape: firstname.lastname@university.com, all lowercase.
	emailPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+@university\.com$`)
	// Uppercase start, at least 5 letters, exactly 3 trailing digits.
	passwordPattern = regexp.MustCompile(`^[A-Z][A-Za-z]{4,}\d{3}$`)
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

// RecordRules carries the configurable academic business rules.
type RecordRules struct {
	MaxSubjects    int
	PassingAverage float64
}

// RegisterRequest holds the registration payload.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// ChangePasswordRequest holds the password change payload.
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// StudentService orchestrates registration, login and enrollment use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	rules     RecordRules
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger, rules RecordRules) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules.MaxSubjects <= 0 {
		rules.MaxSubjects = 4
	}
	if rules.PassingAverage <= 0 {
		rules.PassingAverage = 50
	}
	return &StudentService{repo: repo, validator: validate, logger: logger, rules: rules}
}

// Rules exposes the active business rules to the front ends.
func (s *StudentService) Rules() RecordRules {
	return s.rules
}

// ValidateEmail checks the address shape and that the name parts match the
// registered names case-insensitively.
func ValidateEmail(email, firstName, lastName string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	local := strings.SplitN(email, "@", 2)[0]
	parts := strings.SplitN(local, ".", 2)
	return parts[0] == strings.ToLower(firstName) && parts[1] == strings.ToLower(lastName)
}

// ValidatePassword checks the password complexity rule.
func ValidatePassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// Register validates and persists a new student, returning the created record.
func (s *StudentService) Register(ctx context.Context, req RegisterRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if !ValidateEmail(req.Email, req.FirstName, req.LastName) {
		return nil, appErrors.Clone(appErrors.ErrInvalidEmail, "")
	}
	if !ValidatePassword(req.Password) {
		return nil, appErrors.Clone(appErrors.ErrInvalidPassword, "")
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(students))
	for _, existing := range students {
		if existing.Email == req.Email {
			return nil, appErrors.Clone(appErrors.ErrEmailTaken, "")
		}
		taken[existing.ID] = struct{}{}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		ID:           ids.Numeric(studentIDLength, taken),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Subjects:     []models.Subject{},
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID))
	return student, nil
}

// Login verifies credentials and returns the student. The retry ceiling is
// enforced by the front ends, not here.
func (s *StudentService) Login(ctx context.Context, email, password string) (*models.Student, error) {
	student, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return student, nil
}

// Get returns the current record for a student.
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, error) {
	return s.repo.FindByID(ctx, studentID)
}

// Overview projects a student against the configured passing threshold.
func (s *StudentService) Overview(student models.Student) models.StudentOverview {
	return models.NewStudentOverview(student, s.rules.PassingAverage)
}

// EnrollSubject enrolls the student in a new subject with a random mark and
// derived grade.
func (s *StudentService) EnrollSubject(ctx context.Context, studentID, subjectName string) (*models.Student, *models.Subject, error) {
	subjectName = strings.TrimSpace(subjectName)
	if subjectName == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "subject name is required")
	}

	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if len(student.Subjects) >= s.rules.MaxSubjects {
		return nil, nil, appErrors.Clone(appErrors.ErrEnrollmentLimit, "")
	}
	if student.HasSubjectNamed(subjectName) {
		return nil, nil, appErrors.Clone(appErrors.ErrDuplicateSubject, "")
	}

	taken := make(map[string]struct{}, len(student.Subjects))
	for _, subject := range student.Subjects {
		taken[subject.ID] = struct{}{}
	}
	mark := rand.Intn(101)
	subject := models.Subject{
		ID:    ids.Numeric(subjectIDLength, taken),
		Name:  subjectName,
		Mark:  mark,
		Grade: models.CalculateGrade(mark),
	}
	student.Subjects = append(student.Subjects, subject)

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, nil, err
	}
	s.logger.Info("subject enrolled",
		zap.String("student_id", student.ID),
		zap.String("subject_id", subject.ID),
		zap.Int("enrolled", len(student.Subjects)))
	return student, &subject, nil
}

// RemoveSubject drops an enrolled subject by ID.
func (s *StudentService) RemoveSubject(ctx context.Context, studentID, subjectID string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if _, ok := student.SubjectByID(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	kept := make([]models.Subject, 0, len(student.Subjects)-1)
	for _, subject := range student.Subjects {
		if subject.ID != subjectID {
			kept = append(kept, subject)
		}
	}
	student.Subjects = kept

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("subject removed", zap.String("student_id", student.ID), zap.String("subject_id", subjectID))
	return student, nil
}

// ChangePassword validates and stores a new password for the student.
func (s *StudentService) ChangePassword(ctx context.Context, studentID string, req ChangePasswordRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "passwords do not match")
	}
	if !ValidatePassword(req.NewPassword) {
		return nil, appErrors.Clone(appErrors.ErrInvalidPassword, "")
	}

	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	student.PasswordHash = string(hash)

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("password changed", zap.String("student_id", student.ID))
	return student, nil
}
