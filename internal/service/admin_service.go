package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-records/internal/models"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
	"github.com/noah-isme/uni-records/pkg/export"
)

type adminRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// GradeGroup is one bucket of the dominant-grade report.
type GradeGroup struct {
	Grade    models.Grade             `json:"grade"`
	Students []models.StudentOverview `json:"students"`
}

// PassFailPartition splits the population by passing average,
// preserving stored order within each side.
type PassFailPartition struct {
	Passing []models.StudentOverview `json:"passing"`
	Failing []models.StudentOverview `json:"failing"`
}

// Export formats for the admin overview report.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// AdminService provides the read-mostly aggregations and destructive
// operations available to administrators.
type AdminService struct {
	repo   adminRepository
	logger *zap.Logger
	rules  RecordRules
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
}

// NewAdminService constructs the admin service.
func NewAdminService(repo adminRepository, logger *zap.Logger, rules RecordRules) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules.PassingAverage <= 0 {
		rules.PassingAverage = 50
	}
	return &AdminService{
		repo:   repo,
		logger: logger,
		rules:  rules,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
	}
}

// List returns every student with their computed average and pass state.
func (s *AdminService) List(ctx context.Context) ([]models.StudentOverview, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	overviews := make([]models.StudentOverview, 0, len(students))
	for _, student := range students {
		overviews = append(overviews, models.NewStudentOverview(student, s.rules.PassingAverage))
	}
	return overviews, nil
}

// RemoveStudent deletes one student record.
func (s *AdminService) RemoveStudent(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student removed", zap.String("student_id", id))
	return nil
}

// ClearAll wipes the datastore.
func (s *AdminService) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.logger.Warn("student datastore cleared")
	return nil
}

// GroupByDominantGrade buckets every student by their best letter grade.
// Groups come back in rank order HD, D, C, P, F with N/A last; students
// without subjects land in N/A.
func (s *AdminService) GroupByDominantGrade(ctx context.Context) ([]GradeGroup, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[models.Grade][]models.StudentOverview)
	for _, student := range students {
		grade := student.DominantGrade()
		buckets[grade] = append(buckets[grade], models.NewStudentOverview(student, s.rules.PassingAverage))
	}

	order := append([]models.Grade{}, models.GradeOrder...)
	order = append(order, models.GradeNA)
	groups := make([]GradeGroup, 0, len(order))
	for _, grade := range order {
		members := buckets[grade]
		if members == nil {
			members = []models.StudentOverview{}
		}
		groups = append(groups, GradeGroup{Grade: grade, Students: members})
	}
	return groups, nil
}

// PartitionPassFail splits all students into passing and failing lists.
func (s *AdminService) PartitionPassFail(ctx context.Context) (*PassFailPartition, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	partition := &PassFailPartition{
		Passing: []models.StudentOverview{},
		Failing: []models.StudentOverview{},
	}
	for _, student := range students {
		overview := models.NewStudentOverview(student, s.rules.PassingAverage)
		if overview.Passing {
			partition.Passing = append(partition.Passing, overview)
		} else {
			partition.Failing = append(partition.Failing, overview)
		}
	}
	return partition, nil
}

// ExportOverview renders the student overview as a CSV or PDF report.
func (s *AdminService) ExportOverview(ctx context.Context, format string) ([]byte, string, error) {
	overviews, err := s.List(ctx)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Subjects", "Average", "Result"},
		Rows:    make([][]string, 0, len(overviews)),
	}
	for _, o := range overviews {
		result := "FAIL"
		if o.Passing {
			result = "PASS"
		}
		data.Rows = append(data.Rows, []string{
			o.ID,
			fmt.Sprintf("%s %s", o.FirstName, o.LastName),
			o.Email,
			strconv.Itoa(len(o.Subjects)),
			fmt.Sprintf("%.1f", o.AverageMark),
			result,
		})
	}

	switch format {
	case ExportFormatCSV:
		raw, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return raw, "text/csv", nil
	case ExportFormatPDF:
		raw, err := s.pdf.Render(data, "Student Overview")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return raw, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
