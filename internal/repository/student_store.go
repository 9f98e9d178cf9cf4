package repository

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/noah-isme/uni-records/internal/models"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
)

// StudentStore persists the full student collection as a JSON array in a
// single file. Every operation reads the whole file and every mutation writes
// it back in full; there is no partial write path. A mutex serializes
// operations within one process, cross-process access is not guarded.
type StudentStore struct {
	path string
	mu   sync.Mutex
}

// NewStudentStore opens the datastore at path, creating an empty file on
// first run. Any other IO failure is reported as a datastore error.
func NewStudentStore(path string) (*StudentStore, error) {
	store := &StudentStore{path: path}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrDataStoreIO.Code, appErrors.ErrDataStoreIO.Status, "failed to stat datastore file")
		}
		if err := store.writeAll([]models.Student{}); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Path returns the location of the backing file.
func (s *StudentStore) Path() string {
	return s.path
}

func (s *StudentStore) readAll() ([]models.Student, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataStoreIO.Code, appErrors.ErrDataStoreIO.Status, "failed to read datastore file")
	}
	var students []models.Student
	if err := json.Unmarshal(raw, &students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataStoreIO.Code, appErrors.ErrDataStoreIO.Status, "datastore file is not a valid student array")
	}
	return students, nil
}

func (s *StudentStore) writeAll(students []models.Student) error {
	raw, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrDataStoreIO.Code, appErrors.ErrDataStoreIO.Status, "failed to encode students")
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return appErrors.Wrap(err, appErrors.ErrDataStoreIO.Code, appErrors.ErrDataStoreIO.Status, "failed to write datastore file")
	}
	return nil
}

// List returns every student in stored order.
func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// FindByEmail returns the student registered under email.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].Email == email {
			return &students[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// FindByID returns the student with the given ID.
func (s *StudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			return &students[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Create appends a new student, rejecting duplicate emails.
func (s *StudentStore) Create(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range students {
		if students[i].Email == student.Email {
			return appErrors.Clone(appErrors.ErrEmailTaken, "")
		}
	}
	students = append(students, *student)
	return s.writeAll(students)
}

// Update replaces the record with a matching ID.
func (s *StudentStore) Update(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range students {
		if students[i].ID == student.ID {
			students[i] = *student
			return s.writeAll(students)
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Delete removes the record with a matching ID.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.readAll()
	if err != nil {
		return err
	}
	kept := students[:0]
	for _, student := range students {
		if student.ID != id {
			kept = append(kept, student)
		}
	}
	if len(kept) == len(students) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.writeAll(kept)
}

// Clear truncates the collection to empty.
func (s *StudentStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAll([]models.Student{})
}
