package models

// Student represents a registered student and their enrolled subjects.
// PasswordHash holds the bcrypt hash under the "password" key the datastore
// file has always used; the plaintext never reaches this struct.
type Student struct {
	ID           string    `json:"student_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Subjects     []Subject `json:"subjects"`
}

// AverageMark returns the arithmetic mean of the enrolled subjects' marks,
// 0 when no subjects are enrolled.
func (s *Student) AverageMark() float64 {
	if len(s.Subjects) == 0 {
		return 0
	}
	total := 0
	for _, subject := range s.Subjects {
		total += subject.Mark
	}
	return float64(total) / float64(len(s.Subjects))
}

// IsPassing reports whether the student's average mark meets the threshold.
// A student with no subjects has average 0 and therefore never passes.
func (s *Student) IsPassing(threshold float64) bool {
	return s.AverageMark() >= threshold
}

// DominantGrade returns the best letter grade among the enrolled subjects,
// or GradeNA when none are enrolled.
func (s *Student) DominantGrade() Grade {
	if len(s.Subjects) == 0 {
		return GradeNA
	}
	best := s.Subjects[0].Grade
	for _, subject := range s.Subjects[1:] {
		if subject.Grade.Rank() > best.Rank() {
			best = subject.Grade
		}
	}
	return best
}

// StudentOverview is the outward-facing projection of a Student: the password
// hash stripped and the computed average/passing state attached.
type StudentOverview struct {
	ID          string    `json:"student_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Subjects    []Subject `json:"subjects"`
	AverageMark float64   `json:"average_mark"`
	Passing     bool      `json:"passing"`
}

// NewStudentOverview projects a Student against the passing threshold.
func NewStudentOverview(s Student, threshold float64) StudentOverview {
	return StudentOverview{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Subjects:    s.Subjects,
		AverageMark: s.AverageMark(),
		Passing:     s.IsPassing(threshold),
	}
}

// SubjectByID returns the enrolled subject with the given ID.
func (s *Student) SubjectByID(id string) (Subject, bool) {
	for _, subject := range s.Subjects {
		if subject.ID == id {
			return subject, true
		}
	}
	return Subject{}, false
}

// HasSubjectNamed reports whether a subject of that exact name is enrolled.
func (s *Student) HasSubjectNamed(name string) bool {
	for _, subject := range s.Subjects {
		if subject.Name == name {
			return true
		}
	}
	return false
}
