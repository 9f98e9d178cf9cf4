package models

// Grade is a letter grade band derived from a numeric mark.
type Grade string

const (
	GradeHD Grade = "HD"
	GradeD  Grade = "D"
	GradeC  Grade = "C"
	GradeP  Grade = "P"
	GradeF  Grade = "F"

	// GradeNA labels students with no enrolled subjects in grade groupings.
	GradeNA Grade = "N/A"
)

// GradeOrder lists letter grades from best to worst. GradeNA is not a real
// grade and sorts after all of them.
var GradeOrder = []Grade{GradeHD, GradeD, GradeC, GradeP, GradeF}

var gradeRank = map[Grade]int{GradeHD: 4, GradeD: 3, GradeC: 2, GradeP: 1, GradeF: 0}

// CalculateGrade maps a mark in [0,100] onto its letter grade.
// Thresholds: HD >= 85, D >= 75, C >= 65, P >= 50, else F.
func CalculateGrade(mark int) Grade {
	switch {
	case mark >= 85:
		return GradeHD
	case mark >= 75:
		return GradeD
	case mark >= 65:
		return GradeC
	case mark >= 50:
		return GradeP
	default:
		return GradeF
	}
}

// Rank returns the ordering weight of a grade, higher is better.
// Unknown grades (including GradeNA) rank below GradeF.
func (g Grade) Rank() int {
	if rank, ok := gradeRank[g]; ok {
		return rank
	}
	return -1
}

// Subject represents a single enrollment owned by one student.
type Subject struct {
	ID    string `json:"subject_id"`
	Name  string `json:"name"`
	Mark  int    `json:"mark"`
	Grade Grade  `json:"grade"`
}
