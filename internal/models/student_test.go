package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStudent() Student {
	return Student{
		ID:           "123456",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane.doe@university.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Subjects: []Subject{
			{ID: "101", Name: "Algorithms", Mark: 91, Grade: GradeHD},
			{ID: "202", Name: "Databases", Mark: 55, Grade: GradeP},
			{ID: "303", Name: "Networks", Mark: 40, Grade: GradeF},
		},
	}
}

func TestStudentAverageMark(t *testing.T) {
	s := sampleStudent()
	assert.InDelta(t, 62.0, s.AverageMark(), 0.001)

	empty := Student{ID: "000001"}
	assert.Zero(t, empty.AverageMark())
	assert.False(t, empty.IsPassing(50), "a student with no subjects must fail")
}

func TestStudentIsPassing(t *testing.T) {
	s := sampleStudent()
	assert.True(t, s.IsPassing(50))
	assert.False(t, s.IsPassing(70))
}

func TestStudentDominantGrade(t *testing.T) {
	s := sampleStudent()
	assert.Equal(t, GradeHD, s.DominantGrade())

	s.Subjects = s.Subjects[1:]
	assert.Equal(t, GradeP, s.DominantGrade())

	s.Subjects = nil
	assert.Equal(t, GradeNA, s.DominantGrade())
}

func TestStudentJSONRoundTrip(t *testing.T) {
	original := sampleStudent()

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Student
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)

	// the storage shape keeps the historical field names
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.Contains(t, asMap, "student_id")
	assert.Contains(t, asMap, "password")
	subjects, ok := asMap["subjects"].([]interface{})
	require.True(t, ok)
	first, ok := subjects[0].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, first, "subject_id")
}

func TestNewStudentOverview(t *testing.T) {
	s := sampleStudent()
	overview := NewStudentOverview(s, 50)

	assert.Equal(t, s.ID, overview.ID)
	assert.Equal(t, s.Subjects, overview.Subjects)
	assert.InDelta(t, 62.0, overview.AverageMark, 0.001)
	assert.True(t, overview.Passing)

	raw, err := json.Marshal(overview)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), s.PasswordHash, "overview must not leak the password hash")
}
