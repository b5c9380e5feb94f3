package models

import "time"

// Grade is a student's grade sheet for one academic term.
type Grade struct {
	ID             string    `db:"id" json:"id"`
	StudNo         string    `db:"stud_no" json:"studNo"`
	AcademicTermID string    `db:"academic_term_id" json:"academicTermId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// GradeSubject is one subject row of a grade sheet. Its existence is the
// student's enrollment in the subject for that term.
type GradeSubject struct {
	ID         string  `db:"id" json:"id"`
	GradeID    string  `db:"grade_id" json:"gradeId"`
	SubjectID  string  `db:"subject_id" json:"subjectId"`
	Prelim     float64 `db:"prelim" json:"prelim"`
	Midterm    float64 `db:"midterm" json:"midterm"`
	Semifinals float64 `db:"semifinals" json:"semifinals"`
	Finals     float64 `db:"finals" json:"finals"`
	Combined   float64 `db:"combined" json:"combined"`
	Remarks    string  `db:"remarks" json:"remarks"`
}

// EnrolledSubject is a grade row joined with its subject and term.
type EnrolledSubject struct {
	GradeSubject
	StudNo         string `db:"stud_no" json:"studNo"`
	AcademicTermID string `db:"academic_term_id" json:"academicTermId"`
	SubjectCode    string `db:"subject_code" json:"subjectCode"`
	SubjectName    string `db:"subject_name" json:"subjectName"`
	Units          int    `db:"units" json:"units"`
}

// GradeFilter scopes grade listings.
type GradeFilter struct {
	StudNo         string
	AcademicTermID string
	SubjectID      string
}

// ReportCard aggregates a student's grades for one term.
type ReportCard struct {
	Student  Student           `json:"student"`
	Term     AcademicTerm      `json:"term"`
	Subjects []EnrolledSubject `json:"subjects"`
	Average  float64           `json:"average"`
}
