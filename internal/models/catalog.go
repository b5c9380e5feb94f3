package models

// Course is a degree or strand offered by the school.
type Course struct {
	ID         string `db:"id" json:"id"`
	Code       string `db:"code" json:"code"`
	Name       string `db:"name" json:"name"`
	TotalUnits int    `db:"total_units" json:"totalUnits"`
	IsActive   bool   `db:"is_active" json:"isActive"`
}

// YearLevel is a grade or year within a course.
type YearLevel struct {
	ID    string `db:"id" json:"id"`
	Level int    `db:"level" json:"level"`
	Name  string `db:"name" json:"name"`
}

// Section groups students of one course and year level in a term.
type Section struct {
	ID             string `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	CourseID       string `db:"course_id" json:"courseId"`
	YearLevelID    string `db:"year_level_id" json:"yearLevelId"`
	AcademicTermID string `db:"academic_term_id" json:"academicTermId"`
	MaxStudents    int    `db:"max_students" json:"maxStudents"`
	IsActive       bool   `db:"is_active" json:"isActive"`
}

// SectionFilter narrows section listings.
type SectionFilter struct {
	CourseID       string
	YearLevelID    string
	AcademicTermID string
}
