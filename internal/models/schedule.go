package models

// Schedule places a subject on a weekly time slot within a term.
type Schedule struct {
	ID             string  `db:"id" json:"id"`
	SubjectID      string  `db:"subject_id" json:"subjectId"`
	TeacherID      *string `db:"teacher_id" json:"teacherId"`
	AcademicTermID string  `db:"academic_term_id" json:"academicTermId"`
	SectionID      *string `db:"section_id" json:"sectionId"`
	Day            string  `db:"day" json:"day"`
	StartTime      string  `db:"start_time" json:"startTime"`
	EndTime        string  `db:"end_time" json:"endTime"`
	IsActive       bool    `db:"is_active" json:"isActive"`
}

// ScheduleDetail is a schedule joined with display names.
type ScheduleDetail struct {
	Schedule
	SubjectCode string  `db:"subject_code" json:"subjectCode"`
	SubjectName string  `db:"subject_name" json:"subjectName"`
	TeacherName *string `db:"teacher_name" json:"teacherName"`
	SectionName *string `db:"section_name" json:"sectionName"`
}

// ScheduleFilter describes query params for listing schedules.
type ScheduleFilter struct {
	AcademicTermID string
	TeacherID      string
	SectionID      string
	SubjectID      string
	Day            string
}

// ScheduleConflict describes an existing schedule that overlaps a candidate.
type ScheduleConflict struct {
	ScheduleID string `json:"scheduleId"`
	Dimension  string `json:"dimension"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// ScheduleConflictError is returned when a schedule collides with existing ones.
type ScheduleConflictError struct {
	Message   string             `json:"error"`
	Code      string             `json:"code"`
	Conflicts []ScheduleConflict `json:"conflicts"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
