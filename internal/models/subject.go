package models

// Subject is a course subject taught in a year level.
type Subject struct {
	ID          string `db:"id" json:"id"`
	Code        string `db:"code" json:"code"`
	Name        string `db:"name" json:"name"`
	Units       int    `db:"units" json:"units"`
	YearLevelID string `db:"year_level_id" json:"yearLevelId"`
	IsActive    bool   `db:"is_active" json:"isActive"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	YearLevelID string
	Search      string
	IsActive    *bool
}
