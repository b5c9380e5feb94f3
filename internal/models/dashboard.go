package models

import "time"

// DashboardCounts are the headline totals shown after login.
type DashboardCounts struct {
	StudentCount  int `db:"student_count" json:"studentCount"`
	ScheduleCount int `db:"schedule_count" json:"scheduleCount"`
	StaffCount    int `db:"staff_count" json:"staffCount"`
}

// DashboardSummary is the dashboard payload for the signed in staff member.
type DashboardSummary struct {
	StaffName   string    `json:"staffName"`
	Role        StaffRole `json:"role"`
	GeneratedAt time.Time `json:"generatedAt"`
	DashboardCounts
}
