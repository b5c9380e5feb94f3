package models

import (
	"strings"
	"time"
)

// StaffRole enumerates the roles a staff account can hold.
type StaffRole string

const (
	RoleAdmin     StaffRole = "admin"
	RoleRegistrar StaffRole = "registrar"
	RoleTeacher   StaffRole = "teacher"
)

// Valid reports whether r is a known role.
func (r StaffRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleRegistrar, RoleTeacher:
		return true
	}
	return false
}

// Staff is an administrative or teaching account.
type Staff struct {
	ID         string    `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	Role       StaffRole `db:"role" json:"role"`
	FirstName  *string   `db:"first_name" json:"firstName"`
	LastName   *string   `db:"last_name" json:"lastName"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	PictureID  *string   `db:"picture_id" json:"pictureId"`
	PictureURL *string   `db:"picture_url" json:"pictureUrl"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// DisplayName returns "First Last" falling back to the username.
func (s *Staff) DisplayName() string {
	var parts []string
	if s.FirstName != nil && *s.FirstName != "" {
		parts = append(parts, *s.FirstName)
	}
	if s.LastName != nil && *s.LastName != "" {
		parts = append(parts, *s.LastName)
	}
	if len(parts) == 0 {
		return s.Username
	}
	return strings.Join(parts, " ")
}

// StaffFilter narrows staff listings.
type StaffFilter struct {
	Role     StaffRole
	IsActive *bool
	Search   string
}

// StaffLog action and status values.
const (
	StaffActionLogin  = "LOGIN"
	StaffActionLogout = "LOGOUT"

	StaffLogSuccess = "success"
	StaffLogFailed  = "failed"
)

// StaffLog records account activity such as logins.
type StaffLog struct {
	ID        string    `db:"id" json:"id"`
	StaffID   string    `db:"staff_id" json:"staffId"`
	Action    string    `db:"action" json:"action"`
	IPAddress *string   `db:"ip_address" json:"ipAddress"`
	UserAgent *string   `db:"user_agent" json:"userAgent"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Status    string    `db:"status" json:"status"`
}

// Settings holds per staff UI preferences.
type Settings struct {
	ID            string    `db:"id" json:"id"`
	StaffID       string    `db:"staff_id" json:"staffId"`
	Theme         string    `db:"theme" json:"theme"`
	Language      string    `db:"language" json:"language"`
	Notifications bool      `db:"notifications" json:"notifications"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
