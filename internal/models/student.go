package models

import "time"

// Student holds biodata for a learner, keyed by the registrar assigned student number.
type Student struct {
	StudNo        string    `db:"stud_no" json:"studNo"`
	FirstName     string    `db:"first_name" json:"firstName"`
	MiddleName    *string   `db:"middle_name" json:"middleName"`
	LastName      string    `db:"last_name" json:"lastName"`
	Gender        *string   `db:"gender" json:"gender"`
	Age           *int      `db:"age" json:"age"`
	BirthDate     *string   `db:"birth_date" json:"birthDate"`
	BirthPlace    *string   `db:"birth_place" json:"birthPlace"`
	Address       *string   `db:"address" json:"address"`
	HouseNo       *string   `db:"house_no" json:"houseNo"`
	Street        *string   `db:"street" json:"street"`
	Barangay      *string   `db:"barangay" json:"barangay"`
	City          *string   `db:"city" json:"city"`
	Province      *string   `db:"province" json:"province"`
	ZipCode       *string   `db:"zip_code" json:"zipCode"`
	ContactNumber *string   `db:"contact_number" json:"contactNumber"`
	Email         *string   `db:"email" json:"email"`
	PictureID     *string   `db:"picture_id" json:"pictureId"`
	PictureURL    *string   `db:"picture_url" json:"pictureUrl"`
	Course        string    `db:"course" json:"course"`
	YearLevel     *string   `db:"year_level" json:"yearLevel"`
	Section       *string   `db:"section" json:"section"`
	Guardian      *string   `db:"guardian" json:"guardian"`
	GuardianPhone *string   `db:"guardian_phone" json:"guardianPhone"`
	Mother        *string   `db:"mother" json:"mother"`
	Father        *string   `db:"father" json:"father"`
	Nationality   *string   `db:"nationality" json:"nationality"`
	Religion      *string   `db:"religion" json:"religion"`
	CivilStatus   *string   `db:"civil_status" json:"civilStatus"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// FullName renders "Last, First Middle".
func (s *Student) FullName() string {
	name := s.LastName + ", " + s.FirstName
	if s.MiddleName != nil && *s.MiddleName != "" {
		name += " " + *s.MiddleName
	}
	return name
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	Course    string
	YearLevel string
	Section   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
