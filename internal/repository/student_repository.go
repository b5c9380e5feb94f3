package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const studentColumns = `stud_no, first_name, middle_name, last_name, gender, age, birth_date, birth_place, address, house_no, street,
        barangay, city, province, zip_code, contact_number, email, picture_id, picture_url, course, year_level, section,
        guardian, guardian_phone, mother, father, nationality, religion, civil_status, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns one page of students matching the filter and the total match count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM student"
	var conditions []string
	var args []interface{}

	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("course = $%d", len(args)+1))
		args = append(args, filter.Course)
	}
	if filter.YearLevel != "" {
		conditions = append(conditions, fmt.Sprintf("year_level = $%d", len(args)+1))
		args = append(args, filter.YearLevel)
	}
	if filter.Section != "" {
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, filter.Section)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(stud_no) LIKE $%d OR LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"stud_no":    "stud_no",
		"last_name":  "last_name",
		"first_name": "first_name",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "last_name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, stud_no LIMIT %d OFFSET %d", studentColumns, base, column, order, size, offset)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByStudNo fetches a student by student number.
func (r *StudentRepository) FindByStudNo(ctx context.Context, studNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM student WHERE stud_no = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studNo); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO student (stud_no, first_name, middle_name, last_name, gender, age, birth_date, birth_place, address, house_no, street,
        barangay, city, province, zip_code, contact_number, email, picture_id, picture_url, course, year_level, section,
        guardian, guardian_phone, mother, father, nationality, religion, civil_status, created_at, updated_at)
        VALUES (:stud_no, :first_name, :middle_name, :last_name, :gender, :age, :birth_date, :birth_place, :address, :house_no, :street,
        :barangay, :city, :province, :zip_code, :contact_number, :email, :picture_id, :picture_url, :course, :year_level, :section,
        :guardian, :guardian_phone, :mother, :father, :nationality, :religion, :civil_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", classify(err))
	}
	return nil
}

// Update replaces the mutable biodata of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student SET first_name = :first_name, middle_name = :middle_name, last_name = :last_name, gender = :gender, age = :age,
        birth_date = :birth_date, birth_place = :birth_place, address = :address, house_no = :house_no, street = :street,
        barangay = :barangay, city = :city, province = :province, zip_code = :zip_code, contact_number = :contact_number,
        email = :email, picture_id = :picture_id, picture_url = :picture_url, course = :course, year_level = :year_level,
        section = :section, guardian = :guardian, guardian_phone = :guardian_phone, mother = :mother, father = :father,
        nationality = :nationality, religion = :religion, civil_status = :civil_status, updated_at = :updated_at
        WHERE stud_no = :stud_no`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a student. Grade sheets cascade.
func (r *StudentRepository) Delete(ctx context.Context, studNo string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM student WHERE stud_no = $1`, studNo)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res)
}
