package repository

import (
	"database/sql"
	"fmt"

	"github.com/edusys/school-payments/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new staff user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO school.users (cedula, first_name, last_name, email, role, active, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Cedula, user.FirstName, user.LastName, user.Email, user.Role, user.Active, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, cedula, first_name, last_name, email, role, active, password_hash, created_at, updated_at
		FROM school.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Cedula, &user.FirstName, &user.LastName, &user.Email, &user.Role, &user.Active, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, cedula, first_name, last_name, email, role, active, password_hash, created_at, updated_at
		FROM school.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Cedula, &user.FirstName, &user.LastName, &user.Email, &user.Role, &user.Active, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves users filtered by role and/or a name/email substring,
// paginated, ordered by last name.
func (r *Repository) ListUsers(role models.Role, search string, limit, offset int) ([]models.User, error) {
	query := `
		SELECT id, cedula, first_name, last_name, email, role, active, password_hash, created_at, updated_at
		FROM school.users
		WHERE ($1 = '' OR role = $1)
		  AND ($2 = '' OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY last_name, first_name
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(query, string(role), search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Cedula, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.Active, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetUserActive toggles a user's active flag
func (r *Repository) SetUserActive(id int64, active bool) error {
	res, err := r.db.Exec(`UPDATE school.users SET active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// CreateCourse creates a new course in the database
func (r *Repository) CreateCourse(course *models.Course) error {
	query := `
		INSERT INTO school.courses (name, code, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, course.Name, course.Code).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// ListCourses retrieves all courses ordered by code
func (r *Repository) ListCourses() ([]models.Course, error) {
	rows, err := r.db.Query(`SELECT id, name, code, created_at, updated_at FROM school.courses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
