package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/edusys/school-payments/internal/config"
	"github.com/edusys/school-payments/internal/models"
	"github.com/edusys/school-payments/internal/repository"
	"github.com/edusys/school-payments/internal/utils"
	"github.com/edusys/school-payments/internal/utils/email"
)

// ErrValidation marks failures caught before any state is touched; handlers
// map it to a 400 response.
var ErrValidation = errors.New("validation failed")

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *email.Sender
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer *email.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}

// Login authenticates a staff user and returns a JWT token
func (s *Service) Login(emailAddr, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(emailAddr)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if !user.Active {
		return "", fmt.Errorf("account is disabled")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Generate JWT carrying the role so middleware can gate endpoints
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.ID),
		"role": string(user.Role),
		"exp":  jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Me resolves the acting user by id
func (s *Service) Me(userID int64) (*models.User, error) {
	return s.repo.FindUserByID(userID)
}

// CreateUserInput carries the fields for a new staff user.
type CreateUserInput struct {
	Cedula    string      `json:"cedula" validate:"required"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Role      models.Role `json:"role" validate:"required,oneof=admin superadmin teacher"`
	Password  string      `json:"password" validate:"required"`
}

// CreateUser creates a staff user after validating the cedula and the
// password policy, and records the creation in the audit trail.
func (s *Service) CreateUser(actorID int64, in CreateUserInput) (*models.User, error) {
	if err := utils.ValidateCedula(in.Cedula); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Cedula:       in.Cedula,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         in.Role,
		Active:       true,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.audit(actorID, models.ActionCreateUser, "user", user.ID, user.Email)
	s.log.Infof("User created: %s (%s)", user.Email, user.Role)
	return user, nil
}

// ListUsers retrieves a page of staff users
func (s *Service) ListUsers(role models.Role, search string, page, size int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.repo.ListUsers(role, search, size, (page-1)*size)
}

// SetUserActive enables or disables a staff user
func (s *Service) SetUserActive(actorID, userID int64, active bool) error {
	if err := s.repo.SetUserActive(userID, active); err != nil {
		return err
	}
	s.audit(actorID, models.ActionToggleUser, "user", userID, fmt.Sprintf("active=%t", active))
	return nil
}

// CreateCourse creates a course
func (s *Service) CreateCourse(actorID int64, course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" || strings.TrimSpace(course.Code) == "" {
		return fmt.Errorf("%w: course name and code are required", ErrValidation)
	}
	if err := s.repo.CreateCourse(course); err != nil {
		return err
	}
	s.audit(actorID, models.ActionCreateCourse, "course", course.ID, course.Code)
	return nil
}

// ListCourses retrieves all courses
func (s *Service) ListCourses() ([]models.Course, error) {
	return s.repo.ListCourses()
}

// ListAudit retrieves a page of the audit trail, newest first
func (s *Service) ListAudit(entity string, actorID int64, page, size int) ([]models.AuditEntry, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.repo.ListAudit(entity, actorID, size, (page-1)*size)
}

// audit appends a trail entry; failures are logged, never propagated, so a
// broken audit insert cannot mask a mutation that already happened.
func (s *Service) audit(actorID int64, action, entity string, entityID int64, detail string) {
	entry := &models.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	if err := s.repo.AppendAudit(entry); err != nil {
		s.log.Errorf("Failed to append audit entry %s/%d: %v", action, entityID, err)
	}
}
