package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/crediflow/cartera-service/internal/config"
	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/repository"
)

// Typed service failures, matched by handlers with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrNotClient          = errors.New("user is not a client")
	// ErrInUse guards deletion of records still referenced by credits.
	ErrInUse = errors.New("record is referenced by existing credits")
)

// Mailer sends portfolio notifications. Satisfied by the SMTP sender in
// internal/utils/email.
type Mailer interface {
	SendInstallmentReminder(to, name string, installmentNumber int, dueDate time.Time, amount decimal.Decimal, isOverdue bool) error
	SendPaymentReceipt(to, name string, installmentNumber int, amount, remaining decimal.Decimal, receiptNumber string) error
}

// Service handles business logic
type Service struct {
	repo   repository.Store
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo repository.Store, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, mailer: mailer, log: log, config: cfg}
}

// Register creates a new client user with a hashed password
func (s *Service) Register(name, email, cedula, password string) (*models.User, error) {
	return s.CreateUser(name, email, cedula, password, models.RoleClient)
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, user, nil
}
