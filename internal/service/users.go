package service

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crediflow/cartera-service/internal/models"
)

// CreateUser creates a user with the given role and a hashed password
func (s *Service) CreateUser(name, email, cedula, password, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleClient {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Cedula:       cedula,
		Role:         role,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s (%s)", user.Email, user.Role)
	return user, nil
}

// UpdateUser updates the editable fields of a user
func (s *Service) UpdateUser(id uuid.UUID, name, email, cedula, role string) (*models.User, error) {
	user, err := s.repo.FindUserByID(id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Cedula = cedula
	user.Role = role
	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. Clients holding credits cannot be deleted.
func (s *Service) DeleteUser(id uuid.UUID) error {
	n, err := s.repo.CountCreditsByClient(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("client %s holds %d credits: %w", id, n, ErrInUse)
	}
	if err := s.repo.DeleteUser(id); err != nil {
		return err
	}
	s.log.Infof("User deleted: %s", id)
	return nil
}

// GetUser retrieves a user by id
func (s *Service) GetUser(id uuid.UUID) (*models.User, error) {
	return s.repo.FindUserByID(id)
}

// ListUsers returns all users
func (s *Service) ListUsers() ([]*models.User, error) {
	return s.repo.ListUsers()
}
