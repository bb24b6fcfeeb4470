package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/crediflow/cartera-service/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO cartera.users (id, name, email, cedula, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, user.ID, user.Name, user.Email, user.Cedula, user.Role, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser updates name, email, cedula and role of an existing user
func (r *Repository) UpdateUser(user *models.User) error {
	query := `
		UPDATE cartera.users
		SET name = $2, email = $3, cedula = $4, role = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(query, user.ID, user.Name, user.Email, user.Cedula, user.Role).
		Scan(&user.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes a user
func (r *Repository) DeleteUser(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM cartera.users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id uuid.UUID) (*models.User, error) {
	return r.findUser(`WHERE id = $1`, id)
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	return r.findUser(`WHERE email = $1`, email)
}

func (r *Repository) findUser(where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, cedula, role, password_hash, created_at, updated_at
		FROM cartera.users ` + where
	err := r.db.QueryRow(query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.Cedula, &user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users ordered by creation time
func (r *Repository) ListUsers() ([]*models.User, error) {
	query := `
		SELECT id, name, email, cedula, role, password_hash, created_at, updated_at
		FROM cartera.users
		ORDER BY created_at`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Cedula, &user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
