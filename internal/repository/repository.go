package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/crediflow/cartera-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence surface the service layer depends on.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	DeleteUser(id uuid.UUID) error
	FindUserByID(id uuid.UUID) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	ListUsers() ([]*models.User, error)

	// Products
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uuid.UUID) error
	FindProductByID(id uuid.UUID) (*models.Product, error)
	ListProducts() ([]*models.Product, error)

	// Credits
	CreateCredit(credit *models.Credit) error
	FindCreditByID(id uuid.UUID) (*models.Credit, error)
	ListCredits() ([]*models.Credit, error)
	ListCreditsByClient(clientID uuid.UUID) ([]*models.Credit, error)
	UpdateCreditPlan(id uuid.UUID, plan []models.Installment) error
	CountCreditsByProduct(productID uuid.UUID) (int, error)
	CountCreditsByClient(clientID uuid.UUID) (int, error)

	// Payments (append-only)
	CreatePayment(payment *models.Payment) error
	ListPayments() ([]*models.Payment, error)
	ListPaymentsByCredit(creditID uuid.UUID) ([]*models.Payment, error)
}

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

var _ Store = (*Repository)(nil)

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
