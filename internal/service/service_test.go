package service

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/cartera-service/internal/config"
	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/repository"
)

// mockStore is an in-memory implementation of repository.Store for tests.
type mockStore struct {
	users    map[uuid.UUID]*models.User
	products map[uuid.UUID]*models.Product
	credits  map[uuid.UUID]*models.Credit
	payments []*models.Payment
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[uuid.UUID]*models.User),
		products: make(map[uuid.UUID]*models.Product),
		credits:  make(map[uuid.UUID]*models.Credit),
	}
}

func (m *mockStore) CreateUser(user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *mockStore) UpdateUser(user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockStore) DeleteUser(id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

func (m *mockStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return user, nil
}

func (m *mockStore) FindUserByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *mockStore) ListUsers() ([]*models.User, error) {
	users := []*models.User{}
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockStore) CreateProduct(product *models.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockStore) UpdateProduct(product *models.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return fmt.Errorf("product: %w", repository.ErrNotFound)
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockStore) DeleteProduct(id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product: %w", repository.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func (m *mockStore) FindProductByID(id uuid.UUID) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
	}
	return product, nil
}

func (m *mockStore) ListProducts() ([]*models.Product, error) {
	products := []*models.Product{}
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, nil
}

func (m *mockStore) CreateCredit(credit *models.Credit) error {
	credit.CreatedDate = time.Now()
	m.credits[credit.ID] = credit
	return nil
}

func (m *mockStore) FindCreditByID(id uuid.UUID) (*models.Credit, error) {
	credit, ok := m.credits[id]
	if !ok {
		return nil, fmt.Errorf("credit: %w", repository.ErrNotFound)
	}
	return credit, nil
}

func (m *mockStore) ListCredits() ([]*models.Credit, error) {
	credits := []*models.Credit{}
	for _, credit := range m.credits {
		credits = append(credits, credit)
	}
	return credits, nil
}

func (m *mockStore) ListCreditsByClient(clientID uuid.UUID) ([]*models.Credit, error) {
	credits := []*models.Credit{}
	for _, credit := range m.credits {
		if credit.ClientID == clientID {
			credits = append(credits, credit)
		}
	}
	return credits, nil
}

func (m *mockStore) UpdateCreditPlan(id uuid.UUID, installments []models.Installment) error {
	credit, ok := m.credits[id]
	if !ok {
		return fmt.Errorf("credit: %w", repository.ErrNotFound)
	}
	credit.PaymentPlan = installments
	return nil
}

func (m *mockStore) CountCreditsByProduct(productID uuid.UUID) (int, error) {
	n := 0
	for _, credit := range m.credits {
		if credit.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CountCreditsByClient(clientID uuid.UUID) (int, error) {
	n := 0
	for _, credit := range m.credits {
		if credit.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CreatePayment(payment *models.Payment) error {
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockStore) ListPayments() ([]*models.Payment, error) {
	return m.payments, nil
}

func (m *mockStore) ListPaymentsByCredit(creditID uuid.UUID) ([]*models.Payment, error) {
	payments := []*models.Payment{}
	for _, payment := range m.payments {
		if payment.CreditID == creditID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

// mockMailer records outgoing mail instead of sending it.
type mockMailer struct {
	reminders []reminderCall
	receipts  []string
	failWith  error
}

type reminderCall struct {
	to                string
	installmentNumber int
	overdue           bool
}

func (m *mockMailer) SendInstallmentReminder(to, name string, installmentNumber int, dueDate time.Time, amount decimal.Decimal, isOverdue bool) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.reminders = append(m.reminders, reminderCall{to: to, installmentNumber: installmentNumber, overdue: isOverdue})
	return nil
}

func (m *mockMailer) SendPaymentReceipt(to, name string, installmentNumber int, amount, remaining decimal.Decimal, receiptNumber string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.receipts = append(m.receipts, receiptNumber)
	return nil
}

func newTestService(t *testing.T) (*Service, *mockStore, *mockMailer) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := newMockStore()
	mailer := &mockMailer{}
	cfg := &config.Config{JWTSecret: "test-secret", HMACSecret: "test-hmac"}
	return NewService(store, mailer, log, cfg), store, mailer
}

func seedClient(t *testing.T, svc *Service) *models.User {
	t.Helper()
	client, err := svc.Register("Ana Torres", "ana@example.com", "1020304050", "hunter22")
	require.NoError(t, err)
	return client
}

func seedProduct(t *testing.T, svc *Service, value int64) *models.Product {
	t.Helper()
	product, err := svc.CreateProduct("Refrigerator", decimal.NewFromInt(value), "appliances", "Two-door model")
	require.NoError(t, err)
	return product
}
