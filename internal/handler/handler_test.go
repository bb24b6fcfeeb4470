package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/cartera-service/internal/config"
	"github.com/crediflow/cartera-service/internal/middleware"
	"github.com/crediflow/cartera-service/internal/models"
	"github.com/crediflow/cartera-service/internal/repository"
	"github.com/crediflow/cartera-service/internal/service"
)

// memStore is an in-memory repository.Store for routing tests.
type memStore struct {
	users    map[uuid.UUID]*models.User
	products map[uuid.UUID]*models.Product
	credits  map[uuid.UUID]*models.Credit
	payments []*models.Payment
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*models.User),
		products: make(map[uuid.UUID]*models.Product),
		credits:  make(map[uuid.UUID]*models.Credit),
	}
}

func (m *memStore) CreateUser(u *models.User) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *memStore) UpdateUser(u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memStore) DeleteUser(id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *memStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *memStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *memStore) ListUsers() ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) CreateProduct(p *models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memStore) UpdateProduct(p *models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memStore) DeleteProduct(id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *memStore) FindProductByID(id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
}

func (m *memStore) ListProducts() ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) CreateCredit(c *models.Credit) error {
	c.CreatedDate = time.Now()
	m.credits[c.ID] = c
	return nil
}

func (m *memStore) FindCreditByID(id uuid.UUID) (*models.Credit, error) {
	if c, ok := m.credits[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("credit: %w", repository.ErrNotFound)
}

func (m *memStore) ListCredits() ([]*models.Credit, error) {
	out := []*models.Credit{}
	for _, c := range m.credits {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) ListCreditsByClient(clientID uuid.UUID) ([]*models.Credit, error) {
	out := []*models.Credit{}
	for _, c := range m.credits {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) UpdateCreditPlan(id uuid.UUID, installments []models.Installment) error {
	c, ok := m.credits[id]
	if !ok {
		return fmt.Errorf("credit: %w", repository.ErrNotFound)
	}
	c.PaymentPlan = installments
	return nil
}

func (m *memStore) CountCreditsByProduct(productID uuid.UUID) (int, error) {
	n := 0
	for _, c := range m.credits {
		if c.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountCreditsByClient(clientID uuid.UUID) (int, error) {
	n := 0
	for _, c := range m.credits {
		if c.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreatePayment(p *models.Payment) error {
	m.payments = append(m.payments, p)
	return nil
}

func (m *memStore) ListPayments() ([]*models.Payment, error) {
	return m.payments, nil
}

func (m *memStore) ListPaymentsByCredit(creditID uuid.UUID) ([]*models.Payment, error) {
	out := []*models.Payment{}
	for _, p := range m.payments {
		if p.CreditID == creditID {
			out = append(out, p)
		}
	}
	return out, nil
}

type noopMailer struct{}

func (noopMailer) SendInstallmentReminder(string, string, int, time.Time, decimal.Decimal, bool) error {
	return nil
}

func (noopMailer) SendPaymentReceipt(string, string, int, decimal.Decimal, decimal.Decimal, string) error {
	return nil
}

// newTestRouter wires the router the same way cmd/api does.
func newTestRouter(t *testing.T) (*mux.Router, *service.Service) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", HMACSecret: "test-hmac"}
	svc := service.NewService(newMemStore(), noopMailer{}, log, cfg)
	h := NewHandler(svc, log)

	r := mux.NewRouter()
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")

	authRouter := r.PathPrefix("/me").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/summary", h.GetAccountSummary).Methods("GET")

	adminRouter := r.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	adminRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users", h.CreateUser).Methods("POST")
	adminRouter.HandleFunc("/products", h.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/credits", h.CreateCredit).Methods("POST")
	adminRouter.HandleFunc("/credits/{id}", h.GetCredit).Methods("GET")
	adminRouter.HandleFunc("/credits/{id}/plan", h.GetCreditPlan).Methods("GET")
	adminRouter.HandleFunc("/payments", h.RecordPayment).Methods("POST")
	adminRouter.HandleFunc("/stats", h.GetStats).Methods("GET")
	return r, svc
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, r *mux.Router, svc *service.Service) string {
	t.Helper()
	_, err := svc.CreateUser("Admin", "admin@example.com", "1", "adminpw", models.RoleAdmin)
	require.NoError(t, err)
	w := doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "admin@example.com", "password": "adminpw"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"name": "Ana Torres", "email": "ana@example.com", "cedula": "1020304050", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, _ := newTestRouter(t)

	// No token at all.
	w := doJSON(t, r, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Client token.
	w = doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "cedula": "1", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, r, http.MethodGet, "/users", resp.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreditLifecycleOverHTTP(t *testing.T) {
	r, svc := newTestRouter(t)
	token := adminToken(t, r, svc)

	// Client and product.
	w := doJSON(t, r, http.MethodPost, "/users", token, map[string]string{
		"name": "Ana", "email": "ana@example.com", "cedula": "10", "password": "hunter22", "role": "client",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var client models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))

	w = doJSON(t, r, http.MethodPost, "/products", token, map[string]interface{}{
		"name": "Sofa", "value": "1200000", "category": "furniture",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	// Credit over 12 installments.
	w = doJSON(t, r, http.MethodPost, "/credits", token, map[string]interface{}{
		"client_id": client.ID, "product_id": product.ID, "installments": 12,
		"start_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var credit models.Credit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &credit))
	require.Len(t, credit.PaymentPlan, 12)

	// Pay installment 1 in full.
	w = doJSON(t, r, http.MethodPost, "/payments", token, map[string]interface{}{
		"credit_id": credit.ID, "installment_number": 1, "amount": "100000", "payment_type": "full",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/credits/"+credit.ID.String()+"/plan", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []service.InstallmentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Equal(t, models.InstallmentPaid, views[0].Status)
	assert.Equal(t, "paid", views[0].DisplayStatus.Kind)

	w = doJSON(t, r, http.MethodGet, "/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.PortfolioStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalPayments)
	assert.Equal(t, 1, stats.ActiveCredits)
}

func TestClientSummaryOverHTTP(t *testing.T) {
	r, svc := newTestRouter(t)
	token := adminToken(t, r, svc)

	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "cedula": "10", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var client models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))

	w = doJSON(t, r, http.MethodPost, "/products", token, map[string]interface{}{"name": "TV", "value": "900000"})
	require.Equal(t, http.StatusCreated, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, r, http.MethodPost, "/credits", token, map[string]interface{}{
		"client_id": client.ID, "product_id": product.ID, "installments": 9,
		"start_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, r, http.MethodGet, "/me/summary", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary service.AccountSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Credits, 1)
	assert.Len(t, summary.Credits[0].Installments, 9)
}

func TestErrorStatusMapping(t *testing.T) {
	r, svc := newTestRouter(t)
	token := adminToken(t, r, svc)

	// Unknown product on credit creation.
	w := doJSON(t, r, http.MethodPost, "/users", token, map[string]string{
		"name": "Ana", "email": "a@example.com", "cedula": "1", "password": "pw", "role": "client",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var client models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))

	w = doJSON(t, r, http.MethodPost, "/credits", token, map[string]interface{}{
		"client_id": client.ID, "product_id": uuid.New(), "installments": 6,
		"start_date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Invalid installment count.
	w = doJSON(t, r, http.MethodPost, "/products", token, map[string]interface{}{"name": "TV", "value": "900000"})
	require.Equal(t, http.StatusCreated, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, r, http.MethodPost, "/credits", token, map[string]interface{}{
		"client_id": client.ID, "product_id": product.ID, "installments": 0,
		"start_date": time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Payment against a missing installment.
	w = doJSON(t, r, http.MethodPost, "/credits", token, map[string]interface{}{
		"client_id": client.ID, "product_id": product.ID, "installments": 3,
		"start_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var credit models.Credit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &credit))

	w = doJSON(t, r, http.MethodPost, "/payments", token, map[string]interface{}{
		"credit_id": credit.ID, "installment_number": 99, "amount": "1000", "payment_type": "partial",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Garbage body.
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
