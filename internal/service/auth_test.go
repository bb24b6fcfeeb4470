package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/cartera-service/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := seedClient(t, svc)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.NotEmpty(t, user.PasswordHash, "password must be stored hashed")
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	token, logged, err := svc.Login("ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), sub)
	assert.Equal(t, models.RoleClient, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedClient(t, svc)

	_, _, err := svc.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, _, err := svc.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.CreateUser("X", "x@example.com", "1", "pw", "superuser")
	assert.Error(t, err)
}
