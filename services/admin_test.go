package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eduportal/errors"
	"eduportal/models"
)

func adminFixture(t *testing.T) (*fakeGateway, *AdminService, int) {
	t.Helper()
	gw := newFakeGateway()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := gw.CreateAdmin(context.Background(), &models.Admin{
		Username: "admin",
		Password: string(hash),
		IsActive: true,
	})
	require.NoError(t, err)
	return gw, NewAdminService(gw, "jwt-test-secret"), id
}

func TestAdminLogin(t *testing.T) {
	gw, svc, id := adminFixture(t)

	admin, token, err := svc.Login(context.Background(), "admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, id, admin.ID)
	assert.NotEmpty(t, token)
	assert.NotNil(t, gw.admins[id].LastLoginAt)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	_, svc, _ := adminFixture(t)
	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
}

func TestAdminLoginUnknownUser(t *testing.T) {
	_, svc, _ := adminFixture(t)
	_, _, err := svc.Login(context.Background(), "nobody", "secret123")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
}

func TestAdminLoginDisabledAccount(t *testing.T) {
	gw, svc, id := adminFixture(t)
	gw.admins[id].IsActive = false

	_, _, err := svc.Login(context.Background(), "admin", "secret123")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, svc, _ := adminFixture(t)
	_, err := svc.VerifyToken("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
}

func TestVerifyTokenRejectsOtherSecret(t *testing.T) {
	gw, _, _ := adminFixture(t)
	other := NewAdminService(gw, "different-secret")
	_, token, err := other.Login(context.Background(), "admin", "secret123")
	require.NoError(t, err)

	svc := NewAdminService(gw, "jwt-test-secret")
	_, err = svc.VerifyToken(token)
	require.Error(t, err)
}

func TestAdminCreateHashesPassword(t *testing.T) {
	gw, svc, actingID := adminFixture(t)

	created, err := svc.Create(context.Background(), &CreateAdminInput{
		Username: "second",
		Password: "another123",
		Name:     "Second Admin",
	}, actingID)
	require.NoError(t, err)

	stored := gw.admins[created.ID]
	assert.NotEqual(t, "another123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("another123")))
	assert.Equal(t, actingID, stored.CreatedBy)
	assert.True(t, stored.IsActive)
}

func TestAdminCreateDuplicateUsername(t *testing.T) {
	_, svc, actingID := adminFixture(t)
	_, err := svc.Create(context.Background(), &CreateAdminInput{
		Username: "admin",
		Password: "another123",
	}, actingID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Conflict))
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	_, svc, id := adminFixture(t)
	err := svc.Delete(context.Background(), id, id)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Invalid))
}
