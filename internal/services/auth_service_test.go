package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/pkg/utils"
)

func newAuthService(t *testing.T, f *fixture, gw PaymentGateway) (AuthServiceInterface, *utils.TokenIssuer) {
	t.Helper()
	issuer, err := utils.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(f.families, gw, issuer, f.log), issuer
}

func TestRegisterIssuesTokenForNewFamily(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{}
	svc, issuer := newAuthService(t, f, gw)

	resp, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Email:      "Parent@Example.com ",
		Password:   "correct horse",
		FamilyName: "The Parkers",
	})
	require.NoError(t, err)

	claims, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Family.ID.String(), claims.FamilyID)
	assert.Equal(t, "parent@example.com", resp.Family.Email)
	assert.Equal(t, "cus_parent@example.com", resp.Family.StripeCustomerID)
	assert.NotEqual(t, "correct horse", resp.Family.PasswordHash)

	var tasks []db_models.OutboxTask
	require.NoError(t, f.db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskWelcomeEmail, tasks[0].Kind)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(t, f, &fakeGateway{})
	req := request_models.RegisterRequest{Email: "dup@example.com", Password: "password1", FamilyName: "Dup"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	var count int64
	f.db.Model(&db_models.Family{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterGatewayFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(t, f, &fakeGateway{failWith: errGatewayDown})

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Email: "x@example.com", Password: "password1", FamilyName: "X",
	})
	assert.ErrorIs(t, err, utils.ErrPaymentGateway)

	var count int64
	f.db.Model(&db_models.Family{}).Count(&count)
	assert.Zero(t, count)
}

func TestLoginVerifiesPassword(t *testing.T) {
	f := newFixture(t)
	svc, issuer := newAuthService(t, f, &fakeGateway{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, request_models.RegisterRequest{
		Email: "login@example.com", Password: "password1", FamilyName: "Login",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "LOGIN@example.com", Password: "password1"})
	require.NoError(t, err)
	claims, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.Family.ID.String(), claims.FamilyID)
}
