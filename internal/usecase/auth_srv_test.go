package usecase

import (
	"context"
	"errors"
	"testing"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (AuthService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	repo := &repository.Repository{
		User:    newFakeUserRepo(),
		Session: sessions,
	}
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryDays: 7},
	}
	return NewAuthService(repo, config, zap.NewNop()), sessions
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newAuthFixture()

	auth, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "  Ada Lovelace  ",
		Email:    "Ada@Example.COM",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", auth.User.Name)
	assert.Equal(t, "ada@example.com", auth.User.Email)
	assert.Equal(t, entity.RoleCustomer, auth.User.Role)

	// register auto-logs-in with a UUID session token
	_, err = uuid.Parse(auth.Token)
	require.NoError(t, err)

	// login with the original casing still works
	login, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ADA@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, auth.Token, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture()

	req := &request.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newAuthFixture()

	cases := []request.RegisterRequest{
		{Name: "Ada", Email: "not-an-email", Password: "correct-horse"},
		{Name: "Ada", Email: "ada@example.com", Password: "short"},
		{Name: "", Email: "ada@example.com", Password: "correct-horse"},
	}

	for _, req := range cases {
		_, err := service.Register(context.Background(), &req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestLoginRejections(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	// wrong password and unknown email answer identically
	_, badPass := service.Login(context.Background(), &request.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	_, noUser := service.Login(context.Background(), &request.LoginRequest{
		Email: "nobody@example.com", Password: "correct-horse",
	})

	require.Error(t, badPass)
	require.Error(t, noUser)
	assert.True(t, errors.Is(badPass, ErrUnauthorized))
	assert.True(t, errors.Is(noUser, ErrUnauthorized))
	assert.Equal(t, badPass.Error(), noUser.Error())
}

func TestLogoutRevokesSession(t *testing.T) {
	service, sessions := newAuthFixture()

	auth, err := service.Register(context.Background(), &request.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	valid, err := sessions.FindValidSession(context.Background(), auth.Token)
	require.NoError(t, err)
	require.NotNil(t, valid)

	require.NoError(t, service.Logout(context.Background(), auth.Token))

	gone, err := sessions.FindValidSession(context.Background(), auth.Token)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// a second logout finds nothing to revoke
	err = service.Logout(context.Background(), auth.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
