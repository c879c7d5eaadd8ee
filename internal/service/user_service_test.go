package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserWithoutExposingHash(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	user, err := svc.Register(ctx, model.RegisterRequest{
		Name: "A", Email: "A@X.com", Password: "p1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "a@x.com", user.Email)
	require.Empty(t, user.PasswordHash)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	for _, req := range []model.RegisterRequest{
		{Email: "a@x.com", Password: "p1"},
		{Name: "A", Password: "p1"},
		{Name: "A", Email: "a@x.com"},
		{Name: "A", Email: "not-an-email", Password: "p1"},
	} {
		_, err := svc.Register(ctx, req)
		require.True(t, errors.Is(err, model.ErrValidation), "request %+v", req)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	_, err := svc.Register(ctx, model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	// Same email with different casing still conflicts.
	_, err = svc.Register(ctx, model.RegisterRequest{Name: "B", Email: "A@X.COM", Password: "p2"})
	require.True(t, errors.Is(err, model.ErrEmailTaken))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	created, err := svc.Register(ctx, model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, model.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	// Wrong password and unknown email collapse into the same error.
	_, err = svc.Authenticate(ctx, model.LoginRequest{Email: "a@x.com", Password: "wrong"})
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, model.LoginRequest{Email: "nobody@x.com", Password: "p1"})
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository())

	created, err := svc.Register(ctx, model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "A", profile.Name)
	require.Empty(t, profile.PasswordHash)

	_, err = svc.Profile(ctx, "missing")
	require.True(t, errors.Is(err, model.ErrNotFound))
}
