package services

import (
	"context"
	"testing"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/validate"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *fakeUsers) {
	users := newFakeUsers()
	return NewUserService(users, &fakeAudit{}), users
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newUserService()

	u, err := svc.Register(context.Background(), "  Alice@X.Com ", " Alice ", " A ", "password123")

	require.NoError(t, err)
	require.Equal(t, "alice@x.com", u.Email)
	require.Equal(t, "Alice", u.FirstName)
	require.Equal(t, "A", u.LastName)
	require.True(t, u.IsActive)
}

func TestRegisterDuplicateEmailAnyCasing(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@x.com", "Alice", "A", "password123")
	require.NoError(t, err)

	for _, email := range []string{"alice@x.com", "ALICE@X.COM", "Alice@x.Com", " alice@x.com "} {
		_, err := svc.Register(ctx, email, "Alice", "A", "password123")
		require.ErrorIs(t, err, apperr.ErrDuplicateEmail, "casing %q", email)
	}
}

func TestRegisterCollectsFieldViolations(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), "   ", "", "", "short")

	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	fields := map[string]bool{}
	for _, f := range verrs {
		fields[f.Field] = true
	}
	require.True(t, fields["email"])
	require.True(t, fields["first_name"])
	require.True(t, fields["last_name"])
	require.True(t, fields["password"])
}

func TestAuthenticate(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@x.com", "Alice", "A", "password123")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "ALICE@x.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", u.Email)

	_, err = svc.Authenticate(ctx, "alice@x.com", "wrongpass123")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	// unknown accounts look identical to wrong passwords
	_, err = svc.Authenticate(ctx, "nobody@x.com", "password123")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	u.IsActive = false
	require.NoError(t, users.Update(ctx, u))
	_, err = svc.Authenticate(ctx, "alice@x.com", "password123")
	require.ErrorIs(t, err, apperr.ErrAccountDisabled)
}

func TestAuthenticatePasswordNotStoredPlain(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@x.com", "Alice", "A", "password123")
	require.NoError(t, err)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, "password123", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)
}
