package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T, password string) (Authenticator, *storage.Store) {
	t.Helper()

	store, err := storage.New(t.TempDir(), storage.NewBus())
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: config.Auth{
			Secret:        "test-secret",
			DemoPassword:  password,
			TokenTTLHours: 24,
		},
	}

	return NewService(store, cfg), store
}

func TestLogin_IssuesValidToken(t *testing.T) {
	authenticator, store := newTestAuthenticator(t, "rahasia")

	profile := domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung Budi"}

	token, err := authenticator.Login("rahasia", profile)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authenticator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Budi", claims.OwnerName)
	assert.Equal(t, "Warung Budi", claims.StoreName)

	// The profile singleton is saved as part of the login
	assert.Equal(t, profile, store.StoreProfile())
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	authenticator, store := newTestAuthenticator(t, "rahasia")

	profile := domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung Budi"}

	_, err := authenticator.Login("salah", profile)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A failed login must not touch the profile
	assert.Equal(t, domain.DefaultStoreProfile(), store.StoreProfile())
}

func TestLogin_RequiresProfile(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t, "rahasia")

	_, err := authenticator.Login("rahasia", domain.StoreProfile{OwnerName: "Budi"})
	assert.ErrorIs(t, err, ErrMissingProfile)

	_, err = authenticator.Login("rahasia", domain.StoreProfile{StoreName: "Warung"})
	assert.ErrorIs(t, err, ErrMissingProfile)
}

func TestLogin_EmptyConfiguredPasswordRejectsEverything(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t, "")

	profile := domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung Budi"}

	_, err := authenticator.Login("", profile)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BcryptHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.DefaultCost)
	require.NoError(t, err)

	authenticator, _ := newTestAuthenticator(t, string(hash))

	profile := domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung Budi"}

	_, err = authenticator.Login("rahasia", profile)
	assert.NoError(t, err)

	_, err = authenticator.Login("salah", profile)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RejectsTampering(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t, "rahasia")

	token, err := authenticator.Login("rahasia", domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung"})
	require.NoError(t, err)

	_, err = authenticator.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = authenticator.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with another secret fails verification
	other, _ := storage.New(t.TempDir(), storage.NewBus())
	otherAuth := NewService(other, &config.Config{
		Auth: config.Auth{Secret: "different", DemoPassword: "rahasia", TokenTTLHours: 24},
	})
	foreign, err := otherAuth.Login("rahasia", domain.StoreProfile{OwnerName: "X", StoreName: "Y"})
	require.NoError(t, err)

	_, err = authenticator.ValidateToken(foreign)
	assert.Error(t, err)
}
