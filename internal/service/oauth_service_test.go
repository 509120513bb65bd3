package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/cache"
	"personal-notes-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newOAuthServiceForTest() (IOAuthService, *fakeFactory, *memory.StateRepository) {
	factory := newFakeFactory()
	stateRepo := memory.NewStateRepository()
	svc := NewOAuthService(
		factory,
		stateRepo,
		cache.NewUserCache(nil),
		&fakeMailer{},
		&fakePublisher{},
		nil,
		nopLogger{},
		&config.AuthConfig{
			JWTSecret:       testJWTSecret,
			SessionTTLHours: 24,
		},
	)
	return svc, factory, stateRepo
}

func googleAssertion(subject, email string) *dto.IdentityAssertion {
	return &dto.IdentityAssertion{
		ProviderName:   "google",
		ProviderUserId: subject,
		Email:          email,
		FullName:       "Jamie Doe",
		AvatarURL:      "https://example.com/avatar.png",
	}
}

func TestOAuthService_ResolveIdentityCreatesAccountOnFirstLogin(t *testing.T) {
	svc, factory, _ := newOAuthServiceForTest()

	resp, err := svc.ResolveIdentity(context.Background(), googleAssertion("sub-1", "jamie@example.com"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "jamie@example.com", resp.User.Email)

	users := factory.uow.userRepo.users
	require.Len(t, users, 1)
	created := users[resp.User.Id]
	assert.Equal(t, "Jamie Doe", created.FullName)
	require.NotNil(t, created.PasswordHash, "placeholder credential must be set")
	assert.NotEmpty(t, *created.PasswordHash)

	link, err := factory.uow.userRepo.FindUserProvider(context.Background())
	require.NoError(t, err)
	require.NotNil(t, link, "provider link persisted alongside the account")
	assert.Equal(t, resp.User.Id, link.UserId)
	assert.Equal(t, "sub-1", link.ProviderUserId)
}

func TestOAuthService_ResolveIdentityIsIdempotent(t *testing.T) {
	svc, factory, _ := newOAuthServiceForTest()
	assertion := googleAssertion("sub-1", "jamie@example.com")

	first, err := svc.ResolveIdentity(context.Background(), assertion)
	require.NoError(t, err)

	second, err := svc.ResolveIdentity(context.Background(), assertion)
	require.NoError(t, err)

	assert.Equal(t, first.User.Id, second.User.Id, "same assertion resolves to the same account")
	assert.Len(t, factory.uow.userRepo.users, 1, "repeat logins never mint a second user")
	assert.Len(t, factory.uow.userRepo.providers, 1)
}

func TestOAuthService_ResolveIdentityBackfillsProviderLink(t *testing.T) {
	svc, factory, _ := newOAuthServiceForTest()

	// Account created before provider login existed for it.
	existing := entity.User{
		Id:        uuid.New(),
		Email:     "jamie@example.com",
		FullName:  "Jamie Doe",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	factory.uow.userRepo.users[existing.Id] = existing

	resp, err := svc.ResolveIdentity(context.Background(), googleAssertion("sub-1", "jamie@example.com"))
	require.NoError(t, err)
	assert.Equal(t, existing.Id, resp.User.Id, "email match attaches to the existing account")
	assert.Len(t, factory.uow.userRepo.users, 1)

	link, err := factory.uow.userRepo.FindUserProvider(context.Background())
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, existing.Id, link.UserId)
}

func TestOAuthService_ResolveIdentityRejectsBoundSubject(t *testing.T) {
	svc, factory, _ := newOAuthServiceForTest()

	first, err := svc.ResolveIdentity(context.Background(), googleAssertion("sub-1", "jamie@example.com"))
	require.NoError(t, err)

	// Same provider subject presents a different email. Attaching it to a
	// second account would split one external identity across two users.
	_, err = svc.ResolveIdentity(context.Background(), googleAssertion("sub-1", "other@example.com"))
	require.ErrorIs(t, err, ErrProviderConflict)

	assert.Len(t, factory.uow.userRepo.users, 1, "conflict must not create a user")
	link, findErr := factory.uow.userRepo.FindUserProvider(context.Background())
	require.NoError(t, findErr)
	assert.Equal(t, first.User.Id, link.UserId, "existing link is untouched")
}

func TestOAuthService_SessionTokenCarriesUserId(t *testing.T) {
	svc, _, _ := newOAuthServiceForTest()

	resp, err := svc.ResolveIdentity(context.Background(), googleAssertion("sub-1", "jamie@example.com"))
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.Id.String(), claims["user_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()), "session token must not be issued expired")
}

func TestOAuthService_GetLoginURL(t *testing.T) {
	svc, _, stateRepo := newOAuthServiceForTest()

	rawURL, err := svc.GetLoginURL("google")
	require.NoError(t, err)
	assert.Contains(t, rawURL, "accounts.google.com")

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	assert.True(t, stateRepo.Consume(state), "issued state must be redeemable once")
	assert.False(t, stateRepo.Consume(state), "and only once")

	_, err = svc.GetLoginURL("github")
	assert.Error(t, err, "only google is supported")
}

func TestOAuthService_HandleCallbackRejectsUnknownState(t *testing.T) {
	svc, _, _ := newOAuthServiceForTest()

	_, err := svc.HandleCallback(context.Background(), "google", "never-issued", "code")
	assert.Error(t, err)
}
