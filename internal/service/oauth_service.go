package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/mailer"
	"personal-notes-be/internal/repository/cache"
	"personal-notes-be/internal/repository/memory"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"
	pktNats "personal-notes-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrProviderConflict: the provider subject is already linked to a different
// local account than the one the asserted email resolves to.
var ErrProviderConflict = errors.New("provider identity linked to another account")

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error)
	ResolveIdentity(ctx context.Context, assertion *dto.IdentityAssertion) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	stateRepo  *memory.StateRepository
	userCache  *cache.UserCache
	email      mailer.IEmailService
	emitter    *eventEmitter
	log        logger.ILogger
	cfg        *config.AuthConfig
	googleConf *oauth2.Config
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	stateRepo *memory.StateRepository,
	userCache *cache.UserCache,
	email mailer.IEmailService,
	auditPublisher IPublisherService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
	cfg *config.AuthConfig,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		stateRepo:  stateRepo,
		userCache:  userCache,
		email:      email,
		emitter:    newEventEmitter(auditPublisher, natsPub, log),
		log:        log,
		cfg:        cfg,
		googleConf: conf,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)
	s.stateRepo.Save(state)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	if !s.stateRepo.Consume(state) {
		s.log.Warn("oauth", "Callback with unknown or replayed state", nil)
		return nil, errors.New("invalid state")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.log.Error("oauth", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	assertion, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		s.log.Error("oauth", "Fetching userinfo failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	return s.ResolveIdentity(ctx, assertion)
}

func (s *oauthService) fetchUserInfo(ctx context.Context, accessToken string) (*dto.IdentityAssertion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, err
	}

	if googleUser.ID == "" || googleUser.Email == "" {
		return nil, errors.New("incomplete identity assertion from provider")
	}

	return &dto.IdentityAssertion{
		ProviderName:   "google",
		ProviderUserId: googleUser.ID,
		Email:          googleUser.Email,
		FullName:       googleUser.Name,
		AvatarURL:      googleUser.Picture,
	}, nil
}

// ResolveIdentity maps an external identity assertion to exactly one local
// user, creating the account on first login. Resolution is email-primary:
// the provider subject id is backfilled onto the matching account, and a
// subject already linked to a different account is a conflict. The unique
// email index backs the lookup-then-create against concurrent first logins.
func (s *oauthService) ResolveIdentity(ctx context.Context, assertion *dto.IdentityAssertion) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: assertion.Email})
	if err != nil {
		return nil, err
	}

	link, err := uow.UserRepository().FindUserProvider(ctx, specification.ByProviderSubject{
		ProviderName:   assertion.ProviderName,
		ProviderUserId: assertion.ProviderUserId,
	})
	if err != nil {
		return nil, err
	}
	if link != nil && (user == nil || link.UserId != user.Id) {
		// Covers both a subject bound to another account and a subject whose
		// provider-side email changed; neither may mint a second user.
		s.log.Warn("oauth", "Provider subject bound to a different account", map[string]interface{}{
			"provider": assertion.ProviderName,
		})
		return nil, ErrProviderConflict
	}

	isNewUser := user == nil

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if isNewUser {
		placeholder, err := placeholderCredential()
		if err != nil {
			return nil, err
		}

		user = &entity.User{
			Id:           uuid.New(),
			Email:        assertion.Email,
			FullName:     assertion.FullName,
			PasswordHash: &placeholder,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if assertion.AvatarURL != "" {
			avatar := assertion.AvatarURL
			user.AvatarURL = &avatar
		}

		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	}

	userProvider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   assertion.ProviderName,
		ProviderUserId: assertion.ProviderUserId,
		AvatarURL:      assertion.AvatarURL,
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().SaveUserProvider(ctx, userProvider); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.userCache.Invalidate(ctx, user.Id)

	eventType := events.TypeUserLogin
	if isNewUser {
		eventType = events.TypeUserSignedUp
		go func(email, name string) {
			if err := s.email.SendWelcome(email, name); err != nil {
				s.log.Warn("oauth", "Welcome email failed", map[string]interface{}{"error": err.Error()})
			}
		}(user.Email, user.FullName)
	}
	actorId := user.Id
	s.emitter.Emit(ctx, eventType, &actorId, map[string]interface{}{
		"provider": assertion.ProviderName,
	})

	signedToken, err := s.signSessionToken(user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *oauthService) signSessionToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// placeholderCredential produces a hash no password can match. OAuth-created
// accounts authenticate only through the provider.
func placeholderCredential() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
