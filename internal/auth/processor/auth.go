package processor

import (
	"context"
	"errors"
	"mockly-server/internal/config"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrFailedSignup       = errors.New("failed to sign up")
	ErrFailedSignIn       = errors.New("failed to sign in")
	ErrFailedGetUser      = errors.New("failed to get user")
	ErrParseJWTToken      = errors.New("failed to parse jwt token")
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrExpiredToken       = errors.New("token expired")
)

const defaultSessionTTL = 7 * 24 * time.Hour

const tokenIssuer = "mockly-server"

type AuthProcessor struct {
	store      AuthStore
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *observability.Logger
	now        func() time.Time
}

type BaseClaims struct {
	Subject        string           `json:"sub"`
	Issuer         string           `json:"iss"`
	Audience       jwt.ClaimStrings `json:"aud"`
	ExpirationTime *jwt.NumericDate `json:"exp"`
	IssuedAt       *jwt.NumericDate `json:"iat"`
	NotBefore      *jwt.NumericDate `json:"nbf,omitempty"`
}

// SignedInUser is the user returned by Signin together with the session token.
type SignedInUser struct {
	User      store.User
	Token     string
	ExpiresAt time.Time
}

func New(authStore AuthStore, cfg config.AuthConfig, logger *observability.Logger) AuthProcessor {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return AuthProcessor{
		store:      authStore,
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// SessionTTL is how long issued session tokens stay valid.
func (p *AuthProcessor) SessionTTL() time.Duration {
	return p.sessionTTL
}

func (p *AuthProcessor) Signup(ctx context.Context, name, email, password string) (store.User, error) {
	email = normalizeEmail(email)
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	exists, err := p.store.CheckIfEmailExists(ctx, email)
	if err != nil {
		p.logger.Error(ctx, "failed to check if email exists", err)
		return store.User{}, ErrFailedSignup
	}
	if exists {
		return store.User{}, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return store.User{}, ErrFailedSignup
	}

	user, err := p.store.CreateUser(ctx, store.CreateUserParams{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		// lost a race with a concurrent signup for the same address
		if errors.Is(err, store.ErrConflict) {
			return store.User{}, ErrEmailAlreadyExists
		}
		p.logger.Error(ctx, "failed to create user", err)
		return store.User{}, ErrFailedSignup
	}

	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "user_id", Value: user.ID}), "user signed up")
	return user, nil
}

func (p *AuthProcessor) Signin(ctx context.Context, email, password string) (SignedInUser, error) {
	email = normalizeEmail(email)
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	user, err := p.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SignedInUser{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get user by email", err)
		return SignedInUser{}, ErrFailedSignIn
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return SignedInUser{}, ErrInvalidCredentials
	}

	token, expiresAt, err := p.generateJWTToken(ctx, user)
	if err != nil {
		return SignedInUser{}, err
	}

	return SignedInUser{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate validates a session token and loads the user it was issued for.
func (p *AuthProcessor) Authenticate(ctx context.Context, token string) (store.User, error) {
	claims, err := p.ValidateJWTToken(ctx, token)
	if err != nil {
		return store.User{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return store.User{}, ErrInvalidJWTToken
	}

	return p.GetUser(ctx, userID)
}

func (p *AuthProcessor) GetUser(ctx context.Context, userID uuid.UUID) (store.User, error) {
	user, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID}), "failed to get user", err)
		return store.User{}, ErrFailedGetUser
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
