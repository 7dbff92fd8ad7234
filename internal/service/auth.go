package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lawrenceli7/spark-bytes/internal/config"
	"github.com/lawrenceli7/spark-bytes/internal/db"
	"github.com/lawrenceli7/spark-bytes/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingField       = errors.New("required field missing")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// userStore is the slice of the credential store the auth service needs.
type userStore interface {
	CreateUser(ctx context.Context, id, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	store      userStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// tokenClaims is the bearer-token payload. The field names are part of the
// wire contract with the client and must not change.
type tokenClaims struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CanPostEvents bool   `json:"canPostEvents"`
	IsAdmin       bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func NewAuthService(store userStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_TOKEN_SECRET is required", ErrMisconfigured)
	}

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_TOKEN_TTL", ErrMisconfigured)
	}

	bcryptCost, err := strconv.Atoi(cfg.BcryptCost)
	if err != nil || bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: invalid BCRYPT_COST", ErrMisconfigured)
	}

	return &AuthService{
		store:      store,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}, nil
}

// Signup creates a user with default permissions and returns a bearer token
// for it. Duplicate emails surface through the store's unique constraint, not
// through a lookup-then-insert probe.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", ErrMissingField
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.store.CreateUser(ctx, uuid.NewString(), name, email, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", ErrDuplicateUser
		}
		return "", err
	}

	return s.IssueToken(user)
}

// Login verifies the credentials and mints a token from the user's current
// persisted flags. Unknown email, missing stored hash and wrong password all
// collapse to ErrInvalidCredentials so the response cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingField
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

// IssueToken signs a token carrying the user's identity and permission flags
// as of now. There is no revocation; the token stays valid until it expires.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		CanPostEvents: user.CanPostEvents,
		IsAdmin:       user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken verifies the signature and validity window and returns the
// decoded claims. Verification is all-or-nothing; every failure mode maps to
// ErrUnauthorized.
func (s *AuthService) ParseToken(tokenStr string) (*model.AuthUser, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{
		ID:            claims.ID,
		Name:          claims.Name,
		Email:         claims.Email,
		CanPostEvents: claims.CanPostEvents,
		IsAdmin:       claims.IsAdmin,
	}, nil
}

// HashPassword applies the configured bcrypt work factor. Deliberately slow.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
