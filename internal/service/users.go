package service

import (
	"context"

	"github.com/lawrenceli7/spark-bytes/internal/db"
	"github.com/lawrenceli7/spark-bytes/internal/model"
)

type userAdminStore interface {
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserField(ctx context.Context, userID, field, value string) error
	UpdateUserPermissions(ctx context.Context, userID string, isAdmin, canPostEvents bool) error
}

// UserService applies profile and permission mutations and re-issues tokens
// when a mutation invalidates the caller's cached claims.
type UserService struct {
	store userAdminStore
	auth  *AuthService
}

func NewUserService(store userAdminStore, auth *AuthService) *UserService {
	return &UserService{store: store, auth: auth}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, model.UserResponse{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			IsAdmin:       u.IsAdmin,
			CanPostEvents: u.CanPostEvents,
		})
	}
	return responses, nil
}

// UpdateField updates one of name/email/password and returns a fresh token
// for the updated user. Name and email land in the token claims, so the
// caller must replace its cached token or keep sending stale identity.
func (s *UserService) UpdateField(ctx context.Context, userID, field, value string) (string, error) {
	switch field {
	case "name", "email":
		// stored verbatim
	case "password":
		hash, err := s.auth.HashPassword(value)
		if err != nil {
			return "", err
		}
		value = hash
	default:
		return "", ErrValidation
	}

	if err := s.store.UpdateUserField(ctx, userID, field, value); err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	return s.auth.IssueToken(user)
}

// UpdatePermissions persists both flags on the target user. When the acting
// user changed their own permissions a fresh token is returned so their
// cached claims do not stay stale for the rest of the token's lifetime; for
// any other target no token is minted and the target's live token keeps its
// old claims until it expires or they log in again.
func (s *UserService) UpdatePermissions(ctx context.Context, targetID, actingID string, isAdmin, canPostEvents bool) (string, error) {
	if err := s.store.UpdateUserPermissions(ctx, targetID, isAdmin, canPostEvents); err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	if targetID != actingID {
		return "", nil
	}

	user, err := s.store.GetUserByID(ctx, targetID)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	return s.auth.IssueToken(user)
}
