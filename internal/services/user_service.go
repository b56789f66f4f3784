package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/folio/backend/internal/auth"
	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/validators"
	"github.com/anonto42/folio/backend/pkg/firebase"
)

const (
	msgUserExists         = "User already exists!"
	msgInvalidCredentials = "The provided credentials are invalid."
	msgUserNotFound       = "User not found"
)

// IdentityVerifier verifies third-party ID tokens. *firebase.App satisfies it.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, idToken string) (*firebase.Identity, error)
}

// UserService implements signup, login, token refresh and profile access.
type UserService struct {
	users    repositories.UserRepository
	tokens   *auth.TokenService
	identity IdentityVerifier
}

// NewUserService creates a UserService. identity may be nil, in which case
// FirebaseLogin is unavailable.
func NewUserService(users repositories.UserRepository, tokens *auth.TokenService, identity IdentityVerifier) *UserService {
	return &UserService{users: users, tokens: tokens, identity: identity}
}

// FirebaseEnabled reports whether federated login is configured.
func (s *UserService) FirebaseEnabled() bool {
	return s.identity != nil
}

// SignUp validates the request before touching the store, rejects a taken
// email with 400 and stores a bcrypt hash of the password.
func (s *UserService) SignUp(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Photo = strings.TrimSpace(req.Photo)
	req.DOB = strings.TrimSpace(req.DOB)
	if err := validators.Check(req); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, errs.ConflictBadRequest(msgUserExists)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.Internal(err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
		Photo:    req.Photo,
		DOB:      req.DOB,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errs.ConflictBadRequest(msgUserExists)
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Login answers an unknown email and a wrong password identically.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.Unauthorized(msgInvalidCredentials)
		}
		return nil, errs.Internal(err)
	}
	if user.Password == "" || !auth.CheckPassword(user.Password, req.Password) {
		return nil, errs.Unauthorized(msgInvalidCredentials)
	}

	return s.issuePair(user)
}

// FirebaseLogin exchanges a verified Firebase ID token for a local token
// pair, linking or creating the account by email.
func (s *UserService) FirebaseLogin(ctx context.Context, idToken string) (*models.TokenPair, error) {
	if s.identity == nil {
		return nil, errs.NotFound("Firebase login is not enabled")
	}

	id, err := s.identity.VerifyIdentity(ctx, idToken)
	if err != nil {
		return nil, errs.Unauthorized("Invalid Firebase ID token")
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, id.UID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.linkFirebaseUser(ctx, id)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errs.Internal(err)
	}

	return s.issuePair(user)
}

func (s *UserService) linkFirebaseUser(ctx context.Context, id *firebase.Identity) (*models.User, error) {
	email := strings.ToLower(id.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		user.FirebaseUID = id.UID
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, errs.Internal(err)
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.Internal(err)
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = &models.User{Email: email, Name: name, FirebaseUID: id.UID}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, errs.Internal(err)
	}
	return user, nil
}

func (s *UserService) issuePair(user *models.User) (*models.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, errs.Internal(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &models.TokenPair{Token: access, RefreshToken: refresh, UserID: user.ID}, nil
}

// RefreshAccessToken issues a new access token when refreshToken was issued
// to userID and the account still exists.
func (s *UserService) RefreshAccessToken(ctx context.Context, userID, refreshToken string) (string, error) {
	if err := requireID(userID, MsgInvalidUserID); err != nil {
		return "", err
	}

	token, err := s.tokens.Refresh(userID, refreshToken)
	if err != nil {
		return "", errs.Unauthorized(MsgNotAuthorized)
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", errs.Unauthorized(MsgNotAuthorized)
		}
		return "", errs.Internal(err)
	}
	return token, nil
}

// GetUser lets anyone read their own record and admins read any record.
func (s *UserService) GetUser(ctx context.Context, requester models.Principal, targetID string) (*models.User, error) {
	if err := requireID(targetID, MsgInvalidUserID); err != nil {
		return nil, err
	}
	if requester.UserID != targetID && !requester.IsAdmin {
		return nil, errs.Unauthorized(MsgNotAuthorized)
	}

	user, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, storeErr(err, MsgInvalidUserID, msgUserNotFound)
	}
	return user, nil
}

// UpdateUser changes name, and photo and dob when sent, of the requester's
// own record.
func (s *UserService) UpdateUser(ctx context.Context, requester models.Principal, targetID string, req models.UpdateUserRequest) (*models.User, error) {
	if err := requireID(targetID, MsgInvalidUserID); err != nil {
		return nil, err
	}
	if requester.UserID != targetID {
		return nil, errs.Unauthorized(MsgNotAuthorized)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Photo = trimmed(req.Photo)
	req.DOB = trimmed(req.DOB)
	if err := validators.Check(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, storeErr(err, MsgInvalidUserID, msgUserNotFound)
	}

	user.Name = req.Name
	if req.Photo != nil {
		user.Photo = *req.Photo
	}
	if req.DOB != nil {
		user.DOB = *req.DOB
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, storeErr(err, MsgInvalidUserID, msgUserNotFound)
	}
	return user, nil
}

// ListUsers returns every account for the dashboard.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

// SetAdmin grants or revokes the admin flag. It is only reachable from the
// command line.
func (s *UserService) SetAdmin(ctx context.Context, email string, admin bool) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, storeErr(err, MsgInvalidUserID, msgUserNotFound)
	}
	user.IsAdmin = admin
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, errs.Internal(err)
	}
	return user, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
