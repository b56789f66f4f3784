package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/folio/backend/internal/auth"
	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Policy is the access rule attached to a route.
type Policy int

const (
	// Public routes skip every check.
	Public Policy = iota
	// Member requires a valid access token for an existing non-admin user.
	// Comments and likes are written by visitors, not by the site owner.
	Member
	// Admin requires the admin flag.
	Admin
	// Self requires the :userId path parameter to be the caller.
	Self
	// SelfOrAdmin is Self, with admins allowed for any user.
	SelfOrAdmin
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case Member:
		return "member"
	case Admin:
		return "admin"
	case Self:
		return "self"
	case SelfOrAdmin:
		return "self-or-admin"
	}
	return "unknown"
}

const (
	// PrincipalKey is the echo context key holding *models.Principal.
	PrincipalKey = "principal"
	// UserIDParam is the path parameter compared by Self and SelfOrAdmin.
	UserIDParam = "userId"
)

// Gate evaluates policies against the bearer token and the current user
// record. Nothing is cached between requests.
type Gate struct {
	tokens *auth.TokenService
	users  repositories.UserRepository
}

func NewGate(tokens *auth.TokenService, users repositories.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Evaluate decides whether a request may proceed. It returns the resolved
// caller (nil for Public) or an *errs.Error: 401 for every rejection except
// a malformed path user id, which is 400.
func (g *Gate) Evaluate(ctx context.Context, policy Policy, authorization, pathUserID string) (*models.Principal, error) {
	if policy == Public {
		return nil, nil
	}

	token, ok := bearerToken(authorization)
	if !ok {
		return nil, errs.Unauthorized(services.MsgNotAuthorized)
	}
	claims, err := g.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, errs.Unauthorized(services.MsgNotAuthorized)
	}

	user, err := g.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, errs.Unauthorized(services.MsgNotAuthorized)
		}
		return nil, errs.Internal(err)
	}
	principal := &models.Principal{UserID: user.ID, Email: user.Email, Name: user.Name, IsAdmin: user.IsAdmin}

	switch policy {
	case Member:
		if principal.IsAdmin {
			return nil, errs.Unauthorized(services.MsgNotAuthorized)
		}
		return principal, nil
	case Admin:
		if !principal.IsAdmin {
			return nil, errs.Unauthorized(services.MsgNotAuthorized)
		}
		return principal, nil
	case Self, SelfOrAdmin:
		if !repositories.IsValidID(pathUserID) {
			return nil, errs.BadRequest(services.MsgInvalidUserID)
		}
		if pathUserID == principal.UserID || (policy == SelfOrAdmin && principal.IsAdmin) {
			return principal, nil
		}
		return nil, errs.Unauthorized(services.MsgNotAuthorized)
	}
	return nil, errs.Unauthorized(services.MsgNotAuthorized)
}

// Require returns echo middleware enforcing policy and storing the caller
// under PrincipalKey.
func (g *Gate) Require(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			principal, err := g.Evaluate(req.Context(), policy, req.Header.Get(echo.HeaderAuthorization), c.Param(UserIDParam))
			if err != nil {
				log.Debug().Str("policy", policy.String()).Str("path", c.Path()).Err(err).Msg("Request rejected by gate")
				return err
			}
			if principal != nil {
				c.Set(PrincipalKey, principal)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the caller stored by Require.
func PrincipalFrom(c echo.Context) (models.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(*models.Principal)
	if !ok || p == nil {
		return models.Principal{}, false
	}
	return *p, true
}

// Expecting "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
