// Package services holds the auth and content flows. Every method returns
// either a result or an *errs.Error; transport mapping happens in handlers.
package services

import (
	"errors"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/repositories"
)

// Messages shared by more than one flow.
const (
	MsgNotAuthorized = "You're not authorized"
	MsgInvalidUserID = "Invalid user id"
	MsgInvalidBlogID = "Invalid blog id"
	MsgBlogNotFound  = "Blog not found"
)

// storeErr translates repository sentinels. invalidMsg and notFoundMsg name
// the entity the caller was looking for.
func storeErr(err error, invalidMsg, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrInvalidID):
		return errs.BadRequest(invalidMsg)
	case errors.Is(err, repositories.ErrNotFound):
		return errs.NotFound(notFoundMsg)
	case errors.Is(err, repositories.ErrDuplicate):
		return errs.Conflict("Resource already exists")
	}
	if _, ok := errs.As(err); ok {
		return err
	}
	return errs.Internal(err)
}

// requireID rejects malformed identifiers before any query runs.
func requireID(id, invalidMsg string) error {
	if !repositories.IsValidID(id) {
		return errs.BadRequest(invalidMsg)
	}
	return nil
}
