package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses; anything not listed here surfaces as a 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("insufficient permissions")
	ErrReservedUsername = errors.New("username \"me\" is reserved")
	ErrUsernameInUse    = errors.New("username already in use")
	ErrEmailInUse       = errors.New("email already in use")
	ErrInvalidCode      = errors.New("confirmation code is not valid")
	ErrSlugInUse        = errors.New("slug already in use")
	ErrInvalidSlug      = errors.New("slug may only contain letters, digits, hyphens and underscores")
	ErrUnknownCategory  = errors.New("unknown category slug")
	ErrUnknownGenre     = errors.New("unknown genre slug")
	ErrFutureYear       = errors.New("year cannot be in the future")
	ErrDuplicateReview  = errors.New("you have already reviewed this title")
)
