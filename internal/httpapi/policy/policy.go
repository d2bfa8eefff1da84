// Package policy holds the authorization rules as plain predicates over the
// caller and the target resource. Every predicate is evaluated per request
// against the freshly loaded user record, never against cached claims.
package policy

import "reviewhub/internal/httpapi/models"

// IsStaff reports whether the caller holds moderation rights or above.
func IsStaff(caller *models.User) bool {
	return caller != nil && (caller.IsModerator() || caller.IsAdmin())
}

// CanManageCatalog gates category/genre/title mutation. Reads are public.
func CanManageCatalog(caller *models.User) bool {
	return caller != nil && caller.IsAdmin()
}

// CanManageUsers gates the /users collection except the "me" routes.
func CanManageUsers(caller *models.User) bool {
	return caller != nil && caller.IsAdmin()
}

// CanModerate reports whether the caller may update or delete content
// authored by authorID. Authors moderate their own content; moderators and
// admins moderate anyone's.
func CanModerate(caller *models.User, authorID string) bool {
	if caller == nil {
		return false
	}
	return caller.ID == authorID || IsStaff(caller)
}

// CanSetRole reports whether a role value supplied in an update payload may
// take effect. Non-admin callers have the field silently stripped.
func CanSetRole(caller *models.User) bool {
	return caller != nil && caller.IsAdmin()
}
