package access

import (
	"github.com/gin-gonic/gin"

	"museumguide/internal/domain"
)

// Caller is the request-scoped identity of whoever is asking. It is built
// from the validated token claims on every request; nothing here is ambient
// or global.
type Caller struct {
	UserID   int64
	Role     domain.Role
	MuseumID *int64
}

// Resolve is the single authority on staff visibility:
//
//	superadmin                -> everything
//	admin with a museum       -> that museum's subtree
//	admin without, other role -> nothing (empty scope, not an error)
func Resolve(caller Caller) domain.Scope {
	switch {
	case caller.Role == domain.RoleSuperadmin:
		return domain.ScopeAll()
	case caller.Role == domain.RoleAdmin && caller.MuseumID != nil && *caller.MuseumID > 0:
		return domain.ScopeMuseum(*caller.MuseumID)
	default:
		return domain.Scope{}
	}
}

// CallerFromContext rebuilds the caller from the values the auth middleware
// stored on the gin context.
func CallerFromContext(c *gin.Context) Caller {
	caller := Caller{
		UserID: c.GetInt64("user_id"),
		Role:   domain.Role(c.GetString("role")),
	}
	if museumID := c.GetInt64("museum_id"); museumID > 0 {
		caller.MuseumID = &museumID
	}
	return caller
}
