// Package authz holds the single cross-cutting access decision: who may
// mutate an ad or comment. Read paths are either public or scoped to the
// caller and never consult this package.
package authz

import "github.com/vkazakov/adboard-backend/internal/models"

// Principal is the authenticated identity bound to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     models.Role
}

// CanModify reports whether p may mutate a resource owned by ownerID:
// the owner themselves, or any administrator.
func CanModify(p Principal, ownerID int64) bool {
	return p.UserID == ownerID || p.Role == models.RoleAdmin
}
