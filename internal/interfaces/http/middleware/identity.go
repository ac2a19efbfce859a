package middleware

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/shared/authorization"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/errors"
	"tavern/internal/shared/utils"
)

// actorID pulls the authenticated user ID from the request context. When it
// is missing or malformed the request is rejected 401 and the second return
// is false.
func actorID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		c.Abort()
		return 0, false
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid user ID in context"))
		c.Abort()
		return 0, false
	}
	return userID, true
}

// actorIsAdmin reports whether the request context carries the ADMIN role,
// case-insensitively. Admins bypass every quota and feature gate.
func actorIsAdmin(c *gin.Context) bool {
	v, _ := c.Get(constants.ContextKeyUserRole)
	role, _ := v.(string)
	return authorization.IsAdminRole(role)
}

// actorPlan returns the actor's plan key, defaulting to FREE when absent
func actorPlan(c *gin.Context) string {
	v, _ := c.Get(constants.ContextKeyUserPlan)
	plan, _ := v.(string)
	if plan == "" {
		return "FREE"
	}
	return plan
}
