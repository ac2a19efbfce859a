package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tavern/internal/shared/constants"
	"tavern/internal/shared/utils"
)

// currentUserID pulls the authenticated user's ID from the request context.
// A missing or malformed value writes a 401 and reports failure.
func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, false
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, false
	}
	return userID, true
}

// paramID parses a positive integer path parameter, writing a 400 on failure
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// pagination reads page/page_size query parameters with sane defaults
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
