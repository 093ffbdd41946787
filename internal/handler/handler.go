package handler

import (
	"spendwise/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
