// auth.go - Handles user login

package handlers

import (
	"net/http"

	"attendance-tracker/middleware"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login. It returns a signed token; no route requires one.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := bindJSON(c, &input, errMissingFields); err != nil {
		h.fail(c, err)
		return
	}

	user, found, err := h.store.FindUserByUsername(c.Request.Context(), input.Username)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found || !user.CheckPassword(input.Password) {
		h.fail(c, errInvalidCredentials)
		return
	}

	token, err := middleware.IssueToken(user.ID, h.jwtSecret, h.jwtExpiry, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.ToResponse()})
}
