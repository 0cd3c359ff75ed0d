// users.go - User management endpoints

package handlers

import (
	"net/http"

	"attendance-tracker/models"
	"attendance-tracker/store"

	"github.com/gin-gonic/gin"
)

type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// UpdateUserInput only changes the fields present in the body.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// ListUsers handles GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UsersToResponse(users))
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := bindJSON(c, &input, errMissingFields); err != nil {
		h.fail(c, err)
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: h.now().UTC(),
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}
	if err := user.SetPassword(input.Password); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user.ToResponse()})
}

// GetUser handles GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := pathID(c, errUserNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	user, found, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateUser handles PUT /api/users/:id. Username and email uniqueness is not checked
// again here; a clash fails on the unique index as a 500.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := pathID(c, errUserNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input UpdateUserInput
	if err := bindJSON(c, &input, errInvalidBody); err != nil {
		h.fail(c, err)
		return
	}

	user, found, err := h.store.UpdateUser(c.Request.Context(), id, store.UserPatch{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errUserNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user.ToResponse()})
}

// DeleteUser handles DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := pathID(c, errUserNotFound)
	if err != nil {
		h.fail(c, err)
		return
	}
	found, err := h.store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		h.fail(c, errUserNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
