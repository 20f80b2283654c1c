// README: User administration handlers (manager only).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/user"
	"fleetflow/internal/types"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{users: svc}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	if !authorize(c, access.OpCreateUser) {
		return
	}
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := h.users.Create(c.Request.Context(), user.CreateCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     access.Role(req.Role),
	})
	if err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, u)
}

func (h *UserHandler) List(c *gin.Context) {
	if !authorize(c, access.OpReadUsers) {
		return
	}
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !authorize(c, access.OpDeleteUser) {
		return
	}
	if err := h.users.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeUserError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "user deleted"})
}
