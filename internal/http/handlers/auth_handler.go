// README: Login endpoint issuing access tokens.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/user"
	"fleetflow/internal/types"
)

// TokenIssuer abstracts auth.Manager for handler tests.
type TokenIssuer interface {
	Generate(userID types.ID, email string, role access.Role) (string, error)
}

type AuthHandler struct {
	users  *user.Service
	tokens TokenIssuer
}

func NewAuthHandler(users *user.Service, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "email and password are required")
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}
	token, err := h.tokens.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"access_token": token,
		"role":         u.Role,
		"user_id":      u.ID,
	})
}
