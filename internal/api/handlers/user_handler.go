// internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"
	"time"

	"prestige-motors-api-server/internal/auth"
	"prestige-motors-api-server/internal/database"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Repo      *database.Repository
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials against the user collection and issues a
// session token. Unknown usernames and wrong passwords get the same
// response on purpose.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := h.Repo.Authenticate(c.Request.Context(), req.Username, req.Password)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateJWT(h.JWTSecret, user.Username, user.IsAdmin, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username": user.Username,
			"isAdmin":  user.IsAdmin,
		},
	})
}
