package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
)

// AuthModule registers the public account routes:
// POST /users, GET /users/verify/:code, POST /users/login,
// POST /users/reset_password, POST /users/reset_password/:code
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", m.Handler.Register)
	users.GET("/verify/:code", m.Handler.VerifyEmail)
	users.POST("/login", m.Handler.Login)
	users.POST("/reset_password", m.Handler.RequestPasswordReset)
	users.POST("/reset_password/:code", m.Handler.ResetPassword)
}
