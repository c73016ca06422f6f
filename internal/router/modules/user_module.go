package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
)

// UserModule wires the bearer-token protected user routes.
// Protected: GET /users/me, GET /users, GET /users/:id, PUT /users/:id, DELETE /users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     middleware.TokenParser
}

func NewUserModule(h *handlers.UserHandler, jwt middleware.TokenParser) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.GetProfile)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
