package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-auth-api/internal/container"
	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
	"github.com/oksasatya/go-user-auth-api/internal/router/modules"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.Service, c.Logger)
	userHandler := handlers.NewUserHandler(c.Service, c.Logger)

	r.Add(modules.NewHealthModule(c.Config.AppName))
	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, c.JWT))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Registry))
	}

	r.Engine.NoRoute(func(ctx *gin.Context) {
		response.Error[any](ctx, http.StatusNotFound, "route not found", nil)
	})
}
