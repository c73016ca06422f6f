package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

type HealthModule struct {
	AppName string
}

func NewHealthModule(appName string) *HealthModule { return &HealthModule{AppName: appName} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"app": m.AppName, "status": "ok"}, "service is running", nil)
	})
}
