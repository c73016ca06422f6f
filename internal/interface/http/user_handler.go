package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
	"github.com/oksasatya/go-user-auth-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return 0, false
	}
	return id, true
}

// GetProfile GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c.Request.Context())
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusOK, users, "users", gin.H{"count": len(users)})
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

type updateRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,name"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,name"`
	Country   *string `json:"country" binding:"omitempty,name"`
	Image     *string `json:"image" binding:"omitempty,max=2048"`
}

// Update PUT /users/:id
// Omitted fields are kept. "" clears country or image; names cannot be blank.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), id, entity.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Image:     req.Image,
	})
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// Delete DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully", nil)
}
