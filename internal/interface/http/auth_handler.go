package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
	"github.com/oksasatya/go-user-auth-api/pkg/validation"
)

// AuthHandler serves registration, verification, login and password reset.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required,name"`
	LastName  string `json:"lastName" binding:"required,name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	Country   string `json:"country" binding:"omitempty,name"`
	Image     string `json:"image" binding:"omitempty,max=2048"`
}

// Register POST /users
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Country:   req.Country,
		Image:     req.Image,
	})
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

// VerifyEmail GET /users/verify/:code
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	u, err := h.Svc.VerifyEmail(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.Logger, err, "Invalid verification code")
		return
	}
	response.Success(c, http.StatusOK, u, "Email verified successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// Login POST /users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success(c, http.StatusOK, res, "login success", nil)
}

type resetRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FrontBaseURL string `json:"frontBaseUrl" binding:"omitempty,url"`
}

// RequestPasswordReset POST /users/reset_password
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email, req.FrontBaseURL); err != nil {
		respondError(c, h.Logger, err, "User not found")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset email sent", nil)
}

type resetConfirmRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

// ResetPassword POST /users/reset_password/:code
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), c.Param("code"), req.Password); err != nil {
		respondError(c, h.Logger, err, "Invalid or expired reset code")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset successfully", nil)
}
