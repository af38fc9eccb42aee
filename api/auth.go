package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

var errNotAuthenticated = fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)

type AuthHandler struct {
	service auth.AuthUseCase
}

type registerRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=50"`
	Email       string  `json:"email" binding:"required,email"`
	FullName    string  `json:"full_name" binding:"required,min=1"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	Password    string  `json:"password" binding:"required,min=6"`
}

// loginRequest follows the OAuth2 password grant form.
type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/token", h.token)
	router.GET("/me", RequireAuth(h.service), h.me)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validation.Translate(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) token(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, validation.Translate(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) me(c *gin.Context) {
	c.JSON(http.StatusOK, newUserResponse(currentUser(c)))
}
