package auth

import (
	"errors"
	"net/http"

	"stadiumbooking/internal/middleware"
	"stadiumbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// Register creates a player or stadium owner account.
// @Summary	Register an account
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"email, password, names, optional role"
// @Success	201	{object}	map[string]interface{}	"user and access token"
// @Failure	400	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{}	"email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, response.CodeEmailTaken, "This email is already registered")
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Role must be user or owner")
		default:
			response.Internal(c, err, "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Login exchanges credentials for an access token.
// @Summary	Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email and password"
// @Success	200	{object}	map[string]interface{}	"user and access token"
// @Failure	401	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCreds, "Invalid email or password")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Account is banned")
		default:
			response.Internal(c, err, "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetMe(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	user, err := h.service.GetCurrentUser(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.Internal(c, err, "Failed to load user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
