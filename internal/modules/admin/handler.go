package admin

import (
	"errors"
	"net/http"
	"strconv"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/middleware"
	"stadiumbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /admin under an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/stats", h.GetStats)

		// users moderation
		admin.GET("/users", h.GetUsers)
		admin.PATCH("/users/:id/ban", h.BanUser)
		admin.PATCH("/users/:id/unban", h.UnbanUser)
	}
}

// GetStats returns platform counters.
// @Summary		Platform statistics
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	repository.PlatformStats
// @Failure		403	{object}	map[string]interface{} "Admin access required"
// @Router		/admin/stats [GET]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// BanUser blocks a user from every authenticated endpoint.
// @Summary		Ban user
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int				true	"User ID"
// @Param		request	body	BanUserRequest	true	"Ban reason"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Invalid id or missing reason"
// @Failure		404	{object}	map[string]interface{} "User not found"
// @Router		/admin/users/{id}/ban [PATCH]
func (h *Handler) BanUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Reason is required")
		return
	}

	u, err := h.service.BanUser(c.Request.Context(), middleware.CallerFrom(c), userID, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// UnbanUser restores access for a banned user.
// @Summary		Unban user
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{} "User not found"
// @Router		/admin/users/{id}/unban [PATCH]
func (h *Handler) UnbanUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.service.UnbanUser(c.Request.Context(), middleware.CallerFrom(c), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// GetUsers lists users with optional role, banned and text filters.
// @Summary		List users
// @Tags		Admin
// @Security	BearerAuth
// @Param		page	query	int		false	"Page (default 1)"
// @Param		limit	query	int		false	"Page size (default 20)"
// @Param		role	query	string	false	"user, owner or admin"
// @Param		banned	query	bool	false	"Filter by ban flag"
// @Param		q		query	string	false	"Email or name contains"
// @Success		200	{object}	UserListResponse
// @Router		/admin/users [GET]
func (h *Handler) GetUsers(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 20)

	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid filter")
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), middleware.CallerFrom(c), filter, page, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, UserListResponse{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
	case errors.Is(err, ErrCannotBanAdmin):
		response.Error(c, http.StatusConflict, "CANNOT_BAN_ADMIN", "Admins cannot be banned")
	case errors.Is(err, access.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	case errors.Is(err, access.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Admin access required")
	default:
		response.Internal(c, err, "An internal error occurred")
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid user ID")
		return 0, false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
