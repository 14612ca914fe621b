package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
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

/* ---------- ROUTE REGISTRATION ---------- */

// RegisterRoutes registers the public catalog routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stadiums := r.Group("/stadiums")
	{
		stadiums.GET("", h.SearchStadiums)     // GET /api/v1/stadiums?date=...&start_time=...
		stadiums.GET("/:id", h.GetStadiumByID) // GET /api/v1/stadiums/:id
	}
}

// RegisterProtectedRoutes expects a group already behind JWTAuth
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	owners := r.Group("/stadiums", middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))
	{
		owners.POST("", h.CreateStadium)
		owners.GET("/my", h.GetMyStadiums)
		owners.PUT("/:id", h.UpdateStadium)
		owners.DELETE("/:id", h.DeleteStadium)
		owners.GET("/:id/bookings", h.GetStadiumBookings)
		owners.DELETE("/:id/bookings/:booking_id", h.DeleteStadiumBooking)
	}
}

/* ---------- STADIUM HANDLERS ---------- */

// SearchStadiums handles GET /api/v1/stadiums
func (h *Handler) SearchStadiums(c *gin.Context) {
	q, details := parseSearchQuery(c)
	if details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid search parameters", details)
		return
	}

	items, err := h.service.SearchStadiums(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stadiums": items})
}

func parseSearchQuery(c *gin.Context) (SearchQuery, map[string]string) {
	var q SearchQuery
	details := map[string]string{}

	d, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		details["date"] = "expected YYYY-MM-DD"
	}
	q.Date = d

	if q.Start, err = domain.ParseTimeOfDay(c.Query("start_time")); err != nil {
		details["start_time"] = "expected HH:MM or HH:MM:SS"
	}
	if q.End, err = domain.ParseTimeOfDay(c.Query("end_time")); err != nil {
		details["end_time"] = "expected HH:MM or HH:MM:SS"
	}
	if q.Latitude, err = strconv.ParseFloat(c.Query("latitude"), 64); err != nil {
		details["latitude"] = "expected a number"
	}
	if q.Longitude, err = strconv.ParseFloat(c.Query("longitude"), 64); err != nil {
		details["longitude"] = "expected a number"
	}

	if len(details) > 0 {
		return q, details
	}
	return q, nil
}

// GetStadiumByID handles GET /api/v1/stadiums/:id
func (h *Handler) GetStadiumByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	st, err := h.service.GetStadium(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stadium": st})
}

// GetMyStadiums handles GET /api/v1/stadiums/my
func (h *Handler) GetMyStadiums(c *gin.Context) {
	items, err := h.service.ListMyStadiums(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stadiums": items})
}

// CreateStadium handles POST /api/v1/stadiums
func (h *Handler) CreateStadium(c *gin.Context) {
	var req StadiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	st, err := h.service.CreateStadium(c.Request.Context(), middleware.CallerFrom(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"stadium": st})
}

// UpdateStadium handles PUT /api/v1/stadiums/:id
func (h *Handler) UpdateStadium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req StadiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	st, err := h.service.UpdateStadium(c.Request.Context(), middleware.CallerFrom(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stadium": st})
}

// DeleteStadium handles DELETE /api/v1/stadiums/:id
func (h *Handler) DeleteStadium(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStadium(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

/* ---------- STADIUM BOOKING HANDLERS ---------- */

// GetStadiumBookings handles GET /api/v1/stadiums/:id/bookings[?booking_id=]
func (h *Handler) GetStadiumBookings(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var bookingID *int64
	if raw := c.Query("booking_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
			return
		}
		bookingID = &v
	}

	items, err := h.service.ListStadiumBookings(c.Request.Context(), middleware.CallerFrom(c), id, bookingID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

// DeleteStadiumBooking handles DELETE /api/v1/stadiums/:id/bookings/:booking_id
func (h *Handler) DeleteStadiumBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := paramID(c, "booking_id")
	if !ok {
		return
	}

	if err := h.service.DeleteStadiumBooking(c.Request.Context(), middleware.CallerFrom(c), id, bookingID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": bookingID})
}

/* ---------- ERROR HANDLING ---------- */

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", verr.Fields)
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid date, time range or coordinates")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Stadium not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
	case errors.Is(err, ErrStadiumExists):
		response.Error(c, http.StatusConflict, response.CodeStadiumExists, "Stadium with this name already exists")
	case errors.Is(err, access.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	case errors.Is(err, access.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "You don't have permission to perform this action")
	default:
		response.Internal(c, err, "An internal error occurred")
	}
}
