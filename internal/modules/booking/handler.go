package booking

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

// RegisterRoutes expects an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/stadiums/:id/bookings", h.CreateBooking)
	protected.GET("/users/me/bookings", h.ListMyBookings)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	stadiumID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || stadiumID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid stadium id")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.CallerFrom(c), stadiumID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking time range")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Stadium not found")
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, response.CodeBookingClash, "Stadium already booked for this time range")
		case errors.Is(err, access.ErrUnauthenticated):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		case errors.Is(err, access.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Account is banned")
		default:
			response.Internal(c, err, "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListMyBookings(c.Request.Context(), middleware.CallerFrom(c), limit, offset)
	if err != nil {
		if errors.Is(err, access.ErrUnauthenticated) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}
		response.Internal(c, err, "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}
