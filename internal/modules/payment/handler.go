package payment

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
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings/:id/payments", h.CreatePayment)
	protected.GET("/bookings/:id/payments", h.ListPayments)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loggerf("level=warn msg=invalid payment payload booking_id=%d err=%v", bookingID, err)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), middleware.CallerFrom(c), bookingID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) ListPayments(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
		return
	}

	items, err := h.service.ListPayments(c.Request.Context(), middleware.CallerFrom(c), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": items})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCard), errors.Is(err, ErrInvalidMethod):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayment, err.Error())
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
	case errors.Is(err, ErrBookingCanceled):
		response.Error(c, http.StatusConflict, "BOOKING_CANCELED", "Booking is canceled")
	case errors.Is(err, access.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	case errors.Is(err, access.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Only the booking's user can pay for it")
	default:
		h.loggerf("level=error msg=payment request failed err=%v", err)
		response.Internal(c, err, "Payment failed")
	}
}
