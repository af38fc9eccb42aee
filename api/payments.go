package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type processPaymentRequest struct {
	BookingID     int64  `json:"booking_id" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card bank_transfer paystack stripe"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/process", h.process)
}

func (h *PaymentHandler) process(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validation.Translate(err))
		return
	}

	p, err := h.service.Process(c.Request.Context(), currentUser(c), req.BookingID, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPaymentResponse(p))
}
