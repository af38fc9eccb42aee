package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/stats"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	stats   stats.StatsUseCase
}

type passengerRequest struct {
	FirstName      string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string  `json:"last_name" binding:"required,min=1,max=100"`
	DateOfBirth    string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender         string  `json:"gender" binding:"required,oneof=male female other"`
	PassportNumber *string `json:"passport_number" binding:"omitempty,max=50"`
	Nationality    string  `json:"nationality" binding:"required,min=2,max=100"`
	SeatNumber     *string `json:"seat_number" binding:"omitempty,max=10"`
}

type createBookingRequest struct {
	FlightID   int64              `json:"flight_id" binding:"required,gt=0"`
	Passengers []passengerRequest `json:"passengers" binding:"required,min=1,max=9,dive"`
}

func NewBookingHandler(service booking.BookingUseCase, stats stats.StatsUseCase) *BookingHandler {
	return &BookingHandler{service: service, stats: stats}
}

// Register expects router to already require authentication.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/stats/summary", h.summary)
	router.GET("/:id", h.get)
	router.PUT("/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validation.Translate(err))
		return
	}

	input := booking.CreateBookingInput{FlightID: req.FlightID}
	for _, p := range req.Passengers {
		dob, _ := time.Parse(dateLayout, p.DateOfBirth)
		input.Passengers = append(input.Passengers, booking.PassengerInput{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DateOfBirth:    dob,
			Gender:         p.Gender,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			SeatNumber:     p.SeatNumber,
		})
	}

	created, err := h.service.CreateBooking(c.Request.Context(), currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	detail, err := h.service.GetBooking(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingDetailResponse(detail))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	cancelled, err := h.service.CancelBooking(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(cancelled))
}

func (h *BookingHandler) summary(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStatsResponse(summary))
}
