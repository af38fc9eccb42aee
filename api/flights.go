package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type searchQuery struct {
	Origin        string `form:"origin" binding:"required,iata"`
	Destination   string `form:"destination" binding:"required,iata"`
	DepartureDate string `form:"departure_date" binding:"required,datetime=2006-01-02"`
	ReturnDate    string `form:"return_date" binding:"omitempty,datetime=2006-01-02"`
	Passengers    int    `form:"passengers,default=1" binding:"min=1,max=9"`
	ClassType     string `form:"class_type" binding:"omitempty,oneof=economy business first"`
}

type listQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=500"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

// RegisterAirports mounts the airport listing, which shares the flight cache.
func (h *FlightHandler) RegisterAirports(router *gin.RouterGroup) {
	router.GET("", h.airports)
}

func (h *FlightHandler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, validation.Translate(err))
		return
	}

	input := flights.SearchInput{
		Origin:      q.Origin,
		Destination: q.Destination,
		Passengers:  q.Passengers,
		ClassType:   q.ClassType,
	}
	input.DepartureDate, _ = time.Parse(dateLayout, q.DepartureDate)
	if q.ReturnDate != "" {
		ret, _ := time.Parse(dateLayout, q.ReturnDate)
		input.ReturnDate = &ret
	}

	result, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponses(result))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(flight))
}

func (h *FlightHandler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, validation.Translate(err))
		return
	}
	result, err := h.service.List(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponses(result))
}

func (h *FlightHandler) airports(c *gin.Context) {
	result, err := h.service.Airports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponses(result))
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, c.Param("id"))
	}
	return id, nil
}
