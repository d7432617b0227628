package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/services"
)

type SearchHandlers struct {
	Serp *services.SerpClient
}

type FlightSearchRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
}

type FlightSearchResponse struct {
	Flights []services.Flight `json:"flights"`
	Source  string            `json:"source"` // "live" or "estimated"
}

type HotelSearchRequest struct {
	Destination string `json:"destination" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	Guests      int    `json:"guests"`
}

type HotelSearchResponse struct {
	Hotels []services.Hotel `json:"hotels"`
	Source string           `json:"source"`
}

// Flights always answers 200 with a ranked result set; provider faults are
// absorbed into synthetic listings and only reflected in the source field.
func (h *SearchHandlers) Flights(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	flights, live := h.Serp.SearchFlights(c.Request.Context(),
		req.Origin, req.Destination, req.DepartureDate, req.ReturnDate, req.Passengers)

	c.JSON(http.StatusOK, FlightSearchResponse{
		Flights: flights,
		Source:  sourceLabel(live),
	})
}

func (h *SearchHandlers) Hotels(c *gin.Context) {
	var req HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	hotels, live := h.Serp.SearchHotels(c.Request.Context(),
		req.Destination, req.CheckIn, req.CheckOut, req.Guests)

	c.JSON(http.StatusOK, HotelSearchResponse{
		Hotels: hotels,
		Source: sourceLabel(live),
	})
}

func sourceLabel(live bool) string {
	if live {
		return "live"
	}
	return "estimated"
}
