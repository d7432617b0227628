package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripweaver/database"
	"tripweaver/services"
)

type TripHandlers struct {
	Itineraries *services.ItineraryClient
}

type CreateTripRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	Origin      string  `json:"origin" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Budget      float64 `json:"budget" binding:"required,gt=0"`
}

// Create validates the trip request, generates the itinerary and persists
// the trip. Generation failures surface to the caller so the frontend can
// prompt a retry; a degraded itinerary is never silently substituted.
func (h *TripHandlers) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)

	startDate, err := services.NormalizeDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date. Use YYYY-MM-DD"})
		return
	}
	endDate, err := services.NormalizeDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date. Use YYYY-MM-DD"})
		return
	}
	if endDate <= startDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	days, err := services.DaysBetween(startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	itinerary, err := h.Itineraries.Generate(c.Request.Context(), req.Destination, days, req.Budget)
	if err != nil {
		status := generationStatus(err)
		log.Printf("itinerary generation failed (%d): %v", status, err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	trip := &database.Trip{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		StartDate:      startDate,
		EndDate:        endDate,
		Budget:         req.Budget,
		Itinerary:      *itinerary,
		TransportCost:  itinerary.BudgetBreakdown.Transport,
		StayCost:       itinerary.BudgetBreakdown.Stay,
		FoodCost:       itinerary.BudgetBreakdown.Food,
		ActivitiesCost: itinerary.BudgetBreakdown.Activities,
	}

	if err := database.SaveTrip(trip); err != nil {
		log.Printf("Failed to save trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func generationStatus(err error) int {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var configErr *services.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusInternalServerError
	}
	// Provider and parse faults are both upstream problems worth retrying.
	return http.StatusBadGateway
}

func (h *TripHandlers) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	trips, err := database.ListTripsByUser(userID)
	if err != nil {
		log.Printf("Failed to list trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (h *TripHandlers) Get(c *gin.Context) {
	trip, err := database.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandlers) Delete(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	if err := database.DeleteTrip(c.Param("id"), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		log.Printf("Failed to delete trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

// PDF renders the trip's itinerary as a downloadable document.
func (h *TripHandlers) PDF(c *gin.Context) {
	trip, err := database.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	pdfBytes, err := services.GenerateTripPDF(services.TripPDF{
		Origin:          trip.Origin,
		Destination:     trip.Destination,
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		Budget:          trip.Budget,
		Days:            trip.Itinerary.Days,
		Tips:            trip.Itinerary.Tips,
		BestAttractions: trip.Itinerary.BestAttractions,
		Breakdown:       trip.Itinerary.BudgetBreakdown,
	})
	if err != nil {
		log.Printf("PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tripweaver-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
