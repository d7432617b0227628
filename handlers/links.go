package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripweaver/services"
)

// Deep-link handlers are stateless: the builder is a pure function of its
// query parameters, so no client is injected.

func FlightLink(c *gin.Context) {
	link, err := services.FlightURL(services.FlightLinkParams{
		Origin:        c.Query("origin"),
		Destination:   c.Query("destination"),
		DepartureDate: c.Query("departure_date"),
		ReturnDate:    c.Query("return_date"),
		Passengers:    intQuery(c, "passengers"),
		Cabin:         c.Query("cabin"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func HotelLink(c *gin.Context) {
	link, err := services.HotelURL(services.HotelLinkParams{
		Destination: c.Query("destination"),
		CheckIn:     c.Query("check_in"),
		CheckOut:    c.Query("check_out"),
		Guests:      intQuery(c, "guests"),
		Rooms:       intQuery(c, "rooms"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func TripLinksHandler(c *gin.Context) {
	links, err := services.TripURLs(
		c.Query("origin"),
		c.Query("destination"),
		c.Query("start_date"),
		c.Query("end_date"),
		intQuery(c, "passengers"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
