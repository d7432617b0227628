package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/services"
)

func linksRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/links/flights", FlightLink)
	api.GET("/links/hotels", HotelLink)
	api.GET("/links/trip", TripLinksHandler)
	return r
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestFlightLinkHandler(t *testing.T) {
	r := linksRouter()

	w := getPath(r, "/api/links/flights?origin=Delhi&destination=Goa&departure_date=2025-01-10&return_date=2025-01-15&passengers=2")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["url"], "/flights/DEL-GOI/2025-01-10/2025-01-15")
	assert.Contains(t, resp["url"], "passengers=2")
}

func TestFlightLinkHandlerBadDate(t *testing.T) {
	r := linksRouter()

	w := getPath(r, "/api/links/flights?origin=Delhi&destination=Goa&departure_date=tomorrow")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripLinksHandler(t *testing.T) {
	r := linksRouter()

	w := getPath(r, "/api/links/trip?origin=Delhi&destination=Goa&start_date=2025-01-10&end_date=2025-01-15&passengers=2")

	assert.Equal(t, http.StatusOK, w.Code)

	var links services.TripLinks
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Contains(t, links.Flights, "kayak.com/flights")
	assert.Contains(t, links.Hotels, "kayak.com/hotels")
}
